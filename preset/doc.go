// Package preset provides ready-made transformers for intercept pipelines and
// a registry that builds them by name.
package preset
