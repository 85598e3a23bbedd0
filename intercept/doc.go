// Package intercept rewrites the edits a control proposes and keeps the caret
// where the rewritten text leaves it.
//
// An Interceptor installs itself as the handler of a control (see package
// control), saving the handler it replaced. For the edit-proposed event it
// runs the proposal through a Pipeline of Transformers; when the pipeline
// changes the replacement, the interceptor writes the new text to the control
// and to the host binding, then places the caret and keeps re-checking it for
// a bounded number of timer ticks because hosts tend to reset the caret after
// a binding write. Every other event is forwarded to the saved handler.
//
// Attaching the same Interceptor twice is a no-op; attaching several
// Interceptors to one control composes their pipelines, earliest attached
// first.
package intercept
