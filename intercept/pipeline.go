package intercept

import "github.com/iw2rmb/retype/buffer"

// Transformer rewrites the replacement proposed for r in text.
//
// text is the full text before the edit. A transformer must be pure and must
// return replacement unchanged when it has nothing to do.
type Transformer func(text string, r buffer.Range, replacement string) string

// Pipeline applies transformers in order, each one receiving the previous
// one's output. Pipelines are never mutated in place.
type Pipeline []Transformer

// Chain builds a pipeline, skipping nil transformers.
func Chain(ts ...Transformer) Pipeline {
	return Pipeline(nil).Then(ts...)
}

// Then returns a new pipeline running p and then ts.
func (p Pipeline) Then(ts ...Transformer) Pipeline {
	out := make(Pipeline, 0, len(p)+len(ts))
	out = append(out, p...)
	for _, t := range ts {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Apply folds the pipeline over replacement. Every transformer sees the same
// pre-edit text and range.
func (p Pipeline) Apply(text string, r buffer.Range, replacement string) string {
	for _, t := range p {
		replacement = t(text, r, replacement)
	}
	return replacement
}

// Transformer collapses p into a single Transformer.
func (p Pipeline) Transformer() Transformer {
	p = p.Then()
	return p.Apply
}
