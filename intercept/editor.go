package intercept

import (
	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/control"
)

// Editor applies transformed edits to a control and keeps its caret in place.
// It is meant for a single UI goroutine.
type Editor struct {
	opts Options
	// gen counts accepted edits per control; a correction loop from an older
	// edit on the same control stops once it sees a newer generation.
	gen map[control.Control]uint64
}

func NewEditor(opts Options) *Editor {
	return &Editor{opts: opts.withDefaults(), gen: make(map[control.Control]uint64)}
}

func (e *Editor) forget(c control.Control) { delete(e.gen, c) }

// HandleEdit runs replacement for r through pipe. When the pipeline leaves the
// replacement unchanged, or the edit cannot be evaluated, it returns false and
// the control should apply the edit the usual way. Otherwise it writes the
// spliced text to c and to binding, places the caret after the transformed
// replacement, starts caret correction and returns true.
func (e *Editor) HandleEdit(c control.Control, pipe Pipeline, binding control.Binding, r buffer.Range, replacement string) bool {
	log := e.opts.Logger

	text, ok := c.Text()
	if !ok {
		log.Debug("edit rejected: text unavailable")
		return false
	}
	if r.Start > r.End {
		log.Debug("edit rejected: inverted range", "range", r.String())
		return false
	}

	unit := c.Unit()
	if r.Unit != unit {
		conv, ok := buffer.Convert(text, r, unit)
		if !ok {
			log.Debug("edit rejected: range unit mismatch", "range", r.String(), "unit", unit.String())
			return false
		}
		r = conv
	}
	if !r.Within(buffer.Len(text, unit)) {
		log.Debug("edit rejected: range out of bounds", "range", r.String(), "len", buffer.Len(text, unit))
		return false
	}

	out := pipe.Apply(text, r, replacement)
	if out == replacement {
		return false
	}

	next, ok := buffer.Splice(text, r, out)
	if !ok {
		log.Debug("edit rejected: range splits a character", "range", r.String())
		return false
	}

	c.SetText(next)
	if binding != nil {
		binding.Set(next)
	}

	anchor := buffer.Caret(buffer.CaretAfter(r, out), unit)
	c.SetSelection(anchor)

	e.gen[c]++
	sched := e.opts.Scheduler
	if sched == nil {
		sched = c.Scheduler()
	}
	if sched == nil {
		return true
	}
	cr := &correction{
		ed:       e,
		ctl:      c,
		sched:    sched,
		interval: e.opts.Interval,
		gen:      e.gen[c],
		state: pending{
			triesLeft: e.opts.Attempts,
			expected:  next,
			anchor:    anchor,
		},
	}
	cr.start()
	return true
}
