package intercept

import (
	"time"

	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/control"
)

// CorrectionOutcome tells how a correction loop ended.
type CorrectionOutcome uint8

const (
	// CorrectionSettled means the control reported the desired caret.
	CorrectionSettled CorrectionOutcome = iota
	// CorrectionAbandoned means the text moved on (a newer edit or an external
	// write) and the loop stopped without touching the caret.
	CorrectionAbandoned
	// CorrectionExhausted means every attempt found the caret moved.
	CorrectionExhausted
)

func (o CorrectionOutcome) String() string {
	switch o {
	case CorrectionSettled:
		return "settled"
	case CorrectionAbandoned:
		return "abandoned"
	case CorrectionExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// CorrectionResult summarizes a finished correction loop.
type CorrectionResult struct {
	Outcome CorrectionOutcome
	Anchor  buffer.Range
	// Attempts counts caret checks, Corrections counts caret re-applications.
	Attempts    int
	Corrections int
}

// pending is the state of a running loop.
type pending struct {
	triesLeft int
	expected  string
	anchor    buffer.Range
}

type verdict uint8

const (
	verdictSettled verdict = iota
	verdictStale
	verdictRetry
	verdictExhausted
)

// check compares what the control reports against the expectation. On drift
// it consumes one try; the caller re-applies the anchor and schedules another
// check only for verdictRetry.
func (p pending) check(text string, textOK bool, sel buffer.Range, selOK bool) (pending, verdict) {
	if !textOK || text != p.expected {
		return p, verdictStale
	}
	if selOK && buffer.NormalizeRange(sel) == p.anchor {
		return p, verdictSettled
	}
	p.triesLeft--
	if p.triesLeft <= 0 {
		return p, verdictExhausted
	}
	return p, verdictRetry
}

// correction drives one pending state with single-shot timers.
type correction struct {
	ed       *Editor
	ctl      control.Control
	sched    control.Scheduler
	interval time.Duration
	gen      uint64

	state       pending
	attempts    int
	corrections int
}

func (c *correction) start() {
	c.sched.After(c.interval, c.tick)
}

func (c *correction) tick() {
	c.attempts++
	if c.gen != c.ed.gen[c.ctl] {
		c.finish(CorrectionAbandoned)
		return
	}

	text, textOK := c.ctl.Text()
	sel, selOK := c.ctl.Selection()
	next, v := c.state.check(text, textOK, sel, selOK)
	c.state = next

	switch v {
	case verdictSettled:
		c.finish(CorrectionSettled)
	case verdictStale:
		c.finish(CorrectionAbandoned)
	case verdictRetry:
		c.reapply()
		c.sched.After(c.interval, c.tick)
	case verdictExhausted:
		c.reapply()
		c.finish(CorrectionExhausted)
	}
}

func (c *correction) reapply() {
	c.corrections++
	c.ctl.SetSelection(c.state.anchor)
}

func (c *correction) finish(o CorrectionOutcome) {
	res := CorrectionResult{
		Outcome:     o,
		Anchor:      c.state.anchor,
		Attempts:    c.attempts,
		Corrections: c.corrections,
	}
	log := c.ed.opts.Logger
	switch o {
	case CorrectionAbandoned:
		log.Debug("caret correction abandoned", "anchor", res.Anchor.String(), "attempts", res.Attempts)
	case CorrectionExhausted:
		log.Debug("caret correction gave up", "anchor", res.Anchor.String(), "attempts", res.Attempts, "corrections", res.Corrections)
	}
	if c.ed.opts.OnCorrection != nil {
		c.ed.opts.OnCorrection(res)
	}
}
