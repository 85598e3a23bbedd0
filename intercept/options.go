package intercept

import (
	"log/slog"
	"time"

	"github.com/iw2rmb/retype/control"
)

const (
	// DefaultAttempts is the number of caret checks after an accepted edit.
	DefaultAttempts = 20
	// DefaultInterval separates two caret checks.
	DefaultInterval = 50 * time.Millisecond
)

// Options tunes an Editor. The zero value uses the defaults.
type Options struct {
	// Attempts bounds the caret checks that follow an accepted edit.
	Attempts int
	// Interval is the delay before each caret check.
	Interval time.Duration

	// Scheduler overrides the control's own timer source.
	Scheduler control.Scheduler

	// Logger receives debug records about rejected edits and caret
	// correction. Nil discards them.
	Logger *slog.Logger

	// OnCorrection is called once per finished correction loop.
	OnCorrection func(CorrectionResult)
}

func (o Options) withDefaults() Options {
	if o.Attempts <= 0 {
		o.Attempts = DefaultAttempts
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}
