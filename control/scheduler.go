package control

import "time"

// Scheduler runs fn once, after d, on the control's event goroutine.
// After must not block and must not run fn synchronously.
type Scheduler interface {
	After(d time.Duration, fn func())
}
