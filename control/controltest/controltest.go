// Package controltest provides in-memory controls and a manual scheduler for
// testing code that drives control handlers.
package controltest

import (
	"sort"
	"time"

	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/control"
)

// Scheduler queues callbacks until the test runs them.
type Scheduler struct {
	now   time.Duration
	seq   int
	tasks []task
	Fired int
}

type task struct {
	at  time.Duration
	seq int
	fn  func()
}

func (s *Scheduler) After(d time.Duration, fn func()) {
	s.seq++
	s.tasks = append(s.tasks, task{at: s.now + d, seq: s.seq, fn: fn})
}

// Pending returns the number of queued callbacks.
func (s *Scheduler) Pending() int { return len(s.tasks) }

// Now returns the virtual time.
func (s *Scheduler) Now() time.Duration { return s.now }

// RunNext advances virtual time to the earliest callback and runs it.
func (s *Scheduler) RunNext() bool {
	if len(s.tasks) == 0 {
		return false
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].at != s.tasks[j].at {
			return s.tasks[i].at < s.tasks[j].at
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	t := s.tasks[0]
	s.tasks = s.tasks[1:]
	if t.at > s.now {
		s.now = t.at
	}
	s.Fired++
	t.fn()
	return true
}

// Drain runs callbacks until none are left or limit is reached and returns
// how many ran.
func (s *Scheduler) Drain(limit int) int {
	n := 0
	for n < limit && s.RunNext() {
		n++
	}
	return n
}

// Base is an in-memory control backed by a buffer.
type Base struct {
	Buf *buffer.Buffer

	// Unavailable makes Text report false.
	Unavailable bool
	// Sched is returned by Scheduler.
	Sched control.Scheduler

	// SetTextCalls and SetSelectionCalls count writes made through the
	// control interface.
	SetTextCalls      int
	SetSelectionCalls int
}

func newBase(text string, u buffer.Unit) Base {
	b := buffer.New(text, buffer.Options{Unit: u})
	b.SetCursor(b.Len())
	return Base{Buf: b, Sched: &Scheduler{}}
}

func (b *Base) Text() (string, bool) {
	if b.Unavailable {
		return "", false
	}
	return b.Buf.Text(), true
}

func (b *Base) SetText(text string) {
	b.SetTextCalls++
	b.Buf.SetText(text)
}

func (b *Base) Selection() (buffer.Range, bool) {
	if b.Unavailable {
		return buffer.Range{}, false
	}
	return b.Buf.Selection(), true
}

func (b *Base) SetSelection(r buffer.Range) bool {
	b.SetSelectionCalls++
	return b.Buf.SetSelection(r)
}

func (b *Base) Unit() buffer.Unit { return b.Buf.Unit() }

func (b *Base) Scheduler() control.Scheduler { return b.Sched }

func (b *Base) Children() []control.Node { return nil }

// ManualScheduler returns Sched as *Scheduler, or nil when it was replaced.
func (b *Base) ManualScheduler() *Scheduler {
	s, _ := b.Sched.(*Scheduler)
	return s
}

// Field is an in-memory single-line control. Propose mimics a keystroke: the
// installed handler sees the edit first and the field applies it only when
// the handler allows.
type Field struct {
	Base
	handler control.FieldHandler
}

func NewField(text string, u buffer.Unit) *Field {
	return &Field{Base: newBase(text, u)}
}

func (f *Field) FieldHandler() control.FieldHandler { return f.handler }

func (f *Field) SetFieldHandler(h control.FieldHandler) { f.handler = h }

// Propose offers the edit to the handler and applies it when permitted. It
// returns whether the field applied the edit itself.
func (f *Field) Propose(r buffer.Range, replacement string) bool {
	if f.handler != nil && !f.handler.ShouldChange(f, r, replacement) {
		return false
	}
	return f.Buf.Replace(r, replacement)
}

// Type proposes s at the caret (or over the selection).
func (f *Field) Type(s string) bool {
	return f.Propose(f.Buf.Selection(), s)
}

// Area is an in-memory multi-line control.
type Area struct {
	Base
	handler control.AreaHandler
}

func NewArea(text string, u buffer.Unit) *Area {
	return &Area{Base: newBase(text, u)}
}

func (a *Area) AreaHandler() control.AreaHandler { return a.handler }

func (a *Area) SetAreaHandler(h control.AreaHandler) { a.handler = h }

// Propose offers the edit to the handler and applies it when permitted,
// raising DidChange afterwards.
func (a *Area) Propose(r buffer.Range, replacement string) bool {
	if a.handler != nil && !a.handler.ShouldChange(a, r, replacement) {
		return false
	}
	if !a.Buf.Replace(r, replacement) {
		return false
	}
	if a.handler != nil {
		a.handler.DidChange(a)
	}
	return true
}

// Type proposes s at the caret (or over the selection).
func (a *Area) Type(s string) bool {
	return a.Propose(a.Buf.Selection(), s)
}
