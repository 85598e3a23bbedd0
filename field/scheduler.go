package field

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerMsg brings a scheduled callback back into the owning model's Update.
type timerMsg struct {
	queue *timerQueue
	seq   uint64
}

type queuedTimer struct {
	seq uint64
	d   time.Duration
}

// timerQueue is the control.Scheduler of a control. After only records the
// callback; the owning Model turns queued timers into tea.Tick commands at the
// end of Update and runs the callback when the tick comes back.
type timerQueue struct {
	seq     uint64
	queued  []queuedTimer
	waiting map[uint64]func()
}

func (q *timerQueue) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	q.seq++
	if q.waiting == nil {
		q.waiting = make(map[uint64]func())
	}
	q.waiting[q.seq] = fn
	q.queued = append(q.queued, queuedTimer{seq: q.seq, d: d})
}

// flush returns the commands for timers queued since the last flush.
func (q *timerQueue) flush() tea.Cmd {
	if len(q.queued) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(q.queued))
	for _, t := range q.queued {
		cmds = append(cmds, tea.Tick(t.d, func(time.Time) tea.Msg {
			return timerMsg{queue: q, seq: t.seq}
		}))
	}
	q.queued = q.queued[:0]
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (q *timerQueue) fire(seq uint64) bool {
	fn, ok := q.waiting[seq]
	if !ok {
		return false
	}
	delete(q.waiting, seq)
	fn()
	return true
}

// pending returns the sequence numbers of callbacks not fired yet, oldest
// first.
func (q *timerQueue) pending() []uint64 {
	out := make([]uint64, 0, len(q.waiting))
	for seq := uint64(1); seq <= q.seq; seq++ {
		if _, ok := q.waiting[seq]; ok {
			out = append(out, seq)
		}
	}
	return out
}
