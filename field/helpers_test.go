package field

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type memClipboard struct {
	s string
}

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keys(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

// runTimers delivers due callbacks in order until none are left or limit is
// reached, returning how many ran.
func runTimers(t *testing.T, m Model, limit int) (Model, int) {
	t.Helper()
	q := &m.ctl.base().timers
	n := 0
	for ; n < limit; n++ {
		p := q.pending()
		if len(p) == 0 {
			break
		}
		m, _ = m.Update(timerMsg{queue: q, seq: p[0]})
	}
	return m, n
}
