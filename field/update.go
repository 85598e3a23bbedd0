package field

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/internal/grapheme"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.insert(string(msg.Runes))
		return m, nil
	}

	km := m.cfg.KeyMap
	multi := m.ctl.multiline()

	switch {
	case key.Matches(msg, km.Left):
		m.move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		m.move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight})
	case multi && key.Matches(msg, km.Up):
		m.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp})
	case multi && key.Matches(msg, km.Down):
		m.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown})

	case key.Matches(msg, km.ShiftLeft):
		m.move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		m.move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight, Extend: true})
	case multi && key.Matches(msg, km.ShiftUp):
		m.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp, Extend: true})
	case multi && key.Matches(msg, km.ShiftDown):
		m.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown, Extend: true})

	case key.Matches(msg, km.WordLeft):
		m.move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})

	case key.Matches(msg, km.Home):
		m.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		m.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, km.SelectAll):
		b := m.buf()
		before := b.Selection()
		b.SelectAll()
		if b.Selection() != before {
			m.ctl.selectionChanged()
		}

	case key.Matches(msg, km.Backspace):
		m.deleteBackward()
	case key.Matches(msg, km.Delete):
		m.deleteForward()
	case key.Matches(msg, km.Clear):
		m.clear()
	case key.Matches(msg, km.Enter):
		if multi {
			m.insert("\n")
			return m, nil
		}
		if f, ok := m.ctl.(*Field); ok && f.shouldReturn() {
			text := m.Value()
			return m, func() tea.Msg { return SubmitMsg{Control: f, Text: text} }
		}

	case key.Matches(msg, km.Undo):
		if m.buf().Undo() {
			m.ctl.base().commit()
		}
	case key.Matches(msg, km.Redo):
		if m.buf().Redo() {
			m.ctl.base().commit()
		}

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		m.cutSelection()
	case key.Matches(msg, km.Paste):
		m.pasteClipboard()

	default:
		if msg.Type == tea.KeyTab {
			if multi {
				m.insert("\t")
			}
			return m, nil
		}
		if msg.Type == tea.KeySpace {
			m.insert(" ")
			return m, nil
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			m.insert(string(msg.Runes))
		}
	}

	return m, nil
}

func (m Model) move(mv buffer.Move) {
	if m.buf().Move(mv) {
		m.ctl.selectionChanged()
	}
}

// insert proposes text over the selection. Fields flatten newlines.
func (m Model) insert(text string) bool {
	if !m.ctl.multiline() {
		text = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(text)
	}
	return m.ctl.propose(m.buf().Selection(), text)
}

func (m Model) deleteBackward() bool {
	b := m.buf()
	if b.HasSelection() {
		return m.ctl.propose(b.Selection(), "")
	}
	r, ok := clusterRange(b, false)
	if !ok {
		return false
	}
	return m.ctl.propose(r, "")
}

func (m Model) deleteForward() bool {
	b := m.buf()
	if b.HasSelection() {
		return m.ctl.propose(b.Selection(), "")
	}
	r, ok := clusterRange(b, true)
	if !ok {
		return false
	}
	return m.ctl.propose(r, "")
}

// clusterRange returns the grapheme cluster before (or after) the caret.
func clusterRange(b *buffer.Buffer, forward bool) (buffer.Range, bool) {
	text, unit, cur := b.Text(), b.Unit(), b.Cursor()
	at, ok := buffer.ByteOffset(text, cur, unit, buffer.Strict)
	if !ok {
		return buffer.Range{}, false
	}
	var other int
	if forward {
		other = grapheme.Next(text, at)
	} else {
		other = grapheme.Prev(text, at)
	}
	if other == at {
		return buffer.Range{}, false
	}
	off, ok := buffer.OffsetFromByte(text, other, unit)
	if !ok {
		return buffer.Range{}, false
	}
	return buffer.NormalizeRange(buffer.Range{Start: cur, End: off, Unit: unit}), true
}

func (m Model) clear() {
	if m.Value() == "" || !m.ctl.shouldClear() {
		return
	}
	c := m.ctl.base()
	c.buf.SetText("")
	c.commit()
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s := m.selectedText()
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.log.Debug("clipboard write failed", "err", err)
	}
}

func (m Model) cutSelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	m.copySelection()
	b := m.buf()
	if b.HasSelection() {
		m.ctl.propose(b.Selection(), "")
	}
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.log.Debug("clipboard read failed", "err", err)
		return
	}
	if s == "" {
		return
	}
	// Normalize newlines from external sources.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	m.insert(s)
}

func (m Model) selectedText() string {
	b := m.buf()
	if !b.HasSelection() {
		return ""
	}
	s, _ := buffer.Slice(b.Text(), b.Selection())
	return s
}
