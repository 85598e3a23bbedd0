package field

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/control"
)

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	m := New(Config{Text: "ab", Unit: buffer.UnitRune}).Focus()

	m, _ = m.Update(keys(tea.KeyLeft))
	m, _ = m.Update(runes("X"))
	if got := m.Value(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if got := m.Buffer().Cursor(); got != 2 {
		t.Fatalf("cursor after insert: got %d, want %d", got, 2)
	}

	m, _ = m.Update(keys(tea.KeyBackspace))
	if got := m.Value(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}
	m, _ = m.Update(keys(tea.KeyDelete))
	if got := m.Value(); got != "a" {
		t.Fatalf("text after delete: got %q, want %q", got, "a")
	}
	if got := m.Buffer().Cursor(); got != 1 {
		t.Fatalf("cursor after delete: got %d, want %d", got, 1)
	}
}

func TestUpdate_BackspaceRemovesWholeCluster(t *testing.T) {
	m := New(Config{Text: "cafe\u0301", Unit: buffer.UnitUTF16}).Focus()

	m, _ = m.Update(keys(tea.KeyBackspace))
	if got := m.Value(); got != "caf" {
		t.Fatalf("text: got %q, want %q", got, "caf")
	}
	if got := m.Buffer().Cursor(); got != 3 {
		t.Fatalf("cursor: got %d, want %d", got, 3)
	}
}

func TestUpdate_IgnoresKeysWhenBlurred(t *testing.T) {
	m := New(Config{Text: "ab"})
	m, _ = m.Update(runes("X"))
	m, _ = m.Update(keys(tea.KeyBackspace))
	if got := m.Value(); got != "ab" {
		t.Fatalf("text: got %q, want %q", got, "ab")
	}
}

func TestUpdate_UndoRedoWritesSlot(t *testing.T) {
	slot := control.NewSlot("")
	m := New(Config{Value: slot}).Focus()
	m = typeText(m, "ab")

	m, _ = m.Update(keys(tea.KeyCtrlZ))
	if got := m.Value(); got != "a" {
		t.Fatalf("text after undo: got %q, want %q", got, "a")
	}
	if got := slot.Get(); got != "a" {
		t.Fatalf("slot after undo: got %q, want %q", got, "a")
	}

	m, _ = m.Update(keys(tea.KeyCtrlY))
	if got := slot.Get(); got != "ab" {
		t.Fatalf("slot after redo: got %q, want %q", got, "ab")
	}
}

func TestUpdate_FieldFlattensPastedNewlines(t *testing.T) {
	m := New(Config{}).Focus()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\nb\r\nc"), Paste: true})
	if got := m.Value(); got != "a b c" {
		t.Fatalf("text: got %q, want %q", got, "a b c")
	}
}

func TestUpdate_AreaEnterInsertsNewline(t *testing.T) {
	m := New(Config{Text: "ab", Multiline: true}).Focus()
	m, _ = m.Update(keys(tea.KeyLeft))
	m, _ = m.Update(keys(tea.KeyEnter))
	if got := m.Value(); got != "a\nb" {
		t.Fatalf("text: got %q, want %q", got, "a\nb")
	}

	m, _ = m.Update(keys(tea.KeyUp))
	if got := m.Buffer().Cursor(); got != 0 {
		t.Fatalf("cursor after up: got %d, want %d", got, 0)
	}
}

func TestUpdate_FieldEnterSubmits(t *testing.T) {
	m := New(Config{Text: "done"}).Focus()
	m, cmd := m.Update(keys(tea.KeyEnter))
	if cmd == nil {
		t.Fatalf("expected a submit command")
	}
	msg, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("command produced %T, want SubmitMsg", cmd())
	}
	if msg.Text != "done" || msg.Control != m.Control() {
		t.Fatalf("submit: got (%q,%p), want (%q,%p)", msg.Text, msg.Control, "done", m.Control())
	}
	if got := m.Value(); got != "done" {
		t.Fatalf("enter must not edit a field: got %q", got)
	}
}

func TestUpdate_ClearWritesSlot(t *testing.T) {
	slot := control.NewSlot("abc")
	m := New(Config{Value: slot}).Focus()
	m, _ = m.Update(keys(tea.KeyCtrlU))
	if m.Value() != "" || slot.Get() != "" {
		t.Fatalf("after clear: text=%q slot=%q", m.Value(), slot.Get())
	}
}

func TestUpdate_ClipboardCopyCutPaste(t *testing.T) {
	clip := &memClipboard{}
	m := New(Config{Text: "hello world", Clipboard: clip}).Focus()

	m, _ = m.Update(keys(tea.KeyShiftLeft))
	m, _ = m.Update(keys(tea.KeyShiftLeft))
	m, _ = m.Update(keys(tea.KeyCtrlC))
	if clip.s != "ld" {
		t.Fatalf("copied: got %q, want %q", clip.s, "ld")
	}

	m, _ = m.Update(keys(tea.KeyCtrlX))
	if got := m.Value(); got != "hello wor" {
		t.Fatalf("text after cut: got %q, want %q", got, "hello wor")
	}

	m, _ = m.Update(keys(tea.KeyHome))
	m, _ = m.Update(keys(tea.KeyCtrlV))
	if got := m.Value(); got != "ldhello wor" {
		t.Fatalf("text after paste: got %q, want %q", got, "ldhello wor")
	}
}

func TestUpdate_WordMovement(t *testing.T) {
	m := New(Config{Text: "one two three"}).Focus()
	m, _ = m.Update(keys(tea.KeyCtrlLeft))
	if got := m.Buffer().Cursor(); got != 8 {
		t.Fatalf("cursor after word left: got %d, want %d", got, 8)
	}
	m, _ = m.Update(keys(tea.KeyCtrlLeft))
	m, _ = m.Update(keys(tea.KeyCtrlRight))
	if got := m.Buffer().Cursor(); got != 7 {
		t.Fatalf("cursor after word right: got %d, want %d", got, 7)
	}
}

func TestOnChange_FiresOnMutationsAndSkipsNoOps(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{
		Text:     "ab",
		Unit:     buffer.UnitRune,
		OnChange: func(ev ChangeEvent) { events = append(events, ev) },
	}).Focus()

	m, _ = m.Update(keys(tea.KeyLeft))
	if len(events) != 1 {
		t.Fatalf("events after move: got %d, want %d", len(events), 1)
	}
	if got := events[0].Cursor; got != 1 {
		t.Fatalf("event cursor after move: got %d, want %d", got, 1)
	}

	m, _ = m.Update(keys(tea.KeyRight))
	m, _ = m.Update(keys(tea.KeyRight)) // no-op at end
	if len(events) != 2 {
		t.Fatalf("events after no-op: got %d, want %d", len(events), 2)
	}

	m, _ = m.Update(runes("X"))
	if len(events) != 3 {
		t.Fatalf("events after insert: got %d, want %d", len(events), 3)
	}
	if ev := events[2]; ev.Text != "abX" || !ev.HasChange || ev.Change.AppliedEdits[0].InsertText != "X" {
		t.Fatalf("insert event: got %+v", ev)
	}
}

func TestKeyMap_UndoRedoFollowHistory(t *testing.T) {
	m := New(Config{}).Focus()
	if km := m.KeyMap(); km.Undo.Enabled() || km.Redo.Enabled() {
		t.Fatalf("empty history: undo=%v redo=%v", km.Undo.Enabled(), km.Redo.Enabled())
	}

	m = typeText(m, "a")
	if km := m.KeyMap(); !km.Undo.Enabled() || km.Redo.Enabled() {
		t.Fatalf("after typing: undo=%v redo=%v", km.Undo.Enabled(), km.Redo.Enabled())
	}

	m, _ = m.Update(keys(tea.KeyCtrlZ))
	if km := m.KeyMap(); km.Undo.Enabled() || !km.Redo.Enabled() {
		t.Fatalf("after undo: undo=%v redo=%v", km.Undo.Enabled(), km.Redo.Enabled())
	}
	if !m.cfg.KeyMap.Undo.Enabled() {
		t.Fatalf("configured key map must stay untouched")
	}
}
