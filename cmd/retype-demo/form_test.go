package main

import (
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/retype/config"
	"github.com/iw2rmb/retype/preset"
)

func testForm(t *testing.T) form {
	t.Helper()
	f, err := newForm(config.Default(), preset.Default(), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("newForm: %v", err)
	}
	return f
}

func send(f form, msgs ...tea.Msg) form {
	for _, msg := range msgs {
		m, _ := f.Update(msg)
		f = m.(form)
	}
	return f
}

func typed(s string) []tea.Msg {
	var msgs []tea.Msg
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func TestForm_CallsignIsUppercasedAndLimited(t *testing.T) {
	f := send(testForm(t), typed("abcdefgh")...)

	e := f.entries[0]
	if got := e.slot.Get(); got != "ABCDEF" {
		t.Fatalf("bound value: got %q, want %q", got, "ABCDEF")
	}
	if got := e.model.Value(); got != "ABCDEF" {
		t.Fatalf("field text: got %q, want %q", got, "ABCDEF")
	}
}

func TestForm_TabMovesFocusToNextRules(t *testing.T) {
	f := send(testForm(t), tea.KeyMsg{Type: tea.KeyTab})
	if f.focus != 1 || !f.entries[1].model.Focused() || f.entries[0].model.Focused() {
		t.Fatalf("focus: got %d", f.focus)
	}

	f = send(f, typed("a1b2c3d4e5")...)
	if got := f.entries[1].slot.Get(); got != "1234" {
		t.Fatalf("pin: got %q, want %q", got, "1234")
	}
	if got := f.entries[0].slot.Get(); got != "" {
		t.Fatalf("callsign touched: %q", got)
	}
}

func TestForm_ShiftTabWrapsAround(t *testing.T) {
	f := send(testForm(t), tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.focus != len(f.entries)-1 {
		t.Fatalf("focus: got %d, want %d", f.focus, len(f.entries)-1)
	}
}

func TestForm_AreaKeepsArrowKeys(t *testing.T) {
	f := send(testForm(t), tea.KeyMsg{Type: tea.KeyShiftTab})
	f = send(f, typed("a")...)
	f = send(f, tea.KeyMsg{Type: tea.KeyEnter})
	f = send(f, typed("b")...)
	f = send(f, tea.KeyMsg{Type: tea.KeyUp})
	if f.focus != 2 {
		t.Fatalf("up left the area: focus %d", f.focus)
	}
	if got := f.entries[2].slot.Get(); got != "a\nb" {
		t.Fatalf("notes: got %q, want %q", got, "a\nb")
	}
}

func TestForm_QuitKey(t *testing.T) {
	_, cmd := testForm(t).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("esc: want quit")
	}
}

func TestForm_ViewListsFieldsAndBoundValues(t *testing.T) {
	f := send(testForm(t), typed("ab")...)
	v := f.View()
	for _, want := range []string{"callsign", "pin", "notes", `bound: "AB"`, "limit(6)"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q:\n%s", want, v)
		}
	}
}

func TestForm_RejectsUnknownRule(t *testing.T) {
	cfg := config.Default()
	cfg.Fields[0].Rules = append(cfg.Fields[0].Rules, config.Rule{Name: "rot13"})
	if _, err := newForm(cfg, preset.Default(), slog.New(slog.DiscardHandler)); err == nil {
		t.Fatalf("want error")
	}
}
