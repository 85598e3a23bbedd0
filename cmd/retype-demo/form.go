package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/retype/config"
	"github.com/iw2rmb/retype/control"
	"github.com/iw2rmb/retype/field"
	"github.com/iw2rmb/retype/intercept"
	"github.com/iw2rmb/retype/preset"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	rulesStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

const (
	fieldWidth = 40
	areaHeight = 4
)

type formKeys struct {
	Next, Prev, Quit key.Binding
}

func defaultFormKeys() formKeys {
	return formKeys{
		Next: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Quit: key.NewBinding(key.WithKeys("ctrl+q", "esc"), key.WithHelp("esc", "quit")),
	}
}

// entry is one control of the form together with its bound value and the
// attachment that keeps its rules installed.
type entry struct {
	spec   config.FieldSpec
	slot   *control.Slot
	model  field.Model
	attach *intercept.Attachment

	loops int
	last  intercept.CorrectionResult
}

type form struct {
	entries []*entry
	focus   int

	keys formKeys
	help help.Model
	log  *slog.Logger
}

func newForm(cfg *config.Config, reg *preset.Registry, log *slog.Logger) (form, error) {
	var clip field.Clipboard
	if sys := (field.SystemClipboard{}); sys.Available() {
		clip = sys
	}

	f := form{keys: defaultFormKeys(), help: help.New(), log: log}
	for _, spec := range cfg.Fields {
		e, err := newEntry(spec, cfg.Options(), reg, clip, log.With("field", spec.Name))
		if err != nil {
			return form{}, fmt.Errorf("field %q: %w", spec.Name, err)
		}
		f.entries = append(f.entries, e)
	}
	if len(f.entries) > 0 {
		f.entries[0].model = f.entries[0].model.Focus()
	}
	f.attach()
	return f, nil
}

func newEntry(spec config.FieldSpec, opts intercept.Options, reg *preset.Registry, clip field.Clipboard, log *slog.Logger) (*entry, error) {
	ts, err := spec.Transformers(reg)
	if err != nil {
		return nil, err
	}
	unit, err := spec.BufferUnit()
	if err != nil {
		return nil, err
	}

	e := &entry{spec: spec, slot: control.NewSlot(spec.Value)}
	opts.Logger = log
	opts.OnCorrection = func(r intercept.CorrectionResult) {
		e.loops++
		e.last = r
		if r.Outcome == intercept.CorrectionExhausted {
			log.Warn("caret correction exhausted", "anchor", r.Anchor.String(), "attempts", r.Attempts)
		}
	}

	role := control.RoleField
	if spec.Kind == config.KindArea {
		role = control.RoleArea
	}
	e.attach = intercept.For(role).WithOptions(opts)
	for _, t := range ts {
		e.attach.Transform(t)
	}
	e.attach.Bind(e.slot)

	fc := field.Config{
		Value:       e.slot,
		Multiline:   role == control.RoleArea,
		Unit:        unit,
		Width:       fieldWidth,
		Placeholder: spec.Placeholder,
		Style:       field.DefaultStyle(),
		Clipboard:   clip,
		Logger:      log,
	}
	if fc.Multiline {
		fc.Height = areaHeight
	}
	e.model = field.New(fc)
	return e, nil
}

// attach installs every entry's rules on its current control. It runs after
// each update, the way a declarative host re-applies modifiers on rebuild.
func (f form) attach() {
	for _, e := range f.entries {
		if n := e.attach.Render(e.model); n > 0 {
			f.log.Debug("rules attached", "field", e.spec.Name, "modifiers", n)
		}
	}
}

func (f form) Init() tea.Cmd { return nil }

func (f form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.help.Width = msg.Width
		w := min(max(msg.Width-4, 10), fieldWidth)
		for _, e := range f.entries {
			e.model = e.model.SetWidth(w)
		}
		return f, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, f.keys.Quit):
			return f, tea.Quit
		case key.Matches(msg, f.keys.Next) && !f.focusedArea(msg):
			return f.moveFocus(1), nil
		case key.Matches(msg, f.keys.Prev) && !f.focusedArea(msg):
			return f.moveFocus(-1), nil
		}
		if len(f.entries) == 0 {
			return f, nil
		}
		e := f.entries[f.focus]
		var cmd tea.Cmd
		e.model, cmd = e.model.Update(msg)
		f.attach()
		return f, cmd

	case field.SubmitMsg:
		f.log.Info("submitted", "text", msg.Text)
		return f.moveFocus(1), nil
	}

	cmds := make([]tea.Cmd, 0, len(f.entries))
	for _, e := range f.entries {
		var cmd tea.Cmd
		e.model, cmd = e.model.Update(msg)
		cmds = append(cmds, cmd)
	}
	f.attach()
	return f, tea.Batch(cmds...)
}

// focusedArea reports whether msg is an arrow key an area needs for itself.
func (f form) focusedArea(msg tea.KeyMsg) bool {
	if len(f.entries) == 0 {
		return false
	}
	_, area := f.entries[f.focus].model.Control().(*field.Area)
	return area && (msg.Type == tea.KeyUp || msg.Type == tea.KeyDown)
}

func (f form) moveFocus(delta int) form {
	n := len(f.entries)
	if n == 0 {
		return f
	}
	cur := f.entries[f.focus]
	cur.model = cur.model.Blur()
	if cur.model.Focused() {
		return f
	}
	f.focus = (f.focus + delta + n) % n
	next := f.entries[f.focus]
	next.model = next.model.Focus()
	return f
}

func (f form) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("retype"))
	sb.WriteString("\n\n")

	for _, e := range f.entries {
		sb.WriteString(labelStyle.Render(e.spec.Name))
		sb.WriteString(" ")
		sb.WriteString(rulesStyle.Render(ruleNames(e.spec.Rules)))
		sb.WriteString("\n")
		sb.WriteString(e.model.View())
		sb.WriteString("\n")
		sb.WriteString(statusStyle.Render(e.status()))
		sb.WriteString("\n\n")
	}

	bindings := []key.Binding{f.keys.Next, f.keys.Prev, f.keys.Quit}
	if len(f.entries) > 0 {
		bindings = append(bindings, f.entries[f.focus].model.KeyMap().ShortHelp()...)
	}
	sb.WriteString(f.help.ShortHelpView(bindings))
	return sb.String()
}

func (e *entry) status() string {
	s := fmt.Sprintf("bound: %q", e.slot.Get())
	if e.loops > 0 {
		s += fmt.Sprintf("  caret checks: %d (%s, %d fixes)", e.loops, e.last.Outcome, e.last.Corrections)
	}
	return s
}

func ruleNames(rules []config.Rule) string {
	if len(rules) == 0 {
		return "(no rules)"
	}
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
		if r.N > 0 {
			names[i] += fmt.Sprintf("(%d)", r.N)
		}
	}
	return strings.Join(names, " → ")
}
