package field

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/control"
)

// Model is a Bubble Tea component driving one Field or Area.
//
// Model is a value, but the control it drives is shared: copies of a Model
// edit the same control.
type Model struct {
	cfg Config
	ctl editable
	log *slog.Logger

	focused bool

	xOffset int
	// vp windows an Area with a Height; fields scroll with xOffset.
	vp viewport.Model

	lastBufVersion uint64
}

func New(cfg Config) Model {
	if cfg.KeyMap.empty() {
		cfg.KeyMap = DefaultKeyMap()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var ctl editable
	if cfg.Multiline {
		ctl = &Area{core: newCore(cfg)}
	} else {
		ctl = &Field{core: newCore(cfg)}
	}

	m := Model{cfg: cfg, ctl: ctl, log: log, vp: viewport.New(0, max(cfg.Height, 0))}
	m.lastBufVersion = m.buf().Version()
	return m
}

func (m Model) buf() *buffer.Buffer { return m.ctl.base().buf }

// Control returns the control the model drives: a *Field or an *Area.
func (m Model) Control() control.Control { return m.ctl }

// Children makes a Model a node of the host view tree.
func (m Model) Children() []control.Node { return []control.Node{m.ctl} }

func (m Model) Buffer() *buffer.Buffer { return m.buf() }

// KeyMap returns the bindings with undo and redo disabled while the history
// has nothing to offer, so help views only list what applies.
func (m Model) KeyMap() KeyMap {
	km := m.cfg.KeyMap
	b := m.buf()
	km.Undo.SetEnabled(b.CanUndo())
	km.Redo.SetEnabled(b.CanRedo())
	return km
}

// Value returns the current text.
func (m Model) Value() string { return m.buf().Text() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetWidth(w int) Model {
	m.cfg.Width = max(w, 0)
	m.follow()
	return m
}

func (m Model) SetHeight(h int) Model {
	m.cfg.Height = max(h, 0)
	m.vp.Height = m.cfg.Height
	m.follow()
	return m
}

// Focus starts editing unless the handler refuses.
func (m Model) Focus() Model {
	if m.focused || !m.ctl.shouldBegin() {
		return m
	}
	m.focused = true
	m.ctl.didBegin()
	return m
}

// Blur ends editing unless the handler refuses.
func (m Model) Blur() Model {
	if !m.focused || !m.ctl.shouldEnd() {
		return m
	}
	m.focused = false
	m.ctl.didEnd()
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	c := m.ctl.base()
	if tm, ok := msg.(timerMsg); ok && tm.queue != &c.timers {
		return m, nil
	}

	if c.reconcile() {
		m.log.Debug("adopted external value", "len", c.buf.Len())
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case timerMsg:
		c.timers.fire(msg.seq)
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	}

	m.emitChange()
	m.follow()
	return m, tea.Batch(cmd, c.timers.flush())
}

func (m *Model) emitChange() {
	ver := m.buf().Version()
	if ver == m.lastBufVersion {
		return
	}
	m.lastBufVersion = ver
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf()))
	}
}
