package field

import (
	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/control"
)

// core is the state shared by Field and Area.
type core struct {
	buf    *buffer.Buffer
	value  *control.Slot
	seen   uint64
	timers timerQueue
}

func newCore(cfg Config) core {
	text := cfg.Text
	if cfg.Value != nil {
		text = cfg.Value.Get()
	}
	b := buffer.New(text, buffer.Options{Unit: cfg.Unit, HistoryLimit: cfg.HistoryLimit})
	b.SetCursor(b.Len())
	c := core{buf: b, value: cfg.Value}
	if cfg.Value != nil {
		c.seen = cfg.Value.Version()
	}
	return c
}

func (c *core) base() *core { return c }

func (c *core) Text() (string, bool) { return c.buf.Text(), true }

func (c *core) SetText(text string) { c.buf.SetText(text) }

func (c *core) Selection() (buffer.Range, bool) { return c.buf.Selection(), true }

func (c *core) SetSelection(r buffer.Range) bool { return c.buf.SetSelection(r) }

func (c *core) Unit() buffer.Unit { return c.buf.Unit() }

func (c *core) Scheduler() control.Scheduler { return &c.timers }

func (c *core) Children() []control.Node { return nil }

// Buffer exposes the backing buffer.
func (c *core) Buffer() *buffer.Buffer { return c.buf }

// commit publishes the buffer text to the bound slot after the control changed
// it itself.
func (c *core) commit() {
	if c.value == nil {
		return
	}
	c.value.Set(c.buf.Text())
	c.seen = c.value.Version()
}

// reconcile adopts a slot write made by someone else. Like many hosts, it
// resets the caret to the end even when the text already matches.
func (c *core) reconcile() bool {
	if c.value == nil || c.value.Version() == c.seen {
		return false
	}
	c.seen = c.value.Version()
	c.buf.SetText(c.value.Get())
	c.buf.SetCursor(c.buf.Len())
	return true
}

// editable is what a Model drives: a control plus its event plumbing.
type editable interface {
	control.Control
	control.Node
	base() *core

	propose(r buffer.Range, text string) bool
	shouldBegin() bool
	didBegin()
	shouldEnd() bool
	didEnd()
	selectionChanged()
	shouldClear() bool
	shouldReturn() bool
	multiline() bool
}

// Field is a single-line control.
type Field struct {
	core
	handler control.FieldHandler
}

var _ control.Field = (*Field)(nil)

func (f *Field) FieldHandler() control.FieldHandler { return f.handler }

func (f *Field) SetFieldHandler(h control.FieldHandler) { f.handler = h }

func (f *Field) propose(r buffer.Range, text string) bool {
	if f.handler != nil && !f.handler.ShouldChange(f, r, text) {
		return false
	}
	if !f.buf.Replace(r, text) {
		return false
	}
	f.commit()
	return true
}

func (f *Field) shouldBegin() bool {
	return f.handler == nil || f.handler.ShouldBeginEditing(f)
}

func (f *Field) didBegin() {
	if f.handler != nil {
		f.handler.DidBeginEditing(f)
	}
}

func (f *Field) shouldEnd() bool {
	return f.handler == nil || f.handler.ShouldEndEditing(f)
}

func (f *Field) didEnd() {
	if f.handler != nil {
		f.handler.DidEndEditing(f)
	}
}

func (f *Field) selectionChanged() {
	if f.handler != nil {
		f.handler.DidChangeSelection(f)
	}
}

func (f *Field) shouldClear() bool {
	return f.handler == nil || f.handler.ShouldClear(f)
}

func (f *Field) shouldReturn() bool {
	return f.handler == nil || f.handler.ShouldReturn(f)
}

func (f *Field) multiline() bool { return false }

// Area is a multi-line control.
type Area struct {
	core
	handler control.AreaHandler
}

var _ control.Area = (*Area)(nil)

func (a *Area) AreaHandler() control.AreaHandler { return a.handler }

func (a *Area) SetAreaHandler(h control.AreaHandler) { a.handler = h }

func (a *Area) propose(r buffer.Range, text string) bool {
	if a.handler != nil && !a.handler.ShouldChange(a, r, text) {
		return false
	}
	if !a.buf.Replace(r, text) {
		return false
	}
	a.commit()
	if a.handler != nil {
		a.handler.DidChange(a)
	}
	return true
}

func (a *Area) shouldBegin() bool {
	return a.handler == nil || a.handler.ShouldBeginEditing(a)
}

func (a *Area) didBegin() {
	if a.handler != nil {
		a.handler.DidBeginEditing(a)
	}
}

func (a *Area) shouldEnd() bool {
	return a.handler == nil || a.handler.ShouldEndEditing(a)
}

func (a *Area) didEnd() {
	if a.handler != nil {
		a.handler.DidEndEditing(a)
	}
}

func (a *Area) selectionChanged() {
	if a.handler != nil {
		a.handler.DidChangeSelection(a)
	}
}

func (a *Area) shouldClear() bool { return true }

func (a *Area) shouldReturn() bool { return false }

func (a *Area) multiline() bool { return true }
