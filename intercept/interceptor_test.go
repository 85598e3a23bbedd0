package intercept

import (
	"testing"

	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/control"
	"github.com/iw2rmb/retype/control/controltest"
)

type hostField struct {
	control.NopFieldHandler

	allowBegin  bool
	allowChange bool

	began   int
	changes int
	selects int
	returns int
}

func (h *hostField) ShouldBeginEditing(control.Field) bool { return h.allowBegin }
func (h *hostField) DidBeginEditing(control.Field)         { h.began++ }
func (h *hostField) DidChangeSelection(control.Field)      { h.selects++ }
func (h *hostField) ShouldReturn(control.Field) bool       { h.returns++; return false }
func (h *hostField) ShouldChange(control.Field, buffer.Range, string) bool {
	h.changes++
	return h.allowChange
}

type hostArea struct {
	control.NopAreaHandler
	didChange int
}

func (h *hostArea) DidChange(control.Area) { h.didChange++ }

func appendA(_ string, _ buffer.Range, s string) string { return s + "a" }

func typeAll(f *controltest.Field, s string) {
	for _, r := range s {
		f.Type(string(r))
	}
}

func TestInterceptor_AttachIsIdempotent(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	host := &hostField{allowBegin: true, allowChange: true}
	f.SetFieldHandler(host)

	in := New(Chain(upper), nil, Options{})
	if !in.Attach(f) {
		t.Fatalf("first attach must install")
	}
	for i := 0; i < 3; i++ {
		if in.Attach(f) {
			t.Fatalf("attach #%d installed again", i+2)
		}
	}

	ins, below := fieldChain(f.FieldHandler())
	if len(ins) != 1 || ins[0] != in {
		t.Fatalf("chain=%v, want exactly one link", ins)
	}
	if below != control.FieldHandler(host) {
		t.Fatalf("host handler lost from the chain")
	}
	if !in.Attached(f) {
		t.Fatalf("Attached=false after attach")
	}
}

func TestInterceptor_AttachRejectsPlainControls(t *testing.T) {
	c := &controltest.Base{Buf: buffer.New("", buffer.Options{Unit: buffer.UnitRune})}
	in := New(Chain(upper), nil, Options{})
	if in.Attach(c) || in.Attached(c) || in.Detach(c) {
		t.Fatalf("a control without handlers must be ignored")
	}
}

func TestInterceptor_ForwardsEventsUnchanged(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	host := &hostField{allowBegin: false, allowChange: true}
	f.SetFieldHandler(host)
	New(Chain(upper), nil, Options{}).Attach(f)

	h := f.FieldHandler()
	if h.ShouldBeginEditing(f) {
		t.Fatalf("host refused to begin editing; link must pass that through")
	}
	h.DidBeginEditing(f)
	h.DidChangeSelection(f)
	if h.ShouldReturn(f) {
		t.Fatalf("host refused return; link must pass that through")
	}
	if host.began != 1 || host.selects != 1 || host.returns != 1 {
		t.Fatalf("forwarded began=%d selects=%d returns=%d, want 1 each", host.began, host.selects, host.returns)
	}
	if !h.ShouldEndEditing(f) || !h.ShouldClear(f) {
		t.Fatalf("events the host does not override keep their defaults")
	}
}

func TestInterceptor_NeutralDefaultsWithoutHost(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	New(Chain(upper), nil, Options{}).Attach(f)

	h := f.FieldHandler()
	if !h.ShouldBeginEditing(f) || !h.ShouldEndEditing(f) || !h.ShouldClear(f) || !h.ShouldReturn(f) {
		t.Fatalf("links without a next handler must allow everything")
	}
	h.DidBeginEditing(f)
	h.DidEndEditing(f)
	h.DidChangeSelection(f)
}

func TestInterceptor_DeclinedEditFallsBackToHost(t *testing.T) {
	f := controltest.NewField("ab", buffer.UnitRune)
	host := &hostField{allowBegin: true, allowChange: false}
	f.SetFieldHandler(host)
	New(Chain(identity), nil, Options{}).Attach(f)

	if f.Type("c") {
		t.Fatalf("host vetoed the edit; the field must not apply it")
	}
	if host.changes != 1 {
		t.Fatalf("host saw %d edits, want 1", host.changes)
	}
	if got := f.Buf.Text(); got != "ab" {
		t.Fatalf("text=%q, want unchanged", got)
	}

	host.allowChange = true
	if !f.Type("c") {
		t.Fatalf("host allowed the edit; the field must apply it")
	}
	if got := f.Buf.Text(); got != "abc" {
		t.Fatalf("text=%q, want %q", got, "abc")
	}
}

func TestInterceptor_HandledEditSkipsHostVeto(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	host := &hostField{allowBegin: true, allowChange: false}
	f.SetFieldHandler(host)
	New(Chain(upper), nil, Options{}).Attach(f)

	f.Type("x")
	if got := f.Buf.Text(); got != "X" {
		t.Fatalf("text=%q, want %q", got, "X")
	}
	if host.changes != 0 {
		t.Fatalf("host saw %d edits, want 0", host.changes)
	}
}

func TestInterceptor_TypingUppercaseWritesBindingPerKeystroke(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	var writes []string
	in := New(Chain(upper), control.BindingFunc(func(s string) { writes = append(writes, s) }), Options{})
	in.Attach(f)

	typeAll(f, "mike")

	want := []string{"M", "MI", "MIK", "MIKE"}
	if len(writes) != len(want) {
		t.Fatalf("writes=%q, want %q", writes, want)
	}
	for i := range want {
		if writes[i] != want[i] {
			t.Fatalf("writes=%q, want %q", writes, want)
		}
	}
	if got := f.Buf.Selection(); got != buffer.Caret(4, buffer.UnitRune) {
		t.Fatalf("caret=%v, want caret at 4", got)
	}
}

func TestInterceptor_ChainComposesEarliestFirst(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	first := New(Chain(appendA), nil, Options{})
	second := New(Chain(upper), nil, Options{})
	first.Attach(f)
	second.Attach(f)

	f.Type("x")
	if got := f.Buf.Text(); got != "XA" {
		t.Fatalf("text=%q, want second(first(x)) = %q", got, "XA")
	}
}

func TestInterceptor_TruncateThenUppercase(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	New(Chain(truncate(3)), nil, Options{}).Attach(f)
	New(Chain(upper), nil, Options{}).Attach(f)

	f.Type("abcdef")
	if got := f.Buf.Text(); got != "ABC" {
		t.Fatalf("text=%q, want %q", got, "ABC")
	}
}

func TestInterceptor_LimitThenUppercase(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	slot := control.NewSlot("")
	New(Chain(limit(6)), nil, Options{}).Attach(f)
	New(Chain(upper), slot, Options{}).Attach(f)

	typeAll(f, "abcdefgh")

	if got := f.Buf.Text(); got != "ABCDEF" {
		t.Fatalf("text=%q, want %q", got, "ABCDEF")
	}
	if got := slot.Get(); got != "ABCDEF" {
		t.Fatalf("slot=%q, want %q", got, "ABCDEF")
	}
	if got := f.Buf.Selection(); got != buffer.Caret(6, buffer.UnitRune) {
		t.Fatalf("caret=%v, want caret at 6", got)
	}
}

func TestInterceptor_NearestBindingWins(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	inner := control.NewSlot("")
	outer := control.NewSlot("")
	New(Chain(upper), inner, Options{}).Attach(f)
	New(Chain(identity), outer, Options{}).Attach(f)

	f.Type("q")
	if outer.Get() != "Q" || outer.Version() != 1 {
		t.Fatalf("outer slot=%q v%d, want Q v1", outer.Get(), outer.Version())
	}
	if inner.Version() != 0 {
		t.Fatalf("inner slot written %d times, want 0", inner.Version())
	}
}

func TestInterceptor_RefreshedPipelineAndBindingApplyToNextEdit(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	first := control.NewSlot("")
	in := New(Chain(upper), first, Options{})
	in.Attach(f)
	f.Type("a")

	second := control.NewSlot("")
	in.SetPipeline(Chain(appendA))
	in.SetBinding(second)
	f.Type("b")

	if got := f.Buf.Text(); got != "Aba" {
		t.Fatalf("text=%q, want %q", got, "Aba")
	}
	if first.Get() != "A" || second.Get() != "Aba" {
		t.Fatalf("first=%q second=%q", first.Get(), second.Get())
	}
}

func TestInterceptor_AreaRaisesDidChange(t *testing.T) {
	a := controltest.NewArea("", buffer.UnitRune)
	host := &hostArea{}
	a.SetAreaHandler(host)
	New(Chain(upper), nil, Options{}).Attach(a)

	a.Type("x")
	if got := a.Buf.Text(); got != "X" {
		t.Fatalf("text=%q, want %q", got, "X")
	}
	if host.didChange != 1 {
		t.Fatalf("didChange=%d after handled edit, want 1", host.didChange)
	}

	a.Type("\n")
	if got := a.Buf.Text(); got != "X\n" {
		t.Fatalf("text=%q, want %q", got, "X\n")
	}
	if host.didChange != 2 {
		t.Fatalf("didChange=%d after pass-through edit, want 2", host.didChange)
	}
}

func TestInterceptor_DetachOnlyFromHead(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	host := &hostField{allowBegin: true, allowChange: true}
	f.SetFieldHandler(host)
	first := New(Chain(appendA), nil, Options{})
	second := New(Chain(upper), nil, Options{})
	first.Attach(f)
	second.Attach(f)

	if first.Detach(f) {
		t.Fatalf("detach below the head must fail")
	}
	if !second.Detach(f) {
		t.Fatalf("detach of the head must succeed")
	}
	if second.Attached(f) || !first.Attached(f) {
		t.Fatalf("after detach: second=%v first=%v", second.Attached(f), first.Attached(f))
	}
	if !first.Detach(f) {
		t.Fatalf("first is the head now")
	}
	if f.FieldHandler() != control.FieldHandler(host) {
		t.Fatalf("host handler not restored")
	}
}

// wrapper is a host handler installed on top of an existing chain.
type wrapper struct {
	control.NopFieldHandler
	next control.FieldHandler
}

func (w *wrapper) ShouldChange(f control.Field, r buffer.Range, s string) bool {
	return w.next.ShouldChange(f, r, s)
}

func linksOf(in *Interceptor, h control.FieldHandler) int {
	n := 0
	for h != nil {
		switch v := h.(type) {
		case *wrapper:
			h = v.next
		case *fieldLink:
			if v.in == in {
				n++
			}
			h = v.next
		default:
			return n
		}
	}
	return n
}

func TestInterceptor_WrappedChainIsNotWrappedAgain(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	m := NewModifier(appendA, nil, control.RoleField, Options{})
	if !m.Render(f) {
		t.Fatalf("first render must install")
	}
	f.SetFieldHandler(&wrapper{next: f.FieldHandler()})

	for i := 0; i < 3; i++ {
		if m.Render(f) {
			t.Fatalf("render #%d installed again below a host wrapper", i+2)
		}
	}
	if got := linksOf(m.Interceptor(), f.FieldHandler()); got != 1 {
		t.Fatalf("links=%d, want 1", got)
	}
	if !m.Interceptor().Attached(f) {
		t.Fatalf("interceptor must still count as attached")
	}

	f.Type("x")
	if got := f.Buf.Text(); got != "xa" {
		t.Fatalf("text=%q, want %q", got, "xa")
	}
}

func TestInterceptor_DetachAllowsReattach(t *testing.T) {
	f := controltest.NewField("", buffer.UnitRune)
	in := New(Chain(upper), nil, Options{})
	in.Attach(f)
	if !in.Detach(f) {
		t.Fatalf("detach of the head must succeed")
	}
	if in.Attached(f) {
		t.Fatalf("still attached after detach")
	}
	if !in.Attach(f) {
		t.Fatalf("attach after detach must install")
	}
}
