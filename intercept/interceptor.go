package intercept

import (
	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/control"
)

// Interceptor rewrites the edits of the control it is attached to.
//
// Its pipeline and binding may be refreshed at any time; the next edit uses
// the current values. Controls are used as map keys and must be comparable,
// which pointer controls always are.
type Interceptor struct {
	pipe    Pipeline
	binding control.Binding
	editor  *Editor

	// installed records the controls i was attached to, so a host handler
	// wrapping the chain afterwards does not hide i from the next Attach.
	installed map[control.Control]struct{}
}

// New returns an Interceptor applying pipe and writing accepted text to
// binding. binding may be nil.
func New(pipe Pipeline, binding control.Binding, opts Options) *Interceptor {
	return &Interceptor{
		pipe:      pipe.Then(),
		binding:   binding,
		editor:    NewEditor(opts),
		installed: make(map[control.Control]struct{}),
	}
}

func (i *Interceptor) Pipeline() Pipeline { return i.pipe }

func (i *Interceptor) SetPipeline(p Pipeline) { i.pipe = p.Then() }

func (i *Interceptor) Binding() control.Binding { return i.binding }

func (i *Interceptor) SetBinding(b control.Binding) { i.binding = b }

// Attach installs i as the handler of c, keeping the current handler as the
// next link. It reports whether i was installed now; it is a no-op when i is
// already in c's chain, even below a host handler that wrapped it, or when c
// is neither a Field nor an Area.
func (i *Interceptor) Attach(c control.Control) bool {
	if i.Attached(c) {
		return false
	}
	switch c := c.(type) {
	case control.Field:
		c.SetFieldHandler(&fieldLink{in: i, next: c.FieldHandler()})
	case control.Area:
		c.SetAreaHandler(&areaLink{in: i, next: c.AreaHandler()})
	default:
		return false
	}
	i.installed[c] = struct{}{}
	return true
}

// Attached reports whether i is in c's handler chain.
func (i *Interceptor) Attached(c control.Control) bool {
	if _, ok := i.installed[c]; ok {
		return true
	}
	switch c := c.(type) {
	case control.Field:
		return i.inFieldChain(c.FieldHandler())
	case control.Area:
		return i.inAreaChain(c.AreaHandler())
	default:
		return false
	}
}

// Detach restores the handler i replaced. It only succeeds when i is the
// installed handler; links deeper in the chain cannot be unhooked without
// rebuilding the handlers above them.
func (i *Interceptor) Detach(c control.Control) bool {
	switch c := c.(type) {
	case control.Field:
		if l, ok := c.FieldHandler().(*fieldLink); ok && l.in == i {
			c.SetFieldHandler(l.next)
			i.forget(c)
			return true
		}
	case control.Area:
		if l, ok := c.AreaHandler().(*areaLink); ok && l.in == i {
			c.SetAreaHandler(l.next)
			i.forget(c)
			return true
		}
	}
	return false
}

// forget drops c from the record without touching its handlers. A Modifier
// calls it for controls that left the view tree.
func (i *Interceptor) forget(c control.Control) {
	delete(i.installed, c)
	i.editor.forget(c)
}

func (i *Interceptor) inFieldChain(h control.FieldHandler) bool {
	ins, _ := fieldChain(h)
	return containsInterceptor(ins, i)
}

func (i *Interceptor) inAreaChain(h control.AreaHandler) bool {
	ins, _ := areaChain(h)
	return containsInterceptor(ins, i)
}

func containsInterceptor(ins []*Interceptor, i *Interceptor) bool {
	for _, in := range ins {
		if in == i {
			return true
		}
	}
	return false
}

// fieldChain walks the contiguous interceptor links starting at h and returns
// their interceptors, head first, plus the first foreign handler below them.
func fieldChain(h control.FieldHandler) ([]*Interceptor, control.FieldHandler) {
	var ins []*Interceptor
	seen := make(map[*fieldLink]bool)
	for h != nil {
		l, ok := h.(*fieldLink)
		if !ok || seen[l] {
			break
		}
		seen[l] = true
		ins = append(ins, l.in)
		h = l.next
	}
	if _, ok := h.(*fieldLink); ok {
		return ins, nil
	}
	return ins, h
}

func areaChain(h control.AreaHandler) ([]*Interceptor, control.AreaHandler) {
	var ins []*Interceptor
	seen := make(map[*areaLink]bool)
	for h != nil {
		l, ok := h.(*areaLink)
		if !ok || seen[l] {
			break
		}
		seen[l] = true
		ins = append(ins, l.in)
		h = l.next
	}
	if _, ok := h.(*areaLink); ok {
		return ins, nil
	}
	return ins, h
}

// compose builds the effective pipeline of a chain given head first: the
// deepest (earliest attached) interceptor transforms first and the head last.
// The binding is the nearest non-nil one from the head.
func compose(ins []*Interceptor) (Pipeline, control.Binding) {
	var pipe Pipeline
	for k := len(ins) - 1; k >= 0; k-- {
		pipe = pipe.Then(ins[k].pipe...)
	}
	for _, in := range ins {
		if in.binding != nil {
			return pipe, in.binding
		}
	}
	return pipe, nil
}

// fieldLink is the Interceptor seen through the FieldHandler contract.
type fieldLink struct {
	in   *Interceptor
	next control.FieldHandler
}

func (l *fieldLink) ShouldChange(f control.Field, r buffer.Range, replacement string) bool {
	ins, host := fieldChain(l)
	pipe, binding := compose(ins)
	if l.in.editor.HandleEdit(f, pipe, binding, r, replacement) {
		return false
	}
	if host != nil {
		return host.ShouldChange(f, r, replacement)
	}
	return true
}

func (l *fieldLink) ShouldBeginEditing(f control.Field) bool {
	if l.next == nil {
		return true
	}
	return l.next.ShouldBeginEditing(f)
}

func (l *fieldLink) DidBeginEditing(f control.Field) {
	if l.next != nil {
		l.next.DidBeginEditing(f)
	}
}

func (l *fieldLink) ShouldEndEditing(f control.Field) bool {
	if l.next == nil {
		return true
	}
	return l.next.ShouldEndEditing(f)
}

func (l *fieldLink) DidEndEditing(f control.Field) {
	if l.next != nil {
		l.next.DidEndEditing(f)
	}
}

func (l *fieldLink) DidChangeSelection(f control.Field) {
	if l.next != nil {
		l.next.DidChangeSelection(f)
	}
}

func (l *fieldLink) ShouldClear(f control.Field) bool {
	if l.next == nil {
		return true
	}
	return l.next.ShouldClear(f)
}

func (l *fieldLink) ShouldReturn(f control.Field) bool {
	if l.next == nil {
		return true
	}
	return l.next.ShouldReturn(f)
}

// areaLink is the Interceptor seen through the AreaHandler contract.
type areaLink struct {
	in   *Interceptor
	next control.AreaHandler
}

func (l *areaLink) ShouldChange(a control.Area, r buffer.Range, replacement string) bool {
	ins, host := areaChain(l)
	pipe, binding := compose(ins)
	if l.in.editor.HandleEdit(a, pipe, binding, r, replacement) {
		// The text changed without going through the area's own edit path.
		l.DidChange(a)
		return false
	}
	if host != nil {
		return host.ShouldChange(a, r, replacement)
	}
	return true
}

func (l *areaLink) ShouldBeginEditing(a control.Area) bool {
	if l.next == nil {
		return true
	}
	return l.next.ShouldBeginEditing(a)
}

func (l *areaLink) DidBeginEditing(a control.Area) {
	if l.next != nil {
		l.next.DidBeginEditing(a)
	}
}

func (l *areaLink) ShouldEndEditing(a control.Area) bool {
	if l.next == nil {
		return true
	}
	return l.next.ShouldEndEditing(a)
}

func (l *areaLink) DidEndEditing(a control.Area) {
	if l.next != nil {
		l.next.DidEndEditing(a)
	}
}

func (l *areaLink) DidChange(a control.Area) {
	if l.next != nil {
		l.next.DidChange(a)
	}
}

func (l *areaLink) DidChangeSelection(a control.Area) {
	if l.next != nil {
		l.next.DidChangeSelection(a)
	}
}
