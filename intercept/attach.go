package intercept

import "github.com/iw2rmb/retype/control"

// Modifier ties one Interceptor to a control found in a view tree. Hosts call
// Render on every rebuild of the tree; a Modifier lives as long as the view
// it decorates.
type Modifier struct {
	Locator control.Locator
	Role    control.Role

	in *Interceptor
	// last is the control found by the previous Render.
	last control.Control
}

// NewModifier returns a Modifier applying t and writing to binding. It finds
// its control with control.FirstMatch unless Locator is replaced.
func NewModifier(t Transformer, binding control.Binding, role control.Role, opts Options) *Modifier {
	return &Modifier{
		Locator: control.FirstMatch,
		Role:    role,
		in:      New(Chain(t), binding, opts),
	}
}

// Interceptor returns the modifier's interceptor.
func (m *Modifier) Interceptor() *Interceptor { return m.in }

// Update refreshes the transformer and binding used by the next edit.
func (m *Modifier) Update(t Transformer, binding control.Binding) {
	m.in.SetPipeline(Chain(t))
	m.in.SetBinding(binding)
}

// Render locates the control in tree and attaches the interceptor to it. It
// reports whether the interceptor was installed by this call; finding no
// control, or finding the interceptor already attached, yields false.
func (m *Modifier) Render(tree control.Node) bool {
	loc := m.Locator
	if loc == nil {
		loc = control.FirstMatch
	}
	c, ok := loc.Locate(tree, m.Role)
	if !ok || c == nil {
		return false
	}
	if m.last != nil && m.last != c {
		m.in.forget(m.last)
	}
	m.last = c
	return m.in.Attach(c)
}

// Attachment is the fluent registration surface: each Transform call adds
// one more Modifier wrapping the previous ones, so a chain reads in the order
// the transformations run.
//
//	a := intercept.For(control.RoleField).
//		Transform(preset.Uppercase()).
//		Transform(preset.Limit(6)).
//		Bind(slot)
//	a.Render(tree) // on every rebuild
type Attachment struct {
	role    control.Role
	locator control.Locator
	binding control.Binding
	opts    Options
	mods    []*Modifier
}

// For starts an attachment for the control with role.
func For(role control.Role) *Attachment {
	return &Attachment{role: role, locator: control.FirstMatch}
}

// Using replaces the locator.
func (a *Attachment) Using(l control.Locator) *Attachment {
	a.locator = l
	for _, m := range a.mods {
		m.Locator = l
	}
	return a
}

// WithOptions sets the options of modifiers added afterwards.
func (a *Attachment) WithOptions(opts Options) *Attachment {
	a.opts = opts
	return a
}

// Transform adds a modifier running t after everything added before it.
func (a *Attachment) Transform(t Transformer) *Attachment {
	m := NewModifier(t, a.binding, a.role, a.opts)
	m.Locator = a.locator
	a.mods = append(a.mods, m)
	return a
}

// Bind sets the binding of every modifier.
func (a *Attachment) Bind(b control.Binding) *Attachment {
	a.binding = b
	for _, m := range a.mods {
		m.in.SetBinding(b)
	}
	return a
}

// Modifiers returns the modifiers in attach order.
func (a *Attachment) Modifiers() []*Modifier {
	return append([]*Modifier(nil), a.mods...)
}

// Render attaches every modifier in order and returns how many were
// installed by this call.
func (a *Attachment) Render(tree control.Node) int {
	n := 0
	for _, m := range a.mods {
		if m.Render(tree) {
			n++
		}
	}
	return n
}
