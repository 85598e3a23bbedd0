package control

import "github.com/iw2rmb/retype/buffer"

// Control is the capability every editable control exposes.
//
// Offsets in ranges returned or accepted by a control are expressed in its
// Unit. Text reports false when the text is not available (for example while
// the control is being torn down).
type Control interface {
	Text() (string, bool)
	SetText(text string)
	Selection() (buffer.Range, bool)
	SetSelection(r buffer.Range) bool
	Unit() buffer.Unit
	// Scheduler returns the timer source of the control's event loop.
	Scheduler() Scheduler
}

// Field is a single-line control.
type Field interface {
	Control
	FieldHandler() FieldHandler
	SetFieldHandler(h FieldHandler)
}

// Area is a multi-line control.
type Area interface {
	Control
	AreaHandler() AreaHandler
	SetAreaHandler(h AreaHandler)
}

// FieldHandler receives the events of a Field.
//
// Should* methods may veto the action by returning false. ShouldChange is the
// edit-proposed event: returning false tells the field not to apply the edit
// itself.
type FieldHandler interface {
	ShouldBeginEditing(f Field) bool
	DidBeginEditing(f Field)
	ShouldEndEditing(f Field) bool
	DidEndEditing(f Field)
	ShouldChange(f Field, r buffer.Range, replacement string) bool
	DidChangeSelection(f Field)
	ShouldClear(f Field) bool
	ShouldReturn(f Field) bool
}

// AreaHandler receives the events of an Area.
type AreaHandler interface {
	ShouldBeginEditing(a Area) bool
	DidBeginEditing(a Area)
	ShouldEndEditing(a Area) bool
	DidEndEditing(a Area)
	ShouldChange(a Area, r buffer.Range, replacement string) bool
	DidChange(a Area)
	DidChangeSelection(a Area)
}

// NopFieldHandler permits everything. Embed it to implement only the events
// you need.
type NopFieldHandler struct{}

func (NopFieldHandler) ShouldBeginEditing(Field) bool                 { return true }
func (NopFieldHandler) DidBeginEditing(Field)                         {}
func (NopFieldHandler) ShouldEndEditing(Field) bool                   { return true }
func (NopFieldHandler) DidEndEditing(Field)                           {}
func (NopFieldHandler) ShouldChange(Field, buffer.Range, string) bool { return true }
func (NopFieldHandler) DidChangeSelection(Field)                      {}
func (NopFieldHandler) ShouldClear(Field) bool                        { return true }
func (NopFieldHandler) ShouldReturn(Field) bool                       { return true }

// NopAreaHandler permits everything.
type NopAreaHandler struct{}

func (NopAreaHandler) ShouldBeginEditing(Area) bool                 { return true }
func (NopAreaHandler) DidBeginEditing(Area)                         {}
func (NopAreaHandler) ShouldEndEditing(Area) bool                   { return true }
func (NopAreaHandler) DidEndEditing(Area)                           {}
func (NopAreaHandler) ShouldChange(Area, buffer.Range, string) bool { return true }
func (NopAreaHandler) DidChange(Area)                               {}
func (NopAreaHandler) DidChangeSelection(Area)                      {}
