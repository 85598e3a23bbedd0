package control

// Binding is the host-owned value a control edits. Writers only ever Set it.
type Binding interface {
	Set(text string)
}

// BindingFunc adapts a function to Binding.
type BindingFunc func(text string)

func (f BindingFunc) Set(text string) { f(text) }

// Slot is a mutable string cell observed by the host. It is not safe for
// concurrent use; it belongs to the UI goroutine.
type Slot struct {
	text    string
	version uint64
}

func NewSlot(text string) *Slot {
	return &Slot{text: text}
}

func (s *Slot) Get() string { return s.text }

// Set stores text. Every call bumps the version, even when text is unchanged,
// so observers can tell that someone wrote.
func (s *Slot) Set(text string) {
	s.text = text
	s.version++
}

func (s *Slot) Version() uint64 { return s.version }
