package field

import (
	"log/slog"

	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/control"
)

// Config configures a Model.
type Config struct {
	// Text is the initial text when Value is nil.
	Text string
	// Value is the host-owned binding. When set, its text wins over Text.
	Value *control.Slot

	// Multiline selects an Area instead of a Field.
	Multiline bool
	// Unit is the index unit of every range the control exposes.
	Unit buffer.Unit
	// Forwarded to buffer.Options.
	HistoryLimit int

	// Width and Height bound the rendered view in cells; zero means
	// unbounded. Height only applies to areas.
	Width  int
	Height int

	Prompt      string
	Placeholder string

	// KeyMap defaults to DefaultKeyMap when left empty.
	KeyMap KeyMap
	Style  Style

	// Clipboard backs copy, cut and paste. Nil disables them.
	Clipboard Clipboard

	// OnChange is called after an Update that changed the text or selection.
	OnChange func(ChangeEvent)

	// Logger receives debug records; nil discards them.
	Logger *slog.Logger
}
