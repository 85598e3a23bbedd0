package field

import "github.com/iw2rmb/retype/buffer"

type ChangeEvent struct {
	Version   uint64
	Text      string
	Cursor    int
	Selection buffer.Range

	// Change is the last text mutation, when there was one.
	Change    buffer.Change
	HasChange bool
}

func buildChangeEvent(b *buffer.Buffer) ChangeEvent {
	ev := ChangeEvent{
		Version:   b.Version(),
		Text:      b.Text(),
		Cursor:    b.Cursor(),
		Selection: b.Selection(),
	}
	ev.Change, ev.HasChange = b.LastChange()
	return ev
}

// SubmitMsg is emitted when a focused Field accepts the return key.
type SubmitMsg struct {
	Control *Field
	Text    string
}
