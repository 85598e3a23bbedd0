package buffer

type Options struct {
	// Unit is the index unit of every offset the buffer accepts or reports.
	Unit Unit
	// HistoryLimit caps undo steps. Zero means 1000; negative disables history.
	HistoryLimit int
}

// selection holds byte offsets; anchor == head is a caret.
type selection struct {
	anchor int
	head   int
}

// Buffer is the authoritative text of a control: text plus caret/selection.
//
// All offsets crossing the API are in the buffer's Unit. Internally the
// buffer keeps byte offsets that always sit on rune boundaries.
type Buffer struct {
	text    string
	unit    Unit
	version uint64

	sel selection

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	if !opt.Unit.Valid() {
		opt.Unit = UnitRune
	}
	return &Buffer{
		text: text,
		unit: opt.Unit,
		opt:  opt,
	}
}

func (b *Buffer) Text() string { return b.text }

func (b *Buffer) Unit() Unit { return b.unit }

func (b *Buffer) Version() uint64 { return b.version }

// Len returns the text length in the buffer's unit.
func (b *Buffer) Len() int { return Len(b.text, b.unit) }

// Cursor returns the caret (selection head) offset.
func (b *Buffer) Cursor() int {
	off, _ := OffsetFromByte(b.text, b.sel.head, b.unit)
	return off
}

// Selection returns the normalized selection. An empty range is a caret.
func (b *Buffer) Selection() Range {
	return b.rangeFromBytes(b.sel.anchor, b.sel.head)
}

// HasSelection reports whether a non-empty range is selected.
func (b *Buffer) HasSelection() bool {
	return b.sel.anchor != b.sel.head
}

// SetCursor places a caret at off, clamped into the text.
func (b *Buffer) SetCursor(off int) {
	at, _ := ByteOffset(b.text, off, b.unit, ConvertPolicy{ClampMode: OffsetClamp})
	b.setSelection(selection{anchor: at, head: at})
}

// SetSelection selects r with Start as the anchor and End as the head. Ranges
// in another unit are converted first; the result is false when r does not
// describe valid boundaries.
func (b *Buffer) SetSelection(r Range) bool {
	if r.Unit != b.unit {
		var ok bool
		if r, ok = Convert(b.text, r, b.unit); !ok {
			return false
		}
	}
	anchor, ok := ByteOffset(b.text, r.Start, b.unit, Strict)
	if !ok {
		return false
	}
	head, ok := ByteOffset(b.text, r.End, b.unit, Strict)
	if !ok {
		return false
	}
	b.setSelection(selection{anchor: anchor, head: head})
	return true
}

// SelectAll selects the whole text.
func (b *Buffer) SelectAll() {
	b.setSelection(selection{anchor: 0, head: len(b.text)})
}

func (b *Buffer) setSelection(next selection) {
	if next == b.sel {
		return
	}
	b.sel = next
	b.version++
}

// SetText replaces the whole text as one undoable step and moves the caret to
// the end.
func (b *Buffer) SetText(text string) {
	if text == b.text {
		return
	}
	b.Replace(Range{Start: 0, End: b.Len(), Unit: b.unit}, text)
}

// Replace splices text over r and leaves a caret after the inserted text.
// It reports false when r is not a valid range of the current text.
func (b *Buffer) Replace(r Range, text string) bool {
	if r.Unit != b.unit {
		var ok bool
		if r, ok = Convert(b.text, r, b.unit); !ok {
			return false
		}
	}
	lo, hi, ok := ByteRange(b.text, r, Strict)
	if !ok {
		return false
	}
	deleted := b.text[lo:hi]
	if deleted == text {
		if lo != hi || text != "" {
			b.setSelection(selection{anchor: hi, head: hi})
		}
		return true
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	b.text = b.text[:lo] + text + b.text[hi:]
	at := lo + len(text)
	b.sel = selection{anchor: at, head: at}
	b.version++
	b.recordUndo(prev)

	before := NormalizeRange(r)
	change.addAppliedEdit(AppliedEdit{
		RangeBefore: before,
		RangeAfter:  Range{Start: before.Start, End: CaretAfter(before, text), Unit: b.unit},
		InsertText:  text,
		DeletedText: deleted,
	})
	b.commitChange(change)
	return true
}

func (b *Buffer) rangeFromBytes(lo, hi int) Range {
	if lo > hi {
		lo, hi = hi, lo
	}
	start, _ := OffsetFromByte(b.text, lo, b.unit)
	end, _ := OffsetFromByte(b.text, hi, b.unit)
	return Range{Start: start, End: end, Unit: b.unit}
}
