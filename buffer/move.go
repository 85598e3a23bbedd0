package buffer

import (
	"strings"

	"github.com/iw2rmb/retype/internal/grapheme"
)

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, keeps the anchor and moves the head; if false collapses to a caret
}

// Move moves the caret and reports whether the selection changed.
func (b *Buffer) Move(m Move) bool {
	prev := b.sel

	// Collapsing a selection with a plain left/right lands on its edge.
	if !m.Extend && prev.anchor != prev.head && (m.Dir == DirLeft || m.Dir == DirRight) && m.Unit == MoveGrapheme {
		lo, hi := prev.anchor, prev.head
		if lo > hi {
			lo, hi = hi, lo
		}
		at := lo
		if m.Dir == DirRight {
			at = hi
		}
		b.setSelection(selection{anchor: at, head: at})
		return b.sel != prev
	}

	head := b.moveHead(prev.head, m)
	next := selection{anchor: head, head: head}
	if m.Extend {
		next.anchor = prev.anchor
	}
	b.setSelection(next)
	return b.sel != prev
}

func (b *Buffer) moveHead(off int, m Move) int {
	switch m.Unit {
	case MoveGrapheme:
		return b.moveGrapheme(off, m.Dir)
	case MoveWord:
		return b.moveWord(off, m.Dir)
	case MoveLine:
		return b.moveLine(off, m.Dir)
	case MoveDoc:
		return b.moveDoc(off, m.Dir)
	default:
		return off
	}
}

func (b *Buffer) moveGrapheme(off int, dir MoveDir) int {
	switch dir {
	case DirLeft:
		return grapheme.Prev(b.text, off)
	case DirRight:
		return grapheme.Next(b.text, off)
	default:
		return b.moveLine(off, dir)
	}
}

func (b *Buffer) moveWord(off int, dir MoveDir) int {
	lo, hi := lineBounds(b.text, off)
	line := grapheme.Split(b.text[lo:hi])
	col := grapheme.Count(b.text[lo:off])

	switch dir {
	case DirLeft:
		return lo + len(grapheme.Join(line[:prevWordBoundary(line, col)]))
	case DirRight:
		return lo + len(grapheme.Join(line[:nextWordBoundary(line, col)]))
	default:
		return b.moveLine(off, dir)
	}
}

func (b *Buffer) moveLine(off int, dir MoveDir) int {
	lo, hi := lineBounds(b.text, off)

	switch dir {
	case DirHome:
		return lo
	case DirEnd:
		return hi
	case DirUp:
		if lo == 0 {
			return off
		}
		plo, phi := lineBounds(b.text, lo-1)
		return columnAt(b.text[plo:phi], grapheme.Count(b.text[lo:off])) + plo
	case DirDown:
		if hi == len(b.text) {
			return off
		}
		nlo, nhi := lineBounds(b.text, hi+1)
		return columnAt(b.text[nlo:nhi], grapheme.Count(b.text[lo:off])) + nlo
	default:
		return off
	}
}

func (b *Buffer) moveDoc(off int, dir MoveDir) int {
	switch dir {
	case DirHome, DirUp:
		return 0
	case DirEnd, DirDown:
		return len(b.text)
	default:
		return off
	}
}

// lineBounds returns the byte span of the logical line holding off, without
// its trailing newline.
func lineBounds(text string, off int) (lo, hi int) {
	lo = strings.LastIndexByte(text[:off], '\n') + 1
	hi = len(text)
	if i := strings.IndexByte(text[off:], '\n'); i >= 0 {
		hi = off + i
	}
	return lo, hi
}

// columnAt returns the byte offset of the col-th cluster of line, clamped to
// the line end.
func columnAt(line string, col int) int {
	return len(grapheme.Truncate(line, col))
}

// Word boundary rules (v0):
// - skip whitespace, then skip non-whitespace
// - newline is a hard boundary (so this operates on a single logical line)
func prevWordBoundary(line []string, col int) int {
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	i := col
	for i > 0 && grapheme.IsSpace(line[i-1]) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(line[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(line []string, col int) int {
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	i := col
	for i < len(line) && grapheme.IsSpace(line[i]) {
		i++
	}
	for i < len(line) && !grapheme.IsSpace(line[i]) {
		i++
	}
	return i
}
