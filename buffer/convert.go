package buffer

import (
	"unicode/utf16"
	"unicode/utf8"
)

// OffsetClampMode selects how out-of-bounds offsets are treated.
type OffsetClampMode uint8

const (
	// OffsetError rejects offsets outside the text or inside an encoded rune.
	OffsetError OffsetClampMode = iota
	// OffsetClamp pins offsets into [0, Len] and snaps offsets that fall
	// inside an encoded rune back to the rune's start.
	OffsetClamp
)

type ConvertPolicy struct {
	ClampMode OffsetClampMode
}

// Strict rejects anything that is not an exact boundary.
var Strict = ConvertPolicy{ClampMode: OffsetError}

// Len returns the length of text in u.
func Len(text string, u Unit) int {
	switch u {
	case UnitByte:
		return len(text)
	case UnitRune:
		return utf8.RuneCountInString(text)
	case UnitUTF16:
		n := 0
		for _, r := range text {
			n += runeLen16(r)
		}
		return n
	default:
		return 0
	}
}

// ByteOffset translates an offset in u into a byte offset into text.
func ByteOffset(text string, off int, u Unit, p ConvertPolicy) (int, bool) {
	if !u.Valid() {
		return 0, false
	}
	off, ok := clampOffset(off, Len(text, u), p.ClampMode)
	if !ok {
		return 0, false
	}

	switch u {
	case UnitByte:
		if off == len(text) || utf8.RuneStart(text[off]) {
			return off, true
		}
		if p.ClampMode != OffsetClamp {
			return 0, false
		}
		for off > 0 && !utf8.RuneStart(text[off]) {
			off--
		}
		return off, true
	default:
		cur := 0
		for i, r := range text {
			if cur == off {
				return i, true
			}
			next := cur + unitLen(r, u)
			if off < next {
				// Second half of a surrogate pair.
				if p.ClampMode != OffsetClamp {
					return 0, false
				}
				return i, true
			}
			cur = next
		}
		return len(text), true
	}
}

// OffsetFromByte translates a byte offset into text into an offset in u.
func OffsetFromByte(text string, b int, u Unit) (int, bool) {
	if !u.Valid() || b < 0 || b > len(text) {
		return 0, false
	}
	if b < len(text) && !utf8.RuneStart(text[b]) {
		return 0, false
	}
	switch u {
	case UnitByte:
		return b, true
	case UnitRune:
		return utf8.RuneCountInString(text[:b]), true
	default:
		return Len(text[:b], u), true
	}
}

// ByteRange translates r into byte offsets [lo, hi) into text.
func ByteRange(text string, r Range, p ConvertPolicy) (lo, hi int, ok bool) {
	r = NormalizeRange(r)
	lo, ok = ByteOffset(text, r.Start, r.Unit, p)
	if !ok {
		return 0, 0, false
	}
	hi, ok = ByteOffset(text, r.End, r.Unit, p)
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// Convert re-expresses r in unit to.
func Convert(text string, r Range, to Unit) (Range, bool) {
	if r.Unit == to {
		return r, to.Valid()
	}
	lo, hi, ok := ByteRange(text, r, Strict)
	if !ok {
		return Range{}, false
	}
	start, _ := OffsetFromByte(text, lo, to)
	end, _ := OffsetFromByte(text, hi, to)
	return Range{Start: start, End: end, Unit: to}, true
}

func unitLen(r rune, u Unit) int {
	switch u {
	case UnitByte:
		return utf8.RuneLen(r)
	case UnitUTF16:
		return runeLen16(r)
	default:
		return 1
	}
}

func runeLen16(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

func clampOffset(off, max int, mode OffsetClampMode) (int, bool) {
	switch mode {
	case OffsetError:
		if off < 0 || off > max {
			return 0, false
		}
		return off, true
	case OffsetClamp:
		return clampInt(off, 0, max), true
	default:
		return 0, false
	}
}
