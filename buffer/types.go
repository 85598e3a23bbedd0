package buffer

import "fmt"

// Unit is the index unit used by offsets and ranges.
type Unit uint8

const (
	// UnitByte counts UTF-8 bytes.
	UnitByte Unit = iota
	// UnitRune counts Unicode code points.
	UnitRune
	// UnitUTF16 counts UTF-16 code units; astral runes take two.
	UnitUTF16
)

func (u Unit) String() string {
	switch u {
	case UnitByte:
		return "byte"
	case UnitRune:
		return "rune"
	case UnitUTF16:
		return "utf16"
	default:
		return fmt.Sprintf("Unit(%d)", uint8(u))
	}
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	return u <= UnitUTF16
}

// Range is a half-open span [Start, End) measured in Unit.
type Range struct {
	Start int
	End   int
	Unit  Unit
}

// Caret returns the empty range at off.
func Caret(off int, u Unit) Range {
	return Range{Start: off, End: off, Unit: u}
}

// IsEmpty reports whether r selects nothing.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Len returns the number of units covered by r.
func (r Range) Len() int {
	r = NormalizeRange(r)
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)%s", r.Start, r.End, r.Unit)
}

// NormalizeRange orders Start and End.
func NormalizeRange(r Range) Range {
	if r.Start <= r.End {
		return r
	}
	return Range{Start: r.End, End: r.Start, Unit: r.Unit}
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
