package buffer

import "testing"

// Replacing the two "l"s of "héllo" with "X" in each unit system.
func TestSplice_HelloPerUnit(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		r         Range
		want      string
		wantCaret int
		ok        bool
	}{
		{name: "rune", text: "héllo", r: Range{Start: 2, End: 4, Unit: UnitRune}, want: "héXo", wantCaret: 3, ok: true},
		{name: "utf16", text: "héllo", r: Range{Start: 2, End: 4, Unit: UnitUTF16}, want: "héXo", wantCaret: 3, ok: true},
		{name: "byte", text: "héllo", r: Range{Start: 3, End: 5, Unit: UnitByte}, want: "héXo", wantCaret: 4, ok: true},
		{name: "byte splitting é", text: "héllo", r: Range{Start: 2, End: 4, Unit: UnitByte}, ok: false},
		{name: "rune decomposed", text: "he\u0301llo", r: Range{Start: 2, End: 4, Unit: UnitRune}, want: "heXlo", wantCaret: 3, ok: true},
		{name: "utf16 astral", text: "a" + grin + "b", r: Range{Start: 1, End: 3, Unit: UnitUTF16}, want: "aXb", wantCaret: 2, ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Splice(tc.text, tc.r, "X")
			if ok != tc.ok {
				t.Fatalf("ok=%v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if got != tc.want {
				t.Fatalf("text=%q, want %q", got, tc.want)
			}
			if caret := CaretAfter(tc.r, "X"); caret != tc.wantCaret {
				t.Fatalf("caret=%d, want %d", caret, tc.wantCaret)
			}
		})
	}
}

func TestCaretAfter_CountsReplacementInRangeUnit(t *testing.T) {
	r := Range{Start: 1, End: 1, Unit: UnitUTF16}
	if got := CaretAfter(r, grin); got != 3 {
		t.Fatalf("utf16 caret=%d, want %d", got, 3)
	}
	r.Unit = UnitRune
	if got := CaretAfter(r, grin); got != 2 {
		t.Fatalf("rune caret=%d, want %d", got, 2)
	}
	if got := CaretAfter(Range{Start: 4, End: 2, Unit: UnitRune}, ""); got != 2 {
		t.Fatalf("deletion caret=%d, want %d", got, 2)
	}
}

func TestSlice_RejectsOutOfBounds(t *testing.T) {
	if got, ok := Slice("hello", Range{Start: 1, End: 3, Unit: UnitRune}); !ok || got != "el" {
		t.Fatalf("slice=(%q,%v), want (%q,true)", got, ok, "el")
	}
	if _, ok := Slice("hello", Range{Start: 3, End: 9, Unit: UnitRune}); ok {
		t.Fatalf("slice past end should fail")
	}
}
