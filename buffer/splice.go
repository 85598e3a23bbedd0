package buffer

// Slice returns the text covered by r.
func Slice(text string, r Range) (string, bool) {
	lo, hi, ok := ByteRange(text, r, Strict)
	if !ok {
		return "", false
	}
	return text[lo:hi], true
}

// Splice replaces the text covered by r with repl. It fails when r does not
// describe valid boundaries in text.
func Splice(text string, r Range, repl string) (string, bool) {
	lo, hi, ok := ByteRange(text, r, Strict)
	if !ok {
		return "", false
	}
	return text[:lo] + repl + text[hi:], true
}

// CaretAfter returns the caret offset, in r's unit, right after repl once it
// has been spliced over r.
func CaretAfter(r Range, repl string) int {
	return NormalizeRange(r).Start + Len(repl, r.Unit)
}

// Within reports whether r lies inside a text of n units.
func (r Range) Within(n int) bool {
	r = NormalizeRange(r)
	return r.Start >= 0 && r.End <= n
}
