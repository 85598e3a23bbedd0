package preset

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/intercept"
	"github.com/iw2rmb/retype/internal/grapheme"
)

// apply runs t over s and keeps s when t fails.
func apply(t transform.Transformer, s string) string {
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Uppercase maps the replacement to upper case using the rules of tag.
func Uppercase(tag language.Tag) intercept.Transformer {
	return func(_ string, _ buffer.Range, s string) string {
		return cases.Upper(tag).String(s)
	}
}

// Lowercase maps the replacement to lower case using the rules of tag.
func Lowercase(tag language.Tag) intercept.Transformer {
	return func(_ string, _ buffer.Range, s string) string {
		return cases.Lower(tag).String(s)
	}
}

// StripDiacritics removes combining marks: "é" becomes "e".
func StripDiacritics() intercept.Transformer {
	return func(_ string, _ buffer.Range, s string) string {
		if isASCII(s) {
			return s
		}
		return apply(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	}
}

// Narrow folds full-width forms to their narrow equivalents.
func Narrow() intercept.Transformer {
	return func(_ string, _ buffer.Range, s string) string {
		if isASCII(s) {
			return s
		}
		return apply(width.Narrow, s)
	}
}

// Allow keeps only the runes listed in chars.
func Allow(chars string) intercept.Transformer {
	drop := runes.Remove(runes.Predicate(func(r rune) bool { return !strings.ContainsRune(chars, r) }))
	return func(_ string, _ buffer.Range, s string) string {
		return apply(drop, s)
	}
}

// Deny drops the runes listed in chars.
func Deny(chars string) intercept.Transformer {
	drop := runes.Remove(runes.Predicate(func(r rune) bool { return strings.ContainsRune(chars, r) }))
	return func(_ string, _ buffer.Range, s string) string {
		return apply(drop, s)
	}
}

// Only keeps the runes found in one of the tables.
func Only(tables ...*unicode.RangeTable) intercept.Transformer {
	drop := runes.Remove(runes.Predicate(func(r rune) bool { return !unicode.IsOneOf(tables, r) }))
	return func(_ string, _ buffer.Range, s string) string {
		return apply(drop, s)
	}
}

// Digits keeps decimal digits.
func Digits() intercept.Transformer { return Only(unicode.Nd) }

// Sanitize drops control characters other than newline and tab.
func Sanitize() intercept.Transformer {
	drop := runes.Remove(runes.Predicate(func(r rune) bool {
		return unicode.IsControl(r) && r != '\n' && r != '\t'
	}))
	return func(_ string, _ buffer.Range, s string) string {
		return apply(drop, s)
	}
}

// Limit caps the resulting text at n grapheme clusters. The replacement is
// cut to the room left once the replaced span is gone; a full control turns
// insertions into no-ops.
func Limit(n int) intercept.Transformer {
	return func(text string, r buffer.Range, s string) string {
		replaced, ok := buffer.Slice(text, r)
		if !ok {
			return s
		}
		room := n - (grapheme.Count(text) - grapheme.Count(replaced))
		if grapheme.Count(s) <= room {
			return s
		}
		return grapheme.Truncate(s, room)
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
