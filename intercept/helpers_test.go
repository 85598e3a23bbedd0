package intercept

import (
	"strings"

	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/internal/grapheme"
)

func upper(_ string, _ buffer.Range, s string) string { return strings.ToUpper(s) }

func identity(_ string, _ buffer.Range, s string) string { return s }

func truncate(n int) Transformer {
	return func(_ string, _ buffer.Range, s string) string {
		return grapheme.Truncate(s, n)
	}
}

// limit caps the resulting text at n clusters.
func limit(n int) Transformer {
	return func(text string, r buffer.Range, s string) string {
		replaced, ok := buffer.Slice(text, r)
		if !ok {
			return s
		}
		room := n - (grapheme.Count(text) - grapheme.Count(replaced))
		return grapheme.Truncate(s, room)
	}
}
