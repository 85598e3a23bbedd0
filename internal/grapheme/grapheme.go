package grapheme

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Split returns the grapheme clusters of text in order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Truncate returns the longest prefix of text holding at most n clusters.
func Truncate(text string, n int) string {
	if n <= 0 || text == "" {
		return ""
	}
	g := uniseg.NewGraphemes(text)
	for i := 0; g.Next(); i++ {
		if i == n {
			from, _ := g.Positions()
			return text[:from]
		}
	}
	return text
}

// Prev returns the byte offset of the cluster boundary before off.
// off must itself sit on a boundary; 0 is returned at the start of text.
func Prev(text string, off int) int {
	if off <= 0 {
		return 0
	}
	if off > len(text) {
		off = len(text)
	}
	prev := 0
	g := uniseg.NewGraphemes(text[:off])
	for g.Next() {
		from, _ := g.Positions()
		prev = from
	}
	return prev
}

// Next returns the byte offset of the cluster boundary after off.
func Next(text string, off int) int {
	if off < 0 {
		off = 0
	}
	if off >= len(text) {
		return len(text)
	}
	g := uniseg.NewGraphemes(text[off:])
	if !g.Next() {
		return len(text)
	}
	_, to := g.Positions()
	return off + to
}

// Join concatenates grapheme clusters into a single string.
func Join(clusters []string) string {
	if len(clusters) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
