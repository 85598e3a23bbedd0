// Package buffer implements the text model that edits are expressed against.
//
// Offsets are counted in a Unit chosen per buffer (bytes, runes, or UTF-16
// code units) and never in grapheme clusters. Ranges are half-open:
// [Start, End). A Range carries its Unit so that range arithmetic, splicing
// and caret placement always agree on one unit system.
package buffer
