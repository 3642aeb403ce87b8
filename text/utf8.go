package text

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DecodeCodepoint decodes the first UTF-8 codepoint in buf, returning the
// rune and the exact number of bytes consumed (spec.md §8 "UTF-8 decode:
// for every byte sequence of lengths 1-4, codepoint_decode yields the
// codepoint and the exact byte count"). Invalid sequences return
// utf8.RuneError and a width of 1, matching the standard library's own
// replacement-and-resync behavior.
func DecodeCodepoint(buf []byte) (rune, int) {
	if len(buf) == 0 {
		return utf8.RuneError, 0
	}
	r, size := utf8.DecodeRune(buf)
	return r, size
}

// NormalizeForGlyphCache applies NFC normalization, folding a combining
// accent sequence and its precomposed form to the same codepoint sequence
// before glyph-cache lookups key on individual runes (spec.md §8 "Glyph
// cache lookup" assumes one cache entry per visually-distinct codepoint;
// without normalization, "e" + combining acute and precomposed "é" would
// rasterize and cache as two different glyphs).
func NormalizeForGlyphCache(s string) string {
	return norm.NFC.String(s)
}
