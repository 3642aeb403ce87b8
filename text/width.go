package text

import "golang.org/x/text/width"

// EastAsianWidthUnits returns the column width of r in the two-level model
// x/text/width exposes: wide and fullwidth runes (CJK ideographs, fullwidth
// forms) occupy two units, everything else one, matching the East Asian
// Width property used to size CJK glyphs twice as wide as Latin ones when
// no font-measured width is available (spec.md §4.3 "line-break width
// estimation").
func EastAsianWidthUnits(r rune) float64 {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// DefaultMeasure returns a MeasureFunc that estimates a string's rendered
// width from its runes' East Asian Width property alone, for callers that
// have not wired in a font-shaped Measure (FontContext.Shape's per-glyph
// XAdvance is the precise alternative). advancePerUnit is the width of one
// narrow unit at the target font size.
func DefaultMeasure(advancePerUnit float64) MeasureFunc {
	return func(s string) float64 {
		total := 0.0
		for _, r := range s {
			total += EastAsianWidthUnits(r) * advancePerUnit
		}
		return total
	}
}
