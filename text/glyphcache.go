package text

import "github.com/gogpu/adkcanvas/internal/algorithm"

// GlyphState tags a cache entry's readiness (spec.md §4.3 "draw_partial_text
// ... States dictate behavior").
type GlyphState int

const (
	GlyphUninitialized GlyphState = iota
	GlyphRasterized
	GlyphNoBackingGlyph
	GlyphPackingFailed
)

// GlyphEntry is one font's cached glyph metrics and atlas placement.
type GlyphEntry struct {
	Codepoint rune
	State     GlyphState
	AtlasX, AtlasY, AtlasW, AtlasH int
	XAdvance, XOff, YOff           float64
}

// GlyphCache holds a font's glyph entries sorted by codepoint, so lookup
// is a binary search (spec.md §8 "Glyph cache lookup: for any codepoint
// inserted into a font's glyph cache, a binary search returns it;
// removing glyph caches via atlas reset makes subsequent lookups miss").
type GlyphCache struct {
	entries []GlyphEntry
}

func codepointLess(a, b GlyphEntry) bool { return a.Codepoint < b.Codepoint }

// Lookup returns the entry for cp and true if present.
func (c *GlyphCache) Lookup(cp rune) (GlyphEntry, bool) {
	i := algorithm.LowerBound(c.entries, GlyphEntry{Codepoint: cp}, codepointLess)
	if i < len(c.entries) && c.entries[i].Codepoint == cp {
		return c.entries[i], true
	}
	return GlyphEntry{}, false
}

// Insert adds or replaces the entry for e.Codepoint, maintaining sort
// order.
func (c *GlyphCache) Insert(e GlyphEntry) {
	i := algorithm.LowerBound(c.entries, e, codepointLess)
	if i < len(c.entries) && c.entries[i].Codepoint == e.Codepoint {
		c.entries[i] = e
		return
	}
	c.entries = append(c.entries, GlyphEntry{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = e
}

// Reset clears every entry, matching an atlas reset (spec.md §4.3
// "packing_failed ... evicts all glyph caches, resets the atlas").
func (c *GlyphCache) Reset() {
	c.entries = c.entries[:0]
}

// Len returns the number of cached entries.
func (c *GlyphCache) Len() int { return len(c.entries) }
