package text

import "unicode"

// GlyphVertex is one emitted vertex of a glyph quad, mirroring canvas.Vertex's
// shape without importing canvas (spec.md §4.3 "draw_partial_text": "emit
// six vertices (two triangles) in the mapped vertex range using the atlas
// sub-rect").
type GlyphVertex struct {
	X, Y, U, V float64
}

// KerningFunc returns the extra X offset applied between prev and cur
// codepoints; nil or a func always returning 0 means the font carries no
// kerning table.
type KerningFunc func(prev, cur rune) float64

// PartialTextOutcome tags why DrawPartialText stopped, so the caller knows
// which recovery step to run before resuming (spec.md §4.3 "States dictate
// behavior").
type PartialTextOutcome int

const (
	// PartialTextComplete means every codepoint in text was consumed.
	PartialTextComplete PartialTextOutcome = iota
	// PartialTextNeedsRasterize means an uninitialized codepoint was hit;
	// the caller runs RasterizePass over NeedsCodepoints and resumes from
	// ResumeOffset.
	PartialTextNeedsRasterize
	// PartialTextNeedsAtlasReset means a packing_failed codepoint was
	// hit; the caller flushes the current mesh, evicts every glyph
	// cache, resets the atlas, and rebuilds from scratch with just this
	// string (spec.md §4.3: "rebuilds with just this string (and the
	// missing-glyph indicator)").
	PartialTextNeedsAtlasReset
)

// VertexBank is one mapped vertex range's accumulated glyph quads, capped
// at the bank's vertex budget (spec.md §6 "gl.max_verts_per_vertex_bank").
type VertexBank struct {
	Vertices []GlyphVertex
	budget   int
}

func newVertexBank(budget int) *VertexBank {
	if budget < 6 {
		budget = 6
	}
	return &VertexBank{budget: budget}
}

func (b *VertexBank) fitsOneQuad() bool { return len(b.Vertices)+6 <= b.budget }

func (b *VertexBank) appendQuad(quad [6]GlyphVertex) {
	b.Vertices = append(b.Vertices, quad[:]...)
}

// DrawPartialTextResult is DrawPartialText's output.
type DrawPartialTextResult struct {
	// Banks holds every vertex range the walk filled, in order; a walk
	// that overflows one bank's budget starts a fresh bank sized by the
	// remaining glyph estimate rather than growing the first one (spec.md
	// §4.3 "a new range is mapped sized by the remaining glyph estimate").
	Banks []*VertexBank
	Outcome PartialTextOutcome
	// ResumeOffset is a byte offset into the normalized text to resume
	// decoding from after the caller handles Outcome. 0 for
	// PartialTextNeedsAtlasReset, since a reset rebuilds from scratch.
	ResumeOffset int
	// NeedsCodepoints lists the codepoints the caller must rasterize
	// (NeedsRasterize) or rebuild the whole atlas with (NeedsAtlasReset),
	// with the missing-glyph indicator always first.
	NeedsCodepoints []rune
}

// DrawPartialText walks text's UTF-8 codepoints, looks each up in cache,
// and emits a glyph quad per renderable codepoint into budget-capped vertex
// banks, applying kerning between consecutive glyphs (spec.md §4.3
// "draw_partial_text"). Codepoints are looked up after NFC normalization,
// matching FontContext.Shape's glyph-cache keying.
func DrawPartialText(text string, cache *GlyphCache, atlas *Atlas, vertsPerBank int, originX, originY float64, kerning KerningFunc) DrawPartialTextResult {
	normalized := NormalizeForGlyphCache(text)
	buf := []byte(normalized)

	var result DrawPartialTextResult
	bank := newVertexBank(estimateVerts(len(buf), vertsPerBank))
	result.Banks = append(result.Banks, bank)

	x, y := originX, originY
	var prev rune
	havePrev := false

	for offset := 0; offset < len(buf); {
		cp, size := DecodeCodepoint(buf[offset:])
		if size == 0 {
			break
		}

		entry, found := cache.Lookup(cp)
		state := GlyphUninitialized
		if found {
			state = entry.State
		}

		switch state {
		case GlyphUninitialized:
			result.Outcome = PartialTextNeedsRasterize
			result.ResumeOffset = offset
			result.NeedsCodepoints = collectUncached(buf[offset:], cache)
			return result

		case GlyphPackingFailed:
			result.Outcome = PartialTextNeedsAtlasReset
			result.ResumeOffset = 0
			// The reset evicts every cache, so the rebuild needs each
			// distinct codepoint of the string, not just the uncached ones.
			result.NeedsCodepoints = collectUncached(buf, &GlyphCache{})
			return result

		case GlyphNoBackingGlyph:
			if unicode.IsControl(cp) {
				offset += size
				continue
			}
			missing, ok := cache.Lookup(MissingGlyphCodepoint)
			if !ok || missing.State != GlyphRasterized {
				offset += size
				continue
			}
			entry = missing
		}

		if havePrev && kerning != nil {
			x += kerning(prev, cp)
		}

		if !bank.fitsOneQuad() {
			remaining := len(buf) - offset
			bank = newVertexBank(estimateVerts(remaining, vertsPerBank))
			result.Banks = append(result.Banks, bank)
		}

		bank.appendQuad(glyphQuad(entry, atlas.Width, atlas.Height, x, y))
		x += entry.XAdvance
		prev = cp
		havePrev = true
		offset += size
	}

	result.Outcome = PartialTextComplete
	result.ResumeOffset = len(buf)
	return result
}

// estimateVerts sizes the next vertex bank by the remaining byte count
// (a pessimistic one-codepoint-per-byte upper bound for ASCII-heavy UI
// text), capped by vertsPerBank (spec.md §3 "capped by
// max_verts_per_vertex_bank").
func estimateVerts(remainingBytes, vertsPerBank int) int {
	want := remainingBytes * 6
	if vertsPerBank > 0 && want > vertsPerBank {
		return vertsPerBank
	}
	if want < 6 {
		return 6
	}
	return want
}

// glyphQuad builds the six vertices (two triangles, TL-TR-BR / TL-BR-BL)
// for e's atlas rect positioned at (x, y), with UVs normalized against the
// atlas's current dimensions.
func glyphQuad(e GlyphEntry, atlasW, atlasH int, x, y float64) [6]GlyphVertex {
	w, h := float64(atlasW), float64(atlasH)
	u0 := float64(e.AtlasX) / w
	v0 := float64(e.AtlasY) / h
	u1 := float64(e.AtlasX+e.AtlasW) / w
	v1 := float64(e.AtlasY+e.AtlasH) / h

	x0 := x + e.XOff
	y0 := y + e.YOff
	x1 := x0 + float64(e.AtlasW)
	y1 := y0 + float64(e.AtlasH)

	tl := GlyphVertex{X: x0, Y: y0, U: u0, V: v0}
	tr := GlyphVertex{X: x1, Y: y0, U: u1, V: v0}
	br := GlyphVertex{X: x1, Y: y1, U: u1, V: v1}
	bl := GlyphVertex{X: x0, Y: y1, U: u0, V: v1}
	return [6]GlyphVertex{tl, tr, br, tl, br, bl}
}

// collectUncached scans buf's codepoints and returns the distinct ones
// that aren't yet rasterized in cache, with the missing-glyph indicator
// always first so a subsequent RasterizePass packs it before anything
// else (spec.md §4.3 "The missing-glyph indicator is always inserted
// first so fallback is available").
func collectUncached(buf []byte, cache *GlyphCache) []rune {
	var out []rune
	seen := make(map[rune]bool)

	if m, ok := cache.Lookup(MissingGlyphCodepoint); !ok || m.State != GlyphRasterized {
		out = append(out, MissingGlyphCodepoint)
		seen[MissingGlyphCodepoint] = true
	}

	for offset := 0; offset < len(buf); {
		cp, size := DecodeCodepoint(buf[offset:])
		if size == 0 {
			break
		}
		offset += size
		if seen[cp] {
			continue
		}
		if e, ok := cache.Lookup(cp); !ok || e.State == GlyphUninitialized {
			out = append(out, cp)
			seen[cp] = true
		}
	}
	return out
}
