package text

// maxGlyphsPerBatch bounds how many new glyphs a single rasterization
// pass packs, to keep packer overhead bounded (spec.md §4.3
// "Rasterization pass": "new glyphs are packed in batches of up to 16
// per call").
const maxGlyphsPerBatch = 16

// MissingGlyphCodepoint is the synthetic codepoint standing in for the
// missing-glyph indicator, always rasterized first so fallback is
// available (spec.md §4.3 "The missing-glyph indicator is always
// inserted first so fallback is available").
const MissingGlyphCodepoint rune = -1

// GlyphOutline is the rasterizer input: an R8 coverage bitmap for one
// codepoint, plus its metrics. Outline production (TrueType hinting and
// scan conversion) is an external collaborator from this package's point
// of view; RasterizePass only handles packing and cache bookkeeping.
type GlyphOutline struct {
	Codepoint        rune
	Width, Height    int
	Bitmap           []byte // Width*Height bytes, R8
	XAdvance, XOff, YOff float64
}

// RasterizePassResult reports which codepoints packed, and whether the
// atlas was left dirty.
type RasterizePassResult struct {
	Packed       []rune
	PackFailed   []rune
	AtlasDirty   bool
}

// RasterizePass packs up to maxGlyphsPerBatch new glyphs from outlines
// into atlas, updating cache with each glyph's resulting rect and
// metrics (spec.md §4.3 "For each packed glyph the cache entry is filled
// with the atlas rect, x-advance, and x/y offsets"). The missing-glyph
// indicator, if present in outlines, is packed first regardless of its
// position in the slice.
func RasterizePass(atlas *Atlas, cache *GlyphCache, outlines []GlyphOutline, paddingPx int) RasterizePassResult {
	ordered := orderMissingGlyphFirst(outlines)

	var result RasterizePassResult
	count := 0
	for _, o := range ordered {
		if count >= maxGlyphsPerBatch {
			break
		}
		x, y, ok := atlas.PackRect(o.Width+2*paddingPx, o.Height+2*paddingPx)
		if !ok {
			cache.Insert(GlyphEntry{Codepoint: o.Codepoint, State: GlyphPackingFailed})
			result.PackFailed = append(result.PackFailed, o.Codepoint)
			continue
		}
		cache.Insert(GlyphEntry{
			Codepoint: o.Codepoint,
			State:     GlyphRasterized,
			AtlasX:    x + paddingPx,
			AtlasY:    y + paddingPx,
			AtlasW:    o.Width,
			AtlasH:    o.Height,
			XAdvance:  o.XAdvance,
			XOff:      o.XOff,
			YOff:      o.YOff,
		})
		result.Packed = append(result.Packed, o.Codepoint)
		result.AtlasDirty = true
		count++
	}
	return result
}

func orderMissingGlyphFirst(outlines []GlyphOutline) []GlyphOutline {
	ordered := make([]GlyphOutline, 0, len(outlines))
	for _, o := range outlines {
		if o.Codepoint == MissingGlyphCodepoint {
			ordered = append(ordered, o)
		}
	}
	for _, o := range outlines {
		if o.Codepoint != MissingGlyphCodepoint {
			ordered = append(ordered, o)
		}
	}
	return ordered
}
