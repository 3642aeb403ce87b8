package text

import "testing"

func makeAtlasAndCache(codepoints []rune, atlasW, atlasH int) (*Atlas, *GlyphCache) {
	atlas := NewAtlas(atlasW, atlasH, 4)
	cache := &GlyphCache{}
	for _, cp := range codepoints {
		x, y, ok := atlas.PackRect(8, 8)
		if !ok {
			continue
		}
		cache.Insert(GlyphEntry{
			Codepoint: cp,
			State:     GlyphRasterized,
			AtlasX:    x, AtlasY: y, AtlasW: 8, AtlasH: 8,
			XAdvance: 10,
		})
	}
	return atlas, cache
}

func TestDrawPartialTextEmitsSixVerticesPerCodepoint(t *testing.T) {
	atlas, cache := makeAtlasAndCache([]rune("abc"), 256, 256)

	result := DrawPartialText("abc", cache, atlas, 1024, 0, 0, nil)
	if result.Outcome != PartialTextComplete {
		t.Fatalf("expected PartialTextComplete, got %v", result.Outcome)
	}
	if len(result.Banks) != 1 {
		t.Fatalf("expected a single bank, got %d", len(result.Banks))
	}
	if got := len(result.Banks[0].Vertices); got != 18 {
		t.Fatalf("expected 18 vertices (3 glyphs x 6), got %d", got)
	}
}

func TestDrawPartialTextUninitializedReportsNeedsRasterize(t *testing.T) {
	atlas, cache := makeAtlasAndCache([]rune("a"), 256, 256)

	result := DrawPartialText("ab", cache, atlas, 1024, 0, 0, nil)
	if result.Outcome != PartialTextNeedsRasterize {
		t.Fatalf("expected PartialTextNeedsRasterize, got %v", result.Outcome)
	}
	if result.ResumeOffset != 1 {
		t.Fatalf("expected resume offset 1 (after 'a'), got %d", result.ResumeOffset)
	}
	found := false
	for _, cp := range result.NeedsCodepoints {
		if cp == 'b' {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'b' among NeedsCodepoints, got %v", result.NeedsCodepoints)
	}
}

func TestDrawPartialTextPackingFailedReportsNeedsAtlasReset(t *testing.T) {
	atlas, cache := makeAtlasAndCache([]rune("a"), 256, 256)
	cache.Insert(GlyphEntry{Codepoint: 'b', State: GlyphPackingFailed})

	result := DrawPartialText("ab", cache, atlas, 1024, 0, 0, nil)
	if result.Outcome != PartialTextNeedsAtlasReset {
		t.Fatalf("expected PartialTextNeedsAtlasReset, got %v", result.Outcome)
	}
	if result.ResumeOffset != 0 {
		t.Fatalf("expected resume offset 0 on atlas reset, got %d", result.ResumeOffset)
	}
	if result.NeedsCodepoints[0] != MissingGlyphCodepoint {
		t.Fatalf("expected missing-glyph indicator first, got %v", result.NeedsCodepoints)
	}
}

func TestDrawPartialTextNoBackingGlyphSubstitutesMissingIndicator(t *testing.T) {
	atlas, cache := makeAtlasAndCache(nil, 256, 256)
	mx, my, _ := atlas.PackRect(8, 8)
	cache.Insert(GlyphEntry{Codepoint: MissingGlyphCodepoint, State: GlyphRasterized, AtlasX: mx, AtlasY: my, AtlasW: 8, AtlasH: 8, XAdvance: 10})
	cache.Insert(GlyphEntry{Codepoint: 0x1F600, State: GlyphNoBackingGlyph})

	result := DrawPartialText(string(rune(0x1F600)), cache, atlas, 1024, 0, 0, nil)
	if result.Outcome != PartialTextComplete {
		t.Fatalf("expected PartialTextComplete, got %v", result.Outcome)
	}
	if len(result.Banks[0].Vertices) != 6 {
		t.Fatalf("expected one substituted glyph quad, got %d vertices", len(result.Banks[0].Vertices))
	}
}

func TestDrawPartialTextNoBackingGlyphSkipsWhenMissingNotRasterized(t *testing.T) {
	atlas, cache := makeAtlasAndCache(nil, 256, 256)
	cache.Insert(GlyphEntry{Codepoint: 0x1F600, State: GlyphNoBackingGlyph})

	result := DrawPartialText(string(rune(0x1F600)), cache, atlas, 1024, 0, 0, nil)
	if result.Outcome != PartialTextComplete {
		t.Fatalf("expected PartialTextComplete, got %v", result.Outcome)
	}
	if len(result.Banks[0].Vertices) != 0 {
		t.Fatalf("expected no vertices emitted, got %d", len(result.Banks[0].Vertices))
	}
}

func TestDrawPartialTextOverflowsIntoNewBank(t *testing.T) {
	atlas, cache := makeAtlasAndCache([]rune("abcdef"), 256, 256)

	// Budget fits exactly one glyph (6 verts); six glyphs should spread
	// across six banks.
	result := DrawPartialText("abcdef", cache, atlas, 6, 0, 0, nil)
	if result.Outcome != PartialTextComplete {
		t.Fatalf("expected PartialTextComplete, got %v", result.Outcome)
	}
	if len(result.Banks) != 6 {
		t.Fatalf("expected 6 banks at budget 6, got %d", len(result.Banks))
	}
	for i, b := range result.Banks {
		if len(b.Vertices) != 6 {
			t.Fatalf("bank %d: expected 6 vertices, got %d", i, len(b.Vertices))
		}
	}
}

func TestDrawPartialTextKerningShiftsAdvance(t *testing.T) {
	atlas, cache := makeAtlasAndCache([]rune("ab"), 256, 256)

	noKern := DrawPartialText("ab", cache, atlas, 1024, 0, 0, nil)
	withKern := DrawPartialText("ab", cache, atlas, 1024, 0, 0, func(prev, cur rune) float64 { return 5 })

	secondGlyphX := func(r DrawPartialTextResult) float64 { return r.Banks[0].Vertices[6].X }
	if withKern.Outcome != PartialTextComplete || noKern.Outcome != PartialTextComplete {
		t.Fatalf("expected both to complete")
	}
	if secondGlyphX(withKern) <= secondGlyphX(noKern) {
		t.Fatalf("expected kerning to shift second glyph further right: kerned=%v unkerned=%v", secondGlyphX(withKern), secondGlyphX(noKern))
	}
}
