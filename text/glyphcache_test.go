package text

import "testing"

func TestGlyphCacheBinarySearchLookup(t *testing.T) {
	var c GlyphCache
	codepoints := []rune{'z', 'a', 'm', 'A', '0'}
	for _, cp := range codepoints {
		c.Insert(GlyphEntry{Codepoint: cp, State: GlyphRasterized, XAdvance: 10})
	}

	for _, cp := range codepoints {
		entry, ok := c.Lookup(cp)
		if !ok {
			t.Fatalf("expected codepoint %q to be found", cp)
		}
		if entry.Codepoint != cp {
			t.Fatalf("got codepoint %q, want %q", entry.Codepoint, cp)
		}
	}

	if _, ok := c.Lookup('Z'); ok {
		t.Fatal("expected codepoint not inserted to miss")
	}
}

func TestGlyphCacheResetInvalidatesLookups(t *testing.T) {
	var c GlyphCache
	c.Insert(GlyphEntry{Codepoint: 'x', State: GlyphRasterized})
	if _, ok := c.Lookup('x'); !ok {
		t.Fatal("expected lookup to hit before reset")
	}
	c.Reset()
	if _, ok := c.Lookup('x'); ok {
		t.Fatal("expected lookup to miss after reset")
	}
}
