package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Direction is the text flow direction requested for a shaping call.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
	DirectionTTB
	DirectionBTT
)

// ShapedGlyph is one shaped, positioned glyph ready for glyph-cache
// lookup and rasterization.
type ShapedGlyph struct {
	GID              uint16
	Cluster          int
	X, Y             float64
	XAdvance, YAdvance float64
}

// FontSource is raw font file bytes plus a stable identity; the id is the
// key of FontContext's parsed-font cache.
type FontSource struct {
	id   uint64
	data []byte
}

// NewFontSource wraps font file bytes under id (spec.md §4.3 font
// binding: fonts are identified by a stable font_id used throughout
// text-mesh memoization and the glyph cache).
func NewFontSource(id uint64, data []byte) *FontSource {
	return &FontSource{id: id, data: data}
}

func (s *FontSource) ID() uint64 { return s.id }

// FontContext shapes runs of text into positioned glyphs via HarfBuzz,
// caching parsed font.Font objects (thread-safe) and pooling
// HarfbuzzShaper instances (not concurrent-safe) the same way the
// teacher's GoTextShaper does.
type FontContext struct {
	shaperPool sync.Pool

	mu        sync.RWMutex
	fontCache map[uint64]*font.Font
}

// NewFontContext constructs an empty shaping context.
func NewFontContext() *FontContext {
	return &FontContext{
		shaperPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		fontCache: make(map[uint64]*font.Font),
	}
}

// Shape runs HarfBuzz shaping over text at sizePx using source, returning
// one ShapedGlyph per output glyph.
func (c *FontContext) Shape(text string, source *FontSource, sizePx float64, dir Direction) ([]ShapedGlyph, error) {
	if text == "" || source == nil {
		return nil, nil
	}

	goTextFont, err := c.getOrParse(source)
	if err != nil {
		return nil, err
	}
	face := font.NewFace(goTextFont)

	runes := []rune(NormalizeForGlyphCache(text))
	hbDir := mapDirection(dir)
	script := detectScript(runes)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: hbDir,
		Face:      face,
		Size:      floatToFixed(sizePx),
		Script:    script,
		Language:  language.NewLanguage("en"),
	}

	shaper := c.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	c.shaperPool.Put(shaper)

	return convertGlyphs(output.Glyphs, hbDir), nil
}

func (c *FontContext) getOrParse(source *FontSource) (*font.Font, error) {
	c.mu.RLock()
	if f, ok := c.fontCache[source.id]; ok {
		c.mu.RUnlock()
		return f, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.fontCache[source.id]; ok {
		return f, nil
	}

	face, err := font.ParseTTF(bytes.NewReader(source.data))
	if err != nil {
		return nil, err
	}
	c.fontCache[source.id] = face.Font
	return face.Font, nil
}

// Evict drops the cached parsed font for id, e.g. once its FontSource is
// released by fontnetwork's reference counting.
func (c *FontContext) Evict(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.fontCache, id)
}

func mapDirection(d Direction) di.Direction {
	switch d {
	case DirectionRTL:
		return di.DirectionRTL
	case DirectionTTB:
		return di.DirectionTTB
	case DirectionBTT:
		return di.DirectionBTT
	default:
		return di.DirectionLTR
	}
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }
func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64.0 }

func convertGlyphs(glyphs []shaping.Glyph, dir di.Direction) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}
	result := make([]ShapedGlyph, len(glyphs))
	var x, y float64
	for i, g := range glyphs {
		xOff := fixedToFloat(g.XOffset)
		yOff := fixedToFloat(g.YOffset)
		result[i] = ShapedGlyph{
			GID:     uint16(g.GlyphID),
			Cluster: g.TextIndex(),
			X:       x + xOff,
			Y:       y + yOff,
		}
		if dir.IsVertical() {
			adv := fixedToFloat(g.Advance)
			result[i].YAdvance = adv
			y += adv
		} else {
			adv := fixedToFloat(g.Advance)
			result[i].XAdvance = adv
			x += adv
		}
	}
	return result
}
