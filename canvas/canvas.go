package canvas

import "fmt"

// Canvas is the 2D rendering engine's public entry point: a state stack,
// a path builder bound to the current transform, and fill/stroke style,
// sitting on top of the render device (spec.md §4.2). Memory-mode
// switching and image/draw submission are driven by the embedding
// application; Canvas itself only tracks the drawing state machine and
// produces meshes, leaving command-stream submission to the caller so
// this package doesn't import device.
type Canvas struct {
	cfg    Config
	states *stateStack
	path   *Path

	memMode MemoryMode

	// activeRange is the currently mapped vertex range, if any (spec.md
	// §3 invariant: "owned exclusively by the canvas between
	// map_vertex_range and finish_vertex_range"). Nil when no range is
	// mapped.
	activeRange *MappedVertexRange
}

// MemoryMode selects which of the canvas's two heaps (low, always
// resident, and high, mapped on demand) backs allocations (spec.md §4.2
// "Memory mode").
type MemoryMode int

const (
	MemoryLow MemoryMode = iota
	MemoryHigh
)

// New constructs a Canvas using cfg's state-stack depth and
// tessellation bound.
func New(cfg Config) *Canvas {
	c := &Canvas{cfg: cfg}
	c.states = newStateStack(cfg.MaxStates, defaultState())
	c.path = NewPath(Identity(), cfg.MaxTessellationSteps)
	return c
}

// Save pushes the current transform/clip/style state. Returns
// ErrStateStackOverflow at depth max_states (spec.md §8 "save beyond
// max_states is a program error").
func (c *Canvas) Save() error {
	if err := c.states.Save(); err != nil {
		return ErrStateStackOverflow
	}
	return nil
}

// Restore pops to the previously saved state. Per spec.md §8 this is a
// program error at depth 0; StateDepth lets callers guard that invariant
// before calling Restore if they want it enforced as a trap rather than
// tolerated as a no-op.
func (c *Canvas) Restore() {
	c.states.Restore()
}

// RestoreChecked panics if called with no saved state to restore to,
// matching the checked/unchecked convention used throughout the ADK
// (spec.md §7 "Invariant violation: trap").
func (c *Canvas) RestoreChecked() {
	if c.states.Depth() <= 1 {
		panic(ErrStateStackUnderflow)
	}
	c.states.Restore()
}

// StateDepth returns the current save-stack depth.
func (c *Canvas) StateDepth() int { return c.states.Depth() }

// Identity resets the current transform to identity.
func (c *Canvas) Identity() {
	c.states.mutate(func(s *state) { s.transform = Identity() })
	c.path.transform = Identity()
}

// Translate, Rotate, Scale compose onto the current transform.
func (c *Canvas) Translate(dx, dy float64) { c.compose(Translate(dx, dy)) }
func (c *Canvas) Rotate(radians float64)    { c.compose(Rotate(radians)) }
func (c *Canvas) Scale(sx, sy float64)      { c.compose(Scale(sx, sy)) }

func (c *Canvas) compose(m Matrix) {
	var xf Matrix
	c.states.mutate(func(s *state) {
		s.transform = s.transform.Multiply(m)
		xf = s.transform
	})
	c.path.transform = xf
}

// Transform returns the current transform.
func (c *Canvas) Transform() Matrix { return c.states.Top().transform }

// SetFillColor, SetStrokeColor set the flat fill/stroke color (RGBA in
// [0,1]); SetFillColorHex accepts a packed 0xRRGGBBAA value (spec.md
// §4.2 "Style": "normal or hex-packed").
func (c *Canvas) SetFillColor(r, g, b, a float32) {
	c.states.mutate(func(s *state) { s.fillColor = [4]float32{r, g, b, a} })
}

func (c *Canvas) SetStrokeColor(r, g, b, a float32) {
	c.states.mutate(func(s *state) { s.strokeColor = [4]float32{r, g, b, a} })
}

func (c *Canvas) SetFillColorHex(packed uint32) {
	c.SetFillColor(hexChannel(packed, 24), hexChannel(packed, 16), hexChannel(packed, 8), hexChannel(packed, 0))
}

func hexChannel(packed uint32, shift uint) float32 {
	return float32((packed>>shift)&0xFF) / 255
}

// SetStrokeWidth sets the stroke line width in local units.
func (c *Canvas) SetStrokeWidth(w float64) {
	c.states.mutate(func(s *state) { s.strokeWidth = w })
}

// SetBlendMode sets the current blend mode.
func (c *Canvas) SetBlendMode(m BlendMode) {
	c.states.mutate(func(s *state) { s.blend = m })
}

// SetGlobalAlpha sets the alpha multiplier applied to every subsequent
// draw, independent of per-vertex feather alpha (spec.md §3 "global
// alpha").
func (c *Canvas) SetGlobalAlpha(a float32) {
	c.states.mutate(func(s *state) { s.globalAlpha = a })
}

// GlobalAlpha returns the active global alpha multiplier.
func (c *Canvas) GlobalAlpha() float32 { return c.states.Top().globalAlpha }

// SetFeather overrides the antialiasing band width in local units; a
// value <= 0 falls back to FillResults/StrokeResults' default of one
// device pixel (spec.md §3 "feather").
func (c *Canvas) SetFeather(width float64) {
	c.states.mutate(func(s *state) { s.feather = width })
}

func (c *Canvas) featherWidth() float64 {
	if f := c.states.Top().feather; f > 0 {
		return f
	}
	return 1.0 / c.Transform().ViewScale()
}

// SetFillStyleImage binds img as the current fill style's image, consumed
// by the sdf_fill_image_rect_rounded operation (spec.md §4.2 "Style":
// "fill style with image binding"). Pass nil to clear the binding.
func (c *Canvas) SetFillStyleImage(img *Image) {
	c.states.mutate(func(s *state) { s.imageBinding = img })
}

// FillStyleImage returns the currently bound fill-style image, or nil.
func (c *Canvas) FillStyleImage() *Image { return c.states.Top().imageBinding }

// SetAlphaTestThreshold sets the minimum alpha a fragment must clear to
// survive BlendAlphaTest.
func (c *Canvas) SetAlphaTestThreshold(threshold float32) {
	c.states.mutate(func(s *state) { s.alphaTestThreshold = threshold })
}

// BeginPath, MoveTo, LineTo, QuadBezierTo, Arc, ArcTo, Rect, RoundedRect,
// ClosePath, EndPath delegate to the bound Path.
func (c *Canvas) BeginPath()                                    { c.path.BeginPath() }
func (c *Canvas) MoveTo(x, y float64)                           { c.path.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64)                           { c.path.LineTo(x, y) }
func (c *Canvas) QuadBezierTo(cx, cy, x, y float64)             { c.path.QuadBezierTo(cx, cy, x, y) }
func (c *Canvas) Arc(cx, cy, r, a0, a1 float64, ccw bool)       { c.path.Arc(cx, cy, r, a0, a1, ccw) }
func (c *Canvas) ArcTo(x1, y1, x2, y2, radius float64)          { c.path.ArcTo(x1, y1, x2, y2, radius) }
func (c *Canvas) PathRect(x, y, w, h float64)                   { c.path.Rect(x, y, w, h) }
func (c *Canvas) PathRoundedRect(x, y, w, h, radius float64)    { c.path.RoundedRect(x, y, w, h, radius) }
func (c *Canvas) ClosePath()                                    { c.path.ClosePath() }
func (c *Canvas) EndPath()                                      { c.path.EndPath() }

// FillResults tessellates every closed subpath >= 3 points accumulated
// in the current path, using the feather width set by SetFeather, or one
// device pixel (scaled by the current view scale) when none is set.
func (c *Canvas) FillResults() []FillResult {
	feather := c.featherWidth()
	var out []FillResult
	for _, sp := range c.path.Subpaths() {
		if !sp.Closed || len(sp.Points) < 3 {
			continue
		}
		out = append(out, Fill(sp, feather))
	}
	return out
}

// StrokeResults tessellates every subpath >= 2 points in the current
// path at the active stroke width.
func (c *Canvas) StrokeResults() []Mesh {
	width := c.states.Top().strokeWidth
	feather := c.featherWidth()
	var out []Mesh
	for _, sp := range c.path.Subpaths() {
		if len(sp.Points) < 2 {
			continue
		}
		out = append(out, Stroke(sp, width, feather))
	}
	return out
}

// FillRect is the begin/rect/fill convenience composition.
func (c *Canvas) FillRect(x, y, w, h float64) []FillResult {
	c.BeginPath()
	c.PathRect(x, y, w, h)
	c.EndPath()
	return c.FillResults()
}

// StrokeRect is the begin/rect/stroke convenience composition.
func (c *Canvas) StrokeRect(x, y, w, h float64) []Mesh {
	c.BeginPath()
	c.PathRect(x, y, w, h)
	c.EndPath()
	return c.StrokeResults()
}

// ClearRect returns a draw instruction clearing r to transparent/opaque
// black; the actual RHI clear call is issued by the caller's command
// stream (spec.md §4.2 "clear_rect").
func (c *Canvas) ClearRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// SetMemoryMode switches between the low (always resident) and high
// (mapped on demand) heaps. Switching to low requires the caller to have
// drained all high-only resources first (spec.md §4.2 "Memory mode");
// violating that is reported rather than trapped, since it depends on
// caller-tracked in-flight state this package doesn't own.
func (c *Canvas) SetMemoryMode(mode MemoryMode, highOnlyResourcesDrained bool) error {
	if mode == MemoryLow && c.memMode == MemoryHigh && !highOnlyResourcesDrained {
		return fmt.Errorf("canvas: cannot switch to low memory mode with high-only resources still live")
	}
	c.memMode = mode
	return nil
}

// MemoryMode returns the canvas's current memory mode.
func (c *Canvas) MemoryMode() MemoryMode { return c.memMode }
