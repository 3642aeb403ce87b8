package canvas

// Subpath is a flattened polyline: arcs and Béziers are tessellated into
// line segments as they're appended, so fill/stroke only ever operate on
// point lists (spec.md §4.2 "emits triangle strips/fans").
type Subpath struct {
	Points []Point
	Closed bool
}

// winding returns the sign of the sum over i>=2 of
// det(p[i-1]-p[0], p[i]-p[0]) (spec.md §4.2 "Subpath winding and
// reversal"). Positive is CCW in a standard math orientation; the fill
// pipeline wants CW, so callers compare against 0 and reverse as needed.
func (s Subpath) winding() float64 {
	if len(s.Points) < 3 {
		return 0
	}
	p0 := s.Points[0]
	sum := 0.0
	for i := 2; i < len(s.Points); i++ {
		a := s.Points[i-1].Sub(p0)
		b := s.Points[i].Sub(p0)
		sum += a.Cross(b)
	}
	return sum
}

// normalizeCW reverses s in place if it winds CCW, so the fill
// tessellator always receives CW input (spec.md §4.2).
func (s *Subpath) normalizeCW() {
	if s.winding() > 0 {
		reversePoints(s.Points)
	}
}

func reversePoints(pts []Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// Path accumulates one or more Subpaths built via move_to/line_to/etc,
// with a current transform applied to every incoming point (spec.md §4.2
// "Transform", "Path").
type Path struct {
	subpaths []Subpath
	cur      *Subpath
	start    Point
	pos      Point
	open     bool

	transform Matrix
	maxSteps  int
}

// NewPath constructs an empty path whose points are transformed by xf as
// they're appended, with tessellation bounded by maxTessellationSteps.
func NewPath(xf Matrix, maxTessellationSteps int) *Path {
	if maxTessellationSteps < 1 {
		maxTessellationSteps = 1
	}
	return &Path{transform: xf, maxSteps: maxTessellationSteps}
}

// BeginPath discards any in-progress subpaths and starts fresh.
func (p *Path) BeginPath() {
	p.subpaths = p.subpaths[:0]
	p.cur = nil
	p.open = false
}

// Subpaths returns the accumulated subpaths in the winding they were
// built with. Fill normalizes each one to CW before tessellating.
func (p *Path) Subpaths() []Subpath { return p.subpaths }

func (p *Path) openSubpath(start Point) {
	p.subpaths = append(p.subpaths, Subpath{Points: []Point{start}})
	p.cur = &p.subpaths[len(p.subpaths)-1]
	p.start = start
	p.pos = start
	p.open = true
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	tp := p.transform.TransformPoint(Pt(x, y))
	p.openSubpath(tp)
}

// LineTo appends a straight segment to (x, y). If no subpath is open yet,
// it starts a new subpath at (x, y) instead, like MoveTo.
func (p *Path) LineTo(x, y float64) {
	tp := p.transform.TransformPoint(Pt(x, y))
	if !p.open {
		p.openSubpath(tp)
		return
	}
	p.cur.Points = append(p.cur.Points, tp)
	p.pos = tp
}

// ClosePath closes the current subpath back to its start point.
func (p *Path) ClosePath() {
	if !p.open || p.cur == nil {
		return
	}
	p.cur.Closed = true
	p.pos = p.start
}

// EndPath finalizes path building; currently a no-op hook mirroring the
// spec's explicit begin/end pairing so callers don't need to special-case
// degenerate paths.
func (p *Path) EndPath() {}

// Rect appends a closed rectangular subpath.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
}

// RoundedRect appends a closed rounded-rectangle subpath with a uniform
// corner radius, via quarter-circle arcs at each corner.
func (p *Path) RoundedRect(x, y, w, h, radius float64) {
	r := radius
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	if r <= 0 {
		p.Rect(x, y, w, h)
		return
	}
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.arcLocal(x+w-r, y+r, r, -halfPi, 0)
	p.LineTo(x+w, y+h-r)
	p.arcLocal(x+w-r, y+h-r, r, 0, halfPi)
	p.LineTo(x+r, y+h)
	p.arcLocal(x+r, y+h-r, r, halfPi, pi)
	p.LineTo(x, y+r)
	p.arcLocal(x+r, y+r, r, pi, pi+halfPi)
	p.ClosePath()
}
