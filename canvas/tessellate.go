package canvas

import "math"

const (
	pi     = math.Pi
	halfPi = math.Pi / 2
	tau    = 2 * math.Pi
)

// normalizeSpan clamps an angular span (end-start) to at most one full
// turn, honoring direction (spec.md §4.2 "Arc tessellation").
func normalizeSpan(span float64, ccw bool) float64 {
	if ccw {
		for span > 0 {
			span -= tau
		}
		if span < -tau {
			span = -tau
		}
	} else {
		for span < 0 {
			span += tau
		}
		if span > tau {
			span = tau
		}
	}
	return span
}

// arcSteps computes the tessellation step count for an arc of the given
// angular span and radius under the path's current view scale, per
// spec.md §4.2: clamp(sqrt(|span|*radius*tau*view_scale), 1, max).
func arcSteps(span, radius, viewScale float64, max int) int {
	v := math.Sqrt(math.Abs(span) * radius * tau * viewScale)
	steps := int(math.Ceil(v))
	if steps < 1 {
		steps = 1
	}
	if steps > max {
		steps = max
	}
	return steps
}

// arcLocal appends the sample points of a circular arc, centered at
// (cx, cy) in the path's pre-transform local space, from startAngle to
// endAngle (radians, math convention), to the current subpath. With no
// subpath open it opens one at the start sample, giving steps+1 points;
// with a subpath open it appends only the steps points after the start
// sample, taking the current point as the arc's start. The arc is
// transformed by p.transform the same as every other point.
func (p *Path) arcLocal(cx, cy, r, startAngle, endAngle float64) {
	span := endAngle - startAngle
	viewScale := p.transform.ViewScale()
	steps := arcSteps(span, r, viewScale, p.maxSteps)
	if !p.open {
		first := Pt(cx+r*math.Cos(startAngle), cy+r*math.Sin(startAngle))
		p.openSubpath(p.transform.TransformPoint(first))
	}
	for i := 1; i <= steps; i++ {
		t := startAngle + span*float64(i)/float64(steps)
		local := Pt(cx+r*math.Cos(t), cy+r*math.Sin(t))
		tp := p.transform.TransformPoint(local)
		p.cur.Points = append(p.cur.Points, tp)
		p.pos = tp
	}
}

// Arc appends a circular arc centered at (cx, cy) from startAngle to
// endAngle, in the direction given by ccw (spec.md §4.2 "Arc
// tessellation").
func (p *Path) Arc(cx, cy, radius, startAngle, endAngle float64, ccw bool) {
	span := normalizeSpan(endAngle-startAngle, ccw)
	p.arcLocal(cx, cy, radius, startAngle, startAngle+span)
}

// ArcTo computes the circle of the given radius tangent to the edges
// (current point -> p1) and (p1 -> p2), then arcs between the two
// tangent points (spec.md §4.2 "Arc-to"). Degenerates to a straight
// line_to(p1) when the inputs are collinear or the radius rounds to a
// sub-pixel value under the current transform.
func (p *Path) ArcTo(x1, y1, x2, y2, radius float64) {
	if !p.open {
		p.MoveTo(x1, y1)
		return
	}
	cur := p.invTransformCurrent()
	p1 := Pt(x1, y1)
	p2 := Pt(x2, y2)

	v0 := cur.Sub(p1)
	v1 := p2.Sub(p1)
	l0 := v0.Length()
	l1 := v1.Length()
	if l0 < 1e-9 || l1 < 1e-9 {
		p.LineTo(x1, y1)
		return
	}
	v0n := v0.Div(l0)
	v1n := v1.Div(l1)

	cross := v0n.Cross(v1n)
	if math.Abs(cross) < 1e-9 {
		p.LineTo(x1, y1)
		return
	}

	scaledRadius := radius * p.transform.ViewScale()
	if scaledRadius < 0.5 {
		p.LineTo(x1, y1)
		return
	}

	// Half-angle between the two edges; distance from p1 to tangent point
	// and to the arc center follow from the right triangle they form with
	// the radius.
	dot := v0n.Dot(v1n)
	theta := math.Acos(clampf(dot, -1, 1)) / 2
	if theta < 1e-6 {
		p.LineTo(x1, y1)
		return
	}
	distToTangent := radius / math.Tan(theta)
	distToCenter := radius / math.Sin(theta)

	t0 := p1.Add(v0n.Mul(distToTangent))
	bis := v0n.Add(v1n)
	bl := bis.Length()
	if bl < 1e-9 {
		p.LineTo(x1, y1)
		return
	}
	bis = bis.Div(bl)
	center := p1.Add(bis.Mul(distToCenter))

	start := math.Atan2(t0.Y-center.Y, t0.X-center.X)
	t1 := p1.Add(v1n.Mul(distToTangent))
	end := math.Atan2(t1.Y-center.Y, t1.X-center.X)

	p.LineTo(t0.X, t0.Y)
	ccw := cross > 0
	span := normalizeSpan(end-start, ccw)
	p.arcLocal(center.X, center.Y, radius, start, start+span)
}

// invTransformCurrent returns the path's current point in local
// (pre-transform) coordinates, used by ArcTo which reasons in local
// space before re-applying the transform via arcLocal.
func (p *Path) invTransformCurrent() Point {
	return p.transform.Invert().TransformPoint(p.pos)
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// QuadBezierTo appends a quadratic Bézier curve from the current point,
// through control point (cx, cy), to (x, y), via recursive midpoint
// subdivision (spec.md §4.2 "Quadratic Bézier").
func (p *Path) QuadBezierTo(cx, cy, x, y float64) {
	if !p.open {
		p.MoveTo(cx, cy)
	}
	p0 := p.pos
	c := p.transform.TransformPoint(Pt(cx, cy))
	p1 := p.transform.TransformPoint(Pt(x, y))
	tol := 1.0 / (p.transform.ViewScale() * p.transform.ViewScale()) * 0.25
	p.subdivideQuad(p0, c, p1, tol, 0)
	p.pos = p1
}

func (p *Path) subdivideQuad(p0, c, p1 Point, tol float64, depth int) {
	chord := p1.Sub(p0)
	chordLenSq := chord.LengthSquared()

	// Perpendicular distance of c to the chord p0-p1, squared, via the
	// standard cross-product-over-length formula; falls back to a
	// linearity test when the chord is near-degenerate.
	var distSq float64
	if chordLenSq > 1e-12 {
		cross := chord.Cross(c.Sub(p0))
		distSq = (cross * cross) / chordLenSq
	} else {
		distSq = c.Sub(p0).LengthSquared()
	}

	flat := distSq <= tol*chordLenSq || depth >= p.maxSteps
	if flat {
		p.cur.Points = append(p.cur.Points, p1)
		return
	}

	m01 := p0.Lerp(c, 0.5)
	m12 := c.Lerp(p1, 0.5)
	mid := m01.Lerp(m12, 0.5)
	p.subdivideQuad(p0, m01, mid, tol, depth+1)
	p.subdivideQuad(mid, m12, p1, tol, depth+1)
}
