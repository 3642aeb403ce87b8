package canvas

import "math"

// FillResult bundles the meshes needed to fill one subpath, plus whether
// the interior requires the stencil trick for concave shapes (spec.md
// §4.2 "Fill").
type FillResult struct {
	// Fan is the triangle-fan interior mesh (also the stencil-accumulate
	// draw, for concave paths).
	Fan Mesh
	// Feather is the outer antialiasing band, alpha-faded to zero at its
	// outer edge.
	Feather Mesh
	// Concave is true when the stencil trick (clear, fan-accumulate,
	// feather-equal, fan-not-equal) is required instead of drawing Fan
	// directly.
	Concave bool
}

// Fill tessellates a closed subpath of size >= 3 into a fan plus feather
// band. Subpaths smaller than a triangle produce a zero-value,
// empty-Vertices result (spec.md §4.2 "Fill": "closed subpaths of size
// >= 3").
func Fill(sp Subpath, featherWidth float64) FillResult {
	if len(sp.Points) < 3 {
		return FillResult{}
	}
	sp.normalizeCW()
	pts := sp.Points

	fan := Mesh{Mode: PrimitiveTriangleFan}
	for _, pt := range pts {
		fan.Vertices = append(fan.Vertices, Vertex{X: pt.X, Y: pt.Y, Alpha: 1})
	}

	centroid := centroidOf(pts)
	feather := Mesh{Mode: PrimitiveTriangleStrip}
	n := len(pts)
	for i := 0; i <= n; i++ {
		p := pts[i%n]
		outward := p.Sub(centroid)
		l := outward.Length()
		if l > 1e-9 {
			outward = outward.Div(l)
		}
		outer := p.Add(outward.Mul(featherWidth))
		feather.Vertices = append(feather.Vertices,
			Vertex{X: p.X, Y: p.Y, Alpha: 1},
			Vertex{X: outer.X, Y: outer.Y, Alpha: 0},
		)
	}

	return FillResult{Fan: fan, Feather: feather, Concave: !isConvex(pts)}
}

func centroidOf(pts []Point) Point {
	var sum Point
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Div(float64(len(pts)))
}

// isConvex reports whether the polygon's consecutive edge cross products
// all share the same sign (spec.md §4.2 distinguishes convex-fan-direct
// from the concave stencil path).
func isConvex(pts []Point) bool {
	n := len(pts)
	if n < 4 {
		return true
	}
	sign := 0.0
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		c := pts[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if math.Abs(cross) < 1e-12 {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, cross)
		} else if math.Copysign(1, cross) != sign {
			return false
		}
	}
	return true
}
