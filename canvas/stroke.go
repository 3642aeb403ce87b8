package canvas

// maxMiterLength clamps miter joins so near-180-degree turns don't spike
// (spec.md §4.2 "Stroke": "Miters ... clamped to a fixed maximum").
const maxMiterLength = 8.0

// Stroke tessellates a subpath of length >= 2 into a triangle-strip with
// an inner solid band of width lineWidth and an outer feather band of
// width featherWidth that fades to zero alpha (spec.md §4.2 "Stroke").
// The returned Mesh interleaves solid and feather vertices per side so a
// single triangle strip draws both bands; closed subpaths wrap the join
// between the last and first points.
func Stroke(sp Subpath, lineWidth, featherWidth float64) Mesh {
	n := len(sp.Points)
	if n < 2 {
		return Mesh{}
	}
	half := lineWidth / 2

	segCount := n - 1
	if sp.Closed {
		segCount = n
	}

	normals := make([]Point, segCount)
	for i := 0; i < segCount; i++ {
		a := sp.Points[i]
		b := sp.Points[(i+1)%n]
		d := b.Sub(a)
		l := d.Length()
		if l < 1e-9 {
			normals[i] = Point{X: 0, Y: 0}
			continue
		}
		d = d.Div(l)
		normals[i] = Point{X: -d.Y, Y: d.X}
	}

	vertexCount := n
	if sp.Closed {
		vertexCount = n + 1
	}

	mesh := Mesh{Mode: PrimitiveTriangleStrip}
	for i := 0; i < vertexCount; i++ {
		idx := i % n
		joinNormal := jointNormal(normals, i, segCount, sp.Closed)
		p := sp.Points[idx]

		innerOuter := joinNormal.Mul(half + featherWidth)
		innerInner := joinNormal.Mul(half)

		outerFeather := p.Add(innerOuter)
		outerSolid := p.Add(innerInner)
		innerSolidPt := p.Sub(innerInner)
		innerFeather := p.Sub(innerOuter)

		mesh.Vertices = append(mesh.Vertices,
			Vertex{X: outerFeather.X, Y: outerFeather.Y, Alpha: 0},
			Vertex{X: outerSolid.X, Y: outerSolid.Y, Alpha: 1},
			Vertex{X: innerSolidPt.X, Y: innerSolidPt.Y, Alpha: 1},
			Vertex{X: innerFeather.X, Y: innerFeather.Y, Alpha: 0},
		)
	}
	return mesh
}

// jointNormal averages the normals of the two segments meeting at vertex
// i and scales for the miter, clamped at maxMiterLength (spec.md §4.2).
func jointNormal(normals []Point, i, segCount int, closed bool) Point {
	var prev, next Point
	switch {
	case !closed && i == 0:
		next = normals[0]
		prev = next
	case !closed && i == segCount:
		prev = normals[segCount-1]
		next = prev
	default:
		prev = normals[(i-1+segCount)%segCount]
		next = normals[i%segCount]
	}

	sum := prev.Add(next)
	l := sum.Length()
	if l < 1e-9 {
		return next
	}
	avg := sum.Div(l)

	// Miter length scales as 1/cos(halfAngle) = |avg| relative to the
	// component of prev along avg; clamp to bound spikes at sharp turns.
	cosHalf := avg.Dot(next)
	if cosHalf < 1e-3 {
		cosHalf = 1e-3
	}
	miter := 1.0 / cosHalf
	if miter > maxMiterLength {
		miter = maxMiterLength
	}
	return avg.Mul(miter)
}
