package canvas

// Rect is an axis-aligned rectangle in canvas-local coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Intersect returns the intersection of r and other. The result has zero
// or negative width/height when the rectangles don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max64(r.X, other.X)
	y0 := max64(r.Y, other.Y)
	x1 := min64(r.X+r.W, other.X+other.W)
	y1 := min64(r.Y+r.H, other.Y+other.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether r has no positive area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether (x, y) lies within r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
