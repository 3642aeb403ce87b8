package canvas

// MappedVertexRange is a CPU-side staging area for vertices that the
// canvas owns exclusively between MapVertexRange and
// FinishVertexRange[WithCount] — spec.md §3's invariant: "no command
// submission during that window references it". Draw operations that
// build meshes incrementally (9-slice, SDF rects, image blits) map a
// range sized to their worst-case vertex count, append as they go, and
// finish it once, rather than building a Go slice and hoping nothing else
// observes it mid-build.
type MappedVertexRange struct {
	canvas   *Canvas
	vertices []Vertex
	cap      int
}

// MapVertexRange reserves a vertex range of the given capacity. Only one
// range may be mapped at a time per canvas; mapping while a previous
// range is still open returns ErrUnclosedVertexRange (spec.md §7
// "Invariant violation: trap" — this is the unchecked, caller-inspects-
// the-error form; see MapVertexRangeChecked for the trapping form).
func (c *Canvas) MapVertexRange(capacity int) (*MappedVertexRange, error) {
	if c.activeRange != nil {
		return nil, ErrUnclosedVertexRange
	}
	if capacity < 0 {
		capacity = 0
	}
	rng := &MappedVertexRange{canvas: c, vertices: make([]Vertex, 0, capacity), cap: capacity}
	c.activeRange = rng
	return rng, nil
}

// MapVertexRangeChecked is the trapping counterpart to MapVertexRange.
func (c *Canvas) MapVertexRangeChecked(capacity int) *MappedVertexRange {
	rng, err := c.MapVertexRange(capacity)
	if err != nil {
		panic(err)
	}
	return rng
}

// Append adds verts to the range, reporting false without modifying the
// range if doing so would exceed its mapped capacity. Callers (e.g.
// text.DrawPartialText's vertex-bank analogue) use a false return to
// detect overflow and finish-then-remap.
func (r *MappedVertexRange) Append(verts ...Vertex) bool {
	if r.cap > 0 && len(r.vertices)+len(verts) > r.cap {
		return false
	}
	r.vertices = append(r.vertices, verts...)
	return true
}

// Len returns the number of vertices written so far.
func (r *MappedVertexRange) Len() int { return len(r.vertices) }

// Vertices returns the vertices written so far, without closing the
// range.
func (r *MappedVertexRange) Vertices() []Vertex { return r.vertices }

// FinishVertexRange closes the range, releasing the canvas's exclusive
// hold on it, and returns every vertex written.
func (r *MappedVertexRange) FinishVertexRange() []Vertex {
	return r.FinishVertexRangeWithCount(len(r.vertices))
}

// FinishVertexRangeWithCount closes the range like FinishVertexRange but
// truncates the result to count vertices, for callers that over-reserved
// capacity and only partially filled it.
func (r *MappedVertexRange) FinishVertexRangeWithCount(count int) []Vertex {
	if count < 0 {
		count = 0
	}
	if count > len(r.vertices) {
		count = len(r.vertices)
	}
	if r.canvas != nil && r.canvas.activeRange == r {
		r.canvas.activeRange = nil
	}
	return r.vertices[:count]
}
