package canvas

// NineSlice decomposes dst into 9 regions using the (left, right, top,
// bottom) margins, stretching edges along their single axis and the
// centre along both, with corners drawn 1:1 texel-to-pixel using the
// normalized source margins. The whole panel is emitted as one
// degenerate-restarted triangle strip of exactly 28 vertices (spec.md
// §4.2 "9-slice"): a 4x4 point grid (3 rows of quads) walked row by row,
// with one repeated vertex at the end of each row and one at the start
// of the next to restart the strip without a seam.
func NineSlice(dst Rect, left, right, top, bottom float64, srcW, srcH int, srcLeft, srcRight, srcTop, srcBottom float64) Mesh {
	xs := [4]float64{dst.X, dst.X + left, dst.X + dst.W - right, dst.X + dst.W}
	ys := [4]float64{dst.Y, dst.Y + top, dst.Y + dst.H - bottom, dst.Y + dst.H}

	w, h := float64(srcW), float64(srcH)
	us := [4]float64{0, srcLeft / w, 1 - srcRight/w, 1}
	vs := [4]float64{0, srcTop / h, 1 - srcBottom/h, 1}

	mesh := Mesh{Mode: PrimitiveTriangleStrip}
	vert := func(col, row int) Vertex {
		return Vertex{X: xs[col], Y: ys[row], U: us[col], V: vs[row], Alpha: 1}
	}

	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			mesh.Vertices = append(mesh.Vertices, vert(col, row), vert(col, row+1))
		}
		if row < 2 {
			// Degenerate pair: repeat the strip's last vertex and the next
			// row's first vertex so the strip restarts without a seam.
			last := mesh.Vertices[len(mesh.Vertices)-1]
			mesh.Vertices = append(mesh.Vertices, last, vert(0, row+1))
		}
	}
	return mesh
}
