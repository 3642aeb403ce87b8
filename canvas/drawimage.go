package canvas

// imageQuadUV returns the four corner UVs (top-left, top-right,
// bottom-right, bottom-left) for srcRect within an image of srcW x srcH
// pixels.
func imageQuadUV(srcW, srcH int, srcRect Rect) [4]Point {
	w, h := float64(srcW), float64(srcH)
	u0, v0 := srcRect.X/w, srcRect.Y/h
	u1, v1 := (srcRect.X+srcRect.W)/w, (srcRect.Y+srcRect.H)/h
	return [4]Point{{X: u0, Y: v0}, {X: u1, Y: v0}, {X: u1, Y: v1}, {X: u0, Y: v1}}
}

// quadMesh emits a six-vertex (two-triangle) textured quad over dst with
// the given corner UVs and flat alpha, through a mapped vertex range
// (spec.md §3 invariant: "a mapped vertex range is owned exclusively by
// the canvas between map_vertex_range and finish_vertex_range").
func (c *Canvas) quadMesh(dst Rect, uv [4]Point, alpha float32) Mesh {
	corners := [4]Point{
		{X: dst.X, Y: dst.Y},
		{X: dst.X + dst.W, Y: dst.Y},
		{X: dst.X + dst.W, Y: dst.Y + dst.H},
		{X: dst.X, Y: dst.Y + dst.H},
	}
	xf := c.Transform()
	for i := range corners {
		corners[i] = xf.TransformPoint(corners[i])
	}
	idx := [6]int{0, 1, 2, 0, 2, 3}

	rng := c.MapVertexRangeChecked(len(idx))
	for _, i := range idx {
		rng.Append(Vertex{X: corners[i].X, Y: corners[i].Y, U: uv[i].X, V: uv[i].Y, Alpha: alpha})
	}
	return Mesh{Mode: PrimitiveTriangles, Vertices: rng.FinishVertexRange()}
}

// shaderSelectionFor combines img's texture/alpha-mask bindings with the
// active blend/alpha-test state to build the inputs ShaderSelection.Select
// resolves to a concrete Shader (spec.md §4.2 "Shader selection").
func (c *Canvas) shaderSelectionFor(img *Image, forceAlphaMask bool) ShaderSelection {
	top := c.states.Top()
	hasMask := forceAlphaMask
	if img != nil && img.Textures.AlphaMask != 0 {
		hasMask = true
	}
	return ShaderSelection{
		HasTexture:   img != nil,
		HasAlphaMask: hasMask,
		HasAlphaTest: top.blend == BlendAlphaTest,
		AlphaTestMin: top.alphaTestThreshold,
	}
}

// DrawImage draws img at (x, y) in its native pixel size (spec.md §4.2
// "draw_image").
func (c *Canvas) DrawImage(img *Image, x, y float64) (Mesh, Shader) {
	full := Rect{X: 0, Y: 0, W: float64(img.Width), H: float64(img.Height)}
	return c.DrawImageRect(img, full, Rect{X: x, Y: y, W: full.W, H: full.H})
}

// DrawImageRect draws srcRect (in img's pixel space) into dstRect,
// transformed by the current matrix (spec.md §4.2 "draw_image_rect").
func (c *Canvas) DrawImageRect(img *Image, srcRect, dstRect Rect) (Mesh, Shader) {
	uv := imageQuadUV(img.Width, img.Height, srcRect)
	alpha := c.states.Top().globalAlpha
	mesh := c.quadMesh(dstRect, uv, alpha)
	return mesh, c.shaderSelectionFor(img, false).Select()
}

// DrawImageScale draws the whole of img scaled to fit dstRect (spec.md
// §4.2 "draw_image_scale").
func (c *Canvas) DrawImageScale(img *Image, dstRect Rect) (Mesh, Shader) {
	full := Rect{X: 0, Y: 0, W: float64(img.Width), H: float64(img.Height)}
	return c.DrawImageRect(img, full, dstRect)
}

// DrawImage9Slice draws img as a 9-slice panel into dst using (left,
// right, top, bottom) as both the destination and source margins (spec.md
// §4.2 "9-slice"), alpha-weighted by the current global alpha. The
// 28-vertex strip is re-emitted through a mapped vertex range like every
// other canvas draw op (spec.md §3 invariant on mapped vertex ranges).
func (c *Canvas) DrawImage9Slice(img *Image, dst Rect, left, right, top, bottom float64) (Mesh, Shader) {
	built := NineSlice(dst, left, right, top, bottom, img.Width, img.Height, left, right, top, bottom)
	alpha := c.states.Top().globalAlpha
	xf := c.Transform()

	rng := c.MapVertexRangeChecked(len(built.Vertices))
	for _, v := range built.Vertices {
		p := xf.TransformPoint(Pt(v.X, v.Y))
		v.X, v.Y = p.X, p.Y
		v.Alpha = alpha
		rng.Append(v)
	}
	mesh := Mesh{Mode: built.Mode, Vertices: rng.FinishVertexRange()}
	return mesh, c.shaderSelectionFor(img, false).Select()
}

// DrawImageRectAlphaMask draws srcRect of img's color texture masked by
// its bound alpha-mask texture into dstRect (spec.md §4.2
// "draw_image_rect_alpha_mask").
func (c *Canvas) DrawImageRectAlphaMask(img *Image, srcRect, dstRect Rect) (Mesh, Shader) {
	uv := imageQuadUV(img.Width, img.Height, srcRect)
	alpha := c.states.Top().globalAlpha
	mesh := c.quadMesh(dstRect, uv, alpha)
	return mesh, c.shaderSelectionFor(img, true).Select()
}
