package canvas

import "math"

// SDFTiling selects how source UVs are computed for an SDF-rounded-rect
// image draw (spec.md §4.2 "SDF rounded rect").
type SDFTiling int

const (
	SDFTileStretch SDFTiling = iota
	SDFTileRelative
	SDFTileAbsolute
)

// SDFRoundedRectParams are the fragment-shader uniforms for an SDF
// rounded rect draw.
type SDFRoundedRectParams struct {
	Box       Rect    // box the signed-distance field is evaluated against
	Roundness float64
	Fade      float64 // extra antialiasing band width
	Bordered  bool
	BorderWidth float64
	BorderColor [4]float32
}

// SDFRoundedRect builds the minimal six-vertex quad (two triangles)
// covering dst, expanded by BorderWidth when a border is requested
// (spec.md §4.2 "SDF rounded rect": "a minimal six-vertex quad"). UVs are
// computed per the requested tiling mode.
func SDFRoundedRect(dst Rect, params SDFRoundedRectParams, tiling SDFTiling, srcW, srcH int, xf Matrix) Mesh {
	pad := 0.0
	if params.Bordered {
		pad = params.BorderWidth
	}
	r := Rect{X: dst.X - pad, Y: dst.Y - pad, W: dst.W + 2*pad, H: dst.H + 2*pad}

	corners := [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
	uvs := sdfUVs(r, tiling, srcW, srcH, xf)

	mesh := Mesh{Mode: PrimitiveTriangles}
	idx := [6]int{0, 1, 2, 0, 2, 3}
	for _, i := range idx {
		mesh.Vertices = append(mesh.Vertices, Vertex{X: corners[i].X, Y: corners[i].Y, U: uvs[i].X, V: uvs[i].Y, Alpha: 1})
	}
	return mesh
}

func sdfUVs(r Rect, tiling SDFTiling, srcW, srcH int, xf Matrix) [4]Point {
	switch tiling {
	case SDFTileRelative:
		scale := xf.ViewScale()
		sw := float64(srcW) * scale
		sh := float64(srcH) * scale
		return [4]Point{
			{X: 0, Y: 0},
			{X: r.W / sw, Y: 0},
			{X: r.W / sw, Y: r.H / sh},
			{X: 0, Y: r.H / sh},
		}
	case SDFTileAbsolute:
		scale := xf.ViewScale()
		sw := float64(srcW)
		sh := float64(srcH)
		u0 := mod(r.X*scale, sw) / sw
		v0 := mod(r.Y*scale, sh) / sh
		u1 := u0 + r.W*scale/sw
		v1 := v0 + r.H*scale/sh
		return [4]Point{{X: u0, Y: v0}, {X: u1, Y: v0}, {X: u1, Y: v1}, {X: u0, Y: v1}}
	default: // SDFTileStretch
		return [4]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	}
}

// sdfMesh builds an SDFRoundedRect mesh and re-emits its vertices through
// a mapped vertex range so SDF draws share the same ownership discipline
// as every other canvas draw op (spec.md §3 invariant on mapped vertex
// ranges).
func (c *Canvas) sdfMesh(dst Rect, params SDFRoundedRectParams, tiling SDFTiling, srcW, srcH int) Mesh {
	built := SDFRoundedRect(dst, params, tiling, srcW, srcH, c.Transform())
	rng := c.MapVertexRangeChecked(len(built.Vertices))
	for _, v := range built.Vertices {
		rng.Append(v)
	}
	return Mesh{Mode: built.Mode, Vertices: rng.FinishVertexRange()}
}

// SDFFillRectRounded fills dst with a rounded-rect signed-distance shape
// using the current fill color and no texture (spec.md §4.2
// "sdf_fill_rect_rounded").
func (c *Canvas) SDFFillRectRounded(dst Rect, params SDFRoundedRectParams) (Mesh, Shader) {
	mesh := c.sdfMesh(dst, params, SDFTileStretch, 1, 1)
	sel := ShaderSelection{SDFRounded: true, SDFBordered: params.Bordered}
	return mesh, sel.Select()
}

// SDFDrawImageRectRounded draws img inside a rounded-rect SDF mask with
// the requested tiling (spec.md §4.2 "sdf_draw_image_rect_rounded").
func (c *Canvas) SDFDrawImageRectRounded(img *Image, dst Rect, params SDFRoundedRectParams, tiling SDFTiling) (Mesh, Shader) {
	mesh := c.sdfMesh(dst, params, tiling, img.Width, img.Height)
	sel := ShaderSelection{HasTexture: true, SDFRounded: true, SDFBordered: params.Bordered}
	return mesh, sel.Select()
}

// SDFFillImageRectRounded is SDFDrawImageRectRounded sourced from the
// current fill style's bound image rather than an explicit argument
// (spec.md §4.2 "sdf_fill_image_rect_rounded"; "Style": "fill style with
// image binding"). With no image bound it falls back to
// SDFFillRectRounded.
func (c *Canvas) SDFFillImageRectRounded(dst Rect, params SDFRoundedRectParams, tiling SDFTiling) (Mesh, Shader) {
	img := c.states.Top().imageBinding
	if img == nil {
		return c.SDFFillRectRounded(dst, params)
	}
	return c.SDFDrawImageRectRounded(img, dst, params, tiling)
}

func mod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}
