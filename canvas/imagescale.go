package canvas

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// ScaleImage resizes src into an NRGBA image of the given dimensions
// using Catmull-Rom resampling, the same resampler the teacher's color
// bitmap-glyph path uses for its PNG layer scaling (spec.md §4.1
// draw_image: scaled blits onto the canvas go through a single
// resampling path shared with bitmap glyph compositing).
func ScaleImage(src image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// CompositeOver draws src onto dst at origin using straight alpha-over
// compositing, the stdlib complement to ScaleImage for same-size blits
// that don't need resampling.
func CompositeOver(dst draw.Image, src image.Image, origin image.Point) {
	draw.Draw(dst, image.Rect(origin.X, origin.Y, origin.X+src.Bounds().Dx(), origin.Y+src.Bounds().Dy()), src, src.Bounds().Min, draw.Over)
}
