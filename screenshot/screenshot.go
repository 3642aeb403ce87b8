// Package screenshot implements the capture/save/load/compare/dump-deltas
// workflow used by visual regression tooling around the canvas engine
// (spec.md §6 "Screenshots": "the screenshot subsystem exposes capture,
// save, load, compare(tolerance) and dump_deltas(threshold, prefix)").
// PNG decode/encode uses the standard library's image/png, the same way
// the canvas engine treats bundle/image decoders as an external
// collaborator (spec.md §1); TGA has no library in the reference pack,
// so this package carries a small uncompressed-TGA codec as the
// narrowest stdlib-adjacent option rather than fabricating a dependency.
package screenshot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// Capture reads back pixels from src into an *image.NRGBA. The actual
// pixel readback (RHI-specific) is left to the caller; Capture just
// packs already-read RGBA bytes into an image.Image, matching the
// "core consumes decoded pixel buffers" boundary (spec.md §1).
func Capture(width, height int, rgba []byte) (*image.NRGBA, error) {
	if len(rgba) != width*height*4 {
		return nil, fmt.Errorf("screenshot: expected %d bytes, got %d", width*height*4, len(rgba))
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, rgba)
	return img, nil
}

// Save writes img to path as PNG or TGA, chosen by extension.
func Save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()

	switch filepath.Ext(path) {
	case ".png":
		return png.Encode(w, img)
	case ".tga":
		return encodeTGA(w, img)
	default:
		return fmt.Errorf("screenshot: unsupported extension %q", filepath.Ext(path))
	}
}

// Load reads an image previously written by Save.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".png":
		return png.Decode(bufio.NewReader(f))
	case ".tga":
		return decodeTGA(bufio.NewReader(f))
	default:
		return nil, fmt.Errorf("screenshot: unsupported extension %q", filepath.Ext(path))
	}
}

// Compare reports whether a and b are equal within tolerance per color
// channel (0 means exact match, required for lossless round-trip per
// spec.md §8 "load(save(image)) reproduces the image within tolerance 0
// for lossless formats").
func Compare(a, b image.Image, tolerance int) (bool, error) {
	ba, bb := a.Bounds(), b.Bounds()
	if ba.Dx() != bb.Dx() || ba.Dy() != bb.Dy() {
		return false, fmt.Errorf("screenshot: size mismatch %v vs %v", ba.Size(), bb.Size())
	}
	for y := 0; y < ba.Dy(); y++ {
		for x := 0; x < ba.Dx(); x++ {
			ar, ag, ab, aa := a.At(ba.Min.X+x, ba.Min.Y+y).RGBA()
			br, bg, bb2, ba2 := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if !within(ar, br, tolerance) || !within(ag, bg, tolerance) || !within(ab, bb2, tolerance) || !within(aa, ba2, tolerance) {
				return false, nil
			}
		}
	}
	return true, nil
}

func within(a, b uint32, tolerance int) bool {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

// DeltaResult is the output of DumpDeltas: a failing-pixel overlay image
// and a per-channel delta image (spec.md §6 "dump_deltas(threshold,
// prefix) producing a failing-pixels overlay and a per-channel delta
// image").
type DeltaResult struct {
	FailingPixels *image.NRGBA
	ChannelDelta  *image.NRGBA
	FailCount     int
}

// DumpDeltas computes a failing-pixel overlay (red where channel delta
// exceeds threshold) and a per-channel delta visualization between a and
// b, then saves both under prefix+"_fail.png" and prefix+"_delta.png".
func DumpDeltas(a, b image.Image, threshold int, prefix string) (DeltaResult, error) {
	bounds := a.Bounds()
	fail := image.NewNRGBA(bounds)
	delta := image.NewNRGBA(bounds)
	count := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ar, ag, ab, aa := a.At(x, y).RGBA()
			br, bg, bb, ba := b.At(x, y).RGBA()
			dr, dg, db, da := chanDelta(ar, br), chanDelta(ag, bg), chanDelta(ab, bb), chanDelta(aa, ba)
			delta.Set(x, y, color.NRGBA{R: dr, G: dg, B: db, A: 255})

			failed := int(dr) > threshold || int(dg) > threshold || int(db) > threshold || int(da) > threshold
			if failed {
				count++
				fail.Set(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				fail.Set(x, y, color.NRGBA{A: 255})
			}
		}
	}

	if err := Save(prefix+"_fail.png", fail); err != nil {
		return DeltaResult{}, err
	}
	if err := Save(prefix+"_delta.png", delta); err != nil {
		return DeltaResult{}, err
	}
	return DeltaResult{FailingPixels: fail, ChannelDelta: delta, FailCount: count}, nil
}

func chanDelta(a, b uint32) uint8 {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		d = -d
	}
	return uint8(d)
}

// --- minimal uncompressed 32bpp TGA codec ---

func encodeTGA(w io.Writer, img image.Image) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	header := make([]byte, 18)
	header[2] = 2 // uncompressed true-color
	binary.LittleEndian.PutUint16(header[12:14], uint16(width))
	binary.LittleEndian.PutUint16(header[14:16], uint16(height))
	header[16] = 32 // bits per pixel
	header[17] = 0x20 // top-left origin
	if _, err := w.Write(header); err != nil {
		return err
	}
	row := make([]byte, width*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := x * 4
			row[i+0] = c.B
			row[i+1] = c.G
			row[i+2] = c.R
			row[i+3] = c.A
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func decodeTGA(r io.Reader) (image.Image, error) {
	header := make([]byte, 18)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if header[2] != 2 {
		return nil, fmt.Errorf("screenshot: only uncompressed true-color TGA is supported")
	}
	width := int(binary.LittleEndian.Uint16(header[12:14]))
	height := int(binary.LittleEndian.Uint16(header[14:16]))
	bpp := int(header[16])
	if bpp != 32 && bpp != 24 {
		return nil, fmt.Errorf("screenshot: unsupported TGA bit depth %d", bpp)
	}
	topLeft := header[17]&0x20 != 0

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	row := make([]byte, width*(bpp/8))
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, err
		}
		destY := y
		if !topLeft {
			destY = height - 1 - y
		}
		for x := 0; x < width; x++ {
			i := x * (bpp / 8)
			a := uint8(255)
			if bpp == 32 {
				a = row[i+3]
			}
			img.Set(x, destY, color.NRGBA{R: row[i+2], G: row[i+1], B: row[i+0], A: a})
		}
	}
	return img, nil
}
