package screenshot

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func checkerboard(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{R: 0, G: 255, B: 128, A: 200})
			}
		}
	}
	return img
}

func TestRoundTripPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	original := checkerboard(16, 16)

	if err := Save(path, original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ok, err := Compare(original, loaded, 0)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !ok {
		t.Fatal("expected PNG round-trip to reproduce the image exactly")
	}
}

func TestRoundTripTGA(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.tga")
	original := checkerboard(8, 8)

	if err := Save(path, original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ok, err := Compare(original, loaded, 0)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !ok {
		t.Fatal("expected TGA round-trip to reproduce the image exactly")
	}
}

func TestDumpDeltasFlagsDifference(t *testing.T) {
	dir := t.TempDir()
	a := checkerboard(4, 4)
	b := checkerboard(4, 4)
	b.Set(0, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 255})

	result, err := DumpDeltas(a, b, 10, filepath.Join(dir, "diff"))
	if err != nil {
		t.Fatalf("DumpDeltas: %v", err)
	}
	if result.FailCount == 0 {
		t.Fatal("expected at least one failing pixel")
	}
	if _, err := os.Stat(filepath.Join(dir, "diff_fail.png")); err != nil {
		t.Fatalf("expected failing-pixel overlay file: %v", err)
	}
}
