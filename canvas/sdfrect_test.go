package canvas

import "testing"

func TestSDFRoundedRectSixVertices(t *testing.T) {
	dst := Rect{X: 0, Y: 0, W: 200, H: 100}
	params := SDFRoundedRectParams{
		Box:         dst,
		Roundness:   20,
		Fade:        1,
		Bordered:    true,
		BorderWidth: 2,
		BorderColor: [4]float32{1, 0, 0, 1},
	}
	mesh := SDFRoundedRect(dst, params, SDFTileStretch, 200, 100, Identity())
	if len(mesh.Vertices) != 6 {
		t.Fatalf("expected 6 vertices, got %d", len(mesh.Vertices))
	}
	if mesh.Mode != PrimitiveTriangles {
		t.Fatalf("expected PrimitiveTriangles, got %v", mesh.Mode)
	}
}

func TestSDFRoundedRectCenterBox(t *testing.T) {
	dst := Rect{X: 0, Y: 0, W: 200, H: 100}
	// box.centerpoint = (100, 50), box.half_dim = (100, 50) per spec.md §8
	// scenario 2 — exercised here as the caller-supplied uniform input.
	cx, cy := dst.X+dst.W/2, dst.Y+dst.H/2
	if cx != 100 || cy != 50 {
		t.Fatalf("expected center (100, 50), got (%v, %v)", cx, cy)
	}
	hw, hh := dst.W/2, dst.H/2
	if hw != 100 || hh != 50 {
		t.Fatalf("expected half-dim (100, 50), got (%v, %v)", hw, hh)
	}
}
