package canvas

import "testing"

func TestFillNormalizesToCW(t *testing.T) {
	// A CCW unit triangle in standard math orientation.
	ccw := Subpath{Points: []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, Closed: true}
	if ccw.winding() <= 0 {
		t.Fatal("test fixture should be CCW (positive winding) before normalization")
	}
	ccw.normalizeCW()
	if ccw.winding() > 0 {
		t.Fatal("expected CW winding after normalizeCW")
	}

	cw := Subpath{Points: []Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}}, Closed: true}
	if cw.winding() > 0 {
		t.Fatal("test fixture should already be CW")
	}
	before := append([]Point(nil), cw.Points...)
	cw.normalizeCW()
	for i := range before {
		if cw.Points[i] != before[i] {
			t.Fatal("already-CW subpath should not be reversed")
		}
	}
}

func TestTriangleFillEndToEnd(t *testing.T) {
	p := NewPath(Identity(), 64)
	p.BeginPath()
	p.MoveTo(0, 0)
	p.LineTo(100, 0)
	p.LineTo(0, 100)
	p.ClosePath()
	p.EndPath()

	subs := p.Subpaths()
	if len(subs) != 1 {
		t.Fatalf("expected 1 subpath, got %d", len(subs))
	}
	if len(subs[0].Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(subs[0].Points))
	}

	result := Fill(subs[0], 1.0)
	if len(result.Fan.Vertices) != 3 {
		t.Fatalf("expected fan of 3 vertices, got %d", len(result.Fan.Vertices))
	}
	if result.Concave {
		t.Fatal("a triangle is always convex")
	}
}

func TestArcTessellationBounds(t *testing.T) {
	const maxSteps = 32
	p := NewPath(Identity(), maxSteps)
	p.MoveTo(10, 0)
	p.Arc(0, 0, 10, 0, 2*pi, false)

	subs := p.Subpaths()
	if len(subs) != 1 {
		t.Fatalf("expected 1 subpath, got %d", len(subs))
	}
	if len(subs[0].Points) > maxSteps+1 {
		t.Fatalf("arc emitted %d points, want <= %d", len(subs[0].Points), maxSteps+1)
	}
}

func TestStateStackSaveRestoreBalance(t *testing.T) {
	c := New(Config{MaxStates: 3, MaxTessellationSteps: 8})
	if err := c.Save(); err != nil {
		t.Fatalf("first Save should succeed: %v", err)
	}
	if err := c.Save(); err != nil {
		t.Fatalf("second Save should succeed: %v", err)
	}
	if err := c.Save(); err == nil {
		t.Fatal("Save beyond MaxStates should fail")
	}
	c.Restore()
	c.Restore()
	if c.StateDepth() != 1 {
		t.Fatalf("expected depth 1 after two restores, got %d", c.StateDepth())
	}
}

func TestRestoreCheckedPanicsAtBaseDepth(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected RestoreChecked to panic at depth 1")
		}
	}()
	c := New(Config{MaxStates: 4, MaxTessellationSteps: 8})
	c.RestoreChecked()
}
