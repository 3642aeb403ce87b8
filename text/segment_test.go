package text

import "testing"

func TestBidiSegmenterSingleDirection(t *testing.T) {
	s := NewBidiSegmenter()
	segs := s.Segment("hello world")
	if len(segs) != 1 {
		t.Fatalf("expected a single LTR segment, got %d: %+v", len(segs), segs)
	}
	if segs[0].Direction != DirectionLTR {
		t.Fatalf("expected LTR, got %v", segs[0].Direction)
	}
}

func TestBidiSegmenterEmptyInput(t *testing.T) {
	s := NewBidiSegmenter()
	if segs := s.Segment(""); segs != nil {
		t.Fatalf("expected nil segments for empty input, got %+v", segs)
	}
}
