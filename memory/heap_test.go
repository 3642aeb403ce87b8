package memory

import "testing"

func TestHeapAllocFreeReuse(t *testing.T) {
	h := NewHeap(NewRegion(1024), GuardDisabled)

	a := h.Alloc(64, "test:a")
	if a == nil {
		t.Fatal("expected allocation to succeed")
	}
	if got := h.Stats().Live; got != 64 {
		t.Fatalf("live = %d, want 64", got)
	}

	h.Free(a)
	if got := h.Stats().Live; got != 0 {
		t.Fatalf("live after free = %d, want 0", got)
	}

	b := h.Alloc(64, "test:b")
	if b == nil {
		t.Fatal("expected reused allocation to succeed")
	}
}

func TestHeapExhaustion(t *testing.T) {
	h := NewHeap(NewRegion(16), GuardDisabled)
	if a := h.Alloc(32, "test"); a != nil {
		t.Fatal("expected nil on exhaustion")
	}
}

func TestHeapAllocCheckedPanics(t *testing.T) {
	h := NewHeap(NewRegion(16), GuardDisabled)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on checked exhaustion")
		}
	}()
	h.AllocChecked(32, "test")
}

func TestLeakReport(t *testing.T) {
	h := NewHeap(NewRegion(1024), GuardDisabled)
	h.Alloc(32, "leaked:tag")
	if r := h.LeakReport(); r == "" {
		t.Fatal("expected non-empty leak report")
	}
}

func TestLinearBlockResetReclaims(t *testing.T) {
	l := NewLinearBlock(NewRegion(128))
	if buf := l.Alloc(100); buf == nil {
		t.Fatal("expected alloc to succeed")
	}
	if l.Alloc(100) != nil {
		t.Fatal("expected second alloc to fail before reset")
	}
	l.Reset()
	if buf := l.Alloc(100); buf == nil {
		t.Fatal("expected alloc to succeed after reset")
	}
}
