package text

import "testing"

func TestTextMeshMemoizationHitOnIdenticalInputs(t *testing.T) {
	o := LayoutOptions{FontHeight: 16}
	rect := Rect{X: 0, Y: 0, W: 100, H: 50}

	idA := NewTextMeshID("hello world", rect, 0, 7, "", o)
	idB := NewTextMeshID("hello world", rect, 0, 7, "", o)
	if !idA.Equal(idB) {
		t.Fatal("expected identical inputs to fingerprint identically")
	}

	cache := NewTextMeshCache(4)
	mesh := TextMesh{ID: idA, Mesh: 42}
	cache.Insert(mesh)

	got, ok := cache.Lookup(idB)
	if !ok {
		t.Fatal("expected a cache hit for identical fingerprint")
	}
	if got.Mesh != 42 {
		t.Fatalf("got mesh handle %v, want 42", got.Mesh)
	}
}

func TestTextMeshMemoizationMissOnTextChange(t *testing.T) {
	o := LayoutOptions{FontHeight: 16}
	rect := Rect{W: 100, H: 50}

	idA := NewTextMeshID("hello world", rect, 0, 7, "", o)
	idB := NewTextMeshID("hello there", rect, 0, 7, "", o)
	if idA.Equal(idB) {
		t.Fatal("expected different text to produce different fingerprints")
	}

	cache := NewTextMeshCache(4)
	cache.Insert(TextMesh{ID: idA, Mesh: 1})
	if _, ok := cache.Lookup(idB); ok {
		t.Fatal("expected a miss for a different fingerprint")
	}
}

func TestTextMeshCacheEvictsLRUWhenFull(t *testing.T) {
	o := LayoutOptions{FontHeight: 16}
	rect := Rect{W: 100, H: 50}
	cache := NewTextMeshCache(2)

	idA := NewTextMeshID("a", rect, 0, 1, "", o)
	idB := NewTextMeshID("b", rect, 0, 1, "", o)
	idC := NewTextMeshID("c", rect, 0, 1, "", o)

	cache.Insert(TextMesh{ID: idA, Mesh: 1})
	cache.Insert(TextMesh{ID: idB, Mesh: 2})
	// Touch A so B becomes the LRU entry.
	cache.Lookup(idA)
	cache.Insert(TextMesh{ID: idC, Mesh: 3})

	if _, ok := cache.Lookup(idB); ok {
		t.Fatal("expected B to have been evicted as least-recently-used")
	}
	if _, ok := cache.Lookup(idA); !ok {
		t.Fatal("expected A to survive eviction")
	}
	if _, ok := cache.Lookup(idC); !ok {
		t.Fatal("expected C to have been inserted")
	}
}

func TestTextMeshCacheEvictAll(t *testing.T) {
	o := LayoutOptions{FontHeight: 16}
	rect := Rect{W: 100, H: 50}
	cache := NewTextMeshCache(4)
	id := NewTextMeshID("x", rect, 0, 1, "", o)
	cache.Insert(TextMesh{ID: id, Mesh: 1})
	cache.EvictAll()
	if _, ok := cache.Lookup(id); ok {
		t.Fatal("expected lookup to miss after EvictAll")
	}
}
