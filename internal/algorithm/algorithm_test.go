package algorithm

import (
	"math/rand"
	"sort"
	"testing"
)

func intLess(a, b int) bool { return a < b }

func isSorted(s []int) bool {
	for i := 1; i < len(s); i++ {
		if intLess(s[i], s[i-1]) {
			return false
		}
	}
	return true
}

func TestSortOrdersRandomInts(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	ints := make([]int, 2048)
	for i := range ints {
		ints[i] = r.Int()
	}
	if isSorted(ints) {
		t.Fatal("test input coincidentally sorted")
	}
	Sort(ints, intLess)
	if !isSorted(ints) {
		t.Fatal("expected Sort to produce ascending order")
	}
}

func TestMakeHeapThenSortHeapMatchesSort(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	ints := make([]int, 500)
	for i := range ints {
		ints[i] = r.Int()
	}
	want := append([]int(nil), ints...)
	sort.Ints(want)

	MakeHeap(ints, intLess)
	SortHeap(ints, intLess)
	for i := range ints {
		if ints[i] != want[i] {
			t.Fatalf("mismatch at %d: got %d, want %d", i, ints[i], want[i])
		}
	}
}

func TestLowerBoundUpperBound(t *testing.T) {
	s := []int{1, 2, 2, 2, 5, 9}
	if got := LowerBound(s, 2, intLess); got != 1 {
		t.Fatalf("LowerBound(2) = %d, want 1", got)
	}
	if got := UpperBound(s, 2, intLess); got != 4 {
		t.Fatalf("UpperBound(2) = %d, want 4", got)
	}
	if got := LowerBound(s, 0, intLess); got != 0 {
		t.Fatalf("LowerBound(0) = %d, want 0", got)
	}
	if got := LowerBound(s, 100, intLess); got != len(s) {
		t.Fatalf("LowerBound(100) = %d, want %d", got, len(s))
	}
}

func TestRingOverwritesOldestWhenFull(t *testing.T) {
	r := NewRing[int](3)
	r.Push(1)
	r.Push(2)
	r.Push(3)
	if overwrote := r.Push(4); !overwrote {
		t.Fatal("expected push into a full ring to overwrite")
	}
	if r.Len() != 3 {
		t.Fatalf("got len %d, want 3", r.Len())
	}
	got := []int{r.At(0), r.At(1), r.At(2)}
	want := []int{2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
