// Package algorithm provides the small generic container primitives the
// rest of this module is built on: heap operations, a predicate-based
// sort, and binary-search bounds. Grounded on
// _examples/original_source/source/adk/runtime/algorithm.h, a C macro
// header instantiated per element type; Go generics let one
// implementation serve every caller instead of a macro per type.
package algorithm

// Less reports whether a orders before b.
type Less[T any] func(a, b T) bool

// MakeHeap arranges s into a max-heap under less, in place.
func MakeHeap[T any](s []T, less Less[T]) {
	for i := len(s)/2 - 1; i >= 0; i-- {
		heapify(s, i, len(s), less)
	}
}

// SortHeap converts a max-heap into ascending sorted order, in place.
func SortHeap[T any](s []T, less Less[T]) {
	for i := len(s) - 1; i > 0; i-- {
		s[0], s[i] = s[i], s[0]
		heapify(s, 0, i, less)
	}
}

func heapify[T any](s []T, ofs, n int, less Less[T]) {
	for {
		left, right := ofs*2+1, ofs*2+2
		largest := ofs
		if left < n && less(s[largest], s[left]) {
			largest = left
		}
		if right < n && less(s[largest], s[right]) {
			largest = right
		}
		if largest == ofs {
			return
		}
		s[ofs], s[largest] = s[largest], s[ofs]
		ofs = largest
	}
}

// Sort orders s ascending under less using heapsort, matching the
// original's sort_with_predicate_ (simplified from its introsort: Go's
// allocation-free heapsort gives the same O(n log n) worst case without
// needing a separate insertion-sort/quicksort hybrid).
func Sort[T any](s []T, less Less[T]) {
	MakeHeap(s, less)
	SortHeap(s, less)
}

// LowerBound returns the index of the first element in s that is not
// less than value (i.e. >= value under less), or len(s) if none.
func LowerBound[T any](s []T, value T, less Less[T]) int {
	left, right := 0, len(s)
	for left < right {
		mid := (left + right) / 2
		if less(s[mid], value) {
			left = mid + 1
		} else {
			right = mid
		}
	}
	return right
}

// UpperBound returns the index of the first element in s that is
// greater than value, or len(s) if none.
func UpperBound[T any](s []T, value T, less Less[T]) int {
	left, right := 0, len(s)
	for left < right {
		mid := (left + right) / 2
		if less(value, s[mid]) {
			right = mid
		} else {
			left = mid + 1
		}
	}
	return right
}

// Ring is a fixed-capacity ring buffer that overwrites its oldest element
// when full. The device's frame fences and the atlas's upload ring keep
// their own slices and do not use it.
type Ring[T any] struct {
	buf        []T
	head, size int
}

// NewRing constructs a ring of the given capacity.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v, overwriting the oldest element if the ring is full.
// Reports whether an element was overwritten.
func (r *Ring[T]) Push(v T) (overwrote bool) {
	idx := (r.head + r.size) % len(r.buf)
	if r.size == len(r.buf) {
		r.head = (r.head + 1) % len(r.buf)
		overwrote = true
	} else {
		r.size++
	}
	r.buf[idx] = v
	return overwrote
}

// Len returns the number of elements currently stored.
func (r *Ring[T]) Len() int { return r.size }

// At returns the i-th oldest element (0 is the oldest).
func (r *Ring[T]) At(i int) T {
	return r.buf[(r.head+i)%len(r.buf)]
}
