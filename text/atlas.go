package text

import "github.com/gogpu/adkcanvas/device"

// Atlas is an R8 glyph atlas built incrementally from rasterized glyph
// outlines (spec.md §4.3 "maintain an R8 glyph atlas"). Packing uses a
// simple shelf packer; the dirty rect tracks the union of all writes
// since the last upload.
type Atlas struct {
	Width, Height int
	shelfY        int
	shelfX        int
	shelfH        int

	dirty      bool
	dirtyX0, dirtyY0, dirtyX1, dirtyY1 int

	uploads *uploadRing
}

// NewAtlas constructs an empty atlas of the given dimensions, with a
// bounded ring of nRegions outstanding upload regions (spec.md §4.3
// "Atlas upload": "A bounded ring of upload regions tracks outstanding
// uploads by fence").
func NewAtlas(width, height, nRegions int) *Atlas {
	return &Atlas{Width: width, Height: height, uploads: newUploadRing(nRegions)}
}

// PackRect reserves a w x h rectangle using a shelf packer, returning its
// origin and false if the atlas is full (spec.md §4.3 "Packing uses a
// standard rect packer"; "packing_failed" is recorded by the caller).
func (a *Atlas) PackRect(w, h int) (x, y int, ok bool) {
	if a.shelfX+w > a.Width {
		a.shelfY += a.shelfH
		a.shelfX = 0
		a.shelfH = 0
	}
	if a.shelfY+h > a.Height {
		return 0, 0, false
	}
	x, y = a.shelfX, a.shelfY
	a.shelfX += w
	if h > a.shelfH {
		a.shelfH = h
	}
	a.markDirty(x, y, x+w, y+h)
	return x, y, true
}

func (a *Atlas) markDirty(x0, y0, x1, y1 int) {
	if !a.dirty {
		a.dirtyX0, a.dirtyY0, a.dirtyX1, a.dirtyY1 = x0, y0, x1, y1
		a.dirty = true
		return
	}
	if x0 < a.dirtyX0 {
		a.dirtyX0 = x0
	}
	if y0 < a.dirtyY0 {
		a.dirtyY0 = y0
	}
	if x1 > a.dirtyX1 {
		a.dirtyX1 = x1
	}
	if y1 > a.dirtyY1 {
		a.dirtyY1 = y1
	}
}

// Reset clears packing state, the dirty rect, and every pending upload
// region (spec.md §4.3 "resets the atlas").
func (a *Atlas) Reset() {
	a.shelfX, a.shelfY, a.shelfH = 0, 0, 0
	a.dirty = false
	a.uploads.reset()
}

// DirtyRect returns the union of writes since the last TakeUploadRegion
// or Reset, and whether anything is dirty.
func (a *Atlas) DirtyRect() (x0, y0, x1, y1 int, ok bool) {
	return a.dirtyX0, a.dirtyY0, a.dirtyX1, a.dirtyY1, a.dirty
}

// TakeUploadRegion reserves a ring slot for the dirty rect's upload,
// reusing the region behind the oldest retired fence (spec.md §4.3: "new
// uploads reuse the region behind the oldest retired fence, waiting if
// necessary"). Callers needing the wait should pass a waitFn that blocks
// on a fence; TakeUploadRegion calls it on every acquire with the slot's
// previous fence, which is the zero fence until the ring has wrapped.
func (a *Atlas) TakeUploadRegion(fence device.Fence, waitFn func(device.Fence)) int {
	slot := a.uploads.acquire(fence, waitFn)
	a.dirty = false
	return slot
}

// uploadRing is a fixed-size ring of outstanding upload fences.
type uploadRing struct {
	fences []device.Fence
	next   int
}

func newUploadRing(n int) *uploadRing {
	if n < 1 {
		n = 1
	}
	return &uploadRing{fences: make([]device.Fence, n)}
}

func (r *uploadRing) acquire(fence device.Fence, waitFn func(device.Fence)) int {
	slot := r.next
	r.next = (r.next + 1) % len(r.fences)
	if waitFn != nil {
		waitFn(r.fences[slot])
	}
	r.fences[slot] = fence
	return slot
}

func (r *uploadRing) reset() {
	for i := range r.fences {
		r.fences[i] = device.Fence{}
	}
	r.next = 0
}
