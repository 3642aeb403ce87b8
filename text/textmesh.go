package text

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/gogpu/adkcanvas/device"
)

// TextMeshID fingerprints everything a cached text mesh depends on:
// the text content, layout rect, scroll offset, font, ellipsis string and
// layout options (spec.md §4.3 "Text-mesh memoization": "the id block is
// a CRC32 of text+rect+scroll+font_id+ellipses+options, plus the string
// length, font id, first 7 characters, and a has_ellipses flag").
type TextMeshID struct {
	CRC         uint32
	Length      int
	FontID      uint64
	First7      [7]rune
	HasEllipsis bool
}

// NewTextMeshID computes the fingerprint for one draw_partial_text-style
// call.
func NewTextMeshID(text string, rect Rect, scroll float64, fontID uint64, ellipses string, o LayoutOptions) TextMeshID {
	h := crc32.NewIEEE()
	h.Write([]byte(text))
	writeFloat64(h, rect.X)
	writeFloat64(h, rect.Y)
	writeFloat64(h, rect.W)
	writeFloat64(h, rect.H)
	writeFloat64(h, scroll)
	writeUint64(h, fontID)
	h.Write([]byte(ellipses))
	writeUint64(h, uint64(o.HAlign))
	writeUint64(h, uint64(o.VAlign))
	writeFloat64(h, o.FontHeight)
	writeFloat64(h, o.LineSpacingExtra)

	runes := []rune(text)
	var first7 [7]rune
	copy(first7[:], runes)

	return TextMeshID{
		CRC:         h.Sum32(),
		Length:      len(runes),
		FontID:      fontID,
		First7:      first7,
		HasEllipsis: ellipses != "",
	}
}

func writeUint64(h interface{ Write([]byte) (int, error) }, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.Write(b[:])
}

func writeFloat64(h interface{ Write([]byte) (int, error) }, v float64) {
	writeUint64(h, uint64(v*1000))
}

// Equal reports whether two fingerprints refer to the same cached mesh.
// The full CRC is authoritative; the remaining fields exist to let a
// caller cheaply reject a mismatch without recomputing the CRC of a new
// candidate.
func (id TextMeshID) Equal(other TextMeshID) bool {
	return id.CRC == other.CRC && id.Length == other.Length &&
		id.FontID == other.FontID && id.First7 == other.First7 &&
		id.HasEllipsis == other.HasEllipsis
}

// TextMesh is a built, GPU-uploadable glyph-quad mesh for one laid-out
// text block.
type TextMesh struct {
	ID       TextMeshID
	Mesh     device.MeshHandle
	RetireAt device.Fence
}

// textMeshSlot is one entry in the cache's fixed-capacity recency list.
type textMeshSlot struct {
	mesh TextMesh
	used bool
	prev, next int
}

// TextMeshCache is a fixed-capacity, doubly-linked recency cache of
// built text meshes (spec.md §4.3 "Text-mesh memoization"). Insert always
// takes a free slot or the least-recently-used one; it does not inspect
// glyph state, and choosing EvictAll instead is up to the caller.
type TextMeshCache struct {
	slots    []textMeshSlot
	headMRU  int
	tailLRU  int
	freeHead int
}

// NewTextMeshCache constructs a cache holding up to capacity meshes.
func NewTextMeshCache(capacity int) *TextMeshCache {
	if capacity < 1 {
		capacity = 1
	}
	c := &TextMeshCache{
		slots:    make([]textMeshSlot, capacity),
		headMRU:  -1,
		tailLRU:  -1,
		freeHead: 0,
	}
	for i := range c.slots {
		c.slots[i].prev = i - 1
		c.slots[i].next = i + 1
	}
	c.slots[len(c.slots)-1].next = -1
	return c
}

// Lookup returns the cached mesh matching id, moving it to most-recently-used.
func (c *TextMeshCache) Lookup(id TextMeshID) (TextMesh, bool) {
	for i := range c.slots {
		if c.slots[i].used && c.slots[i].mesh.ID.Equal(id) {
			c.touch(i)
			return c.slots[i].mesh, true
		}
	}
	return TextMesh{}, false
}

// Insert stores mesh, reusing a free slot or evicting the LRU entry.
func (c *TextMeshCache) Insert(mesh TextMesh) {
	var slot int
	if c.freeHead != -1 {
		slot = c.freeHead
		c.freeHead = c.slots[slot].next
	} else {
		slot = c.tailLRU
		c.unlink(slot)
	}
	c.slots[slot] = textMeshSlot{mesh: mesh, used: true}
	c.pushMRU(slot)
}

// EvictAll drops every cached mesh, matching a full atlas reset (spec.md
// §4.3 "otherwise evict the entire cache and rebuild").
func (c *TextMeshCache) EvictAll() {
	*c = *NewTextMeshCache(len(c.slots))
}

func (c *TextMeshCache) touch(i int) {
	if c.headMRU == i {
		return
	}
	c.unlink(i)
	c.pushMRU(i)
}

func (c *TextMeshCache) unlink(i int) {
	s := &c.slots[i]
	if s.prev != -1 {
		c.slots[s.prev].next = s.next
	} else if c.headMRU == i {
		c.headMRU = s.next
	}
	if s.next != -1 {
		c.slots[s.next].prev = s.prev
	} else if c.tailLRU == i {
		c.tailLRU = s.prev
	}
	s.prev, s.next = -1, -1
}

func (c *TextMeshCache) pushMRU(i int) {
	c.slots[i].prev = -1
	c.slots[i].next = c.headMRU
	if c.headMRU != -1 {
		c.slots[c.headMRU].prev = i
	}
	c.headMRU = i
	if c.tailLRU == -1 {
		c.tailLRU = i
	}
}
