package cncbus

import (
	"sync"
	"sync/atomic"
)

// SeekWhence selects the origin for Message.Seek, mirroring
// cncbus_msg_seek_e in the original source.
type SeekWhence int

const (
	SeekSet SeekWhence = iota
	SeekCur
	SeekEnd
)

// FOURCC is a 4-character-code message type tag (see spec.md §6).
type FOURCC uint32

// MakeFOURCC packs four ASCII bytes into a FOURCC, least-significant byte
// first, matching the header's on-wire byte order.
func MakeFOURCC(a, b, c, d byte) FOURCC {
	return FOURCC(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// Header is the fixed header every bus message carries in its first
// fragment (spec.md §3 "Bus message").
type Header struct {
	Type        FOURCC
	Size        uint32 // payload size; grows monotonically, may be set explicitly
	TimeMS      uint32
	ReplyAddr   Address
	DestAddr    Address
	DestSubnet  Mask
}

// Message is an immutable-once-sent chain of fixed-size fragments plus a
// read/write cursor. A Message is constructed via Begin, written to
// with Write while still owned by the sender, and after Send is called it
// must not be mutated further (spec.md §3 invariant: "Messages are
// immutable once sent").
//
// ref_count tracks 1 (the sender's holding reference) plus one for every
// receiver that has not yet processed the message; when it reaches zero
// the fragment chain returns to the pool and any waiter is woken.
type Message struct {
	Header Header

	pool *Pool
	head *fragment
	tail *fragment

	refCount atomic.Int32
	sent     atomic.Bool

	mu       sync.Mutex
	readFrag *fragment
	readOfs  int
	cursor   int // absolute read position, for Tell

	done chan struct{} // closed once refCount reaches zero
}

// Begin reserves the message's first fragment from pool and returns a new
// Message with ref_count 1 (the sender's reference). Returns (nil, false)
// if the pool is exhausted — the checked variant, BeginChecked, traps
// instead, per the spec's resource-exhaustion policy (§7).
func Begin(pool *Pool, hdr Header) (*Message, bool) {
	f, ok := pool.TryAlloc()
	if !ok {
		return nil, false
	}
	m := &Message{Header: hdr, pool: pool, head: f, tail: f, done: make(chan struct{})}
	m.readFrag = f
	m.refCount.Store(1)
	return m, true
}

// BeginChecked is the trapping counterpart to Begin.
func BeginChecked(pool *Pool, hdr Header) *Message {
	m, ok := Begin(pool, hdr)
	if !ok {
		panic("cncbus: fragment pool exhausted in Begin")
	}
	return m
}

// Reserve ensures at least n more bytes of payload capacity exist beyond
// what has already been written, growing the fragment chain as needed.
// Returns false if the pool cannot supply enough fragments.
func (m *Message) Reserve(n int) bool {
	have := FragmentBytes - m.tail.used
	for have < n {
		f, ok := m.pool.TryAlloc()
		if !ok {
			return false
		}
		m.tail.next = f
		m.tail = f
		have += FragmentBytes
	}
	return true
}

// Write appends data to the message, growing the fragment chain as needed.
// Returns false (the "_unchecked" convention) if the pool is exhausted
// mid-write; WriteChecked traps instead.
func (m *Message) Write(data []byte) bool {
	if !m.Reserve(len(data)) {
		return false
	}
	remaining := data
	for len(remaining) > 0 {
		space := FragmentBytes - m.tail.used
		n := len(remaining)
		if n > space {
			n = space
		}
		copy(m.tail.buf[m.tail.used:], remaining[:n])
		m.tail.used += n
		remaining = remaining[n:]
		if len(remaining) > 0 {
			f, ok := m.pool.TryAlloc()
			if !ok {
				return false
			}
			m.tail.next = f
			m.tail = f
		}
	}
	m.Header.Size += uint32(len(data))
	return true
}

// WriteChecked is the trapping counterpart to Write.
func (m *Message) WriteChecked(data []byte) {
	if !m.Write(data) {
		panic("cncbus: fragment pool exhausted in Write")
	}
}

// SetSize explicitly sets the message's logical payload size. Per spec.md
// §3, size grows monotonically with writes and "may be explicitly set" —
// a set below the already-written size is ignored.
func (m *Message) SetSize(n uint32) {
	if n > m.Header.Size {
		m.Header.Size = n
	}
}

// Size returns the message's current logical payload size in bytes.
func (m *Message) Size() int { return int(m.Header.Size) }

// resetCursor rewinds the read cursor to the first payload byte of head.
func (m *Message) resetCursor() {
	m.readFrag = m.head
	m.readOfs = 0
	m.cursor = 0
}

// Read copies up to len(buf) bytes from the current cursor position,
// advancing the cursor, and returns the number of bytes read.
func (m *Message) Read(buf []byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for n < len(buf) && m.readFrag != nil {
		avail := m.readFrag.used - m.readOfs
		if avail <= 0 {
			m.readFrag = m.readFrag.next
			m.readOfs = 0
			continue
		}
		want := len(buf) - n
		if want > avail {
			want = avail
		}
		copy(buf[n:], m.readFrag.buf[m.readOfs:m.readOfs+want])
		m.readOfs += want
		n += want
		m.cursor += want
	}
	return n
}

// Tell returns the current read-cursor position.
func (m *Message) Tell() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// Seek repositions the read cursor. The common in-fragment case (moving
// within the fragment currently under the cursor) is O(1); crossing
// fragment boundaries re-walks the chain from the head, which is the
// "slow cross-fragment re-walk path" the spec calls out (§4.4).
func (m *Message) Seek(whence SeekWhence, offset int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var target int
	switch whence {
	case SeekSet:
		target = offset
	case SeekCur:
		target = m.cursor + offset
	case SeekEnd:
		target = m.Size() + offset
	}
	if target < 0 {
		target = 0
	}
	if target == m.cursor {
		return
	}
	// Fast path: forward seek within the current fragment.
	if target > m.cursor {
		delta := target - m.cursor
		if m.readOfs+delta <= m.readFrag.used {
			m.readOfs += delta
			m.cursor = target
			return
		}
	}
	// Slow path: re-walk from the head.
	m.readFrag = m.head
	m.readOfs = 0
	m.cursor = 0
	remaining := target
	for remaining > 0 && m.readFrag != nil {
		if remaining <= m.readFrag.used {
			m.readOfs = remaining
			m.cursor += remaining
			return
		}
		remaining -= m.readFrag.used
		m.cursor += m.readFrag.used
		m.readFrag = m.readFrag.next
	}
}

// markSent flips the message to sent, reporting false if it was already
// sent (spec.md §3 "Messages are immutable once sent"). Bus.Send uses
// this to trap a double-send rather than fan a message out twice.
func (m *Message) markSent() bool {
	return m.sent.CompareAndSwap(false, true)
}

// addRef increments the reference count by delta (used when handing the
// message to n additional receivers at send time).
func (m *Message) addRef(delta int32) {
	m.refCount.Add(delta)
}

// release decrements the reference count; at zero, the fragment chain is
// returned to the pool and any Wait is woken.
func (m *Message) release() {
	if m.refCount.Add(-1) == 0 {
		m.pool.freeChain(m.head)
		close(m.done)
	}
}

// Wait blocks until the message's reference count has reached zero, i.e.
// every matched receiver has processed it (or been disconnected).
func (m *Message) Wait() {
	<-m.done
}
