package cncbus

import (
	"sync"
	"sync/atomic"
)

// Handler processes one delivered message. It is invoked with the
// message's read cursor freshly reset to the first fragment (spec.md
// §4.4 step 2). A Handler must not retain msg beyond the call — its
// fragments are returned to the bus pool as soon as the handler returns
// and the message's reference count reaches zero.
type Handler func(msg *Message)

// Receiver is a connected bus endpoint: an address, a callback, and a
// per-receiver FIFO of messages waiting to be dispatched. Receivers are
// delivered to serially — a Receiver's Handler is never invoked from two
// goroutines at once — though no guarantee is made about which goroutine
// runs a given dispatch (spec.md §4.4 concurrency protocol).
type Receiver struct {
	addr    Address
	handler Handler

	pendingMu sync.Mutex
	pending   []*Message

	dispatchMu sync.Mutex // held for the duration of one receiver's Handler invocation(s)

	destroyed atomic.Bool
}

// Address returns the receiver's bus address.
func (r *Receiver) Address() Address { return r.addr }

// pendingCount returns the number of messages currently queued for this
// receiver.
func (r *Receiver) pendingCount() int {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()
	return len(r.pending)
}

// enqueue appends msg to the receiver's pending FIFO. Returns false if the
// receiver has been disconnected, in which case the caller must still
// release its reference on msg.
func (r *Receiver) enqueue(msg *Message) bool {
	if r.destroyed.Load() {
		return false
	}
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()
	if r.destroyed.Load() {
		return false
	}
	r.pending = append(r.pending, msg)
	return true
}

// drain removes and returns all pending messages, e.g. when the receiver
// is being disconnected and its backlog must be released without
// invoking the handler.
func (r *Receiver) drain() []*Message {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()
	out := r.pending
	r.pending = nil
	return out
}

// popSingle removes and returns the head of the FIFO, or nil if empty.
func (r *Receiver) popSingle() *Message {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()
	if len(r.pending) == 0 {
		return nil
	}
	m := r.pending[0]
	r.pending = r.pending[1:]
	return m
}

// popAll removes and returns the entire FIFO contents in order.
func (r *Receiver) popAll() []*Message {
	return r.drain()
}
