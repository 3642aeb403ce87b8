package cncbus

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/adkcanvas/internal/algorithm"
)

// DispatchMode selects how much of a receiver's backlog Dispatch drains in
// one call (spec.md §4.4).
type DispatchMode int

const (
	DispatchSingleMessage DispatchMode = iota
	DispatchFlush
)

// DispatchResult reports the outcome of a Dispatch call.
type DispatchResult int

const (
	DispatchNoMessages DispatchResult = iota
	DispatchBusy
	DispatchOK
)

func (r DispatchResult) String() string {
	switch r {
	case DispatchNoMessages:
		return "no_messages"
	case DispatchBusy:
		return "busy"
	case DispatchOK:
		return "ok"
	default:
		return "unknown"
	}
}

// Bus routes messages to connected Receivers by address/subnet matching.
// The receiver table is kept sorted by address (spec.md §3 invariant) and
// is protected by an RWMutex: Send and Dispatch take the read lock (many
// concurrent readers, matching the spec's "read hazard"), Connect and
// Disconnect take the write lock (matching the spec's "cdc hazard", which
// spin-waits for readers to drain — RWMutex gives the same mutual
// exclusion without a manual spin loop).
type Bus struct {
	pool *Pool

	mu        sync.RWMutex
	receivers []*Receiver

	nextDispatch atomic.Int64
}

// NewBus constructs a Bus backed by pool for message fragment allocation.
func NewBus(pool *Pool) *Bus {
	return &Bus{pool: pool}
}

// Pool returns the bus's fragment pool, e.g. for tests asserting fragment
// conservation.
func (b *Bus) Pool() *Pool { return b.pool }

// Connect registers a new receiver at addr with the given handler and
// returns it. The receiver table stays address-sorted for the routing
// walk in Send.
func (b *Bus) Connect(addr Address, handler Handler) *Receiver {
	r := &Receiver{addr: addr, handler: handler}
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := algorithm.LowerBound(b.receivers, r, func(a, b *Receiver) bool { return a.addr < b.addr })
	b.receivers = append(b.receivers, nil)
	copy(b.receivers[idx+1:], b.receivers[idx:])
	b.receivers[idx] = r
	return r
}

// Disconnect removes r from the receiver table and drains (without
// invoking the handler) any backlog still queued for it, releasing each
// message's reference so other receivers' delivery is unaffected (spec.md
// §4.4: "on destroyed, just remove").
func (b *Bus) Disconnect(r *Receiver) {
	r.destroyed.Store(true)
	b.mu.Lock()
	for i, cur := range b.receivers {
		if cur == r {
			b.receivers = append(b.receivers[:i], b.receivers[i+1:]...)
			break
		}
	}
	b.mu.Unlock()

	for _, m := range r.drain() {
		m.release()
	}
}

// Send routes msg to every connected receiver whose address matches
// msg.Header.DestAddr/DestSubnet (broadcast when DestAddr is 0), then
// drops the sender's holding reference. Returns the number of receivers
// the message was handed to.
//
// Send never allocates: fan-out is bounded by the already-connected
// receiver count, and the fragment chain was already reserved when the
// message was built with Begin/Write.
func (b *Bus) Send(msg *Message) int {
	if !msg.markSent() {
		panic(ErrDoubleSend)
	}
	b.mu.RLock()
	matched := 0
	for _, r := range b.receivers {
		if !Matches(msg.Header.DestAddr, msg.Header.DestSubnet, r.addr) {
			continue
		}
		msg.addRef(1)
		if r.enqueue(msg) {
			matched++
		} else {
			// Receiver was concurrently disconnected; undo the speculative
			// ref we just added since enqueue refused it.
			msg.release()
		}
	}
	b.mu.RUnlock()
	msg.release() // drop the sender's own holding reference
	return matched
}

// Dispatch drains pending messages across connected receivers, starting
// from a rotating index so no single receiver starves the others.
// DispatchSingleMessage processes at most one message per receiver per
// call; DispatchFlush drains each receiver's entire backlog.
func (b *Bus) Dispatch(mode DispatchMode) DispatchResult {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := len(b.receivers)
	if n == 0 {
		return DispatchNoMessages
	}

	start := int(b.nextDispatch.Add(1)-1) % n
	if start < 0 {
		start += n
	}

	dispatchedAny := false
	sawBusy := false

	for i := 0; i < n; i++ {
		r := b.receivers[(start+i)%n]
		if r.pendingCount() == 0 {
			continue
		}
		if !r.dispatchMu.TryLock() {
			sawBusy = true
			continue
		}
		var msgs []*Message
		if mode == DispatchFlush {
			msgs = r.popAll()
		} else if m := r.popSingle(); m != nil {
			msgs = []*Message{m}
		}
		for _, m := range msgs {
			m.resetCursor()
			r.handler(m)
			m.release()
		}
		r.dispatchMu.Unlock()
		if len(msgs) > 0 {
			dispatchedAny = true
		}
	}

	switch {
	case dispatchedAny:
		return DispatchOK
	case sawBusy:
		return DispatchBusy
	default:
		return DispatchNoMessages
	}
}

// ReceiverCount returns the number of currently connected receivers.
func (b *Bus) ReceiverCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.receivers)
}
