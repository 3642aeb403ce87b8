// Package cncbus implements the command-and-control message bus: an
// asynchronous, address-matched broadcast/unicast delivery system built on
// fixed-size fragment chains so that sending a message never allocates once
// the bus's fragment pool has been primed (see spec.md §4.4).
//
// Receivers connect with an address and receive messages addressed to them
// by (destination address, subnet mask) matching, always in the order they
// were sent. A sender does not block on a receiver's processing; delivery
// is handed off to the bus's per-receiver FIFO and drained by Dispatch.
//
// cncbus is how logging, metrics, and event routing are threaded through
// the rest of this module (see SPEC_FULL.md's AMBIENT STACK section) — it
// is the one piece of the core with no direct analogue in the teacher
// repository, so its concurrency protocol (hazard counters coordinating
// senders, dispatchers, and connect/disconnect) is implemented with Go's
// sync.RWMutex rather than hand-rolled spin-wait hazard words: a connect or
// disconnect needs exclusive access to the receiver table while sends and
// dispatches only need to read it, which is exactly what RWMutex gives for
// free.
package cncbus
