package cncbus

import "errors"

// ErrDoubleSend reports that Bus.Send was called twice for the same
// Message. Messages are immutable and single-owner once sent (spec.md §3
// invariant), so a second Send is a program error; per spec.md §7
// ("Invariant violation": trap), Send panics with this error rather than
// returning it.
var ErrDoubleSend = errors.New("cncbus: double-send of the same message")
