package device

// CommandStream wraps a currently-latched CommandBuffer plus the fence of
// the last submission made through it (spec.md §3 "Command stream").
// Writes use the write-or-flush protocol: if a command does not fit in the
// latched buffer, the stream flushes (submits the buffer, latches a new
// one) and retries. A stream may have flushing disabled, in which case
// overflow is a program error.
type CommandStream struct {
	device    *Device
	order     OrderClass
	buf       *CommandBuffer
	lastFence Fence
	dirty     bool // true if buf has writes not covered by lastFence
	allowFlush bool
}

// newCommandStream latches an initial buffer from device.
func newCommandStream(d *Device, order OrderClass, allowFlush bool) *CommandStream {
	s := &CommandStream{device: d, order: order, allowFlush: allowFlush}
	s.buf = d.GetCmdBuf(Wait)
	s.buf.order = order
	return s
}

// Write encodes one opcode+payload, flushing and retrying if necessary.
// Returns false ("_unchecked" convention) if flushing is disabled and the
// command does not fit, or if a required fresh buffer could not be
// obtained.
func (s *CommandStream) Write(op Opcode, payload []byte) bool {
	if s.buf.WriteCommand(op, payload) {
		s.dirty = true
		return true
	}
	if !s.allowFlush {
		return false
	}
	s.Flush()
	if !s.buf.WriteCommand(op, payload) {
		// A single command larger than an entire fresh buffer: nothing we
		// can do; this is the same "fatal" case as flush-disabled overflow.
		return false
	}
	s.dirty = true
	return true
}

// WriteChecked is the trapping counterpart to Write, for call sites where
// overflow can only mean a program error (oversize payload or
// flush-disabled stream misuse).
func (s *CommandStream) WriteChecked(op Opcode, payload []byte) {
	if !s.Write(op, payload) {
		panic("device: command stream overflow with flushing disabled")
	}
}

// Flush submits the currently latched buffer (if it has any writes) and
// latches a fresh one, recording the submission's fence as lastFence.
func (s *CommandStream) Flush() {
	if s.buf.Len() > 0 {
		s.lastFence = s.device.SubmitCmdBuf(s.buf, s.order)
	}
	s.dirty = false
	if fresh := s.device.GetCmdBuf(Wait); fresh != nil {
		s.buf = fresh
		s.buf.order = s.order
	}
}

// Fence returns the fence of the stream's last submission. If writes have
// happened since then that haven't been flushed, the fence does not yet
// cover them — use ConditionalFlushAndCheckFence/ConditionalFlushAndWaitFence
// when the caller needs to observe those writes too.
func (s *CommandStream) Fence() Fence { return s.lastFence }

// ConditionalFlushAndCheckFence flushes first if there are unsubmitted
// writes, then reports whether the resulting fence has retired.
func (s *CommandStream) ConditionalFlushAndCheckFence() bool {
	if s.dirty {
		s.Flush()
	}
	return s.device.CheckFence(s.lastFence)
}

// ConditionalFlushAndWaitFence flushes first if there are unsubmitted
// writes, then blocks until the resulting fence retires.
func (s *CommandStream) ConditionalFlushAndWaitFence() {
	if s.dirty {
		s.Flush()
	}
	s.device.WaitFence(s.lastFence)
}
