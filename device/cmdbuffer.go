package device

import "encoding/binary"

// opHeaderBytes is the fixed-size header prefixing every encoded command:
// a 2-byte opcode followed by a 4-byte payload length.
const opHeaderBytes = 6

// CommandBuffer is a byte buffer storing a sequence of opcodes with inline
// data (spec.md §3 "Command buffer"). Buffers are recycled through the
// device's free list rather than garbage collected per-frame.
type CommandBuffer struct {
	buf    []byte
	cursor int
	order  OrderClass
	owner  *Device

	// retireCounter is assigned when the buffer is submitted; it is the
	// value a Fence referencing this submission must see the device's
	// done-count reach or pass.
	retireCounter uint64
	submitted     bool
}

func newCommandBuffer(owner *Device, size int) *CommandBuffer {
	return &CommandBuffer{buf: make([]byte, size), owner: owner}
}

// reset clears a buffer for reuse from the device's free list.
func (c *CommandBuffer) reset() {
	c.cursor = 0
	c.order = Ordered
	c.submitted = false
	c.retireCounter = 0
}

// WriteCommand attempts to append one opcode+payload. Returns false if it
// does not fit in the remaining space — the caller (CommandStream) is
// responsible for flushing and retrying.
func (c *CommandBuffer) WriteCommand(op Opcode, payload []byte) bool {
	need := opHeaderBytes + len(payload)
	if c.cursor+need > len(c.buf) {
		return false
	}
	binary.LittleEndian.PutUint16(c.buf[c.cursor:], uint16(op))
	binary.LittleEndian.PutUint32(c.buf[c.cursor+2:], uint32(len(payload)))
	copy(c.buf[c.cursor+opHeaderBytes:], payload)
	c.cursor += need
	return true
}

// Commands decodes the buffer's opcode stream in order, for the device
// loop to execute or for tests to inspect what was recorded.
func (c *CommandBuffer) Commands() []EncodedCommand {
	var out []EncodedCommand
	off := 0
	for off+opHeaderBytes <= c.cursor {
		op := Opcode(binary.LittleEndian.Uint16(c.buf[off:]))
		n := int(binary.LittleEndian.Uint32(c.buf[off+2:]))
		off += opHeaderBytes
		if off+n > c.cursor {
			break
		}
		out = append(out, EncodedCommand{Op: op, Payload: c.buf[off : off+n]})
		off += n
	}
	return out
}

// EncodedCommand is one decoded opcode+payload pair.
type EncodedCommand struct {
	Op      Opcode
	Payload []byte
}

// Len returns the number of bytes currently written.
func (c *CommandBuffer) Len() int { return c.cursor }

// Cap returns the buffer's total capacity.
func (c *CommandBuffer) Cap() int { return len(c.buf) }

// Order returns the buffer's order class.
func (c *CommandBuffer) Order() OrderClass { return c.order }
