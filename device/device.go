package device

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/adkcanvas/internal/gglog"
)

// ErrDeviceStopped is returned by calls made after the device has been
// told to quit.
var ErrDeviceStopped = errors.New("device: stopped")

// Config configures device creation (spec.md §4.1 "create").
type Config struct {
	NumCmdBuffers    int
	CmdBufSize       int
	MaxThreads       int // total dispatch goroutines: one for the ordered queue, the rest for the unordered queue (minimum 1)
	GuardPageMode    int // forwarded to memory.GuardMode by callers that build a Heap alongside the device
	MaxPendingFrames int
	Tag              string
}

// Device hosts a GPU device: a free list of command buffers, an ordered
// and an unordered submission queue, a dedicated dispatch loop, and a
// reference-counted resource pool whose teardown is deferred until a
// resource's last-use fence retires (spec.md §4.1).
//
// One goroutine services the ordered queue exclusively, which is what
// gives ordered buffers their strict FIFO execution guarantee without a
// second lock around "one ordered buffer in flight at a time"; any
// MaxThreads-1 additional goroutines service the unordered queue, which
// may run concurrently (spec.md §5 "Ordering guarantees").
type Device struct {
	rhi RHI
	tag string

	freeMu   sync.Mutex
	freeCond *sync.Cond
	free     []*CommandBuffer
	allBufs  []*CommandBuffer // for stats/debug only

	queueMu      sync.Mutex
	queueCond    *sync.Cond
	orderedQ     []*CommandBuffer
	unorderedQ   []*CommandBuffer
	quit         bool

	submitCounter [2]atomic.Uint64
	doneCounter   [2]atomic.Uint64

	retiredCond *sync.Cond
	retiredMu   *sync.Mutex

	wg sync.WaitGroup

	maxPendingFrames int
	frameFences      []Fence

	defaultStream *CommandStream

	destroyMu       sync.Mutex
	pendingDestroys []*Resource

	trackStats bool
	stats      struct {
		sync.Mutex
		peak, total int
		byKind      map[ResourceKind]int
	}
}

// Create constructs a Device over rhi with the given pool sizes and starts
// its dispatch threads. No hidden allocation happens beyond the command
// buffer pool itself — callers that want the spec's "caller-supplied
// region" semantics build the buffers' backing memory via memory.Heap and
// hand it to NewCommandBuffer-equivalent plumbing in their own
// integration layer; this constructor allocates the pool directly for
// simplicity, matching the teacher's own device setup in
// render/device.go.
func Create(rhi RHI, cfg Config) (*Device, error) {
	if cfg.NumCmdBuffers <= 0 || cfg.CmdBufSize <= 0 {
		return nil, errors.New("device: NumCmdBuffers and CmdBufSize must be positive")
	}
	d := &Device{rhi: rhi, tag: cfg.Tag, maxPendingFrames: cfg.MaxPendingFrames}
	if d.maxPendingFrames <= 0 {
		d.maxPendingFrames = 2
	}
	d.freeCond = sync.NewCond(&d.freeMu)
	d.queueCond = sync.NewCond(&d.queueMu)
	rm := &sync.Mutex{}
	d.retiredMu = rm
	d.retiredCond = sync.NewCond(rm)
	d.stats.byKind = make(map[ResourceKind]int)
	d.trackStats = true

	for i := 0; i < cfg.NumCmdBuffers; i++ {
		b := newCommandBuffer(d, cfg.CmdBufSize)
		d.free = append(d.free, b)
		d.allBufs = append(d.allBufs, b)
	}

	threads := cfg.MaxThreads
	if threads < 1 {
		threads = 1
	}
	d.wg.Add(threads)
	go d.orderedLoop()
	for i := 1; i < threads; i++ {
		go d.unorderedLoop()
	}

	d.defaultStream = newCommandStream(d, Ordered, true)
	return d, nil
}

// DefaultStream returns the device's always-present default command
// stream, whose fence DeviceFrame records for frame pacing and which
// FlushDevice flushes.
func (d *Device) DefaultStream() *CommandStream { return d.defaultStream }

// NewCommandStream latches a fresh stream against order, with flush
// enabled or disabled per allowFlush.
func (d *Device) NewCommandStream(order OrderClass, allowFlush bool) *CommandStream {
	return newCommandStream(d, order, allowFlush)
}

// GetCmdBuf returns a free command buffer. With NoWait, returns nil
// immediately if none is free; with Wait, blocks until the device loop
// frees one.
func (d *Device) GetCmdBuf(wait WaitMode) *CommandBuffer {
	d.freeMu.Lock()
	defer d.freeMu.Unlock()
	for len(d.free) == 0 {
		if wait == NoWait || d.isQuitting() {
			return nil
		}
		d.freeCond.Wait()
	}
	b := d.free[len(d.free)-1]
	d.free = d.free[:len(d.free)-1]
	d.freeMu.Unlock()
	b.reset()
	d.freeMu.Lock()
	return b
}

// SubmitCmdBuf appends buf to the selected queue and returns a fence that
// retires once the device has executed it.
func (d *Device) SubmitCmdBuf(buf *CommandBuffer, order OrderClass) Fence {
	d.queueMu.Lock()
	buf.order = order
	counter := d.submitCounter[order].Add(1)
	buf.retireCounter = counter
	buf.submitted = true
	if order == Ordered {
		d.orderedQ = append(d.orderedQ, buf)
	} else {
		d.unorderedQ = append(d.unorderedQ, buf)
	}
	d.queueMu.Unlock()
	d.queueCond.Broadcast()
	return Fence{order: order, counter: counter}
}

// CheckFence reports whether fence has already retired, without blocking.
func (d *Device) CheckFence(fence Fence) bool {
	if fence == zeroFence {
		return true
	}
	return d.doneCounter[fence.order].Load() >= fence.counter
}

// WaitFence blocks until fence retires.
func (d *Device) WaitFence(fence Fence) {
	if fence == zeroFence {
		return
	}
	d.retiredMu.Lock()
	for d.doneCounter[fence.order].Load() < fence.counter {
		d.retiredCond.Wait()
	}
	d.retiredMu.Unlock()
}

// DeviceFrame is called once per application frame; it blocks until at
// most MaxPendingFrames submissions (by frame boundary) remain unretired,
// providing frame-pacing back-pressure (spec.md §4.1).
func (d *Device) DeviceFrame() {
	f := d.defaultStream.Fence()
	d.frameFences = append(d.frameFences, f)
	for len(d.frameFences) > d.maxPendingFrames {
		oldest := d.frameFences[0]
		d.frameFences = d.frameFences[1:]
		d.WaitFence(oldest)
	}
}

// FlushDevice waits for all submitted work across both queues to retire.
func (d *Device) FlushDevice() {
	d.defaultStream.Flush()
	ordered := d.submitCounter[Ordered].Load()
	unordered := d.submitCounter[Unordered].Load()
	d.WaitFence(Fence{order: Ordered, counter: ordered})
	d.WaitFence(Fence{order: Unordered, counter: unordered})
}

// Quit signals the dispatch loops to drain remaining queued work and
// exit. Cancellation is cooperative, matching spec.md §5.
func (d *Device) Quit() {
	d.queueMu.Lock()
	d.quit = true
	d.queueMu.Unlock()
	d.queueCond.Broadcast()

	d.freeMu.Lock()
	d.freeCond.Broadcast()
	d.freeMu.Unlock()

	d.wg.Wait()
	gglog.Logger().Debug("device stopped", "tag", d.tag)
}

func (d *Device) isQuitting() bool {
	d.queueMu.Lock()
	defer d.queueMu.Unlock()
	return d.quit
}

// Err returns ErrDeviceStopped once Quit has been called, nil otherwise.
// Callers that latch long-lived CommandStreams across frames can poll
// this to stop issuing work instead of relying on a nil CommandBuffer.
func (d *Device) Err() error {
	if d.isQuitting() {
		return ErrDeviceStopped
	}
	return nil
}

func (d *Device) orderedLoop() {
	defer d.wg.Done()
	for {
		d.queueMu.Lock()
		for len(d.orderedQ) == 0 && len(d.unorderedQ) == 0 && !d.quit {
			d.queueCond.Wait()
		}
		if len(d.orderedQ) == 0 && d.quit && len(d.unorderedQ) == 0 {
			d.queueMu.Unlock()
			return
		}
		var buf *CommandBuffer
		if len(d.orderedQ) > 0 {
			buf = d.orderedQ[0]
			d.orderedQ = d.orderedQ[1:]
		} else if len(d.unorderedQ) > 0 {
			buf = d.unorderedQ[0]
			d.unorderedQ = d.unorderedQ[1:]
		}
		d.queueMu.Unlock()
		if buf == nil {
			continue
		}
		d.execute(buf)
	}
}

func (d *Device) unorderedLoop() {
	defer d.wg.Done()
	for {
		d.queueMu.Lock()
		for len(d.unorderedQ) == 0 && !d.quit {
			d.queueCond.Wait()
		}
		if len(d.unorderedQ) == 0 && d.quit {
			d.queueMu.Unlock()
			return
		}
		buf := d.unorderedQ[0]
		d.unorderedQ = d.unorderedQ[1:]
		d.queueMu.Unlock()
		d.execute(buf)
	}
}

// execute decodes buf's opcode stream into RHI calls, then retires it:
// advances the done-count for its order class, returns it to the free
// list, and wakes any fence waiters.
func (d *Device) execute(buf *CommandBuffer) {
	for _, cmd := range buf.Commands() {
		d.dispatchOpcode(cmd)
	}

	d.doneCounter[buf.order].Store(buf.retireCounter)
	d.retiredMu.Lock()
	d.retiredCond.Broadcast()
	d.retiredMu.Unlock()

	d.freeMu.Lock()
	d.free = append(d.free, buf)
	d.freeMu.Unlock()
	d.freeCond.Signal()

	d.drainPendingDestroys()
}

func (d *Device) dispatchOpcode(cmd EncodedCommand) {
	switch cmd.Op {
	case OpClear:
		if len(cmd.Payload) >= 16 {
			r := decodeF32(cmd.Payload[0:4])
			g := decodeF32(cmd.Payload[4:8])
			b := decodeF32(cmd.Payload[8:12])
			a := decodeF32(cmd.Payload[12:16])
			d.rhi.Clear(r, g, b, a)
		}
	case OpDraw:
		if len(cmd.Payload) >= 8 {
			mode := PrimitiveMode(decodeU32(cmd.Payload[0:4]))
			count := int(decodeU32(cmd.Payload[4:8]))
			d.rhi.Draw(mode, count)
		}
	case OpDestroyResource:
		// No code in this module writes this opcode. Resource teardown runs
		// in destroyResource, called from drainPendingDestroys once a
		// released resource's last-use fence has retired.
	default:
		// Unknown/no-op opcodes are tolerated so forward-compatible
		// payloads don't crash an older device loop.
	}
}

// enqueueDestroy adds r to the pending-destroy list and drains the list at
// once; drainPendingDestroys, which also runs after every buffer
// execution, destroys each pending resource whose last-use fence has
// retired (spec.md §4.1 "Resource lifecycle").
func (d *Device) enqueueDestroy(r *Resource) {
	d.destroyMu.Lock()
	d.pendingDestroys = append(d.pendingDestroys, r)
	d.destroyMu.Unlock()
	d.drainPendingDestroys()
}

func (d *Device) drainPendingDestroys() {
	d.destroyMu.Lock()
	defer d.destroyMu.Unlock()
	remaining := d.pendingDestroys[:0]
	for _, r := range d.pendingDestroys {
		if d.CheckFence(r.lastUse) {
			d.destroyResource(r)
			if d.trackStats {
				d.accountFree(r)
			}
		} else {
			remaining = append(remaining, r)
		}
	}
	d.pendingDestroys = remaining
}

func (d *Device) destroyResource(r *Resource) {
	switch r.kind {
	case KindTexture:
		d.rhi.DestroyTexture(TextureHandle(r.handle))
	case KindProgram:
		d.rhi.DestroyProgram(ProgramHandle(r.handle))
	case KindMesh, KindMeshLayout:
		d.rhi.DestroyMesh(MeshHandle(r.handle))
	case KindUniformBuffer:
		d.rhi.DestroyUniformBuffer(UniformHandle(r.handle))
	default:
		// Blend/rasterizer/depth-stencil/render-target states have no RHI
		// teardown call in this core's abstract RHI; they are released by
		// value once their Resource wrapper's ref count hits zero.
	}
}

func (d *Device) accountFree(r *Resource) {
	d.stats.Lock()
	d.stats.byKind[r.kind]--
	d.stats.Unlock()
}

// ResourceStats reports per-kind outstanding resource counts, updated on
// creation and destruction when tracking is enabled (spec.md §4.1).
func (d *Device) ResourceStats() map[ResourceKind]int {
	d.stats.Lock()
	defer d.stats.Unlock()
	out := make(map[ResourceKind]int, len(d.stats.byKind))
	for k, v := range d.stats.byKind {
		out[k] = v
	}
	return out
}

// trackCreate records a newly created resource for stats purposes.
func (d *Device) trackCreate(kind ResourceKind) {
	if !d.trackStats {
		return
	}
	d.stats.Lock()
	d.stats.byKind[kind]++
	d.stats.Unlock()
}

// NewResource wraps an RHI handle of the given kind in a ref-counted
// Resource tied to this device.
func (d *Device) NewResource(kind ResourceKind, tag string, handle uint64) *Resource {
	d.trackCreate(kind)
	return newResource(d, kind, tag, handle)
}

func decodeU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func decodeF32(b []byte) float32 {
	return math.Float32frombits(decodeU32(b))
}
