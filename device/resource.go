package device

import "sync/atomic"

// Resource is the shared header every render-resource type embeds: owning
// device, last-use fence, reference count, kind tag, and a debug tag
// (spec.md §3 "Resource"). destroy behavior dispatches by Kind rather than
// through a per-type vtable (spec.md §9).
type Resource struct {
	owner    *Device
	kind     ResourceKind
	debugTag string
	lastUse  Fence
	refCount atomic.Int32
	handle   uint64 // RHI handle bits, interpreted per Kind
}

func newResource(owner *Device, kind ResourceKind, tag string, handle uint64) *Resource {
	r := &Resource{owner: owner, kind: kind, debugTag: tag, handle: handle}
	r.refCount.Store(1)
	return r
}

// Kind returns the resource's type tag.
func (r *Resource) Kind() ResourceKind { return r.kind }

// DebugTag returns the resource's debug label.
func (r *Resource) DebugTag() string { return r.debugTag }

// Retain increments the reference count. Callers are responsible for
// pairing every Retain with a Release (spec.md §5 "Resource ref counts are
// incremented under caller responsibility").
func (r *Resource) Retain() {
	r.refCount.Add(1)
}

// Release decrements the reference count. At zero, the resource joins the
// device's pending-destroy list, and its RHI object is destroyed only once
// its last-use fence has retired, so it is never destroyed while still in
// flight (spec.md §4.1 "Resource lifecycle"). The list is checked here and
// after every command buffer the device executes. No destroy opcode is
// written to any command stream, and the destroy can run on the releasing
// goroutine rather than a device goroutine.
func (r *Resource) Release() {
	if r.refCount.Add(-1) == 0 {
		r.owner.enqueueDestroy(r)
	}
}

// SetLastUse records the fence produced by the most recent command stream
// write that referenced this resource.
func (r *Resource) SetLastUse(f Fence) {
	r.lastUse = f
}

// LastUse returns the fence that must retire before this resource's RHI
// object may be destroyed.
func (r *Resource) LastUse() Fence { return r.lastUse }
