// Package device implements the render command pipeline: command buffers,
// streams, fences, a free-list-backed device thread, and a reference-counted
// resource model whose teardown is deferred until a resource's last-use
// fence retires (spec.md §4.1).
//
// The device owns no GPU state itself — it decodes opcodes out of a
// command buffer and drives them into an RHI (rendering hardware
// interface), an abstract seam implemented by device/backend/wgpuhal on
// top of github.com/gogpu/wgpu + github.com/gogpu/naga, the same stack the
// teacher repository (github.com/gogpu/gg) uses for its own GPU backend
// (see backend/wgpu/device.go and backend/wgpu/pipeline.go in the
// reference pack). A software/no-op RHI is also provided for tests.
package device
