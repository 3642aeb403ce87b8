package device

import "github.com/gogpu/gpucontext"

// DeviceHandle is the host-provided GPU device/queue/adapter accessor an
// RHI backend may bind against instead of creating its own device — the
// same "the host owns the device, the renderer only borrows it" seam
// gogpu-gg's render.DeviceHandle documents. It is an alias for
// gpucontext.DeviceProvider so this package's RHI boundary accepts
// exactly what an embedding gogpu host already implements.
type DeviceHandle = gpucontext.DeviceProvider

// RHI abstracts the underlying GPU driver (rendering hardware interface,
// spec.md §6). The render device decodes opcodes out of a CommandBuffer and
// drives them through this interface; RHI implementations are swappable —
// device/backend/wgpuhal wraps github.com/gogpu/wgpu + github.com/gogpu/naga
// for real GPU backends, and a software RHI (see rhi_software.go) exists
// for headless tests.
//
// Implementations must be safe for concurrent use by the device's thread
// pool (spec.md §4.1 allows a device to run more than one thread against
// the unordered queue).
type RHI interface {
	CreateTexture(mips ImageMips, format PixelFormat, sampler Sampler) (TextureHandle, error)
	UpdateTexture(tex TextureHandle, x, y, w, h int, pixels []byte) error
	DestroyTexture(tex TextureHandle)

	CreateProgram(vsBinary, fsBinary []byte) (ProgramHandle, error)
	DestroyProgram(p ProgramHandle)

	CreateMesh(layout MeshLayout) (MeshHandle, error)
	UpdateMeshChannel(m MeshHandle, channel int, data []byte) error
	DestroyMesh(m MeshHandle)

	CreateUniformBuffer(size int) (UniformHandle, error)
	UpdateUniformBuffer(u UniformHandle, data []byte) error
	DestroyUniformBuffer(u UniformHandle)

	SetScissor(x, y, w, h int, enabled bool)
	Clear(r, g, b, a float32)
	Draw(mode PrimitiveMode, vertexCount int)
}

// ImageMips describes decoded pixel data, possibly with multiple mip
// levels and possibly compressed (spec.md §3 "Texture").
type ImageMips struct {
	Width, Height int
	Format        PixelFormat
	Levels        [][]byte // level 0 = base image
}

// MeshLayout describes per-channel vertex data (spec.md §3 "Mesh").
type MeshLayout struct {
	Channels []ChannelDescriptor
}

// ChannelDescriptor describes one vertex attribute channel.
type ChannelDescriptor struct {
	Name       string // "position", "color", "uv"
	Components int
	Stride     int
}

// Opaque RHI-backed handles. Concrete values are assigned by the RHI
// implementation; the device package never interprets their bits.
type (
	TextureHandle uint64
	ProgramHandle uint64
	MeshHandle    uint64
	UniformHandle uint64
)
