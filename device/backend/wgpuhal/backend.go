// Package wgpuhal wires the device package's abstract RHI to a real GPU
// backend: github.com/gogpu/wgpu/core for device/resource management,
// github.com/gogpu/naga to compile the canvas package's WGSL sources to
// SPIR-V, and github.com/gogpu/gputypes for the wire-level descriptor
// types both of those packages accept. Grounded on
// gogpu-wgpu/core/device.go, gogpu-wgpu/core/queue.go and
// gogpu-gg/backend/wgpu/gpu_fine.go (spec.md §6 "RHI").
package wgpuhal

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/adkcanvas/device"
)

// Backend implements device.RHI against a live wgpu device.
type Backend struct {
	mu       sync.Mutex
	deviceID core.DeviceID
	queueID  core.QueueID
	handle   device.DeviceHandle // set only when constructed via NewFromHandle

	textures map[device.TextureHandle]core.TextureID
	programs map[device.ProgramHandle]compiledProgram
	meshes   map[device.MeshHandle]meshState
	uniforms map[device.UniformHandle]core.BufferID
	nextID   uint64

	scissorX, scissorY, scissorW, scissorH int
	scissorOn                              bool
}

type compiledProgram struct {
	vsModule core.ShaderModuleID
	fsModule core.ShaderModuleID
}

type meshState struct {
	layout   device.MeshLayout
	channels map[int][]byte
}

// New opens a device on adapterID and returns a Backend ready to satisfy
// device.RHI. label tags the device and its default queue for debugging.
func New(adapterID core.AdapterID, label string) (*Backend, error) {
	desc := gputypes.DefaultDeviceDescriptor()
	desc.Label = label

	deviceID, err := core.CreateDevice(adapterID, &desc)
	if err != nil {
		return nil, fmt.Errorf("wgpuhal: create device: %w", err)
	}
	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		return nil, fmt.Errorf("wgpuhal: get device queue: %w", err)
	}

	return &Backend{
		deviceID: deviceID,
		queueID:  queueID,
		textures: make(map[device.TextureHandle]core.TextureID),
		programs: make(map[device.ProgramHandle]compiledProgram),
		meshes:   make(map[device.MeshHandle]meshState),
		uniforms: make(map[device.UniformHandle]core.BufferID),
	}, nil
}

// NewFromHandle opens a device the same way New does, but additionally
// retains handle so callers embedding this backend in a larger gogpu host
// (one that already implements device.DeviceHandle) can recover their own
// Device()/Queue()/Adapter() accessors via Backend.Handle, instead of the
// backend silently discarding the host's handle once it has pulled the
// adapterID out of it.
func NewFromHandle(handle device.DeviceHandle, adapterID core.AdapterID, label string) (*Backend, error) {
	b, err := New(adapterID, label)
	if err != nil {
		return nil, err
	}
	b.handle = handle
	return b, nil
}

// Handle returns the device.DeviceHandle this backend was constructed
// with via NewFromHandle, or nil if it was constructed with New.
func (b *Backend) Handle() device.DeviceHandle { return b.handle }

func (b *Backend) allocHandle() uint64 {
	b.nextID++
	return b.nextID
}

// CreateTexture registers a texture descriptor with the device and uploads
// its base level through the queue.
func (b *Backend) CreateTexture(mips device.ImageMips, format device.PixelFormat, sampler device.Sampler) (device.TextureHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	desc := &gputypes.TextureDescriptor{
		Label:         "adkcanvas-texture",
		Size:          gputypes.Extent3D{Width: uint32(mips.Width), Height: uint32(mips.Height), DepthOrArrayLayers: 1},
		MipLevelCount: uint32(len(mips.Levels)),
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        toWGPUFormat(format),
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
	texID, err := core.DeviceCreateTexture(b.deviceID, desc)
	if err != nil {
		return 0, fmt.Errorf("wgpuhal: create texture: %w", err)
	}

	handle := device.TextureHandle(b.allocHandle())
	b.textures[handle] = texID

	if len(mips.Levels) > 0 {
		layout := &gputypes.TextureDataLayout{BytesPerRow: uint32(mips.Width) * bytesPerPixel(format)}
		size := &gputypes.Extent3D{Width: uint32(mips.Width), Height: uint32(mips.Height), DepthOrArrayLayers: 1}
		dst := &gputypes.ImageCopyTexture{MipLevel: 0}
		if err := core.QueueWriteTexture(b.queueID, dst, mips.Levels[0], layout, size); err != nil {
			return 0, fmt.Errorf("wgpuhal: upload base level: %w", err)
		}
	}
	return handle, nil
}

// UpdateTexture uploads a sub-rectangle of a texture via the device queue.
func (b *Backend) UpdateTexture(tex device.TextureHandle, x, y, w, h int, pixels []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.textures[tex]; !ok {
		return fmt.Errorf("wgpuhal: unknown texture handle %d", tex)
	}
	layout := &gputypes.TextureDataLayout{Offset: 0, BytesPerRow: uint32(w) * 4}
	size := &gputypes.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}
	dst := &gputypes.ImageCopyTexture{MipLevel: 0, Origin: gputypes.Origin3D{X: uint32(x), Y: uint32(y)}}
	return core.QueueWriteTexture(b.queueID, dst, pixels, layout, size)
}

// DestroyTexture stops tracking the texture handle; the wgpu texture
// object itself is not released here. The device package only calls this
// once the resource's last-use fence has retired.
func (b *Backend) DestroyTexture(tex device.TextureHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.textures, tex)
}

// CreateProgram compiles a vertex/fragment WGSL pair through naga and
// registers the resulting shader modules with the device.
func (b *Backend) CreateProgram(vsSource, fsSource []byte) (device.ProgramHandle, error) {
	vsSPIRV, err := naga.Compile(string(vsSource))
	if err != nil {
		return 0, fmt.Errorf("wgpuhal: compile vertex shader: %w", err)
	}
	fsSPIRV, err := naga.Compile(string(fsSource))
	if err != nil {
		return 0, fmt.Errorf("wgpuhal: compile fragment shader: %w", err)
	}

	vsMod, err := core.DeviceCreateShaderModule(b.deviceID, &gputypes.ShaderModuleDescriptor{Label: "adkcanvas-vs", Code: string(vsSPIRV)})
	if err != nil {
		return 0, fmt.Errorf("wgpuhal: create vertex module: %w", err)
	}
	fsMod, err := core.DeviceCreateShaderModule(b.deviceID, &gputypes.ShaderModuleDescriptor{Label: "adkcanvas-fs", Code: string(fsSPIRV)})
	if err != nil {
		return 0, fmt.Errorf("wgpuhal: create fragment module: %w", err)
	}

	b.mu.Lock()
	handle := device.ProgramHandle(b.allocHandle())
	b.programs[handle] = compiledProgram{vsModule: vsMod, fsModule: fsMod}
	b.mu.Unlock()
	return handle, nil
}

// DestroyProgram drops the cached shader module pair. wgpu's own module
// objects are reference-counted internally by the hub; adkcanvas only
// needs to stop tracking the handle.
func (b *Backend) DestroyProgram(p device.ProgramHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.programs, p)
}

// CreateMesh records a mesh's layout and an empty per-channel data map.
// No vertex buffer is created here; UpdateMeshChannel creates them.
func (b *Backend) CreateMesh(layout device.MeshLayout) (device.MeshHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	handle := device.MeshHandle(b.allocHandle())
	b.meshes[handle] = meshState{layout: layout, channels: make(map[int][]byte)}
	return handle, nil
}

// UpdateMeshChannel uploads one vertex attribute channel's data to the
// device through a new GPU buffer created on every call, and keeps the
// data slice in the mesh's channel map.
func (b *Backend) UpdateMeshChannel(m device.MeshHandle, channel int, data []byte) error {
	b.mu.Lock()
	mesh, ok := b.meshes[m]
	b.mu.Unlock()
	if !ok {
		return fmt.Errorf("wgpuhal: unknown mesh handle %d", m)
	}
	bufID, err := core.DeviceCreateBuffer(b.deviceID, &gputypes.BufferDescriptor{
		Label: "adkcanvas-mesh-channel",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpuhal: create mesh channel buffer: %w", err)
	}
	if err := core.QueueWriteBuffer(b.queueID, bufID, 0, data); err != nil {
		return fmt.Errorf("wgpuhal: upload mesh channel: %w", err)
	}
	mesh.channels[channel] = data
	b.mu.Lock()
	b.meshes[m] = mesh
	b.mu.Unlock()
	return nil
}

// DestroyMesh drops the mesh's tracked channel state.
func (b *Backend) DestroyMesh(m device.MeshHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.meshes, m)
}

// CreateUniformBuffer allocates a uniform-usage buffer of size bytes.
func (b *Backend) CreateUniformBuffer(size int) (device.UniformHandle, error) {
	bufID, err := core.DeviceCreateBuffer(b.deviceID, &gputypes.BufferDescriptor{
		Label: "adkcanvas-uniform",
		Size:  uint64(size),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return 0, fmt.Errorf("wgpuhal: create uniform buffer: %w", err)
	}
	b.mu.Lock()
	handle := device.UniformHandle(b.allocHandle())
	b.uniforms[handle] = bufID
	b.mu.Unlock()
	return handle, nil
}

// UpdateUniformBuffer overwrites a uniform buffer's contents.
func (b *Backend) UpdateUniformBuffer(u device.UniformHandle, data []byte) error {
	b.mu.Lock()
	bufID, ok := b.uniforms[u]
	b.mu.Unlock()
	if !ok {
		return fmt.Errorf("wgpuhal: unknown uniform handle %d", u)
	}
	return core.QueueWriteBuffer(b.queueID, bufID, 0, data)
}

// DestroyUniformBuffer drops a uniform buffer's tracked handle.
func (b *Backend) DestroyUniformBuffer(u device.UniformHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.uniforms, u)
}

// SetScissor records the scissor rect for subsequent Draw calls; since
// Draw is a no-op in this backend, the recorded rect is not applied.
// A real render pass would set this on its pass encoder; the RHI seam
// here buffers it because command recording in the device package is
// opcode-at-a-time rather than encoder-at-a-time (spec.md §9).
func (b *Backend) SetScissor(x, y, w, h int, enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scissorX, b.scissorY, b.scissorW, b.scissorH = x, y, w, h
	b.scissorOn = enabled
}

// Clear and Draw are no-ops in this backend: nothing is encoded or
// submitted through core.QueueSubmit, so only resource creation and
// uploads reach wgpu. Tests exercise the software RHI instead.
func (b *Backend) Clear(r, g, bch, a float32) {}

func (b *Backend) Draw(mode device.PrimitiveMode, vertexCount int) {}

func toWGPUFormat(f device.PixelFormat) gputypes.TextureFormat {
	switch f {
	case device.FormatR8Unorm:
		return gputypes.TextureFormatR8Unorm
	case device.FormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

func bytesPerPixel(f device.PixelFormat) uint32 {
	if bb := f.BlockBytes(); bb > 0 {
		return uint32(bb)
	}
	if f == device.FormatR8Unorm {
		return 1
	}
	return 4
}
