package device

// Opcode identifies a single command encoded into a CommandBuffer. The
// command pipeline is opcode+inline-data, not a tagged-union of Go values,
// so that a CommandBuffer is a flat byte buffer the device thread decodes
// sequentially (spec.md §3 "Command buffer").
type Opcode uint16

const (
	OpNone Opcode = iota
	OpCreateTexture
	OpUpdateTexture
	OpCreateProgram
	OpCreateMesh
	OpMeshChannelData
	OpCreateBlendState
	OpCreateRasterizerState
	OpCreateDepthStencilState
	OpCreateUniformBuffer
	OpUpdateUniformBuffer
	OpCreateRenderTarget
	OpBindState
	OpDraw
	OpSetScissor
	OpClear
	OpDestroyResource
)

// OrderClass selects which of the device's two submission queues a
// CommandBuffer is appended to (spec.md §4.1 dispatch loop).
type OrderClass int

const (
	Ordered OrderClass = iota
	Unordered
)

// ResourceKind tags a Resource with its RHI object type. Render-resource
// types are a finite sum, modeled as a shared header plus a tag rather
// than per-type vtables (spec.md §9 "Tagged unions instead of vtables").
type ResourceKind int

const (
	KindTexture ResourceKind = iota
	KindProgram
	KindMeshLayout
	KindMesh
	KindBlendState
	KindDepthStencilState
	KindRasterizerState
	KindUniformBuffer
	KindRenderTarget
)

func (k ResourceKind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindProgram:
		return "program"
	case KindMeshLayout:
		return "mesh_layout"
	case KindMesh:
		return "mesh"
	case KindBlendState:
		return "blend_state"
	case KindDepthStencilState:
		return "depth_stencil_state"
	case KindRasterizerState:
		return "rasterizer_state"
	case KindUniformBuffer:
		return "uniform_buffer"
	case KindRenderTarget:
		return "render_target"
	default:
		return "unknown"
	}
}

// PixelFormat enumerates the texture pixel formats the RHI accepts
// (spec.md §3 "Texture", §6 "RHI").
type PixelFormat int

const (
	FormatR8Unorm PixelFormat = iota
	FormatRGBA8Unorm
	FormatETC1
	FormatPlatformCompressed // catch-all for the "small set of platform-specific compressed formats"
)

// BlockBytes returns the number of bytes a 4x4 compressed block occupies
// for formats where that is meaningful; 0 for uncompressed formats.
func (f PixelFormat) BlockBytes() int {
	switch f {
	case FormatETC1:
		return 8
	default:
		return 0
	}
}

// CompressedDataLen computes the byte length of compressed image data for
// a w x h image, per spec.md §6: ceil(w/4)*ceil(h/4)*bytes_per_block.
func CompressedDataLen(w, h, blockBytes int) int {
	bw := (w + 3) / 4
	bh := (h + 3) / 4
	return bw * bh * blockBytes
}

// FilterMode, WrapMode describe a sampler descriptor (spec.md §3 "Texture").
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

type WrapMode int

const (
	WrapClamp WrapMode = iota
	WrapRepeat
	WrapMirror
	WrapBorder
)

// Sampler describes texture sampling state.
type Sampler struct {
	MinFilter   FilterMode
	MagFilter   FilterMode
	WrapU, WrapV WrapMode
	BorderColor [4]float32
	Anisotropy  int
}

// PrimitiveMode selects the draw topology (spec.md §6 "RHI").
type PrimitiveMode int

const (
	PrimitiveTriangles PrimitiveMode = iota
	PrimitiveTriangleStrip
	PrimitiveTriangleFan
	PrimitiveLineStrip
)

// WaitMode selects GetCmdBuf's blocking behavior.
type WaitMode int

const (
	NoWait WaitMode = iota
	Wait
)
