package device

import "sync"

// SoftwareRHI is a headless RHI that tracks resource bookkeeping without
// touching real GPU state. It backs unit tests and any deployment target
// without a GPU, mirroring the teacher's own software fallback path
// (backend/software.go in the reference pack) at the RHI seam instead of
// the rasterizer seam.
type SoftwareRHI struct {
	mu       sync.Mutex
	nextID   uint64
	Draws    int
	Clears   int
	Textures map[TextureHandle]ImageMips
}

// NewSoftwareRHI constructs a SoftwareRHI.
func NewSoftwareRHI() *SoftwareRHI {
	return &SoftwareRHI{Textures: make(map[TextureHandle]ImageMips)}
}

func (s *SoftwareRHI) alloc() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

func (s *SoftwareRHI) CreateTexture(mips ImageMips, format PixelFormat, sampler Sampler) (TextureHandle, error) {
	h := TextureHandle(s.alloc())
	s.mu.Lock()
	s.Textures[h] = mips
	s.mu.Unlock()
	return h, nil
}

func (s *SoftwareRHI) UpdateTexture(tex TextureHandle, x, y, w, h int, pixels []byte) error {
	return nil
}

func (s *SoftwareRHI) DestroyTexture(tex TextureHandle) {
	s.mu.Lock()
	delete(s.Textures, tex)
	s.mu.Unlock()
}

func (s *SoftwareRHI) CreateProgram(vsBinary, fsBinary []byte) (ProgramHandle, error) {
	return ProgramHandle(s.alloc()), nil
}

func (s *SoftwareRHI) DestroyProgram(p ProgramHandle) {}

func (s *SoftwareRHI) CreateMesh(layout MeshLayout) (MeshHandle, error) {
	return MeshHandle(s.alloc()), nil
}

func (s *SoftwareRHI) UpdateMeshChannel(m MeshHandle, channel int, data []byte) error {
	return nil
}

func (s *SoftwareRHI) DestroyMesh(m MeshHandle) {}

func (s *SoftwareRHI) CreateUniformBuffer(size int) (UniformHandle, error) {
	return UniformHandle(s.alloc()), nil
}

func (s *SoftwareRHI) UpdateUniformBuffer(u UniformHandle, data []byte) error { return nil }

func (s *SoftwareRHI) DestroyUniformBuffer(u UniformHandle) {}

func (s *SoftwareRHI) SetScissor(x, y, w, h int, enabled bool) {}

func (s *SoftwareRHI) Clear(r, g, b, a float32) {
	s.mu.Lock()
	s.Clears++
	s.mu.Unlock()
}

func (s *SoftwareRHI) Draw(mode PrimitiveMode, vertexCount int) {
	s.mu.Lock()
	s.Draws++
	s.mu.Unlock()
}
