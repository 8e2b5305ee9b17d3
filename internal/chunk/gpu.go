package chunk

// MeshBuffers names the GPU objects backing one uploaded mesh. VertexBytes and
// IndexBytes are the allocated buffer sizes, so re-uploads that fit can reuse them.
type MeshBuffers struct {
	VAO         uint32
	VBO         uint32
	EBO         uint32
	IndexCount  int32
	VertexBytes int
	IndexBytes  int
}

// Buffers pairs the opaque and transparent GPU meshes of a chunk.
type Buffers struct {
	Opaque      MeshBuffers
	Transparent MeshBuffers
}

// GPU is the rendering backend. Every method must be called on the thread that owns
// the graphics context.
type GPU interface {
	Upload(mesh *Mesh, buf *MeshBuffers)
	Release(buf *MeshBuffers)
	Draw(buf *MeshBuffers)
}

// UploadToGPU pushes both CPU meshes, reusing existing buffers where possible.
func (c *Chunk) UploadToGPU(gpu GPU) {
	gpu.Upload(&c.opaque, &c.gpu.Opaque)
	gpu.Upload(&c.transparent, &c.gpu.Transparent)
}

// Render draws the opaque mesh.
func (c *Chunk) Render(gpu GPU) {
	if c.IsEmpty() {
		return
	}
	gpu.Draw(&c.gpu.Opaque)
}

// RenderTransparent draws the transparent mesh.
func (c *Chunk) RenderTransparent(gpu GPU) {
	if c.IsTransparentEmpty() {
		return
	}
	gpu.Draw(&c.gpu.Transparent)
}

// ReleaseGPU frees the chunk's GPU buffers.
func (c *Chunk) ReleaseGPU(gpu GPU) {
	gpu.Release(&c.gpu.Opaque)
	gpu.Release(&c.gpu.Transparent)
}

// GPUBuffers exposes the buffer handles, mainly for diagnostics.
func (c *Chunk) GPUBuffers() Buffers {
	return c.gpu
}
