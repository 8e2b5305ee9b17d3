package renderer

import (
	"fmt"
	"strings"

	"Craftmine/internal/chunk"
	"Craftmine/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// OpenGLRenderer owns the voxel shader and the GL objects of every uploaded chunk mesh.
// It implements chunk.GPU and must only be used on the thread owning the GL context.
type OpenGLRenderer struct {
	shader    Shader
	chunkSize int
	frustum   Frustum
	buffers   int
}

func NewOpenGLRenderer(chunkSize int) *OpenGLRenderer {
	return &OpenGLRenderer{chunkSize: chunkSize}
}

func (rend *OpenGLRenderer) Init(width, height int32) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("OpenGL initialization failed: %w", err)
	}
	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.Viewport(0, 0, width, height)

	rend.shader = InitVoxelShader()
	if err := rend.shader.Compile(); err != nil {
		return fmt.Errorf("compiling voxel shader: %w", err)
	}
	logger.Log.Info("OpenGL render initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))
	return nil
}

// BeginFrame clears the screen and loads the per-frame uniforms.
func (rend *OpenGLRenderer) BeginFrame(camera *Camera, light *Light, fogDistance float32) {
	gl.ClearColor(ClearColor.X(), ClearColor.Y(), ClearColor.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	rend.frustum = camera.CalculateFrustum()
	rend.shader.Use()
	rend.shader.SetMat4("viewProjection", camera.GetViewProjection())
	rend.shader.SetVec3("viewPos", camera.Position)
	rend.shader.SetVec3("lightDirection", light.Direction)
	rend.shader.SetVec3("lightColor", light.Color)
	rend.shader.SetFloat("ambientStrength", light.AmbientStrength)
	rend.shader.SetVec3("fogColor", ClearColor)
	rend.shader.SetFloat("fogDistance", fogDistance)
}

// BeginOpaque sets up depth-tested, back-face culled drawing without blending.
func (rend *OpenGLRenderer) BeginOpaque() {
	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LEQUAL)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.Disable(gl.BLEND)
	if FaceCullingEnabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}
	rend.shader.SetFloat("usingAlpha", 0.0)
}

// BeginTransparent switches to alpha blending for water, ice, leaves and glass.
func (rend *OpenGLRenderer) BeginTransparent() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	rend.shader.SetFloat("usingAlpha", 1.0)
}

func (rend *OpenGLRenderer) End() {
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.BindVertexArray(0)
}

// ChunkVisible reports whether a chunk's bounding sphere intersects the frustum of the
// current frame.
func (rend *OpenGLRenderer) ChunkVisible(c chunk.Coord) bool {
	if !FrustumCullingEnabled {
		return true
	}
	center, radius := ChunkBounds(c, rend.chunkSize)
	return rend.frustum.IntersectsSphere(center, radius)
}

// Upload copies a mesh into its buffers, allocating them on first use and growing them
// only when the mesh outgrows the previous allocation.
func (rend *OpenGLRenderer) Upload(mesh *chunk.Mesh, buf *chunk.MeshBuffers) {
	if mesh.Empty() {
		buf.IndexCount = 0
		return
	}
	if buf.VAO == 0 {
		gl.GenVertexArrays(1, &buf.VAO)
		gl.GenBuffers(1, &buf.VBO)
		gl.GenBuffers(1, &buf.EBO)
		rend.buffers++

		gl.BindVertexArray(buf.VAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, buf.VBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.EBO)

		stride := int32(chunk.VertexStride * 4)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(0)

		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
		gl.EnableVertexAttribArray(1)

		gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
		gl.EnableVertexAttribArray(2)
	} else {
		gl.BindVertexArray(buf.VAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, buf.VBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.EBO)
	}

	vertexBytes := len(mesh.Vertices) * 4
	indexBytes := len(mesh.Indices) * 4
	if vertexBytes > buf.VertexBytes || indexBytes > buf.IndexBytes {
		gl.BufferData(gl.ARRAY_BUFFER, vertexBytes, gl.Ptr(mesh.Vertices), gl.DYNAMIC_DRAW)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBytes, gl.Ptr(mesh.Indices), gl.DYNAMIC_DRAW)
		buf.VertexBytes, buf.IndexBytes = vertexBytes, indexBytes
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, vertexBytes, gl.Ptr(mesh.Vertices))
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, indexBytes, gl.Ptr(mesh.Indices))
	}
	buf.IndexCount = int32(len(mesh.Indices))
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) Release(buf *chunk.MeshBuffers) {
	if buf.VAO == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &buf.VAO)
	gl.DeleteBuffers(1, &buf.VBO)
	gl.DeleteBuffers(1, &buf.EBO)
	rend.buffers--
	*buf = chunk.MeshBuffers{}
}

func (rend *OpenGLRenderer) Draw(buf *chunk.MeshBuffers) {
	if buf.VAO == 0 || buf.IndexCount == 0 {
		return
	}
	gl.BindVertexArray(buf.VAO)
	gl.DrawElements(gl.TRIANGLES, buf.IndexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

// LiveBuffers is the number of mesh buffer sets currently allocated.
func (rend *OpenGLRenderer) LiveBuffers() int {
	return rend.buffers
}

func (rend *OpenGLRenderer) Cleanup() {
	rend.shader.Delete()
	if rend.buffers != 0 {
		logger.Log.Warn("Chunk buffers still allocated at cleanup", zap.Int("buffers", rend.buffers))
	}
}

// UpdateViewport updates the OpenGL viewport to match the current window size
func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile", zap.Uint32("shader type:", shaderType), zap.String("log", log))
		return 0, compileError("shader compilation failed", log)
	}
	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, compileError("program link failed", log)
	}
	return program, nil
}
