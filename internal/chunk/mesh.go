package chunk

import (
	"Craftmine/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the number of floats per vertex: position, colour, normal.
const VertexStride = 9

// Mesh is a CPU side indexed triangle list ready for upload.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

func (m *Mesh) Empty() bool {
	return len(m.Indices) == 0
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

// Corner positions per face in counter-clockwise order seen from outside the cube.
var faceCorners = [6][4][3]float32{
	NegX: {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	PosX: {{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
	NegY: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	PosY: {{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}},
	NegZ: {{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	PosZ: {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
}

// Side faces are darkened slightly so flat-coloured terrain keeps some depth.
var faceShade = [6]float32{0.8, 0.8, 0.6, 1.0, 0.9, 0.9}

func (m *Mesh) addFace(f Face, origin mgl32.Vec3, color mgl32.Vec3) {
	base := uint32(m.VertexCount())
	dx, dy, dz := f.Offset()
	shaded := color.Mul(faceShade[f])
	for _, corner := range faceCorners[f] {
		m.Vertices = append(m.Vertices,
			origin.X()+corner[0], origin.Y()+corner[1], origin.Z()+corner[2],
			shaded.X(), shaded.Y(), shaded.Z(),
			float32(dx), float32(dy), float32(dz),
		)
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
}

// faceVisible decides whether the face of t towards neighbour n is drawn.
func faceVisible(t, n voxel.Type) bool {
	if n == voxel.Air {
		return true
	}
	if !t.IsTransparent() {
		return n.IsTransparent()
	}
	return n.IsTransparent() && n != t
}

func (c *Chunk) neighborType(x, y, z int, f Face) voxel.Type {
	dx, dy, dz := f.Offset()
	nx, ny, nz := x+int(dx), y+int(dy), z+int(dz)
	if c.inside(nx, ny, nz) {
		return c.voxels[c.index(nx, ny, nz)]
	}
	plane := c.borders[f]
	if plane == nil {
		return voxel.Air
	}
	return plane[c.planeIndex(f, x, y, z)]
}

// PrepareMesh rebuilds both CPU meshes from the voxel grid. It never touches the GPU and
// is safe to run on a worker that owns the chunk.
func (c *Chunk) PrepareMesh() {
	c.opaque.Reset()
	c.transparent.Reset()
	if c.solid == 0 {
		return
	}

	ox, oy, oz := c.Position.Origin(int32(c.size))
	for y := 0; y < c.size; y++ {
		for z := 0; z < c.size; z++ {
			for x := 0; x < c.size; x++ {
				t := c.voxels[c.index(x, y, z)]
				if t == voxel.Air {
					continue
				}
				target := &c.opaque
				if t.IsTransparent() {
					target = &c.transparent
				}
				origin := mgl32.Vec3{float32(ox + int32(x)), float32(oy + int32(y)), float32(oz + int32(z))}
				for _, f := range Faces {
					if faceVisible(t, c.neighborType(x, y, z, f)) {
						target.addFace(f, origin, t.Color())
					}
				}
			}
		}
	}
}
