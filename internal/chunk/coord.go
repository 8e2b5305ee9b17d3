package chunk

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Coord identifies a cube of size³ voxels.
type Coord struct {
	X, Y, Z int32
}

// Face indexes the six axis-aligned neighbours of a chunk or voxel.
type Face int

const (
	NegX Face = iota
	PosX
	NegY
	PosY
	NegZ
	PosZ
)

// Faces lists every face in index order.
var Faces = [6]Face{NegX, PosX, NegY, PosY, NegZ, PosZ}

var faceOffsets = [6][3]int32{
	NegX: {-1, 0, 0},
	PosX: {1, 0, 0},
	NegY: {0, -1, 0},
	PosY: {0, 1, 0},
	NegZ: {0, 0, -1},
	PosZ: {0, 0, 1},
}

// Opposite returns the face pointing the other way.
func (f Face) Opposite() Face {
	return f ^ 1
}

// Offset is the unit step across the face.
func (f Face) Offset() (dx, dy, dz int32) {
	o := faceOffsets[f]
	return o[0], o[1], o[2]
}

func (c Coord) Add(dx, dy, dz int32) Coord {
	return Coord{c.X + dx, c.Y + dy, c.Z + dz}
}

// Neighbor returns the chunk across the given face.
func (c Coord) Neighbor(f Face) Coord {
	dx, dy, dz := f.Offset()
	return c.Add(dx, dy, dz)
}

// Chebyshev is the largest per-axis distance between two coordinates.
func (c Coord) Chebyshev(o Coord) int32 {
	return max(abs32(c.X-o.X), abs32(c.Y-o.Y), abs32(c.Z-o.Z))
}

// DistanceSq is the squared euclidean distance in chunk units.
func (c Coord) DistanceSq(o Coord) int32 {
	dx, dy, dz := c.X-o.X, c.Y-o.Y, c.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

// Origin is the world position of the chunk's (0,0,0) voxel.
func (c Coord) Origin(size int32) (x, y, z int32) {
	return c.X * size, c.Y * size, c.Z * size
}

// FloorDiv divides rounding towards negative infinity for positive b.
func FloorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod is the non-negative remainder matching FloorDiv.
func FloorMod(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += abs32(b)
	}
	return m
}

// Split maps a world voxel position to its chunk and the local position inside it.
func Split(wx, wy, wz, size int32) (Coord, int, int, int) {
	c := Coord{FloorDiv(wx, size), FloorDiv(wy, size), FloorDiv(wz, size)}
	return c, int(FloorMod(wx, size)), int(FloorMod(wy, size)), int(FloorMod(wz, size))
}

// CoordOf returns only the chunk part of Split.
func CoordOf(wx, wy, wz, size int32) Coord {
	return Coord{FloorDiv(wx, size), FloorDiv(wy, size), FloorDiv(wz, size)}
}

// CoordOfPosition converts a continuous world position (a camera or player eye) to the
// chunk containing it.
func CoordOfPosition(pos mgl32.Vec3, size int) Coord {
	s := float64(size)
	return Coord{
		int32(math.Floor(float64(pos.X()) / s)),
		int32(math.Floor(float64(pos.Y()) / s)),
		int32(math.Floor(float64(pos.Z()) / s)),
	}
}

// VoxelOfPosition floors a continuous position to the voxel containing it.
func VoxelOfPosition(pos mgl32.Vec3) (x, y, z int32) {
	return int32(math.Floor(float64(pos.X()))),
		int32(math.Floor(float64(pos.Y()))),
		int32(math.Floor(float64(pos.Z())))
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
