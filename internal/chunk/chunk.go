package chunk

import "Craftmine/internal/voxel"

const allFaces uint8 = 1<<6 - 1

// Borders holds, per face, a copy of the facing boundary plane of the neighbouring chunk.
// A nil plane means the neighbour was not resident when the snapshot was taken; faces
// against it are always emitted.
type Borders [6][]voxel.Type

// Chunk owns the voxels of one coordinate cell together with its CPU meshes.
//
// A chunk is owned by exactly one goroutine at a time: the coordinator while it is
// resident, or a worker while it travels inside a work item. GPU buffers are only ever
// touched by the coordinator.
type Chunk struct {
	Position Coord

	// NeedsRebuild asks the coordinator to queue a remesh on its next drain.
	NeedsRebuild bool

	// OutOfBounds collects edits produced while generating this chunk that land in
	// another chunk, such as a tree crown spilling over the border.
	OutOfBounds []voxel.Edit

	size    int
	voxels  []voxel.Type
	solid   int
	touched uint8

	seedEdits []voxel.Edit
	borders   Borders

	opaque      Mesh
	transparent Mesh
	gpu         Buffers
}

// New allocates an all-air chunk. The edits are absolute world edits buffered for this
// chunk before it existed; GenerateData applies them on top of the terrain.
func New(pos Coord, size int, edits []voxel.Edit) *Chunk {
	return &Chunk{
		Position:  pos,
		size:      size,
		voxels:    make([]voxel.Type, size*size*size),
		seedEdits: edits,
	}
}

func (c *Chunk) Size() int {
	return c.size
}

// SolidCount is the number of non-air voxels.
func (c *Chunk) SolidCount() int {
	return c.solid
}

func (c *Chunk) index(x, y, z int) int {
	return x + z*c.size + y*c.size*c.size
}

func (c *Chunk) inside(x, y, z int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.size && z >= 0 && z < c.size
}

// GetVoxel returns the voxel at a local position, Air outside the chunk.
func (c *Chunk) GetVoxel(x, y, z int) voxel.Type {
	if !c.inside(x, y, z) {
		return voxel.Air
	}
	return c.voxels[c.index(x, y, z)]
}

// SetVoxel writes a voxel at a local position and remembers which boundary planes were
// touched. Positions outside the chunk are ignored.
func (c *Chunk) SetVoxel(x, y, z int, t voxel.Type) {
	if !c.inside(x, y, z) {
		return
	}
	c.set(x, y, z, t)

	last := c.size - 1
	if x == 0 {
		c.touched |= 1 << NegX
	}
	if x == last {
		c.touched |= 1 << PosX
	}
	if y == 0 {
		c.touched |= 1 << NegY
	}
	if y == last {
		c.touched |= 1 << PosY
	}
	if z == 0 {
		c.touched |= 1 << NegZ
	}
	if z == last {
		c.touched |= 1 << PosZ
	}
}

func (c *Chunk) set(x, y, z int, t voxel.Type) {
	i := c.index(x, y, z)
	old := c.voxels[i]
	if old == t {
		return
	}
	if old == voxel.Air {
		c.solid++
	} else if t == voxel.Air {
		c.solid--
	}
	c.voxels[i] = t
}

// Place applies an absolute world edit. Edits targeting another chunk are appended to
// OutOfBounds and false is returned.
func (c *Chunk) Place(e voxel.Edit) bool {
	target, lx, ly, lz := Split(e.X, e.Y, e.Z, int32(c.size))
	if target != c.Position {
		c.OutOfBounds = append(c.OutOfBounds, e)
		return false
	}
	c.set(lx, ly, lz, e.Type)
	return true
}

// GenerateData fills the chunk from the generator, then applies the edits it was
// created with so buffered external edits win over terrain.
func (c *Chunk) GenerateData(gen Generator) {
	if gen != nil {
		gen.Generate(c)
	}
	for _, e := range c.seedEdits {
		c.Place(e)
	}
	c.seedEdits = nil
	c.touched = allFaces
}

// TakeOutOfBounds hands over the spilled edits and clears the list.
func (c *Chunk) TakeOutOfBounds() []voxel.Edit {
	out := c.OutOfBounds
	c.OutOfBounds = nil
	return out
}

// TakeTouchedFaces returns the boundary planes changed since the last call.
func (c *Chunk) TakeTouchedFaces() []Face {
	if c.touched == 0 {
		return nil
	}
	var faces []Face
	for _, f := range Faces {
		if c.touched&(1<<f) != 0 {
			faces = append(faces, f)
		}
	}
	c.touched = 0
	return faces
}

func (c *Chunk) planeIndex(f Face, x, y, z int) int {
	switch f {
	case NegX, PosX:
		return y*c.size + z
	case NegY, PosY:
		return x*c.size + z
	default:
		return x*c.size + y
	}
}

// BorderPlane copies the size×size layer of voxels lying on face f.
func (c *Chunk) BorderPlane(f Face) []voxel.Type {
	plane := make([]voxel.Type, c.size*c.size)
	fixed := 0
	if f == PosX || f == PosY || f == PosZ {
		fixed = c.size - 1
	}
	for a := 0; a < c.size; a++ {
		for b := 0; b < c.size; b++ {
			var x, y, z int
			switch f {
			case NegX, PosX:
				x, y, z = fixed, a, b
			case NegY, PosY:
				x, y, z = a, fixed, b
			default:
				x, y, z = a, b, fixed
			}
			plane[c.planeIndex(f, x, y, z)] = c.voxels[c.index(x, y, z)]
		}
	}
	return plane
}

// SetBorders installs the neighbour snapshot used by the next PrepareMesh.
func (c *Chunk) SetBorders(b Borders) {
	c.borders = b
}

// IsEmpty reports whether the opaque mesh has nothing to draw.
func (c *Chunk) IsEmpty() bool {
	return c.opaque.Empty()
}

// IsTransparentEmpty reports whether the transparent mesh has nothing to draw.
func (c *Chunk) IsTransparentEmpty() bool {
	return c.transparent.Empty()
}

func (c *Chunk) OpaqueMesh() *Mesh {
	return &c.opaque
}

func (c *Chunk) TransparentMesh() *Mesh {
	return &c.transparent
}
