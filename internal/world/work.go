package world

import (
	"Craftmine/internal/chunk"
	"Craftmine/internal/voxel"
)

// workItem is the closed set of requests a worker understands. Items that carry a chunk
// own it outright until the worker hands it back through the results queue.
type workItem interface {
	isWork()
}

// generateWork builds a new chunk, applying edits buffered for it before dispatch.
type generateWork struct {
	coord   chunk.Coord
	edits   []voxel.Edit
	borders chunk.Borders
}

// remeshWork rebuilds the meshes of an existing chunk without touching its voxels.
type remeshWork struct {
	chunk *chunk.Chunk
}

// modifyVoxelWork writes one voxel given in world coordinates, then remeshes.
type modifyVoxelWork struct {
	chunk      *chunk.Chunk
	wx, wy, wz int32
	voxel      voxel.Type
}

// modifyBatchWork applies offset-relative edits to the chunks it owns. Edits whose
// chunk is not in the set are skipped; the coordinator buffers those before dispatch.
type modifyBatchWork struct {
	edits  []voxel.Edit
	offset Offset
	chunks map[chunk.Coord]*chunk.Chunk
}

// exitWork stops exactly one worker.
type exitWork struct{}

func (generateWork) isWork()    {}
func (remeshWork) isWork()      {}
func (modifyVoxelWork) isWork() {}
func (modifyBatchWork) isWork() {}
func (exitWork) isWork()        {}

// Offset shifts the edits of a batch into world space.
type Offset struct {
	X, Y, Z int32
}

// partitionEdits moves offset-relative edits into world space and groups them by the
// chunk containing them, preserving order within each chunk.
func partitionEdits(edits []voxel.Edit, off Offset, size int32) map[chunk.Coord][]voxel.Edit {
	parts := make(map[chunk.Coord][]voxel.Edit)
	for _, e := range edits {
		world := voxel.Edit{X: e.X + off.X, Y: e.Y + off.Y, Z: e.Z + off.Z, Type: e.Type}
		target := chunk.CoordOf(world.X, world.Y, world.Z, size)
		parts[target] = append(parts[target], world)
	}
	return parts
}
