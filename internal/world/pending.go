package world

import (
	"sync"

	"Craftmine/internal/chunk"
	"Craftmine/internal/voxel"
)

// PendingVoxels buffers absolute edits for chunks that are not resident yet. Entries
// are consumed by removal, so an edit is applied at most once.
type PendingVoxels struct {
	mu    sync.Mutex
	edits map[chunk.Coord][]voxel.Edit
}

func NewPendingVoxels() *PendingVoxels {
	return &PendingVoxels{edits: make(map[chunk.Coord][]voxel.Edit)}
}

// Add appends edits for target, keeping their order.
func (p *PendingVoxels) Add(target chunk.Coord, edits ...voxel.Edit) {
	if len(edits) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.edits[target] = append(p.edits[target], edits...)
}

// AddWorld re-keys each edit by the chunk containing its world position.
func (p *PendingVoxels) AddWorld(size int32, edits []voxel.Edit) {
	if len(edits) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range edits {
		target := chunk.CoordOf(e.X, e.Y, e.Z, size)
		p.edits[target] = append(p.edits[target], e)
	}
}

// Take removes and returns the edits buffered for target.
func (p *PendingVoxels) Take(target chunk.Coord) []voxel.Edit {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.takeLocked(target)
}

func (p *PendingVoxels) takeLocked(target chunk.Coord) []voxel.Edit {
	edits, ok := p.edits[target]
	if !ok {
		return nil
	}
	delete(p.edits, target)
	return edits
}

// Coords lists every coordinate with buffered edits.
func (p *PendingVoxels) Coords() []chunk.Coord {
	p.mu.Lock()
	defer p.mu.Unlock()
	coords := make([]chunk.Coord, 0, len(p.edits))
	for c := range p.edits {
		coords = append(coords, c)
	}
	return coords
}

// Len is the number of buffered edits across all chunks.
func (p *PendingVoxels) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.edits {
		n += len(e)
	}
	return n
}

// PendingChunks is the set of coordinates with an outstanding worker request.
type PendingChunks struct {
	mu  sync.Mutex
	set map[chunk.Coord]struct{}
}

func NewPendingChunks() *PendingChunks {
	return &PendingChunks{set: make(map[chunk.Coord]struct{})}
}

func (p *PendingChunks) Contains(c chunk.Coord) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.containsLocked(c)
}

func (p *PendingChunks) containsLocked(c chunk.Coord) bool {
	_, ok := p.set[c]
	return ok
}

func (p *PendingChunks) addLocked(c chunk.Coord) {
	p.set[c] = struct{}{}
}

// Remove clears c and reports whether it was pending.
func (p *PendingChunks) Remove(c chunk.Coord) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.set[c]; !ok {
		return false
	}
	delete(p.set, c)
	return true
}

func (p *PendingChunks) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.set)
}
