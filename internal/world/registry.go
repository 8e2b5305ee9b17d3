package world

import (
	"sync"

	"Craftmine/internal/chunk"
)

// State is the residency of a chunk coordinate as seen by the coordinator.
type State int

const (
	// Unloaded coordinates have no chunk anywhere.
	Unloaded State = iota
	// Resident chunks live in the registry and can be read and edited directly.
	Resident
	// InFlight chunks are owned by a worker until their result is drained.
	InFlight
)

func (s State) String() string {
	switch s {
	case Resident:
		return "resident"
	case InFlight:
		return "in-flight"
	default:
		return "unloaded"
	}
}

// Registry maps coordinates to resident chunks and tags the coordinates whose chunk is
// currently owned by a worker. A coordinate is never both.
type Registry struct {
	mu       sync.Mutex
	chunks   map[chunk.Coord]*chunk.Chunk
	inFlight map[chunk.Coord]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		chunks:   make(map[chunk.Coord]*chunk.Chunk),
		inFlight: make(map[chunk.Coord]struct{}),
	}
}

func (r *Registry) State(c chunk.Coord) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked(c)
}

func (r *Registry) stateLocked(c chunk.Coord) State {
	if _, ok := r.chunks[c]; ok {
		return Resident
	}
	if _, ok := r.inFlight[c]; ok {
		return InFlight
	}
	return Unloaded
}

// Insert makes ch resident, clearing its in-flight tag. The chunk it replaces, if any,
// is returned so its GPU buffers can be released.
func (r *Registry) Insert(ch *chunk.Chunk) *chunk.Chunk {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.chunks[ch.Position]
	r.chunks[ch.Position] = ch
	delete(r.inFlight, ch.Position)
	return prev
}

// CheckOut removes a resident chunk and tags its coordinate in flight, transferring
// ownership to the caller.
func (r *Registry) CheckOut(c chunk.Coord) (*chunk.Chunk, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.checkOutLocked(c)
}

func (r *Registry) checkOutLocked(c chunk.Coord) (*chunk.Chunk, bool) {
	ch, ok := r.chunks[c]
	if !ok {
		return nil, false
	}
	delete(r.chunks, c)
	r.inFlight[c] = struct{}{}
	return ch, true
}

// markInFlightLocked tags a coordinate whose chunk does not exist yet.
func (r *Registry) markInFlightLocked(c chunk.Coord) {
	r.inFlight[c] = struct{}{}
}

// With runs fn on the resident chunk at c while holding the registry lock. It reports
// whether the chunk was resident.
func (r *Registry) With(c chunk.Coord, fn func(ch *chunk.Chunk)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.chunks[c]
	if !ok {
		return false
	}
	fn(ch)
	return true
}

// Each visits every resident chunk under the lock. fn must not call back into the
// registry.
func (r *Registry) Each(fn func(ch *chunk.Chunk)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.chunks {
		fn(ch)
	}
}

// Evict removes and returns every resident chunk for which keep is false. In-flight
// coordinates are not affected.
func (r *Registry) Evict(keep func(c chunk.Coord) bool) []*chunk.Chunk {
	r.mu.Lock()
	defer r.mu.Unlock()
	var evicted []*chunk.Chunk
	for c, ch := range r.chunks {
		if !keep(c) {
			delete(r.chunks, c)
			evicted = append(evicted, ch)
		}
	}
	return evicted
}

// Len is the number of resident chunks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chunks)
}

// InFlightLen is the number of coordinates owned by workers.
func (r *Registry) InFlightLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inFlight)
}

// borders snapshots the facing plane of every resident neighbour of c.
func (r *Registry) borders(c chunk.Coord) chunk.Borders {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bordersLocked(c)
}

func (r *Registry) bordersLocked(c chunk.Coord) chunk.Borders {
	var b chunk.Borders
	for _, f := range chunk.Faces {
		if n, ok := r.chunks[c.Neighbor(f)]; ok {
			b[f] = n.BorderPlane(f.Opposite())
		}
	}
	return b
}
