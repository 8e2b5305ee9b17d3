package world

import (
	"context"
	"time"

	"Craftmine/internal/chunk"
	"Craftmine/internal/config"
	"Craftmine/internal/logger"
	"Craftmine/internal/voxel"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const closeTimeout = 5 * time.Second

// Renderer draws resident chunks. It is also the GPU backend for uploads.
type Renderer interface {
	chunk.GPU
	BeginOpaque()
	BeginTransparent()
	End()
}

// Culler is implemented by renderers that can skip chunks outside the view.
type Culler interface {
	ChunkVisible(c chunk.Coord) bool
}

// World streams chunks around the player. Every exported method except Stats, State,
// IsPending and ChunkCount must be called from the thread owning the GPU context.
//
// Locks are always taken in the order registry, pending chunks, pending voxels, and
// none is held across a queue push.
type World struct {
	size           int32
	renderDistance int32
	searchRadius   int32
	maxChunks      int

	gpu           chunk.GPU
	registry      *Registry
	pendingVoxels *PendingVoxels
	pendingChunks *PendingChunks
	pool          *workerPool
	stats         *Stats
	closed        atomic.Bool

	// staleBorders holds in-flight coordinates whose neighbour changed a shared face
	// after they were dispatched. Guarded by the registry lock.
	staleBorders map[chunk.Coord]struct{}
}

// New starts the worker pool. A nil generator selects the perlin terrain configured in
// cfg; a nil gpu discards uploads, which is enough for headless use.
func New(cfg config.Config, gen chunk.Generator, gpu chunk.GPU) *World {
	if gen == nil {
		gen = chunk.NewTerrainGenerator(cfg.Seed, cfg.Terrain.Settings())
	}
	if gpu == nil {
		gpu = nopGPU{}
	}
	stats := &Stats{}
	w := &World{
		size:           int32(cfg.ChunkSize),
		renderDistance: int32(cfg.RenderDistance),
		searchRadius:   int32(cfg.SearchRadius),
		maxChunks:      cfg.MaxChunks,
		gpu:            gpu,
		registry:       NewRegistry(),
		pendingVoxels:  NewPendingVoxels(),
		pendingChunks:  NewPendingChunks(),
		stats:          stats,
		staleBorders:   make(map[chunk.Coord]struct{}),
	}
	w.pool = newWorkerPool(cfg.Workers, w.size, gen, stats)
	logger.Log.Info("World created",
		zap.Int("chunkSize", cfg.ChunkSize),
		zap.Int("workers", cfg.Workers),
		zap.Int64("seed", cfg.Seed))
	return w
}

func (w *World) ChunkSize() int {
	return int(w.size)
}

func (w *World) State(c chunk.Coord) State {
	return w.registry.State(c)
}

func (w *World) IsPending(c chunk.Coord) bool {
	return w.pendingChunks.Contains(c)
}

// ChunkCount is the number of resident chunks.
func (w *World) ChunkCount() int {
	return w.registry.Len()
}

// GetVoxel returns Air for anything not resident, including chunks owned by a worker.
func (w *World) GetVoxel(wx, wy, wz int32) voxel.Type {
	target, lx, ly, lz := chunk.Split(wx, wy, wz, w.size)
	t := voxel.Air
	w.registry.With(target, func(ch *chunk.Chunk) {
		t = ch.GetVoxel(lx, ly, lz)
	})
	return t
}

// SetVoxelMainThread edits a resident chunk in place and uploads its mesh before
// returning. Resident neighbours sharing the edited boundary are rebuilt as well.
func (w *World) SetVoxelMainThread(wx, wy, wz int32, t voxel.Type) bool {
	target, lx, ly, lz := chunk.Split(wx, wy, wz, w.size)

	w.registry.mu.Lock()
	defer w.registry.mu.Unlock()

	ch, ok := w.registry.chunks[target]
	if !ok {
		return false
	}
	ch.SetVoxel(lx, ly, lz, t)
	faces := ch.TakeTouchedFaces()
	w.remeshLocked(ch)

	w.acrossFacesLocked(target, faces, w.remeshLocked)
	return true
}

// acrossFacesLocked calls fn for each resident neighbour of pos across faces. Neighbours
// owned by a worker were dispatched with the old planes and are marked stale instead.
func (w *World) acrossFacesLocked(pos chunk.Coord, faces []chunk.Face, fn func(n *chunk.Chunk)) {
	for _, f := range faces {
		c := pos.Neighbor(f)
		if n, ok := w.registry.chunks[c]; ok {
			fn(n)
			continue
		}
		if w.registry.stateLocked(c) == InFlight {
			w.staleBorders[c] = struct{}{}
		}
	}
}

func (w *World) remeshLocked(ch *chunk.Chunk) {
	ch.SetBorders(w.registry.bordersLocked(ch.Position))
	ch.PrepareMesh()
	ch.UploadToGPU(w.gpu)
}

// SetVoxelAsync hands the target chunk to a worker. The chunk reads as unloaded until
// the result is drained by ProcessChunkUpdates.
func (w *World) SetVoxelAsync(wx, wy, wz int32, t voxel.Type) bool {
	target := chunk.CoordOf(wx, wy, wz, w.size)
	ch, ok := w.checkOut(target)
	if !ok {
		return false
	}
	w.pool.submit(modifyVoxelWork{chunk: ch, wx: wx, wy: wy, wz: wz, voxel: t})
	return true
}

// LoadVoxelsWorldAsync applies offset-relative edits on the workers. Edits targeting
// chunks that are not resident are buffered until those chunks load.
func (w *World) LoadVoxelsWorldAsync(edits []voxel.Edit, offset Offset) {
	if len(edits) == 0 {
		return
	}
	parts := partitionEdits(edits, offset, w.size)
	owned := make(map[chunk.Coord]*chunk.Chunk)
	buffered := 0

	w.registry.mu.Lock()
	w.pendingChunks.mu.Lock()
	w.pendingVoxels.mu.Lock()
	for coord, part := range parts {
		if ch, ok := w.registry.checkOutLocked(coord); ok {
			ch.SetBorders(w.registry.bordersLocked(coord))
			w.pendingChunks.addLocked(coord)
			owned[coord] = ch
			continue
		}
		w.pendingVoxels.edits[coord] = append(w.pendingVoxels.edits[coord], part...)
		buffered += len(part)
	}
	w.pendingVoxels.mu.Unlock()
	w.pendingChunks.mu.Unlock()
	w.registry.mu.Unlock()

	w.stats.Buffered.Add(int64(buffered))
	logger.Log.Debug("Voxel batch",
		zap.Int("edits", len(edits)),
		zap.Int("chunks", len(owned)),
		zap.Int("buffered", buffered))

	if len(owned) == 0 {
		return
	}
	w.pool.submit(modifyBatchWork{edits: edits, offset: offset, chunks: owned})
}

// CreateChunk queues generation of c unless it is already resident, in flight or
// pending.
func (w *World) CreateChunk(c chunk.Coord) bool {
	w.registry.mu.Lock()
	w.pendingChunks.mu.Lock()
	if w.registry.stateLocked(c) != Unloaded || w.pendingChunks.containsLocked(c) {
		w.pendingChunks.mu.Unlock()
		w.registry.mu.Unlock()
		return false
	}
	item := w.reserveLocked(c)
	w.pendingChunks.mu.Unlock()
	w.registry.mu.Unlock()

	w.pool.submit(item)
	return true
}

// reserveLocked marks c pending and in flight and collects what its generation needs.
// The caller holds the registry and pending chunk locks.
func (w *World) reserveLocked(c chunk.Coord) generateWork {
	w.pendingChunks.addLocked(c)
	w.registry.markInFlightLocked(c)
	return generateWork{
		coord:   c,
		edits:   w.pendingVoxels.Take(c),
		borders: w.registry.bordersLocked(c),
	}
}

// RequestRemesh rebuilds a resident chunk's mesh on a worker.
func (w *World) RequestRemesh(c chunk.Coord) bool {
	ch, ok := w.checkOut(c)
	if !ok {
		return false
	}
	w.pool.submit(remeshWork{chunk: ch})
	return true
}

// RemeshNow rebuilds and uploads a resident chunk's mesh immediately.
func (w *World) RemeshNow(c chunk.Coord) bool {
	w.registry.mu.Lock()
	defer w.registry.mu.Unlock()
	ch, ok := w.registry.chunks[c]
	if !ok {
		return false
	}
	w.remeshLocked(ch)
	return true
}

// checkOut moves a resident chunk out of the registry for a worker, snapshotting its
// neighbours' facing planes first.
func (w *World) checkOut(c chunk.Coord) (*chunk.Chunk, bool) {
	w.registry.mu.Lock()
	defer w.registry.mu.Unlock()
	ch, ok := w.registry.checkOutLocked(c)
	if !ok {
		return nil, false
	}
	ch.SetBorders(w.registry.bordersLocked(c))

	w.pendingChunks.mu.Lock()
	w.pendingChunks.addLocked(c)
	w.pendingChunks.mu.Unlock()
	return ch, true
}

// RemoveDistantChunks evicts every resident chunk whose Chebyshev distance from center
// exceeds radius and frees its GPU buffers.
func (w *World) RemoveDistantChunks(center chunk.Coord, radius int32) int {
	evicted := w.registry.Evict(func(c chunk.Coord) bool {
		return c.Chebyshev(center) <= radius
	})
	for _, ch := range evicted {
		ch.ReleaseGPU(w.gpu)
	}
	if len(evicted) > 0 {
		w.stats.Evicted.Add(int64(len(evicted)))
		logger.Log.Debug("Evicted chunks", zap.Int("count", len(evicted)), zap.Any("center", center))
	}
	return len(evicted)
}

// UpdateChunksAroundPlayer evicts chunks beyond the render distance, then schedules
// the nearest missing chunk while the registry is below its limit.
func (w *World) UpdateChunksAroundPlayer(center chunk.Coord) bool {
	w.RemoveDistantChunks(center, w.renderDistance)
	if w.registry.Len() >= w.maxChunks {
		return false
	}
	return w.GenerateNearestMissingChunk(center)
}

// ProcessChunkUpdates drains finished work without blocking. It must run once per
// frame and returns the number of chunks received.
func (w *World) ProcessChunkUpdates() int {
	drained := 0
	for {
		ch, ok := w.pool.results.tryPop()
		if !ok {
			break
		}
		w.receive(ch)
		drained++
	}
	if drained > 0 {
		w.stats.Drained.Add(int64(drained))
	}

	applied := w.applyPendingVoxels()

	var rebuild []chunk.Coord
	w.registry.Each(func(ch *chunk.Chunk) {
		if ch.NeedsRebuild {
			ch.NeedsRebuild = false
			rebuild = append(rebuild, ch.Position)
		}
	})
	for _, c := range rebuild {
		w.RequestRemesh(c)
	}

	if drained > 0 || applied > 0 || len(rebuild) > 0 {
		logger.Log.Debug("Processed chunk updates",
			zap.Int("drained", drained),
			zap.Int("pendingApplied", applied),
			zap.Int("remesh", len(rebuild)))
	}
	return drained
}

func (w *World) receive(ch *chunk.Chunk) {
	pos := ch.Position
	w.pendingChunks.Remove(pos)
	w.pendingVoxels.AddWorld(w.size, ch.TakeOutOfBounds())
	faces := ch.TakeTouchedFaces()

	ch.UploadToGPU(w.gpu)
	if prev := w.registry.Insert(ch); prev != nil && prev != ch {
		prev.ReleaseGPU(w.gpu)
	}

	w.registry.mu.Lock()
	defer w.registry.mu.Unlock()
	if _, ok := w.staleBorders[pos]; ok {
		delete(w.staleBorders, pos)
		ch.NeedsRebuild = true
	}
	w.acrossFacesLocked(pos, faces, func(n *chunk.Chunk) {
		n.NeedsRebuild = true
	})
}

// applyPendingVoxels merges buffered edits into chunks that are resident now and flags
// them for a rebuild.
func (w *World) applyPendingVoxels() int {
	applied := 0
	for _, c := range w.pendingVoxels.Coords() {
		w.registry.With(c, func(ch *chunk.Chunk) {
			for _, e := range w.pendingVoxels.Take(c) {
				_, lx, ly, lz := chunk.Split(e.X, e.Y, e.Z, w.size)
				ch.SetVoxel(lx, ly, lz, e.Type)
				applied++
			}
			ch.NeedsRebuild = true
		})
	}
	return applied
}

// Render draws opaque geometry first, then transparent geometry. Renderers that
// implement Culler only see the chunks they report visible.
func (w *World) Render(r Renderer) {
	cull, _ := r.(Culler)
	var visible []*chunk.Chunk
	w.registry.Each(func(ch *chunk.Chunk) {
		if cull == nil || cull.ChunkVisible(ch.Position) {
			visible = append(visible, ch)
		}
	})

	r.BeginOpaque()
	for _, ch := range visible {
		ch.Render(r)
	}
	r.BeginTransparent()
	for _, ch := range visible {
		ch.RenderTransparent(r)
	}
	r.End()
}

// Close stops the workers, then frees the GPU buffers of every resident chunk. Chunks
// still in flight are dropped.
func (w *World) Close() error {
	if !w.closed.CAS(false, true) {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	err := w.pool.shutdown(ctx)

	w.registry.Each(func(ch *chunk.Chunk) {
		ch.ReleaseGPU(w.gpu)
	})
	if err != nil {
		logger.Log.Error("Failed to stop chunk workers", zap.Error(err))
		return err
	}
	logger.Log.Info("World closed", zap.Int("resident", w.registry.Len()))
	return nil
}

type nopGPU struct{}

func (nopGPU) Upload(*chunk.Mesh, *chunk.MeshBuffers) {}
func (nopGPU) Release(*chunk.MeshBuffers)             {}
func (nopGPU) Draw(*chunk.MeshBuffers)                {}
