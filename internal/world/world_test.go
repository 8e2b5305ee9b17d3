package world

import (
	"sync"
	"testing"
	"time"

	"Craftmine/internal/chunk"
	"Craftmine/internal/config"
	"Craftmine/internal/voxel"
)

type fakeGPU struct {
	uploads  int
	releases int
	draws    int
	calls    []string
}

func (g *fakeGPU) Upload(mesh *chunk.Mesh, buf *chunk.MeshBuffers) {
	g.uploads++
	buf.IndexCount = int32(len(mesh.Indices))
}

func (g *fakeGPU) Release(buf *chunk.MeshBuffers) {
	g.releases++
	*buf = chunk.MeshBuffers{}
}

func (g *fakeGPU) Draw(buf *chunk.MeshBuffers) {
	g.draws++
	g.calls = append(g.calls, "draw")
}

func (g *fakeGPU) BeginOpaque()      { g.calls = append(g.calls, "opaque") }
func (g *fakeGPU) BeginTransparent() { g.calls = append(g.calls, "transparent") }
func (g *fakeGPU) End()              { g.calls = append(g.calls, "end") }

// flatGenerator fills everything below y=0 with stone.
var flatGenerator = chunk.GeneratorFunc(func(c *chunk.Chunk) {
	size := c.Size()
	_, oy, _ := c.Position.Origin(int32(size))
	for y := 0; y < size; y++ {
		if oy+int32(y) >= 0 {
			break
		}
		for z := 0; z < size; z++ {
			for x := 0; x < size; x++ {
				c.SetVoxel(x, y, z, voxel.Stone)
			}
		}
	}
})

func testConfig() config.Config {
	cfg := config.Default()
	cfg.ChunkSize = 8
	cfg.Workers = 2
	cfg.RenderDistance = 2
	cfg.SearchRadius = 2
	cfg.MaxChunks = 100
	return cfg
}

func newTestWorld(t *testing.T, cfg config.Config, gen chunk.Generator) (*World, *fakeGPU) {
	t.Helper()
	if gen == nil {
		gen = flatGenerator
	}
	gpu := &fakeGPU{}
	w := New(cfg, gen, gpu)
	t.Cleanup(func() {
		if err := w.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return w, gpu
}

// settle drains until no chunk is owned by a worker.
func settle(t *testing.T, w *World) {
	t.Helper()
	for i := 0; i < 5000; i++ {
		w.ProcessChunkUpdates()
		s := w.Stats()
		if s.InFlight == 0 && s.PendingChunks == 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("World did not settle: %+v", w.Stats())
}

func load(t *testing.T, w *World, coords ...chunk.Coord) {
	t.Helper()
	for _, c := range coords {
		if !w.CreateChunk(c) {
			t.Fatalf("CreateChunk(%v) refused", c)
		}
	}
	settle(t, w)
	for _, c := range coords {
		if w.State(c) != Resident {
			t.Fatalf("Expected %v resident, got %v", c, w.State(c))
		}
	}
}

func TestUnloadedVoxelIsAir(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)

	if got := w.GetVoxel(1, -2, 3); got != voxel.Air {
		t.Errorf("Expected Air, got %v", got)
	}
	if w.State(chunk.Coord{}) != Unloaded {
		t.Errorf("Expected unloaded state, got %v", w.State(chunk.Coord{}))
	}
}

func TestGeneratedChunkIsReadable(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)
	load(t, w, chunk.Coord{X: -1, Y: -1, Z: -1}, chunk.Coord{})

	if got := w.GetVoxel(-1, -1, -1); got != voxel.Stone {
		t.Errorf("Expected Stone at (-1,-1,-1), got %v", got)
	}
	if got := w.GetVoxel(-8, -8, -8); got != voxel.Stone {
		t.Errorf("Expected Stone at (-8,-8,-8), got %v", got)
	}
	if got := w.GetVoxel(0, 0, 0); got != voxel.Air {
		t.Errorf("Expected Air at origin, got %v", got)
	}
	if w.ChunkCount() != 2 {
		t.Errorf("Expected 2 chunks, got %d", w.ChunkCount())
	}
}

func TestSetVoxelMainThreadRoundTrip(t *testing.T) {
	w, gpu := newTestWorld(t, testConfig(), nil)
	load(t, w, chunk.Coord{})

	before := gpu.uploads
	if !w.SetVoxelMainThread(1, 1, 1, voxel.Glass) {
		t.Fatal("Expected edit on resident chunk to apply")
	}
	if got := w.GetVoxel(1, 1, 1); got != voxel.Glass {
		t.Errorf("Expected Glass, got %v", got)
	}
	if gpu.uploads-before != 2 {
		t.Errorf("Expected the chunk to be uploaded once, got %d mesh uploads", gpu.uploads-before)
	}
	if w.SetVoxelMainThread(100, 100, 100, voxel.Glass) {
		t.Error("Expected edit on unloaded chunk to report false")
	}
}

func TestSetVoxelMainThreadRemeshesBorderNeighbour(t *testing.T) {
	w, gpu := newTestWorld(t, testConfig(), nil)
	load(t, w, chunk.Coord{}, chunk.Coord{X: 1})

	before := gpu.uploads
	w.SetVoxelMainThread(7, 3, 3, voxel.Stone)
	if gpu.uploads-before != 4 {
		t.Errorf("Expected both chunks uploaded, got %d mesh uploads", gpu.uploads-before)
	}

	before = gpu.uploads
	w.SetVoxelMainThread(3, 3, 3, voxel.Stone)
	if gpu.uploads-before != 2 {
		t.Errorf("Interior edit should only upload its chunk, got %d mesh uploads", gpu.uploads-before)
	}
}

func opaqueIndices(w *World, c chunk.Coord) int {
	n := -1
	w.registry.With(c, func(ch *chunk.Chunk) {
		n = len(ch.OpaqueMesh().Indices)
	})
	return n
}

func TestSetVoxelMainThreadMarksInFlightNeighbourStale(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)
	a, b := chunk.Coord{}, chunk.Coord{X: 1}
	load(t, w, a, b)
	w.SetVoxelMainThread(7, 3, 3, voxel.Stone)
	w.SetVoxelMainThread(8, 3, 3, voxel.Stone)

	if !w.RequestRemesh(b) {
		t.Fatal("Expected remesh of resident chunk")
	}
	w.SetVoxelMainThread(7, 3, 3, voxel.Air)
	settle(t, w)

	got := opaqueIndices(w, b)
	w.RemeshNow(b)
	if want := opaqueIndices(w, b); got != want {
		t.Errorf("Expected %d opaque indices after settling, got %d", want, got)
	}
	if got != 36 {
		t.Errorf("Expected a full cube of 36 indices, got %d", got)
	}
}

func TestReturningChunkMarksInFlightNeighbourStale(t *testing.T) {
	a, b := chunk.Coord{}, chunk.Coord{X: 1}
	release := make(chan struct{})
	gen := chunk.GeneratorFunc(func(c *chunk.Chunk) {
		if c.Position == b {
			<-release
			c.SetVoxel(0, 3, 3, voxel.Stone)
		}
	})
	w, _ := newTestWorld(t, testConfig(), gen)
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }
	t.Cleanup(unblock)
	load(t, w, a)
	w.SetVoxelMainThread(7, 3, 3, voxel.Stone)

	if !w.CreateChunk(b) {
		t.Fatal("CreateChunk refused")
	}
	w.SetVoxelAsync(7, 3, 3, voxel.Air)
	for i := 0; i < 5000 && w.State(a) != Resident; i++ {
		w.ProcessChunkUpdates()
		time.Sleep(time.Millisecond)
	}
	if w.State(a) != Resident {
		t.Fatalf("Expected edited chunk back, got %v", w.State(a))
	}

	w.registry.mu.Lock()
	_, stale := w.staleBorders[b]
	w.registry.mu.Unlock()
	if !stale {
		t.Error("Expected the generating neighbour to be marked stale")
	}

	unblock()
	settle(t, w)

	got := opaqueIndices(w, b)
	w.RemeshNow(b)
	if want := opaqueIndices(w, b); got != want {
		t.Errorf("Expected %d opaque indices after settling, got %d", want, got)
	}
	if got != 36 {
		t.Errorf("Expected a full cube of 36 indices, got %d", got)
	}
}

func TestSetVoxelAsyncIsEventuallyVisible(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)
	load(t, w, chunk.Coord{})

	if !w.SetVoxelAsync(2, 2, 2, voxel.Glass) {
		t.Fatal("Expected async edit on resident chunk to be accepted")
	}
	if w.State(chunk.Coord{}) != InFlight {
		t.Errorf("Expected chunk in flight, got %v", w.State(chunk.Coord{}))
	}
	if got := w.GetVoxel(2, 2, 2); got != voxel.Air {
		t.Errorf("In-flight chunk should read as unloaded, got %v", got)
	}

	settle(t, w)
	if got := w.GetVoxel(2, 2, 2); got != voxel.Glass {
		t.Errorf("Expected Glass after drain, got %v", got)
	}
	if w.SetVoxelAsync(200, 0, 0, voxel.Glass) {
		t.Error("Expected async edit on unloaded chunk to report false")
	}
}

func TestPartitionEdits(t *testing.T) {
	edits := []voxel.Edit{
		{X: 0, Y: 0, Z: 0, Type: voxel.Stone},
		{X: 0, Y: 1, Z: 0, Type: voxel.Dirt},
		{X: 40, Y: 0, Z: 0, Type: voxel.Glass},
	}
	parts := partitionEdits(edits, Offset{Y: 300}, 32)

	if len(parts) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(parts))
	}
	a := parts[chunk.Coord{X: 0, Y: 9, Z: 0}]
	if len(a) != 2 || a[0] != (voxel.Edit{X: 0, Y: 300, Z: 0, Type: voxel.Stone}) || a[1] != (voxel.Edit{X: 0, Y: 301, Z: 0, Type: voxel.Dirt}) {
		t.Errorf("Unexpected edits for (0,9,0): %v", a)
	}
	b := parts[chunk.Coord{X: 1, Y: 9, Z: 0}]
	if len(b) != 1 || b[0] != (voxel.Edit{X: 40, Y: 300, Z: 0, Type: voxel.Glass}) {
		t.Errorf("Unexpected edits for (1,9,0): %v", b)
	}
}

func TestLoadVoxelsWorldAsyncAppliesPerChunk(t *testing.T) {
	cfg := testConfig()
	cfg.ChunkSize = 32
	w, _ := newTestWorld(t, cfg, nil)
	load(t, w, chunk.Coord{Y: 9}, chunk.Coord{X: 1, Y: 9})

	w.LoadVoxelsWorldAsync([]voxel.Edit{
		{X: 0, Y: 0, Z: 0, Type: voxel.Stone},
		{X: 0, Y: 1, Z: 0, Type: voxel.Dirt},
		{X: 40, Y: 0, Z: 0, Type: voxel.Glass},
	}, Offset{Y: 300})

	if w.State(chunk.Coord{Y: 9}) != InFlight || w.State(chunk.Coord{X: 1, Y: 9}) != InFlight {
		t.Error("Expected both target chunks to be checked out")
	}
	settle(t, w)

	checks := []struct {
		x, y, z int32
		want    voxel.Type
	}{
		{0, 300, 0, voxel.Stone},
		{0, 301, 0, voxel.Dirt},
		{40, 300, 0, voxel.Glass},
		{1, 300, 0, voxel.Air},
	}
	for _, c := range checks {
		if got := w.GetVoxel(c.x, c.y, c.z); got != c.want {
			t.Errorf("At (%d,%d,%d) expected %v, got %v", c.x, c.y, c.z, c.want, got)
		}
	}
}

func TestLoadVoxelsWorldAsyncBuffersMissingChunks(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)
	load(t, w, chunk.Coord{})

	w.LoadVoxelsWorldAsync([]voxel.Edit{
		{X: 1, Y: 1, Z: 1, Type: voxel.Glass},
		{X: 9, Y: 1, Z: 1, Type: voxel.Cobblestone},
	}, Offset{})

	if n := w.Stats().PendingVoxels; n != 1 {
		t.Fatalf("Expected the edit for the missing chunk to be buffered, got %d", n)
	}
	settle(t, w)
	if got := w.GetVoxel(1, 1, 1); got != voxel.Glass {
		t.Errorf("Expected Glass in resident chunk, got %v", got)
	}

	load(t, w, chunk.Coord{X: 1})
	if got := w.GetVoxel(9, 1, 1); got != voxel.Cobblestone {
		t.Errorf("Expected buffered Cobblestone once loaded, got %v", got)
	}
	if n := w.Stats().PendingVoxels; n != 0 {
		t.Errorf("Expected no buffered edits left, got %d", n)
	}
}

func TestBufferedEditsWinOverTerrain(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)

	w.LoadVoxelsWorldAsync([]voxel.Edit{{X: -3, Y: -3, Z: -3, Type: voxel.Glass}}, Offset{})
	load(t, w, chunk.Coord{X: -1, Y: -1, Z: -1})

	if got := w.GetVoxel(-3, -3, -3); got != voxel.Glass {
		t.Errorf("Expected buffered Glass over stone terrain, got %v", got)
	}
	if got := w.GetVoxel(-4, -3, -3); got != voxel.Stone {
		t.Errorf("Expected Stone next to the edit, got %v", got)
	}
}

func TestOutOfBoundsEditsReachNeighbour(t *testing.T) {
	spill := chunk.GeneratorFunc(func(c *chunk.Chunk) {
		if c.Position == (chunk.Coord{}) {
			c.Place(voxel.Edit{X: 3, Y: 3, Z: 3, Type: voxel.SpruceWood})
			c.Place(voxel.Edit{X: 8, Y: 3, Z: 3, Type: voxel.SpruceLeaves})
		}
	})
	w, _ := newTestWorld(t, testConfig(), spill)

	load(t, w, chunk.Coord{})
	if got := w.GetVoxel(3, 3, 3); got != voxel.SpruceWood {
		t.Errorf("Expected SpruceWood, got %v", got)
	}
	if n := w.Stats().PendingVoxels; n != 1 {
		t.Fatalf("Expected spilled edit buffered, got %d", n)
	}

	load(t, w, chunk.Coord{X: 1})
	if got := w.GetVoxel(8, 3, 3); got != voxel.SpruceLeaves {
		t.Errorf("Expected SpruceLeaves in neighbour, got %v", got)
	}
}

func TestOutOfBoundsEditsMergeIntoResidentNeighbour(t *testing.T) {
	spill := chunk.GeneratorFunc(func(c *chunk.Chunk) {
		if c.Position == (chunk.Coord{}) {
			c.Place(voxel.Edit{X: -1, Y: 0, Z: 0, Type: voxel.WalnutLeaves})
		}
	})
	w, _ := newTestWorld(t, testConfig(), spill)

	load(t, w, chunk.Coord{X: -1})
	load(t, w, chunk.Coord{})
	if got := w.GetVoxel(-1, 0, 0); got != voxel.WalnutLeaves {
		t.Errorf("Expected WalnutLeaves merged into resident chunk, got %v", got)
	}
}

func TestCreateChunkDeduplicates(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)
	c := chunk.Coord{X: 2}

	if !w.CreateChunk(c) {
		t.Fatal("Expected first request to be accepted")
	}
	if !w.IsPending(c) || w.State(c) != InFlight {
		t.Errorf("Expected %v pending and in flight", c)
	}
	if w.CreateChunk(c) {
		t.Error("Expected duplicate request to be refused")
	}
	settle(t, w)
	if w.CreateChunk(c) {
		t.Error("Expected request for resident chunk to be refused")
	}
	if n := w.Stats().Generated; n != 1 {
		t.Errorf("Expected a single generation, got %d", n)
	}
}

func TestSchedulerPicksNearestMissing(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)
	load(t, w, chunk.Coord{}, chunk.Coord{X: 1})

	if !w.GenerateNearestMissingChunk(chunk.Coord{}) {
		t.Fatal("Expected a chunk to be scheduled")
	}
	if !w.IsPending(chunk.Coord{X: -1}) {
		t.Errorf("Expected (-1,0,0) scheduled first, stats %+v", w.Stats())
	}

	if !w.GenerateNearestMissingChunk(chunk.Coord{}) {
		t.Fatal("Expected a second chunk to be scheduled")
	}
	if !w.IsPending(chunk.Coord{Y: -1}) {
		t.Error("Expected (0,-1,0) scheduled second")
	}
	if w.Stats().PendingChunks != 2 {
		t.Errorf("Expected 2 pending chunks, got %d", w.Stats().PendingChunks)
	}
}

func TestSchedulerFillsDistanceOneBeforeTwo(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)

	for i := 0; i < 7; i++ {
		if !w.GenerateNearestMissingChunk(chunk.Coord{}) {
			t.Fatalf("Expected call %d to schedule", i)
		}
	}
	expected := []chunk.Coord{
		{}, {X: -1}, {X: 1}, {Y: -1}, {Y: 1}, {Z: -1}, {Z: 1},
	}
	for _, c := range expected {
		if !w.IsPending(c) {
			t.Errorf("Expected %v pending", c)
		}
	}

	w.GenerateNearestMissingChunk(chunk.Coord{})
	if w.IsPending(chunk.Coord{X: -2}) {
		t.Error("Distance 2 chunk scheduled before the sqrt(2) ring")
	}
	settle(t, w)
}

func TestSchedulerStopsAtSearchRadius(t *testing.T) {
	cfg := testConfig()
	cfg.SearchRadius = 0
	w, _ := newTestWorld(t, cfg, nil)
	load(t, w, chunk.Coord{})

	if w.GenerateNearestMissingChunk(chunk.Coord{}) {
		t.Error("Expected nothing to schedule with the center resident and radius 0")
	}
}

func TestRemoveDistantChunksKeepsExactRadius(t *testing.T) {
	w, gpu := newTestWorld(t, testConfig(), nil)
	load(t, w,
		chunk.Coord{},
		chunk.Coord{X: 2},
		chunk.Coord{X: 3},
		chunk.Coord{X: -2, Y: 2, Z: -2},
	)

	before := gpu.releases
	if n := w.RemoveDistantChunks(chunk.Coord{}, 2); n != 1 {
		t.Errorf("Expected 1 eviction, got %d", n)
	}
	if w.State(chunk.Coord{X: 3}) != Unloaded {
		t.Error("Expected (3,0,0) evicted")
	}
	for _, c := range []chunk.Coord{{}, {X: 2}, {X: -2, Y: 2, Z: -2}} {
		if w.State(c) != Resident {
			t.Errorf("Expected %v retained", c)
		}
	}
	if gpu.releases-before != 2 {
		t.Errorf("Expected evicted chunk's buffers released, got %d releases", gpu.releases-before)
	}
}

func TestUpdateChunksAroundPlayerRespectsLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxChunks = 1
	w, _ := newTestWorld(t, cfg, nil)

	if !w.UpdateChunksAroundPlayer(chunk.Coord{}) {
		t.Fatal("Expected the center chunk to be scheduled")
	}
	settle(t, w)
	if w.UpdateChunksAroundPlayer(chunk.Coord{}) {
		t.Error("Expected no scheduling at the chunk limit")
	}
	if w.State(chunk.Coord{}) != Resident {
		t.Error("Expected the center chunk resident")
	}
}

func TestUpdateChunksAroundPlayerEvicts(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)
	load(t, w, chunk.Coord{X: 10})

	w.UpdateChunksAroundPlayer(chunk.Coord{})
	if w.State(chunk.Coord{X: 10}) != Unloaded {
		t.Error("Expected far chunk evicted")
	}
	settle(t, w)
}

func TestRequestRemesh(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)
	load(t, w, chunk.Coord{})
	remeshed := w.Stats().Remeshed

	if !w.RequestRemesh(chunk.Coord{}) {
		t.Fatal("Expected remesh of resident chunk")
	}
	if !w.IsPending(chunk.Coord{}) {
		t.Error("Expected remeshing chunk to be pending")
	}
	settle(t, w)
	if w.Stats().Remeshed != remeshed+1 {
		t.Errorf("Expected one remesh, got %d", w.Stats().Remeshed-remeshed)
	}
	if w.RequestRemesh(chunk.Coord{X: 5}) {
		t.Error("Expected remesh of unloaded chunk to report false")
	}
}

func TestRemeshNow(t *testing.T) {
	w, gpu := newTestWorld(t, testConfig(), nil)
	load(t, w, chunk.Coord{})

	before := gpu.uploads
	if !w.RemeshNow(chunk.Coord{}) {
		t.Fatal("Expected synchronous remesh of resident chunk")
	}
	if gpu.uploads-before != 2 {
		t.Errorf("Expected 2 mesh uploads, got %d", gpu.uploads-before)
	}
	if w.RemeshNow(chunk.Coord{Y: 4}) {
		t.Error("Expected synchronous remesh of unloaded chunk to report false")
	}
}

func TestNewChunkRemeshesResidentNeighbours(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)
	load(t, w, chunk.Coord{})
	remeshed := w.Stats().Remeshed

	load(t, w, chunk.Coord{Y: 1})
	if w.Stats().Remeshed <= remeshed {
		t.Error("Expected the existing neighbour to be remeshed")
	}
}

func TestRenderOrder(t *testing.T) {
	w, gpu := newTestWorld(t, testConfig(), nil)
	load(t, w, chunk.Coord{})
	w.SetVoxelMainThread(1, 1, 1, voxel.Stone)
	w.SetVoxelMainThread(3, 3, 3, voxel.Glass)

	gpu.calls = nil
	w.Render(gpu)

	expected := []string{"opaque", "draw", "transparent", "draw", "end"}
	if len(gpu.calls) != len(expected) {
		t.Fatalf("Expected calls %v, got %v", expected, gpu.calls)
	}
	for i := range expected {
		if gpu.calls[i] != expected[i] {
			t.Errorf("Call %d: expected %s, got %s", i, expected[i], gpu.calls[i])
		}
	}
}

func TestCloseReleasesResidentChunks(t *testing.T) {
	gpu := &fakeGPU{}
	w := New(testConfig(), flatGenerator, gpu)
	load(t, w, chunk.Coord{})

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if gpu.releases != 2 {
		t.Errorf("Expected 2 releases, got %d", gpu.releases)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}
}

func TestStatsCounters(t *testing.T) {
	w, _ := newTestWorld(t, testConfig(), nil)
	load(t, w, chunk.Coord{}, chunk.Coord{X: 5})
	w.RemoveDistantChunks(chunk.Coord{}, 1)

	s := w.Stats()
	if s.Generated != 2 {
		t.Errorf("Expected 2 generated, got %d", s.Generated)
	}
	if s.Evicted != 1 {
		t.Errorf("Expected 1 evicted, got %d", s.Evicted)
	}
	if s.Resident != 1 {
		t.Errorf("Expected 1 resident, got %d", s.Resident)
	}
	if s.Drained < 2 {
		t.Errorf("Expected at least 2 drained, got %d", s.Drained)
	}
}

type cullingGPU struct {
	fakeGPU
	hidden chunk.Coord
}

func (g *cullingGPU) ChunkVisible(c chunk.Coord) bool {
	return c != g.hidden
}

func TestRenderSkipsCulledChunks(t *testing.T) {
	gpu := &cullingGPU{hidden: chunk.Coord{X: 1}}
	w := New(testConfig(), flatGenerator, gpu)
	defer w.Close()
	load(t, w, chunk.Coord{}, chunk.Coord{X: 1})
	w.SetVoxelMainThread(1, 1, 1, voxel.Stone)
	w.SetVoxelMainThread(9, 1, 1, voxel.Stone)

	gpu.draws = 0
	w.Render(gpu)
	if gpu.draws != 1 {
		t.Errorf("Expected only the visible chunk drawn, got %d draws", gpu.draws)
	}
}
