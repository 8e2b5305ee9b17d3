package main

import (
	"Craftmine/internal/chunk"
	"Craftmine/internal/config"
	"Craftmine/internal/engine"
	"Craftmine/internal/logger"
	"Craftmine/internal/renderer"
	"Craftmine/internal/voxel"
	"Craftmine/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

const (
	reach         = 8
	statsInterval = 300 // frames
)

// Streamer keeps the world loaded around the camera and turns key presses into edits.
type Streamer struct {
	cfg    config.Config
	gopher *engine.Gopher
	world  *world.World
	frames int
	trees  int64

	palette  []voxel.Type
	selected int
}

func NewStreamer(cfg config.Config, gopher *engine.Gopher) *Streamer {
	return &Streamer{cfg: cfg, gopher: gopher, palette: voxel.All()}
}

// Selected is the material placed by R and V.
func (s *Streamer) Selected() voxel.Type {
	return s.palette[s.selected]
}

// selectKey moves the selection: Left/Right cycle with wrap-around, 1-9 pick a slot.
func (s *Streamer) selectKey(key glfw.Key) bool {
	n := len(s.palette)
	switch {
	case key == glfw.KeyLeft:
		s.selected = (s.selected + n - 1) % n
	case key == glfw.KeyRight:
		s.selected = (s.selected + 1) % n
	case key >= glfw.Key1 && key <= glfw.Key9:
		slot := int(key - glfw.Key1)
		if slot >= n {
			return false
		}
		s.selected = slot
	default:
		return false
	}
	logger.Log.Info("Selected block", zap.Stringer("type", s.Selected()))
	return true
}

func (s *Streamer) Start() {
	s.world = world.New(s.cfg, nil, s.gopher.GetRenderer())
}

func (s *Streamer) Update() {
	if s.world == nil || s.gopher.Camera == nil {
		return
	}
	s.world.UpdateChunksAroundPlayer(s.gopher.Camera.ChunkCoord(s.world.ChunkSize()))
	s.world.ProcessChunkUpdates()

	s.frames++
	if s.frames%statsInterval == 0 {
		st := s.world.Stats()
		logger.Log.Debug("World stats",
			zap.Int("resident", st.Resident),
			zap.Int("inFlight", st.InFlight),
			zap.Int("pendingVoxels", st.PendingVoxels),
			zap.Int64("generated", st.Generated),
			zap.Int64("remeshed", st.Remeshed),
			zap.Int64("evicted", st.Evicted))
	}
}

func (s *Streamer) UpdateFixed() {}

// Draw renders the resident chunks. It runs after the frame uniforms are set.
func (s *Streamer) Draw(deltaTime float64) {
	if s.world != nil {
		s.world.Render(s.gopher.GetRenderer())
	}
}

func (s *Streamer) Stop() {
	if s.world == nil {
		return
	}
	if err := s.world.Close(); err != nil {
		logger.Log.Warn("World did not close cleanly", zap.Error(err))
	}
	s.world = nil
}

func (s *Streamer) OnKey(key glfw.Key) {
	if s.selectKey(key) || s.world == nil {
		return
	}
	switch key {
	case glfw.KeyB:
		if hit, ok := s.target(); ok {
			s.world.SetVoxelMainThread(hit.X, hit.Y, hit.Z, voxel.Air)
		}
	case glfw.KeyR:
		if hit, ok := s.target(); ok {
			s.world.SetVoxelAsync(hit.PrevX, hit.PrevY, hit.PrevZ, s.Selected())
		}
	case glfw.KeyV:
		if hit, ok := s.target(); ok {
			s.world.SetVoxelMainThread(hit.PrevX, hit.PrevY, hit.PrevZ, s.Selected())
		}
	case glfw.KeyT:
		if hit, ok := s.target(); ok {
			s.trees++
			kind := chunk.TreeKind(s.trees % 3)
			edits := chunk.Tree(kind, hit.PrevX, hit.PrevY, hit.PrevZ, s.cfg.Seed+s.trees)
			s.world.LoadVoxelsWorldAsync(edits, world.Offset{})
			logger.Log.Info("Planted tree",
				zap.Int32("x", hit.PrevX), zap.Int32("y", hit.PrevY), zap.Int32("z", hit.PrevZ),
				zap.Int("voxels", len(edits)))
		}
	case glfw.KeyF:
		renderer.FrustumCullingEnabled = !renderer.FrustumCullingEnabled
	}
}

func (s *Streamer) target() (renderer.VoxelHit, bool) {
	return renderer.RaycastVoxels(s.gopher.Camera.Ray(), reach, func(x, y, z int32) bool {
		return s.world.GetVoxel(x, y, z).IsSolid()
	})
}
