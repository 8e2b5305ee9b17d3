package world

import (
	"Craftmine/internal/chunk"
	"Craftmine/internal/logger"

	"go.uber.org/zap"
)

// GenerateNearestMissingChunk searches spherical shells of growing radius around center
// and queues generation of the closest coordinate that is neither resident, in flight
// nor pending. It reports whether anything was queued.
func (w *World) GenerateNearestMissingChunk(center chunk.Coord) bool {
	w.registry.mu.Lock()
	w.pendingChunks.mu.Lock()
	target, found := w.nearestMissingLocked(center)
	var item generateWork
	if found {
		item = w.reserveLocked(target)
	}
	w.pendingChunks.mu.Unlock()
	w.registry.mu.Unlock()

	if !found {
		return false
	}
	logger.Log.Debug("Scheduled chunk", zap.Any("coord", target), zap.Int32("distanceSq", target.DistanceSq(center)))
	w.pool.submit(item)
	return true
}

// nearestMissingLocked returns the first candidate with the smallest squared distance
// in the first shell that has one. Shells are balls, so inner offsets are revisited.
func (w *World) nearestMissingLocked(center chunk.Coord) (chunk.Coord, bool) {
	for d := int32(0); d <= w.searchRadius; d++ {
		var best chunk.Coord
		bestDist := int32(-1)
		for dx := -d; dx <= d; dx++ {
			for dy := -d; dy <= d; dy++ {
				for dz := -d; dz <= d; dz++ {
					dist := dx*dx + dy*dy + dz*dz
					if dist > d*d {
						continue
					}
					c := center.Add(dx, dy, dz)
					if w.registry.stateLocked(c) != Unloaded || w.pendingChunks.containsLocked(c) {
						continue
					}
					if bestDist < 0 || dist < bestDist {
						best, bestDist = c, dist
					}
				}
			}
		}
		if bestDist >= 0 {
			return best, true
		}
	}
	return chunk.Coord{}, false
}
