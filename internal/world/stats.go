package world

import "go.uber.org/atomic"

// Stats counts streaming activity. Workers and the coordinator update it concurrently.
type Stats struct {
	Generated atomic.Int64
	Remeshed  atomic.Int64
	Modified  atomic.Int64
	Drained   atomic.Int64
	Evicted   atomic.Int64
	Buffered  atomic.Int64
}

// Snapshot is a point-in-time copy of the counters plus the current occupancy.
type Snapshot struct {
	Generated int64
	Remeshed  int64
	Modified  int64
	Drained   int64
	Evicted   int64
	Buffered  int64

	Resident      int
	InFlight      int
	PendingChunks int
	PendingVoxels int
}

func (w *World) Stats() Snapshot {
	return Snapshot{
		Generated:     w.stats.Generated.Load(),
		Remeshed:      w.stats.Remeshed.Load(),
		Modified:      w.stats.Modified.Load(),
		Drained:       w.stats.Drained.Load(),
		Evicted:       w.stats.Evicted.Load(),
		Buffered:      w.stats.Buffered.Load(),
		Resident:      w.registry.Len(),
		InFlight:      w.registry.InFlightLen(),
		PendingChunks: w.pendingChunks.Len(),
		PendingVoxels: w.pendingVoxels.Len(),
	}
}
