package world

import (
	"context"
	"fmt"
	"sync"

	"Craftmine/internal/chunk"
	"Craftmine/internal/logger"

	"go.uber.org/zap"
)

// workerPool runs a fixed number of goroutines that take one work item at a time from
// a shared queue and push finished chunks onto a single results queue.
type workerPool struct {
	size    int32
	gen     chunk.Generator
	stats   *Stats
	work    *queue[workItem]
	results *queue[*chunk.Chunk]
	workers int
	wg      sync.WaitGroup
}

func newWorkerPool(workers int, size int32, gen chunk.Generator, stats *Stats) *workerPool {
	p := &workerPool{
		size:    size,
		gen:     gen,
		stats:   stats,
		work:    newQueue[workItem](),
		results: newQueue[*chunk.Chunk](),
		workers: workers,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.run(i)
	}
	logger.Log.Debug("Chunk workers started", zap.Int("workers", workers))
	return p
}

// submit queues an item. A closed queue means the pool is gone, which the coordinator
// cannot recover from.
func (p *workerPool) submit(item workItem) {
	if !p.work.push(item) {
		logger.Log.Panic("Work queue closed", zap.String("item", fmt.Sprintf("%T", item)))
	}
}

// exit sends n exit items.
func (p *workerPool) exit(n int) {
	for i := 0; i < n; i++ {
		p.submit(exitWork{})
	}
}

// join waits for every worker to return, or for ctx to end.
func (p *workerPool) join(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shutdown sends one exit per worker and joins them. The queues are closed only after
// every worker has returned.
func (p *workerPool) shutdown(ctx context.Context) error {
	p.exit(p.workers)
	if err := p.join(ctx); err != nil {
		return fmt.Errorf("joining chunk workers: %w", err)
	}
	p.work.close()
	p.results.close()
	logger.Log.Debug("Chunk workers stopped", zap.Int("workers", p.workers))
	return nil
}

func (p *workerPool) run(id int) {
	defer p.wg.Done()
	for {
		item, ok := p.work.pop()
		if !ok {
			logger.Log.Panic("Work queue closed while worker running", zap.Int("worker", id))
		}
		switch w := item.(type) {
		case exitWork:
			return
		case generateWork:
			ch := chunk.New(w.coord, int(p.size), w.edits)
			ch.SetBorders(w.borders)
			ch.GenerateData(p.gen)
			ch.PrepareMesh()
			p.stats.Generated.Inc()
			p.emit(id, ch)
		case remeshWork:
			w.chunk.PrepareMesh()
			p.stats.Remeshed.Inc()
			p.emit(id, w.chunk)
		case modifyVoxelWork:
			_, lx, ly, lz := chunk.Split(w.wx, w.wy, w.wz, p.size)
			w.chunk.SetVoxel(lx, ly, lz, w.voxel)
			w.chunk.PrepareMesh()
			p.stats.Modified.Inc()
			p.emit(id, w.chunk)
		case modifyBatchWork:
			p.applyBatch(id, w)
		default:
			logger.Log.Panic("Unknown work item", zap.Int("worker", id), zap.String("item", fmt.Sprintf("%T", item)))
		}
	}
}

func (p *workerPool) applyBatch(id int, w modifyBatchWork) {
	parts := partitionEdits(w.edits, w.offset, p.size)
	for coord, ch := range w.chunks {
		edits, ok := parts[coord]
		if ok {
			for _, e := range edits {
				_, lx, ly, lz := chunk.Split(e.X, e.Y, e.Z, p.size)
				ch.SetVoxel(lx, ly, lz, e.Type)
			}
			ch.PrepareMesh()
			p.stats.Modified.Inc()
		}
		// Untouched chunks still go back, they were checked out for this batch.
		p.emit(id, ch)
	}
}

func (p *workerPool) emit(id int, ch *chunk.Chunk) {
	if !p.results.push(ch) {
		logger.Log.Panic("Results queue closed", zap.Int("worker", id), zap.Any("chunk", ch.Position))
	}
}
