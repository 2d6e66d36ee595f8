package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileFunc renders a single tile. It must only write pixels inside the tile's bounds.
type TileFunc func(ctx context.Context, tile *Tile) (RenderStats, error)

// WorkerPool runs tile tasks on a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Zero or a negative count means one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every tile and returns the summed per-tile statistics.
// The context is checked before each tile starts; a tile already in progress
// always finishes. The first error cancels the remaining tiles.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, render TileFunc) (RenderStats, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	results := make([]RenderStats, len(tiles))
	for i, tile := range tiles {
		i, tile := i, tile
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stats, err := render(gctx, tile)
			if err != nil {
				return err
			}
			results[i] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return RenderStats{}, err
	}
	// Tiles skipped after cancellation leave no error behind in the group
	if err := ctx.Err(); err != nil {
		return RenderStats{}, err
	}

	var total RenderStats
	for _, stats := range results {
		total.add(stats)
	}
	total.Tiles = len(tiles)
	total.Workers = wp.numWorkers
	return total, nil
}
