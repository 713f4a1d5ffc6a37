package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stopover/pkg/flight"
)

// WorkerResult is what one worker reports after its shard is exhausted.
type WorkerResult struct {
	Result
	Worker      int
	Starts      int
	Interrupted bool
}

// Run searches starts on workers goroutines, one [Engine.Search] per shard
// from [Partition]. It waits for every worker and returns their results in
// worker order. If ctx is cancelled, the interrupted workers' results carry
// no itinerary, Interrupted is set, and the context error is returned along
// with whatever finished.
func Run(ctx context.Context, e *Engine, starts []*flight.Flight, workers int, progress *Progress) ([]WorkerResult, error) {
	shards := Partition(starts, workers)
	results := make([]WorkerResult, len(shards))

	var g errgroup.Group
	for i, shard := range shards {
		g.Go(func() error {
			res, err := e.Search(ctx, i, shard, progress.Worker(i))
			results[i] = WorkerResult{Result: res, Worker: i, Starts: len(shard), Interrupted: err != nil}
			return err
		})
	}
	err := g.Wait()
	return results, err
}
