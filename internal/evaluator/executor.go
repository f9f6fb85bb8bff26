package evaluator

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/randutil"
)

// ctxCheckInterval is how many trials run between context checks
const ctxCheckInterval = 4096

// Executor runs a batch of trials for one action and returns the win
// count. Implementations decide where the trials run; the evaluator only
// sees the total.
type Executor interface {
	Execute(ctx context.Context, snap Snapshot, action Action, trials int, seed int64) (int, error)
}

// ExecutorFunc adapts a function to the Executor interface
type ExecutorFunc func(ctx context.Context, snap Snapshot, action Action, trials int, seed int64) (int, error)

// Execute calls f
func (f ExecutorFunc) Execute(ctx context.Context, snap Snapshot, action Action, trials int, seed int64) (int, error) {
	return f(ctx, snap, action, trials, seed)
}

// SequentialExecutor runs every trial on the calling goroutine
type SequentialExecutor struct{}

// Execute runs trials in-process with a generator seeded from seed
func (SequentialExecutor) Execute(ctx context.Context, snap Snapshot, action Action, trials int, seed int64) (int, error) {
	return runShard(ctx, pack(snap), action, trials, seed)
}

func runShard(ctx context.Context, base *packed, action Action, trials int, seed int64) (int, error) {
	runner := newTrialRunner(base, randutil.New(seed))
	wins := 0
	for done := 0; done < trials; {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n := min(ctxCheckInterval, trials-done)
		wins += runner.run(action, n)
		done += n
	}
	return wins, nil
}

// ParallelExecutor splits the trials across goroutines. Each worker has
// its own generator derived from the seed and its own scratch buffers, and
// the results are summed once every worker is done.
type ParallelExecutor struct {
	// Workers is the number of goroutines; zero means DefaultWorkers()
	Workers int
}

// DefaultWorkers returns the CPU count minus one, at least one
func DefaultWorkers() int {
	return max(1, runtime.NumCPU()-1)
}

// Execute runs trials across the configured number of workers
func (p ParallelExecutor) Execute(ctx context.Context, snap Snapshot, action Action, trials int, seed int64) (int, error) {
	shards := splitTrials(trials, p.workers())
	base := pack(snap)

	g, gctx := errgroup.WithContext(ctx)
	wins := make([]int, len(shards))
	for w, n := range shards {
		workerSeed := randutil.Derive(seed, w)
		g.Go(func() error {
			won, err := runShard(gctx, base, action, n, workerSeed)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			wins[w] = won
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, won := range wins {
		total += won
	}
	return total, nil
}

func (p ParallelExecutor) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return DefaultWorkers()
}

// splitTrials divides trials into at most workers non-empty shards, the
// remainder going to the first shards
func splitTrials(trials, workers int) []int {
	workers = max(1, min(workers, trials))
	per, remainder := trials/workers, trials%workers
	shards := make([]int, workers)
	for w := range shards {
		shards[w] = per
		if w < remainder {
			shards[w]++
		}
	}
	return shards
}
