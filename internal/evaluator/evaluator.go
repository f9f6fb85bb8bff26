// Package evaluator estimates the win probability of each candidate
// blackjack action by Monte Carlo simulation.
//
// Every trial shuffles a private copy of the remaining shoe, applies the
// action once, finishes the player hand with a deliberately crude policy
// (always hit to 11, coin flip on 12-16, stand on 17+) and plays the
// dealer to 17. A trial is a win when the dealer busts or the player ends
// higher; pushes are not wins. Split is approximated as a single hand
// taking one card and then the normal playout.
//
// Where trials run is up to the Executor: SequentialExecutor,
// ParallelExecutor (goroutines) or ProcessExecutor (worker processes).
package evaluator

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/randutil"
)

const (
	// DefaultTrials is the trial budget per action
	DefaultTrials = 1000

	// DefaultMaxTrials bounds a single evaluation
	DefaultMaxTrials = 50_000_000
)

// Config configures an Evaluator
type Config struct {
	Trials    int
	MaxTrials int

	// Seed makes runs reproducible; zero picks a seed from the clock
	Seed int64

	Executor Executor
	Clock    quartz.Clock
	Logger   *log.Logger
}

// Result is the outcome of evaluating one action
type Result struct {
	Action      Action        `json:"action"`
	Trials      int           `json:"trials"`
	Wins        int           `json:"wins"`
	Probability float64       `json:"probability"`
	Elapsed     time.Duration `json:"elapsed"`
}

// ElapsedSeconds returns the wall time of the evaluation in seconds
func (r Result) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// TrialsPerSecond returns the evaluation throughput
func (r Result) TrialsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Trials) / r.Elapsed.Seconds()
}

// Evaluator runs Monte Carlo evaluations. It is safe for concurrent use.
type Evaluator struct {
	trials    int
	maxTrials int
	executor  Executor
	clock     quartz.Clock
	logger    *log.Logger

	mu    sync.Mutex
	seeds *rand.Rand
}

// New creates an evaluator, filling unset config fields with defaults
func New(cfg Config) *Evaluator {
	if cfg.Trials == 0 {
		cfg.Trials = DefaultTrials
	}
	if cfg.MaxTrials <= 0 {
		cfg.MaxTrials = DefaultMaxTrials
	}
	if cfg.Seed == 0 {
		cfg.Seed = randutil.TimeSeed()
	}
	if cfg.Executor == nil {
		cfg.Executor = ParallelExecutor{}
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return &Evaluator{
		trials:    cfg.Trials,
		maxTrials: cfg.MaxTrials,
		executor:  cfg.Executor,
		clock:     cfg.Clock,
		logger:    cfg.Logger.WithPrefix("evaluator"),
		seeds:     randutil.New(cfg.Seed),
	}
}

// Trials returns the per-action trial budget
func (e *Evaluator) Trials() int {
	return e.trials
}

// Simulate estimates the win probability of action over the configured
// number of trials
func (e *Evaluator) Simulate(ctx context.Context, snap Snapshot, action Action) (Result, error) {
	return e.SimulateN(ctx, snap, action, e.trials)
}

// SimulateN estimates the win probability of action over trials trials.
// It either completes every trial or returns an error, never a partial
// estimate.
func (e *Evaluator) SimulateN(ctx context.Context, snap Snapshot, action Action, trials int) (Result, error) {
	if trials <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrNoTrials, trials)
	}
	if trials > e.maxTrials {
		return Result{}, fmt.Errorf("%w: %d trials requested, limit is %d", ErrBudgetExceeded, trials, e.maxTrials)
	}
	if err := snap.Check(action); err != nil {
		return Result{}, err
	}

	seed := e.nextSeed()
	snap = snap.Clone()

	start := e.clock.Now("evaluator", "start")
	wins, err := e.executor.Execute(ctx, snap, action, trials, seed)
	elapsed := e.clock.Since(start, "evaluator", "end")
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrExecutor, action, err)
	}
	if wins < 0 || wins > trials {
		return Result{}, fmt.Errorf("%w: %s: %d wins reported for %d trials", ErrExecutor, action, wins, trials)
	}

	result := Result{
		Action:      action,
		Trials:      trials,
		Wins:        wins,
		Probability: float64(wins) / float64(trials),
		Elapsed:     elapsed,
	}
	e.logger.Debug("simulated action",
		"action", action,
		"trials", trials,
		"wins", wins,
		"probability", fmt.Sprintf("%.1f%%", result.Probability*100),
		"elapsed", elapsed,
		"trials_per_sec", int(result.TrialsPerSecond()))

	return result, nil
}

// ActionProbabilities simulates each action in turn and returns the
// results by action together with the summed elapsed time
func (e *Evaluator) ActionProbabilities(ctx context.Context, snap Snapshot, actions []Action) (map[Action]Result, time.Duration, error) {
	results := make(map[Action]Result, len(actions))
	var total time.Duration

	for _, action := range actions {
		result, err := e.Simulate(ctx, snap, action)
		if err != nil {
			return nil, 0, err
		}
		results[action] = result
		total += result.Elapsed
	}

	e.logger.Info("evaluated actions", "actions", len(actions), "trials", e.trials, "elapsed", total)
	return results, total, nil
}

func (e *Evaluator) nextSeed() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seeds.Int64()
}
