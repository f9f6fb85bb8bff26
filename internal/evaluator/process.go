package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/randutil"
)

// WorkerRequest is the job a worker process reads from stdin
type WorkerRequest struct {
	Snapshot Snapshot `json:"snapshot"`
	Action   Action   `json:"action"`
	Trials   int      `json:"trials"`
	Seed     int64    `json:"seed"`
}

// WorkerResponse is what a worker process writes to stdout
type WorkerResponse struct {
	Wins   int    `json:"wins"`
	Trials int    `json:"trials"`
	Error  string `json:"error,omitempty"`
}

// ProcessExecutor runs each shard of trials in a separate OS process. The
// command must speak the worker protocol on stdin/stdout, as ServeWorker
// does; the CLI exposes it as "blackjack worker".
type ProcessExecutor struct {
	// Command and Args start one worker process
	Command string
	Args    []string

	// Workers is the number of concurrent processes; zero means DefaultWorkers()
	Workers int

	Logger *log.Logger
}

// NewSelfProcessExecutor returns a ProcessExecutor that re-runs the current
// binary with the given worker arguments
func NewSelfProcessExecutor(workers int, logger *log.Logger, args ...string) (*ProcessExecutor, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	return &ProcessExecutor{Command: self, Args: args, Workers: workers, Logger: logger}, nil
}

// Execute fans the shards out to worker processes and sums their wins
func (p *ProcessExecutor) Execute(ctx context.Context, snap Snapshot, action Action, trials int, seed int64) (int, error) {
	workers := p.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	shards := splitTrials(trials, workers)

	g, gctx := errgroup.WithContext(ctx)
	wins := make([]int, len(shards))
	for w, n := range shards {
		req := WorkerRequest{Snapshot: snap, Action: action, Trials: n, Seed: randutil.Derive(seed, w)}
		g.Go(func() error {
			won, err := p.runWorker(gctx, w, req)
			if err != nil {
				return fmt.Errorf("worker process %d: %w", w, err)
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

func (p *ProcessExecutor) runWorker(ctx context.Context, id int, req WorkerRequest) (int, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if p.Logger != nil {
		p.Logger.Debug("starting worker process", "worker", id, "command", p.Command, "trials", req.Trials)
	}
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}

	var resp WorkerResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.Error != "" {
		return 0, fmt.Errorf("worker reported: %s", resp.Error)
	}
	if resp.Trials != req.Trials || resp.Wins < 0 || resp.Wins > req.Trials {
		return 0, fmt.Errorf("inconsistent result: %d wins over %d trials, asked for %d", resp.Wins, resp.Trials, req.Trials)
	}
	return resp.Wins, nil
}

// ServeWorker handles a single worker request: it reads a WorkerRequest
// from r, runs it sequentially and writes a WorkerResponse to w. Errors in
// the request are reported in the response as well as returned.
func ServeWorker(ctx context.Context, r io.Reader, w io.Writer) error {
	var req WorkerRequest
	resp := WorkerResponse{}

	err := json.NewDecoder(r).Decode(&req)
	if err != nil {
		err = fmt.Errorf("failed to decode request: %w", err)
	} else if req.Trials <= 0 {
		err = ErrNoTrials
	} else if err = req.Snapshot.Check(req.Action); err == nil {
		resp.Trials = req.Trials
		resp.Wins, err = SequentialExecutor{}.Execute(ctx, req.Snapshot, req.Action, req.Trials, req.Seed)
	}
	if err != nil {
		resp = WorkerResponse{Error: err.Error()}
	}

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		return fmt.Errorf("failed to encode response: %w", encErr)
	}
	return err
}
