package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/blackjack/internal/evaluator"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// BenchCmd repeats one evaluation with distinct seeds
type BenchCmd struct {
	Player    string  `default:"Ts6h" help:"Player cards"`
	Dealer    string  `default:"9c" help:"Visible dealer cards"`
	Action    string  `default:"stand" help:"Action to evaluate"`
	Decks     int     `short:"d" help:"Decks in the shoe (default from config)"`
	Runs      int     `short:"r" default:"10" help:"Number of runs"`
	Expect    float64 `help:"Expected win probability to check the mean against"`
	Tolerance float64 `default:"0.01" help:"Allowed distance from --expect"`
	Out       string  `short:"o" help:"Write a JSON report to this file"`

	EvaluatorFlags `embed:""`
}

// benchReport is the JSON written by --out
type benchReport struct {
	Player          string              `json:"player"`
	Dealer          string              `json:"dealer"`
	Action          evaluator.Action    `json:"action"`
	Executor        string              `json:"executor"`
	Runs            int                 `json:"runs"`
	Mean            float64             `json:"mean"`
	StdDev          float64             `json:"std_dev"`
	CI95            [2]float64          `json:"ci95"`
	Min             float64             `json:"min"`
	Max             float64             `json:"max"`
	TrialsPerSecond float64             `json:"trials_per_second"`
	Samples         []statistics.Sample `json:"samples"`
	Timestamp       time.Time           `json:"timestamp"`
}

func (c *BenchCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Decks != 0 {
		cfg.Table.Decks = c.Decks
	}
	if err := c.apply(cfg); err != nil {
		return err
	}
	if c.Runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", c.Runs)
	}
	logger := newLogger(os.Stderr, cfg)

	action, err := evaluator.ParseAction(c.Action)
	if err != nil {
		return err
	}
	snap, err := (&OddsCmd{Player: c.Player, Dealer: c.Dealer}).snapshot(cfg.Table.Decks)
	if err != nil {
		return err
	}

	base := cfg.Evaluator.Seed
	if base == 0 {
		base = randutil.TimeSeed()
	}

	ctx, cancel := signalContext()
	defer cancel()

	var stats statistics.WinRate
	samples := make([]statistics.Sample, 0, c.Runs)
	for run := range c.Runs {
		cfg.Evaluator.Seed = randutil.Derive(base, run)
		ev, err := newEvaluator(cfg, logger)
		if err != nil {
			return err
		}
		result, err := ev.Simulate(ctx, snap, action)
		if err != nil {
			return fmt.Errorf("run %d: %w", run, err)
		}

		sample := statistics.Sample{
			Seed:        cfg.Evaluator.Seed,
			Probability: result.Probability,
			Trials:      result.Trials,
			Elapsed:     result.Elapsed,
		}
		stats.Add(sample)
		samples = append(samples, sample)
		logger.Debug("Run complete", "run", run, "probability", result.Probability, "elapsed", result.Elapsed)
	}
	if err := stats.Validate(); err != nil {
		return err
	}

	low, high := stats.ConfidenceInterval95()
	fmt.Printf("%s %s vs %s, %s, %s executor\n", headerStyle.Render("bench"),
		handStyle.Render(formatCards(snap.Player)), handStyle.Render(formatCards(snap.Dealer)),
		actionStyle.Render(action.String()), cfg.Evaluator.Executor)
	fmt.Printf("  runs:     %d x %d trials\n", stats.Runs, cfg.Evaluator.Trials)
	fmt.Printf("  mean:     %s\n", winStyle.Render(fmt.Sprintf("%.4f", stats.Mean())))
	fmt.Printf("  std dev:  %.4f\n", stats.StdDev())
	fmt.Printf("  95%% CI:   [%.4f, %.4f]\n", low, high)
	fmt.Printf("  range:    %.4f - %.4f (median %.4f)\n", stats.Min(), stats.Max(), stats.Median())
	fmt.Printf("  speed:    %.0f trials/s\n", stats.TrialsPerSecond())
	if c.Expect > 0 {
		fmt.Printf("  expect:   %.4f ± %.4f (every run within: %t)\n", c.Expect, c.Tolerance, stats.WithinTolerance(c.Expect, c.Tolerance))
	}

	if c.Out != "" {
		report := benchReport{
			Player:          c.Player,
			Dealer:          c.Dealer,
			Action:          action,
			Executor:        cfg.Evaluator.Executor,
			Runs:            stats.Runs,
			Mean:            stats.Mean(),
			StdDev:          stats.StdDev(),
			CI95:            [2]float64{low, high},
			Min:             stats.Min(),
			Max:             stats.Max(),
			TrialsPerSecond: stats.TrialsPerSecond(),
			Samples:         samples,
			Timestamp:       time.Now().UTC(),
		}
		if err := fileutil.WriteJSONAtomic(c.Out, report, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "path", c.Out)
	}

	return checkExpectation(&stats, c.Expect, c.Tolerance)
}

// checkExpectation fails when an expectation is set and the mean misses it
func checkExpectation(stats *statistics.WinRate, expect, tol float64) error {
	if expect > 0 && !stats.MeanWithin(expect, tol) {
		return fmt.Errorf("mean %.4f is not within %.4f of %.4f", stats.Mean(), tol, expect)
	}
	return nil
}
