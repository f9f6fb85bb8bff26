package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays rounds with scripted strategies at every seat
type SimulateCmd struct {
	Rounds   int           `short:"r" default:"1000" help:"Rounds to play"`
	Seats    int           `help:"Seats to fill (default from config)"`
	Decks    int           `short:"d" help:"Decks in the shoe (default from config)"`
	Strategy string        `short:"s" default:"dealer" enum:"dealer,random,odds,mixed" help:"Strategy for every seat (dealer, random, odds, mixed)"`
	Timeout  time.Duration `default:"10m" help:"Abort the run after this long"`
	Out      string        `short:"o" help:"Write the results as JSON to this file"`

	EvaluatorFlags `embed:""`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Seats != 0 {
		cfg.Table.Seats = c.Seats
	}
	if c.Decks != 0 {
		cfg.Table.Decks = c.Decks
	}
	if err := c.apply(cfg); err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	simCfg := simulator.Config{
		Rounds:   c.Rounds,
		Seats:    cfg.Table.Seats,
		Decks:    cfg.Table.Decks,
		Strategy: c.Strategy,
		Seed:     cfg.Evaluator.Seed,
		Timeout:  c.Timeout,
		Logger:   logger,
	}
	if c.Strategy == simulator.StrategyOdds || c.Strategy == simulator.StrategyMixed {
		if simCfg.Evaluator, err = newEvaluator(cfg, logger); err != nil {
			return err
		}
	}

	sim, err := simulator.New(simCfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("Starting simulation", "rounds", c.Rounds, "seats", cfg.Table.Seats, "strategy", c.Strategy)
	results, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, results)

	if c.Out != "" {
		if err := fileutil.WriteJSONAtomic(c.Out, results, 0o644); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		logger.Info("Wrote results", "path", c.Out)
	}
	return nil
}
