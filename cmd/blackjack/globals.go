package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/evaluator"
)

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"blackjack.hcl" help:"HCL configuration file"`
	LogLevel string `help:"Override log level (debug, info, warn, error)"`
	Debug    bool   `help:"Shorthand for --log-level=debug"`
	NoColor  bool   `help:"Disable colored output"`
}

// load reads the configuration file and applies the global overrides
func (g *Globals) load() (*config.Config, error) {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.Debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds a logger writing to w at the configured level
func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// EvaluatorFlags lets a command override the evaluator block
type EvaluatorFlags struct {
	Trials   int    `short:"n" help:"Trials per action (default from config)"`
	Workers  int    `short:"w" help:"Parallel workers or processes; 0 uses CPU count"`
	Executor string `short:"e" help:"Trial executor (sequential, parallel, process)"`
	Seed     int64  `help:"Random seed; 0 picks one from the clock"`
}

// apply folds the non-zero flags into the evaluator settings
func (f EvaluatorFlags) apply(cfg *config.Config) error {
	if f.Trials != 0 {
		cfg.Evaluator.Trials = f.Trials
	}
	if f.Workers != 0 {
		cfg.Evaluator.Workers = f.Workers
	}
	if f.Executor != "" {
		cfg.Evaluator.Executor = f.Executor
	}
	if f.Seed != 0 {
		cfg.Evaluator.Seed = f.Seed
	}
	return cfg.Validate()
}

// newExecutor picks the trial executor named in the settings
func newExecutor(s *config.EvaluatorSettings, logger *log.Logger) (evaluator.Executor, error) {
	switch s.Executor {
	case config.ExecutorSequential:
		return evaluator.SequentialExecutor{}, nil
	case config.ExecutorParallel:
		return evaluator.ParallelExecutor{Workers: s.Workers}, nil
	case config.ExecutorProcess:
		executor, err := evaluator.NewSelfProcessExecutor(s.Workers, logger, "worker")
		if err != nil {
			return nil, err
		}
		return executor, nil
	default:
		return nil, fmt.Errorf("unknown executor %q", s.Executor)
	}
}

// newEvaluator builds an evaluator from the settings
func newEvaluator(cfg *config.Config, logger *log.Logger) (*evaluator.Evaluator, error) {
	executor, err := newExecutor(cfg.Evaluator, logger)
	if err != nil {
		return nil, err
	}
	return evaluator.New(evaluator.Config{
		Trials:   cfg.Evaluator.Trials,
		Seed:     cfg.Evaluator.Seed,
		Executor: executor,
		Logger:   logger,
	}), nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
