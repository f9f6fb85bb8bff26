// Package config loads the blackjack HCL configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/deck"
)

// Executor names accepted by the evaluator block
const (
	ExecutorSequential = "sequential"
	ExecutorParallel   = "parallel"
	ExecutorProcess    = "process"
)

// Config represents the complete configuration
type Config struct {
	LogLevel  string             `hcl:"log_level,optional"`
	Table     *TableSettings     `hcl:"table,block"`
	Evaluator *EvaluatorSettings `hcl:"evaluator,block"`
}

// TableSettings configures the table and its shoe
type TableSettings struct {
	Seats          int `hcl:"seats,optional"`
	Decks          int `hcl:"decks,optional"`
	ReshuffleBelow int `hcl:"reshuffle_below,optional"`
}

// EvaluatorSettings configures the Monte Carlo evaluator
type EvaluatorSettings struct {
	Trials   int    `hcl:"trials,optional"`
	Workers  int    `hcl:"workers,optional"`
	Executor string `hcl:"executor,optional"`
	Seed     int64  `hcl:"seed,optional"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Table.Seats == 0 {
		c.Table.Seats = 7
	}
	if c.Table.Decks == 0 {
		c.Table.Decks = 1
	}
	if c.Table.ReshuffleBelow == 0 {
		c.Table.ReshuffleBelow = deck.DefaultReshuffleThreshold
	}

	if c.Evaluator == nil {
		c.Evaluator = &EvaluatorSettings{}
	}
	if c.Evaluator.Trials == 0 {
		c.Evaluator.Trials = 1000
	}
	if c.Evaluator.Executor == "" {
		c.Evaluator.Executor = ExecutorParallel
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}

	if c.Table.Seats < 1 {
		return fmt.Errorf("table needs at least one seat, got %d", c.Table.Seats)
	}
	if c.Table.Decks < 1 {
		return fmt.Errorf("shoe needs at least one deck, got %d", c.Table.Decks)
	}
	if capacity := c.Table.Decks * deck.CardsPerDeck; c.Table.ReshuffleBelow < 1 || c.Table.ReshuffleBelow > capacity {
		return fmt.Errorf("reshuffle_below must be between 1 and %d, got %d", capacity, c.Table.ReshuffleBelow)
	}

	if c.Evaluator.Trials < 1 {
		return fmt.Errorf("evaluator trials must be positive, got %d", c.Evaluator.Trials)
	}
	if c.Evaluator.Workers < 0 {
		return fmt.Errorf("evaluator workers cannot be negative, got %d", c.Evaluator.Workers)
	}
	switch c.Evaluator.Executor {
	case ExecutorSequential, ExecutorParallel, ExecutorProcess:
	default:
		return fmt.Errorf("unknown evaluator executor %q", c.Evaluator.Executor)
	}

	return nil
}
