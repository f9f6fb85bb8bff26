package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/evaluator"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs the interactive table
type PlayCmd struct {
	Players []string `short:"p" default:"You" help:"Player names, seated from seat 1"`
	Seats   int      `help:"Seats at the table (default from config)"`
	Decks   int      `short:"d" help:"Decks in the shoe (default from config)"`
	NoOdds  bool     `help:"Disable the odds command"`
	LogFile string   `default:"blackjack.log" help:"File to write logs to while the TUI runs"`

	EvaluatorFlags `embed:""`
}

func (c *PlayCmd) Run(g *Globals) error {
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
	if len(c.Players) > cfg.Table.Seats {
		return fmt.Errorf("%d players do not fit at %d seats", len(c.Players), cfg.Table.Seats)
	}

	// The TUI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()
	logger := newLogger(logFile, cfg)

	seed := cfg.Evaluator.Seed
	if seed == 0 {
		seed = randutil.TimeSeed()
	}
	engine := game.NewEngine(game.Config{
		Seats:              cfg.Table.Seats,
		Decks:              cfg.Table.Decks,
		ReshuffleThreshold: cfg.Table.ReshuffleBelow,
		Rand:               randutil.New(seed),
		Logger:             logger,
	})
	for i, name := range c.Players {
		if _, err := engine.SitDown(i, name); err != nil {
			return err
		}
	}

	var ev *evaluator.Evaluator
	if !c.NoOdds {
		cfg.Evaluator.Seed = randutil.Derive(seed, 1)
		if ev, err = newEvaluator(cfg, logger); err != nil {
			return err
		}
	}

	logger.Info("Starting table",
		"seats", cfg.Table.Seats,
		"decks", cfg.Table.Decks,
		"players", len(c.Players),
		"executor", cfg.Evaluator.Executor,
		"seed", seed)

	program := tea.NewProgram(tui.New(engine, ev, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Faint(true).Render("Thanks for playing."))
	return nil
}
