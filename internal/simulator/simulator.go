// Package simulator plays many rounds at a table with scripted strategies
// and tallies how each seat fares.
package simulator

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/evaluator"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/randutil"
)

// maxActionsPerSeat bounds the actions one seat may take in a round
const maxActionsPerSeat = 32

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	Seats    int
	Decks    int
	Strategy string
	Seed     int64

	// Timeout bounds the whole run; zero means no limit
	Timeout time.Duration

	// Evaluator backs the odds strategy
	Evaluator *evaluator.Evaluator
	Logger    *log.Logger
}

// SeatResult is the tally for one seat
type SeatResult struct {
	Strategy string         `json:"strategy"`
	Rounds   int            `json:"rounds"`
	Net      int            `json:"net"`
	Outcomes map[string]int `json:"outcomes"`
}

// Mean returns the average net hands won per settled round
func (r *SeatResult) Mean() float64 {
	if r.Rounds == 0 {
		return 0
	}
	return float64(r.Net) / float64(r.Rounds)
}

// Results is the outcome of a simulation
type Results struct {
	Rounds      int           `json:"rounds"`
	Actions     int           `json:"actions"`
	Blackjacks  int           `json:"blackjacks"`
	DealerBusts int           `json:"dealer_busts"`
	Reshuffles  int           `json:"reshuffles"`
	Seats       []*SeatResult `json:"seats"`
	Elapsed     time.Duration `json:"elapsed"`
	LastRoundID string        `json:"last_round_id"`
}

// Simulator runs blackjack round simulations
type Simulator struct {
	config     Config
	engine     *game.Engine
	strategies []Strategy
	logger     *log.Logger
}

// New creates a simulator with one player per seat
func New(config Config) (*Simulator, error) {
	if config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", config.Rounds)
	}
	if config.Seats <= 0 {
		config.Seats = 1
	}
	if config.Strategy == "" {
		config.Strategy = StrategyDealer
	}
	if config.Seed == 0 {
		config.Seed = randutil.TimeSeed()
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	logger := config.Logger.WithPrefix("simulator")

	names := []string{config.Strategy}
	if config.Strategy == StrategyMixed {
		names = mixedStrategies(config.Evaluator)
	}
	strategies := make([]Strategy, config.Seats)
	for i := range strategies {
		strategy, err := NewStrategy(names[i%len(names)], randutil.New(randutil.Derive(config.Seed, i+1)), config.Evaluator)
		if err != nil {
			return nil, err
		}
		strategies[i] = strategy
	}

	engine := game.NewEngine(game.Config{
		Seats:  config.Seats,
		Decks:  config.Decks,
		Rand:   randutil.New(config.Seed),
		Logger: config.Logger,
	})
	for i, strategy := range strategies {
		if _, err := engine.SitDown(i, fmt.Sprintf("%s-%d", strategy.Name(), i+1)); err != nil {
			return nil, err
		}
	}

	return &Simulator{config: config, engine: engine, strategies: strategies, logger: logger}, nil
}

// Run plays the configured number of rounds
func (s *Simulator) Run(ctx context.Context) (*Results, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	results := &Results{Seats: make([]*SeatResult, len(s.strategies))}
	for i, strategy := range s.strategies {
		results.Seats[i] = &SeatResult{Strategy: strategy.Name(), Outcomes: map[string]int{}}
	}

	start := time.Now()
	for round := range s.config.Rounds {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("stopped after %d rounds: %w", round, err)
		}
		if err := s.playRound(ctx, results); err != nil {
			return nil, fmt.Errorf("round %d (%s): %w", round+1, s.engine.RoundID(), err)
		}
	}
	results.Elapsed = time.Since(start)
	results.LastRoundID = s.engine.RoundID()

	s.logger.Info("Simulation complete",
		"rounds", results.Rounds,
		"actions", results.Actions,
		"elapsed", results.Elapsed)
	return results, nil
}

func (s *Simulator) playRound(ctx context.Context, results *Results) error {
	builds := s.engine.ShoeBuilds()
	defer func() {
		results.Reshuffles += s.engine.ShoeBuilds() - builds
	}()

	if _, err := s.engine.NewRound(); err != nil {
		return err
	}

	limit := maxActionsPerSeat * s.engine.NumSeats()
	for actions := 0; s.engine.InRound(); actions++ {
		if actions >= limit {
			return fmt.Errorf("round did not finish after %d actions", actions)
		}
		index := s.engine.NextSeat()
		legal, err := s.engine.AvailableActions(index)
		if err != nil {
			return err
		}
		action, err := s.strategies[index].Decide(ctx, s.engine, index, legal)
		if err != nil {
			return fmt.Errorf("seat %d: %w", index, err)
		}
		if !slices.Contains(legal, action) {
			return fmt.Errorf("seat %d: %s chose illegal action %s", index, s.strategies[index].Name(), action)
		}
		if _, err := s.engine.Act(index, action); err != nil {
			return err
		}
		results.Actions++
	}

	results.Rounds++
	if s.engine.PlayerHasBlackjack() {
		results.Blackjacks++
	}
	if hand.IsBusted(s.engine.Dealer()) {
		results.DealerBusts++
	}
	for i, seat := range s.engine.Seats() {
		if seat.Outcome() == "" {
			continue
		}
		r := results.Seats[i]
		r.Rounds++
		r.Net += seat.Net()
		r.Outcomes[seat.Outcome()]++
	}
	return nil
}

// Outcomes returns the distinct outcome messages seen across seats, sorted
func (r *Results) Outcomes() []string {
	seen := map[string]bool{}
	for _, seat := range r.Seats {
		for outcome := range seat.Outcomes {
			seen[outcome] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
