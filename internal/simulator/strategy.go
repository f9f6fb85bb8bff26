package simulator

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/blackjack/internal/evaluator"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/hand"
)

// Strategy picks an action for a seat that is due to act. actions is never
// empty and always holds Hit and Stand.
type Strategy interface {
	Name() string
	Decide(ctx context.Context, e *game.Engine, seat int, actions []evaluator.Action) (evaluator.Action, error)
}

// Strategy names accepted by NewStrategy
const (
	StrategyDealer = "dealer"
	StrategyRandom = "random"
	StrategyOdds   = "odds"
	StrategyMixed  = "mixed"
)

// DealerStrategy plays like the dealer: hit below 17, stand otherwise
type DealerStrategy struct{}

func (DealerStrategy) Name() string { return StrategyDealer }

func (DealerStrategy) Decide(_ context.Context, e *game.Engine, index int, _ []evaluator.Action) (evaluator.Action, error) {
	seat, err := e.Seat(index)
	if err != nil {
		return 0, err
	}
	if hand.BestValue(seat.ActiveCards()) < 17 {
		return evaluator.Hit, nil
	}
	return evaluator.Stand, nil
}

// RandomStrategy picks uniformly among the legal actions
type RandomStrategy struct {
	rng *rand.Rand
}

func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

func (s *RandomStrategy) Name() string { return StrategyRandom }

func (s *RandomStrategy) Decide(_ context.Context, _ *game.Engine, _ int, actions []evaluator.Action) (evaluator.Action, error) {
	return actions[s.rng.IntN(len(actions))], nil
}

// OddsStrategy evaluates every legal action and takes the most likely to
// win, the earliest listed on ties
type OddsStrategy struct {
	evaluator *evaluator.Evaluator
}

func NewOddsStrategy(ev *evaluator.Evaluator) *OddsStrategy {
	return &OddsStrategy{evaluator: ev}
}

func (s *OddsStrategy) Name() string { return StrategyOdds }

func (s *OddsStrategy) Decide(ctx context.Context, e *game.Engine, index int, actions []evaluator.Action) (evaluator.Action, error) {
	snap, err := e.Snapshot(index)
	if err != nil {
		return 0, err
	}
	results, _, err := s.evaluator.ActionProbabilities(ctx, snap, actions)
	if err != nil {
		return 0, err
	}

	best := actions[0]
	for _, action := range actions[1:] {
		if results[action].Probability > results[best].Probability {
			best = action
		}
	}
	return best, nil
}

// NewStrategy creates a strategy by name. The odds strategy needs ev.
func NewStrategy(name string, rng *rand.Rand, ev *evaluator.Evaluator) (Strategy, error) {
	switch name {
	case StrategyDealer:
		return DealerStrategy{}, nil
	case StrategyRandom:
		return NewRandomStrategy(rng), nil
	case StrategyOdds:
		if ev == nil {
			return nil, fmt.Errorf("strategy %q needs an evaluator", name)
		}
		return NewOddsStrategy(ev), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// mixedStrategies is the rotation seats are assigned from in mixed mode
func mixedStrategies(ev *evaluator.Evaluator) []string {
	if ev == nil {
		return []string{StrategyDealer, StrategyRandom}
	}
	return []string{StrategyDealer, StrategyRandom, StrategyOdds}
}
