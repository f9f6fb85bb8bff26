package evaluator

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
)

// Snapshot is an immutable copy of the table from one seat's point of
// view: the hand being decided, the dealer cards that are known, and the
// cards left in the shoe. Evaluating never touches live game state.
type Snapshot struct {
	Player []deck.Card `json:"player"`
	Dealer []deck.Card `json:"dealer"`
	Shoe   []deck.Card `json:"shoe"`
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Player: append([]deck.Card(nil), s.Player...),
		Dealer: append([]deck.Card(nil), s.Dealer...),
		Shoe:   append([]deck.Card(nil), s.Shoe...),
	}
}

// PlayerValue returns the best value of the player cards
func (s Snapshot) PlayerValue() int {
	return hand.BestValue(s.Player)
}

// DealerValue returns the best value of the known dealer cards
func (s Snapshot) DealerValue() int {
	return hand.BestValue(s.Dealer)
}

// Check verifies that the snapshot can be evaluated for action
func (s Snapshot) Check(action Action) error {
	if !action.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAction, int(action))
	}
	if len(s.Shoe) > 0 {
		return nil
	}
	if action.drawsCard() {
		return fmt.Errorf("%w (action %s)", ErrEmptyShoe, action)
	}
	// Standing still needs the dealer to draw unless the trial is already
	// decided.
	if s.PlayerValue() <= hand.Target && s.DealerValue() < dealerStandsOn {
		return fmt.Errorf("%w (dealer on %d must draw)", ErrEmptyShoe, s.DealerValue())
	}
	return nil
}

// packedHand is a hand reduced to what the trial loop needs
type packedHand struct {
	total int
	aces  int
	size  int
}

// packed is a snapshot flattened to card values for the trial loop
type packed struct {
	player packedHand
	dealer packedHand
	values []int8
	aces   []bool
}

func pack(s Snapshot) *packed {
	p := &packed{
		values: make([]int8, len(s.Shoe)),
		aces:   make([]bool, len(s.Shoe)),
	}
	p.player.total, p.player.aces = hand.Totals(s.Player)
	p.player.size = len(s.Player)
	p.dealer.total, p.dealer.aces = hand.Totals(s.Dealer)
	p.dealer.size = len(s.Dealer)
	for i, card := range s.Shoe {
		p.values[i] = int8(card.Value())
		p.aces[i] = card.IsAce()
	}
	return p
}

// NewSnapshot builds a snapshot for known player and dealer cards against
// an otherwise full shoe of decks decks. Each known card removes one copy
// from the shoe.
func NewSnapshot(player, dealer []deck.Card, decks int) (Snapshot, error) {
	decks = max(1, decks)
	remaining := make(map[deck.Card]int, deck.CardsPerDeck)
	for _, suit := range deck.Suits {
		for _, rank := range deck.Ranks {
			remaining[deck.NewCard(suit, rank)] = decks
		}
	}

	for _, known := range [][]deck.Card{player, dealer} {
		for _, card := range known {
			if remaining[card] == 0 {
				return Snapshot{}, fmt.Errorf("card %s appears more often than a %d-deck shoe holds", card, decks)
			}
			remaining[card]--
		}
	}

	shoe := make([]deck.Card, 0, decks*deck.CardsPerDeck-len(player)-len(dealer))
	for _, suit := range deck.Suits {
		for _, rank := range deck.Ranks {
			card := deck.NewCard(suit, rank)
			for range remaining[card] {
				shoe = append(shoe, card)
			}
		}
	}

	return Snapshot{
		Player: append([]deck.Card(nil), player...),
		Dealer: append([]deck.Card(nil), dealer...),
		Shoe:   shoe,
	}, nil
}
