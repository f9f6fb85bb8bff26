package game

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
)

// Seat is one player position at the table. The engine mutates it; callers
// only read it.
type Seat struct {
	index    int
	name     string
	occupied bool

	hands    []*hand.Hand // primary, then split if one exists
	active   int
	doubled  bool
	finished bool

	// awaitingDealer is set once the seat's hands are resolved and only the
	// dealer's final value can settle them
	awaitingDealer bool
	outcome        string
	net            int
}

func newSeat(index int) *Seat {
	s := &Seat{index: index}
	s.reset()
	return s
}

func (s *Seat) reset() {
	s.hands = []*hand.Hand{hand.New()}
	s.active = 0
	s.doubled = false
	s.finished = false
	s.awaitingDealer = false
	s.outcome = ""
	s.net = 0
}

// Index returns the seat position
func (s *Seat) Index() int {
	return s.index
}

// Name returns the seated player's name
func (s *Seat) Name() string {
	return s.name
}

// Occupied reports whether a player sits here
func (s *Seat) Occupied() bool {
	return s.occupied
}

// Hand returns the primary hand's cards
func (s *Seat) Hand() []deck.Card {
	return s.hands[0].Cards()
}

// SplitHand returns the split hand's cards, nil if the seat has not split
func (s *Seat) SplitHand() []deck.Card {
	if !s.HasSplit() {
		return nil
	}
	return s.hands[1].Cards()
}

// Hands returns every hand the seat plays, primary first
func (s *Seat) Hands() [][]deck.Card {
	out := make([][]deck.Card, len(s.hands))
	for i, h := range s.hands {
		out[i] = h.Cards()
	}
	return out
}

// HasSplit reports whether the seat has split this round
func (s *Seat) HasSplit() bool {
	return len(s.hands) > 1
}

// ActiveHand returns the index of the hand being played
func (s *Seat) ActiveHand() int {
	return s.active
}

// ActiveCards returns the cards of the hand being played
func (s *Seat) ActiveCards() []deck.Card {
	return s.activeHand().Cards()
}

// Doubled reports whether the active hand has doubled down
func (s *Seat) Doubled() bool {
	return s.doubled
}

// Finished reports whether the seat has no more decisions this round
func (s *Seat) Finished() bool {
	return s.finished
}

// Net returns hands won minus hands lost once the seat has settled
func (s *Seat) Net() int {
	return s.net
}

// Outcome returns the settlement message, empty until the seat settles
func (s *Seat) Outcome() string {
	return s.outcome
}

// CanSplit reports whether the primary hand is a two-card pair of equal
// value and the seat has not split yet
func (s *Seat) CanSplit() bool {
	if s.HasSplit() {
		return false
	}
	h := s.hands[0]
	return h.Len() == 2 && h.Card(0).Value() == h.Card(1).Value()
}

// CanDouble reports whether the active hand holds exactly two cards and
// has not doubled
func (s *Seat) CanDouble() bool {
	return s.activeHand().Len() == 2 && !s.doubled
}

func (s *Seat) activeHand() *hand.Hand {
	return s.hands[s.active]
}

func (s *Seat) playing() bool {
	return s.occupied && !s.finished
}

// advance moves play from the primary hand to the split hand. It reports
// false when there is no hand left to play.
func (s *Seat) advance() bool {
	if !s.HasSplit() || s.active != 0 {
		return false
	}
	s.active = 1
	s.doubled = false
	return true
}

func (s *Seat) split(first, second deck.Card) {
	moved := s.hands[0].RemoveLast()
	s.hands = append(s.hands, hand.New(moved))
	s.hands[0].Add(first)
	s.hands[1].Add(second)
	s.active = 0
}

// finish ends the seat's play; waiting seats are settled by dealer play
func (s *Seat) finish(waiting bool) {
	s.finished = true
	s.awaitingDealer = waiting
}

func (s *Seat) settle(outcome string, net int) {
	s.outcome = outcome
	s.net = net
	s.awaitingDealer = false
}

// settleAgainst resolves the seat's hands against the dealer's final value,
// returning the outcome message and the net hands won
func (s *Seat) settleAgainst(dealerValue int) (string, int) {
	net := 0
	for _, h := range s.hands {
		switch {
		case h.IsBusted():
			net--
		case dealerValue > hand.Target:
			net++
		default:
			net += int(compare(h.Value(), dealerValue))
		}
	}
	return s.outcomeAgainst(dealerValue), net
}

func (s *Seat) outcomeAgainst(dealerValue int) string {
	dealerBusted := dealerValue > hand.Target

	if !s.HasSplit() {
		if dealerBusted {
			return MsgDealerBust
		}
		return singleMessage(compare(s.hands[0].Value(), dealerValue))
	}

	first, second := s.hands[0], s.hands[1]
	switch {
	case first.IsBusted() && second.IsBusted():
		return MsgBothBusted
	case dealerBusted && first.IsBusted():
		return MsgDealerBustSplitWins
	case dealerBusted && second.IsBusted():
		return MsgDealerBustFirstWins
	case dealerBusted:
		return MsgDealerBustBothWin
	case first.IsBusted():
		return survivorMessage(firstBustedPrefix, compare(second.Value(), dealerValue))
	case second.IsBusted():
		return survivorMessage(secondBustedPrefix, compare(first.Value(), dealerValue))
	default:
		return splitMessage(compare(first.Value(), dealerValue), compare(second.Value(), dealerValue))
	}
}
