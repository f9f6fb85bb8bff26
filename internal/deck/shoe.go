package deck

import rand "math/rand/v2"

// CardsPerDeck is the size of one standard deck
const CardsPerDeck = 52

// DefaultReshuffleThreshold is the remaining-card count below which a new
// round rebuilds the shoe
const DefaultReshuffleThreshold = 15

// Shoe represents the cards left to deal, built from one or more decks.
// Rebuilding discards the current composition entirely.
type Shoe struct {
	numDecks int
	cards    []Card
	rng      *rand.Rand
	builds   int
}

// NewShoe creates a shuffled shoe of numDecks standard decks. The rng is
// owned by the shoe from here on.
func NewShoe(numDecks int, rng *rand.Rand) *Shoe {
	if numDecks < 1 {
		numDecks = 1
	}
	shoe := &Shoe{
		numDecks: numDecks,
		cards:    make([]Card, 0, numDecks*CardsPerDeck),
		rng:      rng,
	}
	shoe.Build()
	return shoe
}

// NewStackedShoe creates a shoe whose draw order is exactly the given
// cards, first element drawn first. It is not shuffled. Once the stack
// runs out the shoe rebuilds as usual.
func NewStackedShoe(numDecks int, rng *rand.Rand, drawOrder ...Card) *Shoe {
	if numDecks < 1 {
		numDecks = 1
	}
	cards := make([]Card, len(drawOrder))
	for i, card := range drawOrder {
		cards[len(drawOrder)-1-i] = card
	}
	return &Shoe{numDecks: numDecks, cards: cards, rng: rng}
}

// Build replaces the shoe contents with numDecks fresh decks and shuffles
func (s *Shoe) Build() {
	s.builds++
	s.cards = s.cards[:0]
	for range s.numDecks {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.Shuffle()
}

// Shuffle randomizes the order of the remaining cards
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the next card. An empty shoe is rebuilt first,
// so Draw always succeeds.
func (s *Shoe) Draw() Card {
	if len(s.cards) == 0 {
		s.Build()
	}
	last := len(s.cards) - 1
	card := s.cards[last]
	s.cards = s.cards[:last]
	return card
}

// Builds returns how many times the shoe has been built, the initial build
// of NewShoe included
func (s *Shoe) Builds() int {
	return s.builds
}

// Size returns the number of cards left in the shoe
func (s *Shoe) Size() int {
	return len(s.cards)
}

// NumDecks returns how many decks the shoe is built from
func (s *Shoe) NumDecks() int {
	return s.numDecks
}

// Capacity returns the size of a freshly built shoe
func (s *Shoe) Capacity() int {
	return s.numDecks * CardsPerDeck
}

// NeedsRebuild reports whether fewer than threshold cards remain
func (s *Shoe) NeedsRebuild(threshold int) bool {
	return len(s.cards) < threshold
}

// Cards returns a copy of the remaining cards in draw order reversed
// (the last element is the next card dealt)
func (s *Shoe) Cards() []Card {
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// CountByRank returns how many cards of each rank remain
func (s *Shoe) CountByRank() map[Rank]int {
	counts := make(map[Rank]int, len(Ranks))
	for _, card := range s.cards {
		counts[card.Rank]++
	}
	return counts
}
