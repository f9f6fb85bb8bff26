// Package hand computes blackjack hand values. Dealer hands, seat hands
// and split hands all go through the same functions, and so does any
// presentation layer: ace softening lives here and nowhere else.
package hand

import (
	"slices"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Target is the value a hand must not exceed
const Target = 21

// HiddenCard is rendered in place of a face-down card
const HiddenCard = "[Hidden]"

// Hand is an ordered sequence of cards
type Hand struct {
	cards []deck.Card
}

// New creates a hand holding the given cards
func New(cards ...deck.Card) *Hand {
	h := &Hand{cards: make([]deck.Card, 0, max(len(cards), 4))}
	h.cards = append(h.cards, cards...)
	return h
}

// Add appends a card to the hand
func (h *Hand) Add(card deck.Card) {
	h.cards = append(h.cards, card)
}

// Reset removes every card from the hand
func (h *Hand) Reset() {
	h.cards = h.cards[:0]
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []deck.Card {
	return slices.Clone(h.cards)
}

// Card returns the card at position i
func (h *Hand) Card(i int) deck.Card {
	return h.cards[i]
}

// RemoveLast takes the last card out of the hand
func (h *Hand) RemoveLast() deck.Card {
	last := len(h.cards) - 1
	card := h.cards[last]
	h.cards = h.cards[:last]
	return card
}

// Value returns the best value of the hand
func (h *Hand) Value() int {
	return BestValue(h.cards)
}

// PossibleValues returns the soft/hard totals of the hand
func (h *Hand) PossibleValues() []int {
	return PossibleValues(h.cards)
}

// IsBusted reports whether every possible value exceeds 21
func (h *Hand) IsBusted() bool {
	return IsBusted(h.cards)
}

// IsBlackjack reports whether the hand is a two-card 21
func (h *Hand) IsBlackjack() bool {
	return IsBlackjack(h.cards)
}

// Render formats the hand, optionally hiding the first card
func (h *Hand) Render(hideFirst bool) string {
	return Render(h.cards, hideFirst)
}

// String formats the full hand
func (h *Hand) String() string {
	return Render(h.cards, false)
}

// Totals returns the nominal sum of the cards and the number of aces
func Totals(cards []deck.Card) (total, aces int) {
	for _, card := range cards {
		total += card.Value()
		if card.IsAce() {
			aces++
		}
	}
	return total, aces
}

// PossibleValues returns every total reachable by counting each ace as 11
// or 1, ascending. Totals above 21 are dropped unless all of them bust.
func PossibleValues(cards []deck.Card) []int {
	total, aces := Totals(cards)

	all := make([]int, 0, aces+1)
	for softened := aces; softened >= 0; softened-- {
		all = append(all, total-10*softened)
	}

	live := make([]int, 0, len(all))
	for _, v := range all {
		if v <= Target {
			live = append(live, v)
		}
	}
	if len(live) > 0 {
		return live
	}
	return all
}

// BestValue returns the highest possible value not above 21, or the lowest
// possible value when the hand is busted
func BestValue(cards []deck.Card) int {
	total, aces := Totals(cards)
	for total > Target && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsBusted reports whether every possible value exceeds 21
func IsBusted(cards []deck.Card) bool {
	return BestValue(cards) > Target
}

// IsBlackjack reports whether the cards are a two-card 21
func IsBlackjack(cards []deck.Card) bool {
	return len(cards) == 2 && BestValue(cards) == Target
}

// Render joins the cards with ", ". With hideFirst set on a non-empty hand
// the first card is shown as [Hidden].
func Render(cards []deck.Card, hideFirst bool) string {
	parts := make([]string, 0, len(cards))
	for i, card := range cards {
		if i == 0 && hideFirst {
			parts = append(parts, HiddenCard)
			continue
		}
		parts = append(parts, card.String())
	}
	return strings.Join(parts, ", ")
}

// FormatValues renders possible values for soft-hand display ("7, 17")
func FormatValues(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
