package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in shoe build order
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the symbol for a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the long name of a suit (e.g. "Hearts")
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	default:
		return "Unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank in shoe build order
var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Value returns the nominal blackjack value of the rank. Face cards count
// 10 and an ace counts 11; softening aces to 1 is the hand's job.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠", "10♥")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Value returns the nominal blackjack value of the card
func (c Card) Value() int {
	return c.Rank.Value()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// ParseCards parses a compact card list such as "AsKh10d" or "A♠ K♥".
// Ranks are 2-9, T or 10, J, Q, K, A; suits are s/h/d/c or their symbols.
// Spaces and commas between cards are ignored.
func ParseCards(input string) ([]Card, error) {
	cards := []Card{}
	runes := []rune(strings.NewReplacer(" ", "", ",", "").Replace(input))

	for i := 0; i < len(runes); {
		rank, width, err := parseRank(runes[i:])
		if err != nil {
			return nil, err
		}
		i += width
		if i >= len(runes) {
			return nil, fmt.Errorf("missing suit after rank %s", rank)
		}
		suit, err := parseSuit(runes[i])
		if err != nil {
			return nil, err
		}
		i++
		cards = append(cards, NewCard(suit, rank))
	}

	return cards, nil
}

// MustParseCards is like ParseCards but panics on invalid input
func MustParseCards(input string) []Card {
	cards, err := ParseCards(input)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(runes []rune) (Rank, int, error) {
	if len(runes) >= 2 && runes[0] == '1' && runes[1] == '0' {
		return Ten, 2, nil
	}
	switch r := runes[0]; {
	case r >= '2' && r <= '9':
		return Rank(r - '0'), 1, nil
	case r == 't' || r == 'T':
		return Ten, 1, nil
	case r == 'j' || r == 'J':
		return Jack, 1, nil
	case r == 'q' || r == 'Q':
		return Queen, 1, nil
	case r == 'k' || r == 'K':
		return King, 1, nil
	case r == 'a' || r == 'A':
		return Ace, 1, nil
	default:
		return 0, 0, fmt.Errorf("invalid rank %q", string(r))
	}
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case 'h', 'H', '♥':
		return Hearts, nil
	case 'd', 'D', '♦':
		return Diamonds, nil
	case 'c', 'C', '♣':
		return Clubs, nil
	case 's', 'S', '♠':
		return Spades, nil
	default:
		return 0, fmt.Errorf("invalid suit %q", string(r))
	}
}

// MarshalText encodes the card as its display string
func (c Card) MarshalText() ([]byte, error) {
	if c.Rank.String() == "?" || c.Suit.String() == "?" {
		return nil, fmt.Errorf("invalid card rank=%d suit=%d", c.Rank, c.Suit)
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a single card such as "A♠" or "Th"
func (c *Card) UnmarshalText(text []byte) error {
	cards, err := ParseCards(string(text))
	if err != nil {
		return err
	}
	if len(cards) != 1 {
		return fmt.Errorf("expected one card, got %d in %q", len(cards), text)
	}
	*c = cards[0]
	return nil
}
