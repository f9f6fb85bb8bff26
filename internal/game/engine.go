package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/evaluator"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/roundid"
)

const (
	// DefaultSeats is the number of seats at a standard table
	DefaultSeats = 7

	// dealerStandsOn is the best value at which the dealer stops drawing
	dealerStandsOn = 17
)

// Config configures an Engine. Zero values pick the defaults.
type Config struct {
	Seats              int
	Decks              int
	ReshuffleThreshold int

	// Rand drives shuffling; nil seeds a generator from the clock
	Rand *rand.Rand

	// Shoe replaces the engine's own shoe, for scripted deals
	Shoe *deck.Shoe

	Clock  quartz.Clock
	Logger *log.Logger
}

// round is the per-round state replaced wholesale by NewRound
type round struct {
	id              string
	dealer          *hand.Hand
	state           State
	playerBlackjack bool
	dealerBlackjack bool
}

// Engine runs rounds of blackjack at one table. It is not safe for
// concurrent use; every operation completes before returning.
type Engine struct {
	shoe      *deck.Shoe
	seats     []*Seat
	threshold int
	ids       *roundid.Generator
	logger    *log.Logger

	round round
}

// NewEngine creates an engine with empty seats and a freshly built shoe
func NewEngine(cfg Config) *Engine {
	if cfg.Seats <= 0 {
		cfg.Seats = DefaultSeats
	}
	if cfg.Decks <= 0 {
		cfg.Decks = 1
	}
	if cfg.ReshuffleThreshold <= 0 {
		cfg.ReshuffleThreshold = deck.DefaultReshuffleThreshold
	}
	if cfg.Rand == nil {
		cfg.Rand = randutil.New(randutil.TimeSeed())
	}
	if cfg.Shoe == nil {
		cfg.Shoe = deck.NewShoe(cfg.Decks, cfg.Rand)
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	seats := make([]*Seat, cfg.Seats)
	for i := range seats {
		seats[i] = newSeat(i)
	}

	// Round IDs get their own stream, seeded once from the shuffle stream
	ids := roundid.NewGenerator(cfg.Clock, randutil.New(cfg.Rand.Int64()))

	return &Engine{
		shoe:      cfg.Shoe,
		seats:     seats,
		threshold: cfg.ReshuffleThreshold,
		ids:       ids,
		logger:    cfg.Logger.WithPrefix("engine"),
		round:     round{dealer: hand.New(), state: NotStarted},
	}
}

func (e *Engine) seat(index int) (*Seat, error) {
	if index < 0 || index >= len(e.seats) {
		return nil, fmt.Errorf("%w: %d (table has %d seats)", ErrSeatOutOfRange, index, len(e.seats))
	}
	return e.seats[index], nil
}

// SitDown occupies an empty seat. It returns false if the seat is taken.
func (e *Engine) SitDown(index int, name string) (bool, error) {
	s, err := e.seat(index)
	if err != nil {
		return false, err
	}
	if s.occupied {
		return false, nil
	}
	s.occupied = true
	s.name = name
	s.reset()
	// Joining mid-round means sitting out until the next deal
	if e.round.state == InRound {
		s.finished = true
	}
	e.logger.Debug("seat taken", "seat", index, "name", name)
	return true, nil
}

// StandUp frees an occupied seat between rounds. It returns false if the
// seat was already empty.
func (e *Engine) StandUp(index int) (bool, error) {
	s, err := e.seat(index)
	if err != nil {
		return false, err
	}
	if e.round.state == InRound {
		return false, ErrRoundInProgress
	}
	if !s.occupied {
		return false, nil
	}
	s.occupied = false
	s.name = ""
	s.reset()
	e.logger.Debug("seat freed", "seat", index)
	return true, nil
}

// NewRound resets every hand, rebuilds a low shoe and deals. It returns
// an outcome if a seat was dealt 21, which settles the round at once.
func (e *Engine) NewRound() (string, error) {
	occupied := e.occupied()
	if len(occupied) == 0 {
		return "", ErrNoPlayers
	}

	e.round = round{id: e.ids.Generate(), dealer: hand.New(), state: InRound}
	for _, s := range e.seats {
		s.reset()
	}

	if e.shoe.NeedsRebuild(e.threshold) {
		e.logger.Debug("rebuilding shoe", "remaining", e.shoe.Size(), "decks", e.shoe.NumDecks())
		e.shoe.Build()
	}

	for range 2 {
		for _, s := range occupied {
			s.hands[0].Add(e.shoe.Draw())
		}
		e.round.dealer.Add(e.shoe.Draw())
	}

	e.logger.Debug("round started", "round", e.round.id, "seats", len(occupied), "shoe", e.shoe.Size())

	for _, s := range occupied {
		if s.hands[0].Value() != hand.Target {
			continue
		}

		e.round.playerBlackjack = true
		msg, net := MsgBlackjackWin, 1
		if e.round.dealer.Value() == hand.Target {
			e.round.dealerBlackjack = true
			msg, net = MsgBlackjackPush, 0
		}
		for _, other := range occupied {
			other.finish(false)
		}
		s.settle(msg, net)
		e.round.state = Settled
		e.logger.Debug("blackjack on deal", "round", e.round.id, "seat", s.index, "outcome", msg)
		return msg, nil
	}

	return "", nil
}

// actionable returns the seat if it can act, or nil when the request is a
// no-op (no round in progress, empty seat, seat already finished)
func (e *Engine) actionable(index int) (*Seat, error) {
	s, err := e.seat(index)
	if err != nil {
		return nil, err
	}
	if e.round.state != InRound || !s.playing() {
		return nil, nil
	}
	return s, nil
}

// PlayerHit deals a card onto the seat's active hand
func (e *Engine) PlayerHit(index int) (string, error) {
	s, err := e.actionable(index)
	if s == nil {
		return "", err
	}
	return e.hit(s), nil
}

func (e *Engine) hit(s *Seat) string {
	h := s.activeHand()
	h.Add(e.shoe.Draw())

	if h.IsBusted() {
		if s.advance() {
			return MsgFirstHandBusted
		}
		if s.HasSplit() {
			// The first hand can still win against the dealer
			s.finish(true)
			return e.seatDone(s)
		}
		s.finish(false)
		s.settle(MsgBust, -1)
		return e.seatDone(s)
	}

	if s.doubled {
		if s.advance() {
			return MsgFirstHandDoubleDone
		}
		s.finish(true)
		return e.seatDone(s)
	}

	return ""
}

// PlayerStand ends play on the seat's active hand
func (e *Engine) PlayerStand(index int) (string, error) {
	s, err := e.actionable(index)
	if s == nil {
		return "", err
	}
	if s.advance() {
		return MsgFirstHandStands, nil
	}
	s.finish(true)
	return e.seatDone(s), nil
}

// PlayerDouble doubles down on the active hand: one more card, then an
// automatic stand
func (e *Engine) PlayerDouble(index int) (string, error) {
	s, err := e.actionable(index)
	if s == nil {
		return "", err
	}
	if s.doubled {
		return MsgCannotDoubleAgain, nil
	}
	if s.activeHand().Len() != 2 {
		return MsgCannotDoubleCards, nil
	}
	s.doubled = true
	return e.hit(s), nil
}

// PlayerSplit splits a pair into two hands, each dealt one fresh card
func (e *Engine) PlayerSplit(index int) (string, error) {
	s, err := e.actionable(index)
	if s == nil {
		return "", err
	}
	if s.HasSplit() {
		return MsgCannotSplitAgain, nil
	}
	if !s.CanSplit() {
		return MsgCannotSplitPair, nil
	}
	first := e.shoe.Draw()
	second := e.shoe.Draw()
	s.split(first, second)
	return MsgSplit, nil
}

// Act applies action for the seat at index
func (e *Engine) Act(index int, action evaluator.Action) (string, error) {
	switch action {
	case evaluator.Hit:
		return e.PlayerHit(index)
	case evaluator.Stand:
		return e.PlayerStand(index)
	case evaluator.Double:
		return e.PlayerDouble(index)
	case evaluator.Split:
		return e.PlayerSplit(index)
	default:
		return "", fmt.Errorf("%w: %d", evaluator.ErrUnknownAction, int(action))
	}
}

// NextSeat returns the first seat still to act, -1 outside a round
func (e *Engine) NextSeat() int {
	if e.round.state != InRound {
		return -1
	}
	for _, s := range e.seats {
		if s.playing() {
			return s.index
		}
	}
	return -1
}

// seatDone runs dealer play once the last seat finishes and returns the
// seat's outcome, empty while it waits on the dealer
func (e *Engine) seatDone(s *Seat) string {
	e.logger.Debug("seat finished", "round", e.round.id, "seat", s.index, "value", s.hands[0].Value(), "waiting", s.awaitingDealer)

	for _, other := range e.seats {
		if other.playing() {
			return s.outcome
		}
	}

	e.dealerPlay()
	e.round.state = Settled
	return s.outcome
}

// dealerPlay reveals dealer blackjack or draws to 17, then settles every
// waiting seat. Nothing is drawn when no seat is waiting.
func (e *Engine) dealerPlay() {
	var waiting []*Seat
	for _, s := range e.seats {
		if s.occupied && s.awaitingDealer {
			waiting = append(waiting, s)
		}
	}
	if len(waiting) == 0 {
		return
	}

	dealer := e.round.dealer
	if dealer.IsBlackjack() {
		e.round.dealerBlackjack = true
		for _, s := range waiting {
			s.settle(MsgDealerBlackjack, -len(s.hands))
		}
		e.logger.Debug("dealer blackjack", "round", e.round.id, "seats", len(waiting))
		return
	}

	for dealer.Value() < dealerStandsOn {
		dealer.Add(e.shoe.Draw())
	}
	value := dealer.Value()

	for _, s := range waiting {
		s.settle(s.settleAgainst(value))
	}
	e.logger.Debug("dealer played", "round", e.round.id, "value", value, "cards", dealer.Len(), "seats", len(waiting))
}

func (e *Engine) occupied() []*Seat {
	var out []*Seat
	for _, s := range e.seats {
		if s.occupied {
			out = append(out, s)
		}
	}
	return out
}

// State returns the round lifecycle state
func (e *Engine) State() State {
	return e.round.state
}

// InRound reports whether a round is being played
func (e *Engine) InRound() bool {
	return e.round.state == InRound
}

// RoundID returns the current round's identifier, empty before the first deal
func (e *Engine) RoundID() string {
	return e.round.id
}

// NumSeats returns the table size
func (e *Engine) NumSeats() int {
	return len(e.seats)
}

// Seat returns a read-only view of a seat
func (e *Engine) Seat(index int) (*Seat, error) {
	return e.seat(index)
}

// Seats returns every seat in table order
func (e *Engine) Seats() []*Seat {
	return append([]*Seat(nil), e.seats...)
}

// Dealer returns the dealer's cards
func (e *Engine) Dealer() []deck.Card {
	return e.round.dealer.Cards()
}

// DealerHasBlackjack reports whether the dealer's blackjack decided the round
func (e *Engine) DealerHasBlackjack() bool {
	return e.round.dealerBlackjack
}

// PlayerHasBlackjack reports whether a seat was dealt 21 this round
func (e *Engine) PlayerHasBlackjack() bool {
	return e.round.playerBlackjack
}

// Outcome returns a seat's settlement message, empty until it settles
func (e *Engine) Outcome(index int) (string, error) {
	s, err := e.seat(index)
	if err != nil {
		return "", err
	}
	return s.outcome, nil
}

// ShoeSize returns the number of cards left in the shoe
func (e *Engine) ShoeSize() int {
	return e.shoe.Size()
}

// ShoeBuilds returns how many times the shoe has been built
func (e *Engine) ShoeBuilds() int {
	return e.shoe.Builds()
}

// ShoeCards returns a copy of the cards left in the shoe
func (e *Engine) ShoeCards() []deck.Card {
	return e.shoe.Cards()
}

// AvailableActions lists the legal actions for the seat's active hand,
// none when the seat cannot act
func (e *Engine) AvailableActions(index int) ([]evaluator.Action, error) {
	s, err := e.actionable(index)
	if s == nil {
		return nil, err
	}
	actions := []evaluator.Action{evaluator.Hit, evaluator.Stand}
	if s.CanDouble() {
		actions = append(actions, evaluator.Double)
	}
	if s.CanSplit() {
		actions = append(actions, evaluator.Split)
	}
	return actions, nil
}

// Snapshot captures what the seat knows for the evaluator: its active
// hand, the dealer's up cards and every card it has not seen. While the
// round is in progress the dealer's hole card counts as unseen.
func (e *Engine) Snapshot(index int) (evaluator.Snapshot, error) {
	s, err := e.seat(index)
	if err != nil {
		return evaluator.Snapshot{}, err
	}

	dealer := e.round.dealer.Cards()
	unseen := e.shoe.Cards()
	if e.round.state == InRound && len(dealer) > 0 {
		unseen = append(unseen, dealer[0])
		dealer = dealer[1:]
	}

	return evaluator.Snapshot{
		Player: s.ActiveCards(),
		Dealer: dealer,
		Shoe:   unseen,
	}, nil
}
