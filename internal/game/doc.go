// Package game implements the blackjack round state machine for a
// multi-seat table.
//
// The main type is Engine, which owns the shoe, the seats and the dealer
// hand. Every operation runs to completion and returns an outcome message
// for the presentation layer, or an empty string when there is nothing to
// report yet.
//
// # Basic Usage
//
//	e := game.NewEngine(game.Config{Seats: 1})
//	e.SitDown(0, "Alice")
//	msg, _ := e.NewRound()
//	if msg == "" {
//	    msg, _ = e.PlayerStand(0)
//	}
//
// # Deterministic Testing
//
// Inject the random source or a pre-arranged shoe:
//
//	rng := randutil.New(42)
//	e := game.NewEngine(game.Config{Rand: rng})
//
//	shoe := deck.NewStackedShoe(1, rng, deck.MustParseCards("As 9c Kh 9d")...)
//	e = game.NewEngine(game.Config{Seats: 1, Shoe: shoe})
//
// # Round Flow
//
// NewRound deals two cards to every occupied seat and the dealer, one at a
// time, and settles at once if a seat holds 21. Otherwise seats act with
// PlayerHit, PlayerStand, PlayerDouble and PlayerSplit. A seat that has
// finished waits for the others; the dealer plays once, when the last
// seat finishes, and every waiting seat is settled against the same dealer
// hand. Dealer blackjack is only revealed at that point.
package game
