package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/evaluator"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/roundid"
)

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(Config{Rand: randutil.New(1)})
	assert.Equal(t, DefaultSeats, e.NumSeats())
	assert.Equal(t, deck.CardsPerDeck, e.ShoeSize())
	assert.Equal(t, NotStarted, e.State())
	assert.False(t, e.InRound())
	assert.Empty(t, e.RoundID())
}

func TestRoundIDsLeaveShuffleStreamAlone(t *testing.T) {
	rng := randutil.New(7)
	e := NewEngine(Config{Seats: 1, Rand: rng, Logger: quietLogger()})
	_, err := e.SitDown(0, "Alice")
	require.NoError(t, err)
	for range 3 {
		_, err := e.NewRound()
		require.NoError(t, err)
		require.NotEmpty(t, e.RoundID())
		for e.InRound() {
			_, err := e.PlayerStand(0)
			require.NoError(t, err)
		}
	}

	// The same stream advanced only by the shoe build and the one seed draw
	ref := randutil.New(7)
	deck.NewShoe(1, ref)
	ref.Int64()
	assert.Equal(t, ref.Uint64(), rng.Uint64(), "round IDs must not draw from the shuffle stream")
}

func TestSitDown(t *testing.T) {
	e := NewEngine(Config{Seats: 3, Rand: randutil.New(1)})

	ok, err := e.SitDown(1, "Alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.SitDown(1, "Bob")
	require.NoError(t, err)
	assert.False(t, ok, "occupied seat must refuse")

	seat, err := e.Seat(1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", seat.Name())
	assert.True(t, seat.Occupied())

	_, err = e.SitDown(3, "Carol")
	assert.ErrorIs(t, err, ErrSeatOutOfRange)
	_, err = e.SitDown(-1, "Carol")
	assert.ErrorIs(t, err, ErrSeatOutOfRange)
}

func TestStandUp(t *testing.T) {
	e := newTestEngine(t, "Ts Tc 9h 7d")

	startRound(t, e)
	_, err := e.StandUp(0)
	assert.ErrorIs(t, err, ErrRoundInProgress)

	play(t, e, stand)
	ok, err := e.StandUp(0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.StandUp(0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = e.NewRound()
	assert.ErrorIs(t, err, ErrNoPlayers)
}

func TestNewRoundRequiresPlayers(t *testing.T) {
	e := NewEngine(Config{Seats: 2, Rand: randutil.New(1)})
	_, err := e.NewRound()
	assert.ErrorIs(t, err, ErrNoPlayers)
	assert.Equal(t, NotStarted, e.State())
}

func TestNewRoundDealOrder(t *testing.T) {
	e := newTestEngine(t, "Ts 9s Tc 8h 9h 7d", "Alice", "Bob")
	startRound(t, e)

	alice, _ := e.Seat(0)
	bob, _ := e.Seat(1)
	assert.Equal(t, cards("Ts 8h"), alice.Hand())
	assert.Equal(t, cards("9s 9h"), bob.Hand())
	assert.Equal(t, cards("Tc 7d"), e.Dealer())
	assert.NoError(t, roundid.Validate(e.RoundID()))
}

func TestNewRoundResetsState(t *testing.T) {
	e := newTestEngine(t, "8s Tc 8h 7d 3c 2d Ts 9c 7h 8d")
	startRound(t, e)
	play(t, e, split, double, stand)
	require.Equal(t, Settled, e.State())
	first := e.RoundID()

	startRound(t, e)
	seat, _ := e.Seat(0)
	assert.False(t, seat.HasSplit())
	assert.False(t, seat.Doubled())
	assert.False(t, seat.Finished())
	assert.Zero(t, seat.ActiveHand())
	assert.Empty(t, seat.Outcome())
	assert.Len(t, seat.Hand(), 2)
	assert.Len(t, e.Dealer(), 2)
	assert.NotEqual(t, first, e.RoundID())
}

func TestNewRoundRebuildsLowShoe(t *testing.T) {
	rng := randutil.New(7)
	shoe := deck.NewStackedShoe(1, rng, cards("Ts Tc 9h 7d 2c 3c 4c 5c 6c 7c 8c 9c Jc Qc")...)
	e := NewEngine(Config{Seats: 1, Shoe: shoe, Rand: rng, Logger: quietLogger()})
	_, err := e.SitDown(0, "Alice")
	require.NoError(t, err)

	require.Equal(t, 14, e.ShoeSize())
	_, err = e.NewRound()
	require.NoError(t, err)
	assert.Equal(t, deck.CardsPerDeck-4, e.ShoeSize())
}

func TestNewRoundKeepsShoeAtThreshold(t *testing.T) {
	e := newTestEngine(t, "Ts Tc 9h 7d")
	before := e.ShoeSize()
	startRound(t, e)
	assert.Equal(t, before-4, e.ShoeSize())
}

func TestBlackjackOnDeal(t *testing.T) {
	t.Run("player blackjack wins", func(t *testing.T) {
		e := newTestEngine(t, "As 9c Kh 9d")
		msg, err := e.NewRound()
		require.NoError(t, err)
		assert.Equal(t, MsgBlackjackWin, msg)
		assert.Equal(t, Settled, e.State())
		assert.True(t, e.PlayerHasBlackjack())
		assert.False(t, e.DealerHasBlackjack())
		assert.Equal(t, 18, hand.BestValue(e.Dealer()))
		assert.Len(t, e.Dealer(), 2)

		outcome, err := e.Outcome(0)
		require.NoError(t, err)
		assert.Equal(t, MsgBlackjackWin, outcome)
	})

	t.Run("both blackjack push", func(t *testing.T) {
		e := newTestEngine(t, "As Ac Kh Kd")
		msg, err := e.NewRound()
		require.NoError(t, err)
		assert.Equal(t, MsgBlackjackPush, msg)
		assert.True(t, e.PlayerHasBlackjack())
		assert.True(t, e.DealerHasBlackjack())
	})

	t.Run("dealer blackjack alone is not checked", func(t *testing.T) {
		e := newTestEngine(t, "Ts Ac 9h Kd")
		startRound(t, e)
		assert.False(t, e.DealerHasBlackjack())
	})

	t.Run("first seat with 21 ends the round", func(t *testing.T) {
		e := newTestEngine(t, "Ts As 9c 8h Kh 9d", "Alice", "Bob")
		msg, err := e.NewRound()
		require.NoError(t, err)
		assert.Equal(t, MsgBlackjackWin, msg)
		assert.Equal(t, Settled, e.State())

		bob, _ := e.Seat(1)
		assert.Equal(t, MsgBlackjackWin, bob.Outcome())
		alice, _ := e.Seat(0)
		assert.True(t, alice.Finished())
		assert.Empty(t, alice.Outcome())

		msg, err = e.PlayerHit(0)
		require.NoError(t, err)
		assert.Empty(t, msg)
		assert.Len(t, alice.Hand(), 2)
	})
}

func TestDealerPlay(t *testing.T) {
	tests := []struct {
		name        string
		draw        string
		steps       []step
		expected    string
		dealerCards int
	}{
		{"dealer stands on 17", "Ts Tc 9h 7d", []step{stand}, MsgPlayerWins, 2},
		{"dealer stands on soft 17", "Ts As 8h 6d", []step{stand}, MsgPlayerWins, 2},
		{"dealer draws to bust", "Ts Tc 6h 6d 3s Kd", []step{hit, stand}, MsgDealerBust, 3},
		{"dealer draws to 21", "Ts 5c 9h 6d Tc", []step{stand}, MsgDealerWins, 3},
		{"push", "Ts Tc 8h 8d", []step{stand}, MsgPush, 2},
		{"dealer higher", "Ts Tc 7h 8d", []step{stand}, MsgDealerWins, 2},
		{"dealer blackjack revealed on stand", "Ts Ac 9h Kd", []step{stand}, MsgDealerBlackjack, 2},
		{"dealer blackjack beats player 21", "7s Ac 4h Kd Ts", []step{hit, stand}, MsgDealerBlackjack, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.draw)
			startRound(t, e)
			assert.Equal(t, tt.expected, play(t, e, tt.steps...))
			assert.Equal(t, Settled, e.State())
			assert.Len(t, e.Dealer(), tt.dealerCards)
		})
	}
}

func TestDealerBlackjackFlag(t *testing.T) {
	e := newTestEngine(t, "Ts Ac 9h Kd")
	startRound(t, e)
	play(t, e, stand)
	assert.True(t, e.DealerHasBlackjack())
	assert.False(t, e.PlayerHasBlackjack())
}

func TestPlayerHit(t *testing.T) {
	t.Run("more hits allowed", func(t *testing.T) {
		e := newTestEngine(t, "2s Tc 3h 7d 4c")
		startRound(t, e)
		msg, err := e.PlayerHit(0)
		require.NoError(t, err)
		assert.Empty(t, msg)

		seat, _ := e.Seat(0)
		assert.Equal(t, cards("2s 3h 4c"), seat.Hand())
		assert.False(t, seat.Finished())
		assert.True(t, e.InRound())
	})

	t.Run("bust settles at once", func(t *testing.T) {
		e := newTestEngine(t, "Ts 9c 6h 8d Kc")
		startRound(t, e)
		assert.Equal(t, MsgBust, play(t, e, hit))
		assert.Equal(t, Settled, e.State())
		assert.Len(t, e.Dealer(), 2, "dealer does not draw after a bust")
	})
}

func TestPlayerDouble(t *testing.T) {
	t.Run("auto stands after one card", func(t *testing.T) {
		e := newTestEngine(t, "5s Tc 6h 7d Ks")
		startRound(t, e)
		assert.Equal(t, MsgPlayerWins, play(t, e, double))

		seat, _ := e.Seat(0)
		assert.True(t, seat.Doubled())
		assert.True(t, seat.Finished())
		assert.Len(t, seat.Hand(), 3)
	})

	t.Run("double into bust", func(t *testing.T) {
		e := newTestEngine(t, "Ts 9c 6h 8d Kc")
		startRound(t, e)
		assert.Equal(t, MsgBust, play(t, e, double))
	})

	t.Run("only on two cards", func(t *testing.T) {
		e := newTestEngine(t, "2s Tc 3h 7d 4c")
		startRound(t, e)
		play(t, e, hit)

		seat, _ := e.Seat(0)
		assert.False(t, seat.CanDouble())
		assert.Equal(t, MsgCannotDoubleCards, play(t, e, double))
		assert.False(t, seat.Doubled())
		assert.Len(t, seat.Hand(), 3)
		assert.True(t, e.InRound())
	})

	t.Run("no-op outside a round", func(t *testing.T) {
		e := newTestEngine(t, "Ts Tc 9h 7d")
		msg, err := e.PlayerDouble(0)
		require.NoError(t, err)
		assert.Empty(t, msg)

		seat, _ := e.Seat(0)
		assert.False(t, seat.Doubled())
	})
}

func TestPlayerSplit(t *testing.T) {
	t.Run("pair of eights", func(t *testing.T) {
		e := newTestEngine(t, "8s Tc 8h 7d 3c 2d")
		startRound(t, e)

		seat, _ := e.Seat(0)
		require.True(t, seat.CanSplit())
		assert.Equal(t, MsgSplit, play(t, e, split))

		assert.True(t, seat.HasSplit())
		assert.Zero(t, seat.ActiveHand())
		assert.Equal(t, cards("8s 3c"), seat.Hand())
		assert.Equal(t, cards("8h 2d"), seat.SplitHand())
		assert.Len(t, seat.Hands(), 2)
		assert.False(t, seat.CanSplit())
		assert.Equal(t, MsgCannotSplitAgain, play(t, e, split))
	})

	t.Run("ten-value cards pair up", func(t *testing.T) {
		e := newTestEngine(t, "Ks Tc Th 7d 3c 2d")
		startRound(t, e)
		assert.Equal(t, MsgSplit, play(t, e, split))
	})

	t.Run("not a pair", func(t *testing.T) {
		e := newTestEngine(t, "Ts Tc 9h 7d")
		startRound(t, e)
		assert.Equal(t, MsgCannotSplitPair, play(t, e, split))

		seat, _ := e.Seat(0)
		assert.False(t, seat.HasSplit())
		assert.Equal(t, cards("Ts 9h"), seat.Hand())
	})

	t.Run("not after a hit", func(t *testing.T) {
		e := newTestEngine(t, "4s Tc 4h 7d 2c")
		startRound(t, e)
		play(t, e, hit)
		assert.Equal(t, MsgCannotSplitPair, play(t, e, split))
	})
}

func TestSplitPlay(t *testing.T) {
	tests := []struct {
		name     string
		draw     string
		steps    []step
		expected string
	}{
		{"stand moves to split hand", "8s Tc 8h 7d 3c 2d", []step{split, stand}, MsgFirstHandStands},
		{"first hand busts", "8s Tc 8h 7d Ks 3d Kh", []step{split, hit}, MsgFirstHandBusted},
		{"double on first hand", "5s Tc 5h 7d 6c 4d 9s", []step{split, double}, MsgFirstHandDoubleDone},
		{"first busted, split wins", "8s Tc 8h 7d Ks 3d Kh 9c", []step{split, hit, hit, stand}, "First hand busted. Split hand wins!"},
		{"first busted, split loses", "8s Tc 8h 7d Ks 3d Kh", []step{split, hit, stand}, "First hand busted. Split hand loses."},
		{"first busted, split pushes", "8s Tc 8h 7d Ks 9d Kh", []step{split, hit, stand}, "First hand busted. Split hand pushes."},
		{"split busted, first wins", "8s Tc 8h 7d 2c Ks 9s Kh", []step{split, hit, stand, hit}, "Split hand busted. First hand wins!"},
		{"split busted, first loses", "8s Tc 8h 7d 2c Ks Kh", []step{split, stand, hit}, "Split hand busted. First hand loses."},
		{"both busted", "8s Tc 8h 7d Ks Kh Qs Qh", []step{split, hit, hit}, MsgBothBusted},
		{"both win", "8s Tc 8h 7d Ts Js", []step{split, stand, stand}, MsgBothWin},
		{"one wins one pushes", "8s Tc 8h 7d Ts 9d", []step{split, stand, stand}, MsgOneWinOnePush},
		{"both push", "8s Tc 8h 7d 9c 9d", []step{split, stand, stand}, MsgBothPush},
		{"one wins one loses sums to a push", "8s Tc 8h 7d Ts 2d", []step{split, stand, stand}, MsgBothPush},
		{"one loses one pushes", "8s Tc 8h 7d 9c 2d", []step{split, stand, stand}, MsgOneLoseOnePush},
		{"both lose", "8s Tc 8h 7d 3c 2d", []step{split, stand, stand}, MsgBothLose},
		{"double both hands", "5s Tc 5h 7d 6c 4d 9s Ks", []step{split, double, double}, MsgBothWin},
		{"dealer bust, both win", "8s Tc 8h 6d 2c 3c Kd", []step{split, stand, stand}, MsgDealerBustBothWin},
		{"dealer bust, first busted", "8s Tc 8h 6d Ks 3c Kh Kd", []step{split, hit, stand}, MsgDealerBustSplitWins},
		{"dealer bust, split busted", "8s Tc 8h 6d 3c Ks Kh Kd", []step{split, stand, hit}, MsgDealerBustFirstWins},
		{"dealer blackjack", "8s Ac 8h Kd 3c 2d", []step{split, stand, stand}, MsgDealerBlackjack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.draw)
			startRound(t, e)
			assert.Equal(t, tt.expected, play(t, e, tt.steps...))
		})
	}
}

func TestSplitHandTransitions(t *testing.T) {
	e := newTestEngine(t, "5s Tc 5h 7d 6c 4d 9s")
	startRound(t, e)
	play(t, e, split, double)

	seat, _ := e.Seat(0)
	assert.Equal(t, 1, seat.ActiveHand())
	assert.False(t, seat.Doubled(), "split hand may double on its own")
	assert.True(t, seat.CanDouble())
	assert.Equal(t, cards("5s 6c 9s"), seat.Hand())
	assert.Equal(t, cards("5h 4d"), seat.ActiveCards())
	assert.False(t, seat.Finished())
	assert.True(t, e.InRound())
}

func TestActionsOnInactiveSeats(t *testing.T) {
	actions := map[string]step{"hit": hit, "stand": stand, "double": double, "split": split}

	for name, action := range actions {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t, "8s Tc 8h 7d", "Alice", "")
			_, err := e.StandUp(1)
			require.NoError(t, err)

			msg, err := action(e, 0)
			require.NoError(t, err, "before the first round")
			assert.Empty(t, msg)

			startRound(t, e)
			msg, err = action(e, 1)
			require.NoError(t, err, "empty seat")
			assert.Empty(t, msg)

			_, err = action(e, 2)
			assert.ErrorIs(t, err, ErrSeatOutOfRange)
			_, err = action(e, -1)
			assert.ErrorIs(t, err, ErrSeatOutOfRange)
		})
	}
}

func TestActionsAfterSettlement(t *testing.T) {
	e := newTestEngine(t, "Ts Tc 9h 7d")
	startRound(t, e)
	play(t, e, stand)
	size := e.ShoeSize()

	for _, action := range []step{hit, stand, double, split} {
		msg, err := action(e, 0)
		require.NoError(t, err)
		assert.Empty(t, msg)
	}
	assert.Equal(t, size, e.ShoeSize())
	assert.Equal(t, Settled, e.State())
}

func TestMultiSeatSettlesTogether(t *testing.T) {
	e := newTestEngine(t, "Ts 9s 5c 8h 7h Kd 6s", "Alice", "Bob")
	startRound(t, e)

	msg, err := e.PlayerStand(0)
	require.NoError(t, err)
	assert.Empty(t, msg, "first seat waits for the table")
	assert.True(t, e.InRound())
	assert.Len(t, e.Dealer(), 2)

	msg, err = e.PlayerStand(1)
	require.NoError(t, err)
	assert.Equal(t, MsgDealerWins, msg)
	assert.Equal(t, Settled, e.State())

	// Dealer 5+K then 6: 21 against 18 and 16
	assert.Equal(t, 21, hand.BestValue(e.Dealer()))
	outcome, err := e.Outcome(0)
	require.NoError(t, err)
	assert.Equal(t, MsgDealerWins, outcome)
}

func TestMultiSeatBustDoesNotWait(t *testing.T) {
	e := newTestEngine(t, "Ts 9s Tc 6h 9h 7d Kc", "Alice", "Bob")
	startRound(t, e)

	msg, err := e.PlayerHit(0)
	require.NoError(t, err)
	assert.Equal(t, MsgBust, msg)
	assert.True(t, e.InRound())

	msg, err = e.PlayerStand(1)
	require.NoError(t, err)
	assert.Equal(t, MsgPlayerWins, msg)

	outcome, _ := e.Outcome(0)
	assert.Equal(t, MsgBust, outcome)
}

func TestMultiSeatAllBustDealerDoesNotDraw(t *testing.T) {
	e := newTestEngine(t, "Ts 9s 5c 6h 7h 6d Kc Kh", "Alice", "Bob")
	startRound(t, e)

	assert.Equal(t, MsgBust, must(e.PlayerHit(0)))
	assert.Equal(t, MsgBust, must(e.PlayerHit(1)))
	assert.Equal(t, Settled, e.State())
	assert.Len(t, e.Dealer(), 2)
}

func must(msg string, err error) string {
	if err != nil {
		panic(err)
	}
	return msg
}

func TestSitDownDuringRound(t *testing.T) {
	e := newTestEngine(t, "Ts 9s 9h 7d", "Alice", "")
	_, err := e.StandUp(1)
	require.NoError(t, err)
	startRound(t, e)

	ok, err := e.SitDown(1, "Bob")
	require.NoError(t, err)
	assert.True(t, ok)

	bob, _ := e.Seat(1)
	assert.True(t, bob.Finished(), "late arrivals sit out the round")
	assert.Equal(t, MsgPlayerWins, must(e.PlayerStand(0)))
	assert.Empty(t, bob.Outcome())
}

func TestAvailableActions(t *testing.T) {
	e := newTestEngine(t, "8s Tc 8h 7d 2c")
	actions, err := e.AvailableActions(0)
	require.NoError(t, err)
	assert.Empty(t, actions)

	startRound(t, e)
	actions, err = e.AvailableActions(0)
	require.NoError(t, err)
	assert.Equal(t, []evaluator.Action{evaluator.Hit, evaluator.Stand, evaluator.Double, evaluator.Split}, actions)

	play(t, e, hit)
	actions, err = e.AvailableActions(0)
	require.NoError(t, err)
	assert.Equal(t, []evaluator.Action{evaluator.Hit, evaluator.Stand}, actions)

	_, err = e.AvailableActions(5)
	assert.ErrorIs(t, err, ErrSeatOutOfRange)
}

func TestSnapshot(t *testing.T) {
	e := newTestEngine(t, "Ts 9c 6h 8d")
	startRound(t, e)

	snap, err := e.Snapshot(0)
	require.NoError(t, err)
	assert.Equal(t, cards("Ts 6h"), snap.Player)
	assert.Equal(t, cards("8d"), snap.Dealer, "hole card stays hidden")
	assert.Len(t, snap.Shoe, e.ShoeSize()+1)
	assert.Contains(t, snap.Shoe, deck.NewCard(deck.Clubs, deck.Nine))

	play(t, e, stand)
	snap, err = e.Snapshot(0)
	require.NoError(t, err)
	assert.Equal(t, e.Dealer(), snap.Dealer)
	assert.Len(t, snap.Shoe, e.ShoeSize())

	_, err = e.Snapshot(3)
	assert.ErrorIs(t, err, ErrSeatOutOfRange)
}

func TestSnapshotEvaluates(t *testing.T) {
	e := newTestEngine(t, "Ts 9c 6h 8d")
	startRound(t, e)
	snap, err := e.Snapshot(0)
	require.NoError(t, err)

	ev := evaluator.New(evaluator.Config{Trials: 500, Seed: 3, Executor: evaluator.SequentialExecutor{}})
	actions, err := e.AvailableActions(0)
	require.NoError(t, err)

	results, _, err := ev.ActionProbabilities(t.Context(), snap, actions)
	require.NoError(t, err)
	assert.Len(t, results, len(actions))
}

func TestRandomRoundsTerminate(t *testing.T) {
	e := NewEngine(Config{Seats: 3, Decks: 2, Rand: randutil.New(11), Logger: quietLogger()})
	for i := range 3 {
		_, err := e.SitDown(i, "player")
		require.NoError(t, err)
	}

	for range 200 {
		_, err := e.NewRound()
		require.NoError(t, err)
		for e.InRound() {
			for i := range e.NumSeats() {
				seat, _ := e.Seat(i)
				if seat.Finished() {
					continue
				}
				value := hand.BestValue(seat.ActiveCards())
				action := stand
				switch {
				case seat.CanSplit():
					action = split
				case value < 12 && seat.CanDouble():
					action = double
				case value < 16:
					action = hit
				}
				_, err := action(e, i)
				require.NoError(t, err)
			}
		}

		require.Equal(t, Settled, e.State())
		if e.PlayerHasBlackjack() {
			continue
		}
		for _, seat := range e.Seats() {
			assert.NotEmpty(t, seat.Outcome(), "seat %d", seat.Index())
		}
	}
}

func TestSeatNet(t *testing.T) {
	tests := []struct {
		name  string
		draw  string
		steps []step
		net   int
	}{
		{"blackjack", "As 9c Kh 9d", nil, 1},
		{"blackjack push", "As Ac Kh Kd", nil, 0},
		{"bust", "Ts 9c 6h 8d Kc", []step{hit}, -1},
		{"dealer blackjack on split", "8s Ac 8h Kd 3c 2d", []step{split, stand, stand}, -2},
		{"split both win", "8s Tc 8h 7d Ts Js", []step{split, stand, stand}, 2},
		{"first busted, split wins", "8s Tc 8h 7d Ks 3d Kh 9c", []step{split, hit, hit, stand}, 0},
		{"dealer bust, split busted", "8s Tc 8h 6d 3c Ks Kh Kd", []step{split, stand, hit}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.draw)
			_, err := e.NewRound()
			require.NoError(t, err)
			play(t, e, tt.steps...)

			require.Equal(t, Settled, e.State())
			seat, err := e.Seat(0)
			require.NoError(t, err)
			assert.Equal(t, tt.net, seat.Net())
		})
	}
}

func TestAct(t *testing.T) {
	e := newTestEngine(t, "8s Tc 8h 7d Ts Js")
	startRound(t, e)

	msg, err := e.Act(0, evaluator.Split)
	require.NoError(t, err)
	assert.Equal(t, MsgSplit, msg)

	_, err = e.Act(0, evaluator.Action(42))
	assert.ErrorIs(t, err, evaluator.ErrUnknownAction)

	_, err = e.Act(0, evaluator.Stand)
	require.NoError(t, err)
	msg, err = e.Act(0, evaluator.Stand)
	require.NoError(t, err)
	assert.Equal(t, MsgBothWin, msg)
}

func TestNextSeat(t *testing.T) {
	e := newTestEngine(t, "Ts 9s 8c 7d 6h 5c", "Alice", "", "Carol")
	_, err := e.StandUp(1)
	require.NoError(t, err)
	assert.Equal(t, -1, e.NextSeat(), "before the first round")

	startRound(t, e)
	assert.Equal(t, 0, e.NextSeat())
	play(t, e, stand)
	assert.Equal(t, 2, e.NextSeat(), "empty seats are skipped")

	_, err = e.PlayerStand(2)
	require.NoError(t, err)
	assert.Equal(t, -1, e.NextSeat())
}
