package game

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

// padding keeps scripted shoes above the reshuffle threshold
var padding = strings.Repeat("2c ", 20)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newTestEngine creates an engine whose shoe deals draw in order, with one
// seat per player name
func newTestEngine(t *testing.T, draw string, players ...string) *Engine {
	t.Helper()
	if len(players) == 0 {
		players = []string{"Alice"}
	}

	rng := randutil.New(42)
	shoe := deck.NewStackedShoe(1, rng, deck.MustParseCards(draw+" "+padding)...)
	e := NewEngine(Config{Seats: len(players), Shoe: shoe, Rand: rng, Logger: quietLogger()})

	for i, name := range players {
		ok, err := e.SitDown(i, name)
		require.NoError(t, err)
		require.True(t, ok)
	}
	return e
}

// startRound deals and requires the round to stay open
func startRound(t *testing.T, e *Engine) {
	t.Helper()
	msg, err := e.NewRound()
	require.NoError(t, err)
	require.Empty(t, msg)
	require.Equal(t, InRound, e.State())
}

func cards(s string) []deck.Card {
	return deck.MustParseCards(s)
}

type step func(*Engine, int) (string, error)

var (
	hit    step = (*Engine).PlayerHit
	stand  step = (*Engine).PlayerStand
	double step = (*Engine).PlayerDouble
	split  step = (*Engine).PlayerSplit
)

// play applies steps to seat 0 and returns the last message
func play(t *testing.T, e *Engine, steps ...step) string {
	t.Helper()
	var msg string
	for _, s := range steps {
		var err error
		msg, err = s(e, 0)
		require.NoError(t, err)
	}
	return msg
}
