package tui

import (
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/evaluator"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, draw string, withOdds bool) *Model {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	rng := randutil.New(1)
	shoe := deck.NewStackedShoe(1, rng, deck.MustParseCards(draw+strings.Repeat(" 2c", 20))...)
	engine := game.NewEngine(game.Config{Seats: 2, Shoe: shoe, Rand: rng, Logger: logger})
	ok, err := engine.SitDown(0, "Alice")
	require.NoError(t, err)
	require.True(t, ok)

	var ev *evaluator.Evaluator
	if withOdds {
		ev = evaluator.New(evaluator.Config{Trials: 200, Seed: 1, Executor: evaluator.SequentialExecutor{}, Logger: logger})
	}
	return New(engine, ev, logger)
}

func lastLog(m *Model) string {
	entries := m.GameLog()
	if len(entries) == 0 {
		return ""
	}
	return entries[len(entries)-1]
}

func TestExecuteDealAndStand(t *testing.T) {
	m := newTestModel(t, "Ts Tc 9h 7d", false)
	assert.Equal(t, -1, m.CurrentSeat())

	assert.Nil(t, m.Execute(""))
	assert.Equal(t, 0, m.CurrentSeat())
	assert.Contains(t, strings.Join(m.GameLog(), "\n"), "Round ")

	m.Execute("stand")
	assert.Equal(t, -1, m.CurrentSeat())

	log := strings.Join(m.GameLog(), "\n")
	assert.Contains(t, log, "Alice: stand")
	assert.Contains(t, log, "Dealer: 10♣, 7♦ (17)")
	assert.Contains(t, log, "Alice: "+game.MsgPlayerWins)
	assert.Contains(t, lastLog(m), "deal again")
}

func TestExecuteShortcutsAndMessages(t *testing.T) {
	m := newTestModel(t, "8s Tc 8h 7d 3c 2d", false)
	m.Execute("deal")

	m.Execute("p")
	assert.Equal(t, game.MsgSplit, lastLog(m))

	m.Execute("p")
	assert.Equal(t, game.MsgCannotSplitAgain, lastLog(m))

	m.Execute("s")
	assert.Equal(t, game.MsgFirstHandStands, lastLog(m))

	m.Execute("deal")
	assert.Contains(t, lastLog(m), "Round in progress")

	m.Execute("s")
	assert.Contains(t, strings.Join(m.GameLog(), "\n"), game.MsgBothLose)
}

func TestExecuteUnknownCommand(t *testing.T) {
	m := newTestModel(t, "Ts Tc 9h 7d", false)
	m.Execute("surrender")
	assert.Contains(t, lastLog(m), `Unknown command "surrender"`)

	m.Execute("hit")
	assert.Contains(t, lastLog(m), "No round in progress")
}

func TestExecuteBlackjackOnDeal(t *testing.T) {
	m := newTestModel(t, "As 9c Kh 9d", false)
	m.Execute("")
	assert.Contains(t, strings.Join(m.GameLog(), "\n"), "Alice: "+game.MsgBlackjackWin)
	assert.Equal(t, -1, m.CurrentSeat())
}

func TestOdds(t *testing.T) {
	m := newTestModel(t, "Ts 9c 6h 8d", true)
	m.Execute("")

	cmd := m.Execute("odds")
	require.NotNil(t, cmd)
	assert.Nil(t, m.Execute("odds"), "one evaluation at a time")

	m.Update(cmd())
	odds := m.Odds()
	require.Len(t, odds, 3)
	for _, action := range []evaluator.Action{evaluator.Hit, evaluator.Stand, evaluator.Double} {
		result, ok := odds[action]
		require.True(t, ok, action.String())
		assert.Equal(t, 200, result.Trials)
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.View(), "Win probability")

	m.Execute("hit")
	assert.Nil(t, m.Odds(), "acting clears stale odds")
}

func TestOddsDisabled(t *testing.T) {
	m := newTestModel(t, "Ts 9c 6h 8d", false)
	m.Execute("")
	assert.Nil(t, m.Execute("odds"))
	assert.Contains(t, lastLog(m), "disabled")
}

func TestView(t *testing.T) {
	m := newTestModel(t, "Ts 9c 6h 8d", false)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Execute("")

	view := m.View()
	assert.Contains(t, view, "[Hidden] 8♦")
	assert.Contains(t, view, "showing 8")
	assert.Contains(t, view, "1. Alice")
	assert.Contains(t, view, "10♠ 6♥")
	assert.Contains(t, view, "[hit] [stand] [double]")

	m.Execute("stand")
	view = m.View()
	assert.Contains(t, view, "9♣ 8♦ (17)")
	assert.Contains(t, view, game.MsgDealerWins)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, "Ts 9c 6h 8d", false)
	cmd := m.Execute("quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
