// Package tui is the interactive terminal table for the blackjack engine.
// It only calls engine operations and renders engine state; all card
// values come from the hand package.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/evaluator"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/hand"
)

const sidebarMinWidth = 34

// Model is the Bubble Tea model for a blackjack table
type Model struct {
	engine    *game.Engine
	evaluator *evaluator.Evaluator
	logger    *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	gameLog     []string
	focusedPane int // 0 = log, 1 = input
	quitting    bool

	// Odds for the seat that asked, cleared by any table change
	odds        map[evaluator.Action]evaluator.Result
	oddsSeat    int
	oddsElapsed time.Duration
	oddsPending bool

	width  int
	height int
}

// oddsMsg carries a finished evaluation back to Update
type oddsMsg struct {
	seat    int
	results map[evaluator.Action]evaluator.Result
	elapsed time.Duration
	err     error
}

// New creates a model for engine. A nil evaluator disables odds.
func New(engine *game.Engine, ev *evaluator.Evaluator, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter to deal, 'quit' to exit"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(focusedBorder).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		engine:      engine,
		evaluator:   ev,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		focusedPane: 1,
		oddsSeat:    -1,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case oddsMsg:
		m.oddsPending = false
		if msg.err != nil {
			m.AddLogEntry(ErrorStyle.Render("Odds failed: " + msg.err.Error()))
			break
		}
		if msg.seat != m.CurrentSeat() {
			break
		}
		m.odds = msg.results
		m.oddsSeat = msg.seat
		m.oddsElapsed = msg.elapsed

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				cmds = append(cmds, m.Execute(m.actionInput.Value()))
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Execute runs one typed command: an action (hit/h, stand/s, double/d,
// split/p), "deal" or an empty line between rounds, "odds" or "quit"
func (m *Model) Execute(input string) tea.Cmd {
	command := strings.ToLower(strings.TrimSpace(input))

	switch command {
	case "q", "quit", "exit":
		m.quitting = true
		return tea.Quit
	case "o", "odds":
		return m.oddsCmd()
	case "", "n", "deal":
		if m.engine.InRound() {
			if command != "" {
				m.AddLogEntry(InfoStyle.Render("Round in progress."))
			}
			return nil
		}
		m.deal()
		return nil
	}

	action, err := evaluator.ParseAction(command)
	if err != nil {
		m.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("Unknown command %q", input)))
		return nil
	}
	m.act(action)
	return nil
}

func (m *Model) deal() {
	m.clearOdds()

	msg, err := m.engine.NewRound()
	if err != nil {
		m.AddLogEntry(ErrorStyle.Render(err.Error()))
		return
	}
	m.logger.Debug("dealt", "round", m.engine.RoundID())
	m.AddLogEntry(HeaderStyle.Render(" Round " + m.engine.RoundID() + " "))

	if msg != "" {
		m.logSettlement()
	}
}

func (m *Model) act(action evaluator.Action) {
	index := m.CurrentSeat()
	if index < 0 {
		m.AddLogEntry(InfoStyle.Render("No round in progress. Press enter to deal."))
		return
	}
	m.clearOdds()

	msg, err := m.engine.Act(index, action)
	if err != nil {
		m.AddLogEntry(ErrorStyle.Render(err.Error()))
		return
	}

	seat, _ := m.engine.Seat(index)
	m.AddLogEntry(fmt.Sprintf("%s: %s", seat.Name(), action))

	if m.engine.State() == game.Settled {
		m.logSettlement()
		return
	}
	if msg != "" {
		m.AddLogEntry(OutcomeStyle.Render(msg))
	}
}

func (m *Model) logSettlement() {
	dealer := m.engine.Dealer()
	m.AddLogEntry(DealerStyle.Render(fmt.Sprintf("Dealer: %s (%d)", hand.Render(dealer, false), hand.BestValue(dealer))))
	for _, seat := range m.engine.Seats() {
		if seat.Occupied() && seat.Outcome() != "" {
			m.AddLogEntry(OutcomeStyle.Render(fmt.Sprintf("%s: %s", seat.Name(), seat.Outcome())))
		}
	}
	m.AddLogEntry(InfoStyle.Render("Press enter to deal again."))
}

func (m *Model) oddsCmd() tea.Cmd {
	if m.evaluator == nil {
		m.AddLogEntry(InfoStyle.Render("Odds are disabled."))
		return nil
	}
	index := m.CurrentSeat()
	if index < 0 {
		m.AddLogEntry(InfoStyle.Render("Odds are available during a round."))
		return nil
	}
	if m.oddsPending {
		return nil
	}

	snap, err := m.engine.Snapshot(index)
	if err != nil {
		m.AddLogEntry(ErrorStyle.Render(err.Error()))
		return nil
	}
	actions, err := m.engine.AvailableActions(index)
	if err != nil {
		m.AddLogEntry(ErrorStyle.Render(err.Error()))
		return nil
	}

	m.oddsPending = true
	ev := m.evaluator
	return func() tea.Msg {
		results, elapsed, err := ev.ActionProbabilities(context.Background(), snap, actions)
		return oddsMsg{seat: index, results: results, elapsed: elapsed, err: err}
	}
}

func (m *Model) clearOdds() {
	m.odds = nil
	m.oddsSeat = -1
	m.oddsElapsed = 0
}

// CurrentSeat returns the first seat still to act, -1 if none
func (m *Model) CurrentSeat() int {
	return m.engine.NextSeat()
}

// Odds returns the last evaluation for the current seat, nil if none
func (m *Model) Odds() map[evaluator.Action]evaluator.Result {
	return m.odds
}

// GameLog returns a copy of the log lines
func (m *Model) GameLog() []string {
	return append([]string(nil), m.gameLog...)
}

// AddLogEntry appends a line to the log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.border(1)).
		Width(max(1, m.width-2)).
		Render(actionContent)

	tableContent := m.renderTablePane()
	sidebarWidth := max(sidebarMinWidth, lipgloss.Width(tableContent))
	paneHeight := max(1, m.height-actionHeight-4)

	tablePane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(unfocusedBorder).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(tableContent)

	m.logViewport.Width = max(1, m.width-sidebarWidth-4)
	m.logViewport.Height = paneHeight
	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.border(0)).
		Width(m.logViewport.Width).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, tablePane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) border(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return focusedBorder
	}
	return unfocusedBorder
}

// renderTablePane shows the dealer, each occupied seat and any odds
func (m *Model) renderTablePane() string {
	var content strings.Builder

	content.WriteString(InfoStyle.Render(fmt.Sprintf("Shoe: %d cards  %s", m.engine.ShoeSize(), m.engine.State())))
	content.WriteString("\n\n")

	dealer := m.engine.Dealer()
	if m.engine.InRound() && len(dealer) > 0 {
		showing := hand.FormatValues(hand.PossibleValues(dealer[1:]))
		content.WriteString(DealerStyle.Render("Dealer: ") + formatCards(dealer, true) + InfoStyle.Render(" showing "+showing))
	} else if len(dealer) > 0 {
		content.WriteString(DealerStyle.Render("Dealer: ") + formatCards(dealer, false) + InfoStyle.Render(fmt.Sprintf(" (%d)", hand.BestValue(dealer))))
	} else {
		content.WriteString(DealerStyle.Render("Dealer"))
	}
	content.WriteString("\n\n")

	current := m.CurrentSeat()
	for _, seat := range m.engine.Seats() {
		if !seat.Occupied() {
			continue
		}
		style, marker := SeatStyle, "  "
		if seat.Index() == current {
			style, marker = ActiveSeatStyle, "> "
		}
		content.WriteString(style.Render(fmt.Sprintf("%s%d. %s", marker, seat.Index()+1, seat.Name())))
		if seat.Doubled() {
			content.WriteString(InfoStyle.Render(" (doubled)"))
		}
		content.WriteString("\n")

		for i, cards := range seat.Hands() {
			prefix := "   "
			if seat.HasSplit() && i == seat.ActiveHand() && !seat.Finished() {
				prefix = " * "
			}
			content.WriteString(prefix + formatCards(cards, false))
			content.WriteString(InfoStyle.Render(" " + hand.FormatValues(hand.PossibleValues(cards))))
			content.WriteString("\n")
		}
		if seat.Outcome() != "" {
			content.WriteString("   " + OutcomeStyle.Render(seat.Outcome()) + "\n")
		}
	}

	if m.odds != nil && m.oddsSeat == current {
		content.WriteString("\n" + ActionsStyle.Render("Win probability") + "\n")
		for _, action := range evaluator.AllActions {
			result, ok := m.odds[action]
			if !ok {
				continue
			}
			content.WriteString(fmt.Sprintf("  %-6s %5.1f%%\n", action, result.Probability*100))
		}
		content.WriteString(InfoStyle.Render(fmt.Sprintf("  %s", m.oddsElapsed.Round(time.Millisecond))))
	} else if m.oddsPending {
		content.WriteString("\n" + InfoStyle.Render("Simulating..."))
	}

	return content.String()
}

func (m *Model) renderActionPane() string {
	var content strings.Builder

	index := m.CurrentSeat()
	if index >= 0 {
		actions, _ := m.engine.AvailableActions(index)
		labels := make([]string, 0, len(actions)+1)
		for _, action := range actions {
			labels = append(labels, "["+action.String()+"]")
		}
		if m.evaluator != nil {
			labels = append(labels, "[odds]")
		}
		content.WriteString(ActionsStyle.Render("Actions: " + strings.Join(labels, " ")))
		m.actionInput.Placeholder = "hit, stand, double, split or odds"
	} else {
		content.WriteString(ActionsStyle.Render("Waiting for the next deal"))
		m.actionInput.Placeholder = "Enter to deal, 'quit' to exit"
	}
	content.WriteString("\n")
	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return content.String()
}

// formatCards renders cards with suit colours, optionally hiding the first
func formatCards(cards []deck.Card, hideFirst bool) string {
	if len(cards) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(cards))
	for i, card := range cards {
		switch {
		case hideFirst && i == 0:
			formatted = append(formatted, InfoStyle.Render(hand.HiddenCard))
		case card.IsRed():
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		default:
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	return strings.Join(formatted, " ")
}
