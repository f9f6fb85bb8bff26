package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/evaluator"
	"github.com/lox/blackjack/internal/hand"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	bestStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	faintStyle = lipgloss.NewStyle().Faint(true)
)

// OddsCmd evaluates the actions open to one hand
type OddsCmd struct {
	Player  string   `arg:"" help:"Player cards, e.g. Ts6h"`
	Dealer  string   `arg:"" help:"Visible dealer cards, e.g. 9c"`
	Shoe    string   `help:"Exact remaining shoe; default is a full shoe minus the known cards"`
	Decks   int      `short:"d" help:"Decks in the default shoe (default from config)"`
	Actions []string `short:"a" help:"Actions to evaluate (default: every legal action)"`
	JSON    bool     `help:"Print results as JSON"`

	EvaluatorFlags `embed:""`
}

func (c *OddsCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Decks != 0 {
		cfg.Table.Decks = c.Decks
	}
	if err := c.apply(cfg); err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	snap, err := c.snapshot(cfg.Table.Decks)
	if err != nil {
		return err
	}

	actions := legalActions(snap.Player)
	if len(c.Actions) > 0 {
		if actions, err = evaluator.ParseActions(c.Actions); err != nil {
			return err
		}
	}

	ev, err := newEvaluator(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, elapsed, err := ev.ActionProbabilities(ctx, snap, actions)
	if err != nil {
		return err
	}

	if c.JSON {
		ordered := make([]evaluator.Result, 0, len(actions))
		for _, action := range actions {
			ordered = append(ordered, results[action])
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ordered)
	}

	displayOdds(snap, actions, results, elapsed)
	return nil
}

func (c *OddsCmd) snapshot(decks int) (evaluator.Snapshot, error) {
	player, err := deck.ParseCards(c.Player)
	if err != nil {
		return evaluator.Snapshot{}, fmt.Errorf("invalid player cards: %w", err)
	}
	if len(player) == 0 {
		return evaluator.Snapshot{}, fmt.Errorf("player needs at least one card")
	}
	dealer, err := deck.ParseCards(c.Dealer)
	if err != nil {
		return evaluator.Snapshot{}, fmt.Errorf("invalid dealer cards: %w", err)
	}

	if c.Shoe == "" {
		return evaluator.NewSnapshot(player, dealer, decks)
	}
	shoe, err := deck.ParseCards(c.Shoe)
	if err != nil {
		return evaluator.Snapshot{}, fmt.Errorf("invalid shoe: %w", err)
	}
	return evaluator.Snapshot{Player: player, Dealer: dealer, Shoe: shoe}, nil
}

// legalActions mirrors what a seat holding cards may do
func legalActions(cards []deck.Card) []evaluator.Action {
	actions := []evaluator.Action{evaluator.Hit, evaluator.Stand}
	if len(cards) == 2 {
		actions = append(actions, evaluator.Double)
		if cards[0].Value() == cards[1].Value() {
			actions = append(actions, evaluator.Split)
		}
	}
	return actions
}

func displayOdds(snap evaluator.Snapshot, actions []evaluator.Action, results map[evaluator.Action]evaluator.Result, elapsed time.Duration) {
	fmt.Printf("%s %s %s\n", headerStyle.Render("player"), handStyle.Render(formatCards(snap.Player)),
		faintStyle.Render("("+hand.FormatValues(hand.PossibleValues(snap.Player))+")"))
	fmt.Printf("%s %s\n", headerStyle.Render("dealer"), handStyle.Render(formatCards(snap.Dealer)))
	fmt.Printf("%s %d cards\n\n", headerStyle.Render("shoe"), len(snap.Shoe))

	best := actions[0]
	for _, action := range actions {
		if results[action].Probability > results[best].Probability {
			best = action
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("action"),
		headerStyle.Render("win"),
		headerStyle.Render("wins"),
		headerStyle.Render("time"))
	for _, action := range actions {
		r := results[action]
		name := actionStyle.Render(action.String())
		if action == best {
			name = bestStyle.Render(action.String())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			name,
			winStyle.Render(fmt.Sprintf("%.1f%%", r.Probability*100)),
			fmt.Sprintf("%d/%d", r.Wins, r.Trials),
			r.Elapsed.Truncate(time.Microsecond))
	}
	w.Flush()

	trials := 0
	for _, r := range results {
		trials += r.Trials
	}
	fmt.Printf("\n")
	fmt.Printf("%d trials in %v\n", trials, elapsed.Truncate(time.Millisecond))
}

func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(cards))
	for _, card := range cards {
		parts = append(parts, card.String())
	}
	return strings.Join(parts, " ")
}
