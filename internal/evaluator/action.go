package evaluator

import (
	"fmt"
	"strings"
)

// Action is a candidate player decision to evaluate
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
)

// AllActions lists every action in display order
var AllActions = []Action{Hit, Stand, Double, Split}

// String returns the lower-case action name
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Valid reports whether a is a known action
func (a Action) Valid() bool {
	return a >= Hit && a <= Split
}

// drawsCard reports whether the action takes a card before the policy runs
func (a Action) drawsCard() bool {
	return a == Hit || a == Double || a == Split
}

// MarshalText encodes the action name
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAction converts a name such as "hit" or "Double" to an Action
func ParseAction(name string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hit", "h":
		return Hit, nil
	case "stand", "s":
		return Stand, nil
	case "double", "d":
		return Double, nil
	case "split", "p":
		return Split, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}

// ParseActions converts a list of names, rejecting duplicates
func ParseActions(names []string) ([]Action, error) {
	actions := make([]Action, 0, len(names))
	seen := make(map[Action]bool, len(names))
	for _, name := range names {
		action, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		if seen[action] {
			return nil, fmt.Errorf("duplicate action %s", action)
		}
		seen[action] = true
		actions = append(actions, action)
	}
	return actions, nil
}
