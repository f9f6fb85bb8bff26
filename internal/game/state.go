package game

// State is the round lifecycle
type State int

const (
	NotStarted State = iota
	InRound
	Settled
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case NotStarted:
		return "Not Started"
	case InRound:
		return "In Round"
	case Settled:
		return "Settled"
	default:
		return "Unknown"
	}
}
