package game

import "errors"

var (
	// ErrSeatOutOfRange is returned for a seat index the table does not have
	ErrSeatOutOfRange = errors.New("seat index out of range")

	// ErrNoPlayers is returned when a round is started at an empty table
	ErrNoPlayers = errors.New("no seats are occupied")

	// ErrRoundInProgress is returned by operations that need a settled table
	ErrRoundInProgress = errors.New("round in progress")
)
