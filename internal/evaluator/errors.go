package evaluator

import "errors"

var (
	// ErrNoTrials is returned when the trial budget is zero or negative
	ErrNoTrials = errors.New("evaluator: trial count must be positive")

	// ErrEmptyShoe is returned when a trial would need to draw from an
	// empty remaining shoe
	ErrEmptyShoe = errors.New("evaluator: remaining shoe is empty but the action requires a draw")

	// ErrUnknownAction is returned for actions outside hit/stand/double/split
	ErrUnknownAction = errors.New("evaluator: unknown action")

	// ErrBudgetExceeded is returned when the trial count is above the
	// configured maximum
	ErrBudgetExceeded = errors.New("evaluator: trial budget exceeded")

	// ErrExecutor wraps any failure of a trial executor or its workers
	ErrExecutor = errors.New("evaluator: executor failed")
)
