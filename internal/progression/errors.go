package progression

import "errors"

var (
	// ErrInvalidInput is returned for negative or non-finite amounts and
	// durations. The state is left untouched.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownUpgrade is returned when an upgrade id is not in the catalog.
	ErrUnknownUpgrade = errors.New("unknown upgrade")

	// ErrInvalidRankTable is returned by NewRankTable for unordered tables.
	ErrInvalidRankTable = errors.New("invalid rank table")

	// ErrInsufficientFunds is used by callers that need an error value for a
	// rejected spend, e.g. the arcade. The engine itself reports it as a result.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
