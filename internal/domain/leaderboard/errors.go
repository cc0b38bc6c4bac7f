package leaderboard

import (
	"errors"
	"fmt"
)

var (
	ErrMissingWinner     = errors.New("missing winner")
	ErrDuplicateWinner   = errors.New("duplicate winner")
	ErrWinnerNotInRoster = errors.New("winner not in weekly roster")
	ErrUnknownWinner     = errors.New("winner is not a registered participant")
)

// Error carries a user-facing message for a rejected submission. errors.Is matches
// its Kind sentinel.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err rejects the submission's shape rather than its lookup.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingWinner) ||
		errors.Is(err, ErrDuplicateWinner) ||
		errors.Is(err, ErrWinnerNotInRoster)
}
