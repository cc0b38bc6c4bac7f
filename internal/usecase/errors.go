package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource already exists")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrPersistence           = errors.New("persistence failure")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Error is a usecase failure with a message safe to show to the admin. errors.Is
// matches both Kind and Cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func failure(kind error, message string, cause error) error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// storeFailure classifies a repository error. An open breaker surfaces as
// ErrDependencyUnavailable, anything else as ErrPersistence.
func storeFailure(message string, cause error) error {
	if errors.Is(cause, ErrDependencyUnavailable) {
		return failure(ErrDependencyUnavailable, message, cause)
	}
	return failure(ErrPersistence, message, cause)
}
