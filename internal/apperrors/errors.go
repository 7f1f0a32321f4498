package apperrors

import "errors"

// Common application errors. Wrap with fmt.Errorf("%w: ...", ...) for
// context; handlers translate them to HTTP status codes with errors.Is.
var (
	// ErrInvalidInput covers missing or malformed required fields. Rejected
	// before any store mutation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means a referenced entity does not exist for a
	// mutate-by-id operation.
	ErrNotFound = errors.New("not found")
)
