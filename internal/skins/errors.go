package skins

import "errors"

// Error kinds. Every error returned by the calculator that is not a data-layer
// failure unwraps to exactly one of these.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("authorization error")
)

// Error is a classified calculator error. Its message is safe to show to users.
type Error struct {
	kind error
	msg  string
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Unwrap returns the error kind.
func (e *Error) Unwrap() error { return e.kind }

var (
	ErrRoundIDRequired = newError(ErrValidation, "Round ID is required")
	ErrRoundIDInvalid  = newError(ErrValidation, "Round ID must be a valid UUID")
	ErrUserIDInvalid   = newError(ErrValidation, "User ID must be a valid number")
	ErrSkinsDisabled   = newError(ErrValidation, "Skins are not enabled for this round")
	ErrRoundNotFound   = newError(ErrNotFound, "Round not found")
	ErrNotParticipant  = newError(ErrForbidden, "You must be a participant in this round to view skins")
)
