package services

import "errors"

var (
	ErrForbidden        = errors.New("not authorized")
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
	ErrInvalidLogin     = errors.New("invalid credentials")
)

// ValidationError is malformed input; its message is safe to show the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
