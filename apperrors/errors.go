package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core workflow operations. An entity that exists
// but sits outside the caller's scope is reported as not found so that
// unauthorized actors cannot probe for existence.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidTransition = errors.New("stage transition not permitted")
	ErrForbidden         = errors.New("insufficient permissions")
)

// ValidationError flags malformed or missing required input. It is never
// retried and maps to a 400 at the edge.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
