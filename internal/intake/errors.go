package intake

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited means the client exhausted its submission window.
	ErrRateLimited = errors.New("intake: rate limit exceeded")
	// ErrMalformedRequest means the body was not a single JSON object.
	ErrMalformedRequest = errors.New("intake: malformed request body")
	// ErrInternal covers every unexpected fault, including store errors and panics.
	ErrInternal = errors.New("intake: internal error")
)

// ValidationError carries the ordered field errors of a rejected payload.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "intake: validation failed"
	}
	return fmt.Sprintf("intake: validation failed: %s: %s (%d errors)", e.Errors[0].Field, e.Errors[0].Message, len(e.Errors))
}
