package validate

import (
	"errors"
	"strings"
)

// Errors accumulates every rule violation found during a single
// validation pass so callers get all of them at once instead of
// just the first.
type Errors []error

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the accumulated errors to errors.Is / errors.As
func (e Errors) Unwrap() []error {
	return e
}

// Has reports whether any accumulated error matches target
func (e Errors) Has(target error) bool {
	for _, err := range e {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ErrOrNil collapses an empty list to nil so callers can return it directly
func (e Errors) ErrOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
