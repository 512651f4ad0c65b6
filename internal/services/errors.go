package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError reports the billing fields that failed validation. It is
// produced fresh on every submission attempt, so correcting the input and
// resubmitting recovers.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("billing validation failed: %s", strings.Join(e.Fields, ", "))
}
