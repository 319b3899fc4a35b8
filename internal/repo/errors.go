package repo

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when an operation targets an id absent from the catalog.
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a decrement exceeds the current quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrParse is returned for malformed import payloads.
	ErrParse = errors.New("malformed data")
)

// ValidationError reports a rejected field. Err optionally carries a more specific cause.
type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
	Err         error  `json:"-"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, description string) error {
	return &ValidationError{Field: field, Description: description}
}
