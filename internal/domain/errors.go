package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks operations that referenced an id absent from a
	// collection.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks malformed input rejected before any mutation was
	// applied.
	ErrValidation = errors.New("validation failed")
)

// NotFoundError identifies the entity and id an operation failed to resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidTransitionError reports a rejected order status transition.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order status transition %s -> %s: %v", e.From, e.To, ErrValidation)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrValidation }
