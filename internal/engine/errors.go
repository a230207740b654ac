package engine

import "errors"

var (
	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrNoCurrentPlan indicates no plan was named and none is current.
	ErrNoCurrentPlan = errors.New("no current plan set")
)
