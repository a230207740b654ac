package state

import "errors"

var (
	// ErrUnknownListing indicates a listing name not present in the plan.
	ErrUnknownListing = errors.New("listing not in plan")

	// ErrUnknownComponent indicates a component name not present in a listing.
	ErrUnknownComponent = errors.New("component not in listing")

	// ErrStreamOutOfRange indicates a stream index outside a component's streams.
	ErrStreamOutOfRange = errors.New("stream index out of range")

	// ErrInvalidSchema indicates a stored plan that is missing required
	// fields or is stored under a name that is not a version 4 UUID.
	ErrInvalidSchema = errors.New("invalid plan schema")

	// ErrInvalidPlan indicates a plan that failed validation.
	ErrInvalidPlan = errors.New("invalid plan")
)
