package planner

import "errors"

var (
	// ErrInvalidInput indicates listings or options the search cannot run on.
	ErrInvalidInput = errors.New("invalid optimizer input")
)
