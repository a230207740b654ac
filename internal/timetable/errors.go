package timetable

import "errors"

var (
	// ErrWeekPresenceMismatch indicates two week presence vectors of different
	// lengths were compared.
	ErrWeekPresenceMismatch = errors.New("week presence length mismatch")

	// ErrInvalidListing indicates a listing failed validation.
	ErrInvalidListing = errors.New("invalid listing")

	// ErrInvalidWeekday indicates a weekday outside Monday..Friday.
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidWeekPattern indicates a week pattern string with characters
	// other than '0' and '1'.
	ErrInvalidWeekPattern = errors.New("invalid week pattern")
)
