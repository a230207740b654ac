package ingest

import "errors"

var (
	// ErrNoMatchingCourses indicates the feed returned an empty result.
	ErrNoMatchingCourses = errors.New("no matching courses found")

	// ErrCourseNotFound indicates the feed had results but none for the
	// requested course code and delivery mode.
	ErrCourseNotFound = errors.New("course not found")

	// ErrParse indicates a feed field could not be converted.
	ErrParse = errors.New("failed to parse feed")

	// ErrUnknownCampus indicates a campus code outside the known table.
	ErrUnknownCampus = errors.New("unknown campus")

	// ErrUnknownDeliveryMode indicates a delivery mode outside the known table.
	ErrUnknownDeliveryMode = errors.New("unknown delivery mode")
)
