package engine

import "github.com/WillCS/uqplanner/internal/timetable"

// OptimizeRequest represents a request to search for a timetable.
// Listings come from Listings, else ListingsFile, else the plan.
type OptimizeRequest struct {
	// PlanID names the plan to optimize (empty: current plan)
	PlanID string

	// ListingsFile is a JSON or YAML file of listings to optimize instead
	ListingsFile string

	// Listings are inline listings to optimize instead
	Listings []timetable.Listing

	// MinDays and MaxDays bound the days used (0 and 0: 1..5)
	MinDays int
	MaxDays int

	// AllowLectureOverlap lets lectures overlap each other
	AllowLectureOverlap bool

	// MaxNodes overrides the configured node budget when positive
	MaxNodes int

	// Apply writes the found selections back to the plan
	Apply bool
}

// LayoutRequest represents a request to place sessions in day columns.
type LayoutRequest struct {
	// PlanID names the plan whose selections are laid out (empty: current)
	PlanID string

	// Sessions are laid out instead of a plan's when non-nil
	Sessions []timetable.ScheduledOccurrence
}

// ClashesRequest represents a request to list clashing sessions.
type ClashesRequest struct {
	// PlanID names the plan to check (empty: current plan)
	PlanID string

	// Sessions are checked instead of a plan's when non-nil
	Sessions []timetable.ScheduledOccurrence
}

// NewPlanRequest represents a request to create a plan.
type NewPlanRequest struct {
	// Name is the plan name (empty: the semester's default name)
	Name string

	// Year and Semester default to the configured term when zero
	Year     int
	Semester int

	// KeepCurrent leaves the session's current plan unchanged
	KeepCurrent bool
}

// RenamePlanRequest represents a request to rename a plan.
type RenamePlanRequest struct {
	PlanID string
	Name   string // empty restores the default name
}

// SetSemesterRequest moves a plan to another term.
type SetSemesterRequest struct {
	PlanID   string
	Year     int
	Semester int
}

// AddListingRequest represents a request to fetch a course into a plan.
type AddListingRequest struct {
	PlanID     string
	CourseCode string

	// Campus and Mode default to the configured values when empty
	Campus string
	Mode   string
}

// RemoveListingRequest represents a request to drop a course from a plan.
type RemoveListingRequest struct {
	PlanID  string
	Listing string
}

// SelectRequest represents a request to choose a stream.
type SelectRequest struct {
	PlanID    string
	Listing   string
	Component string

	// Stream is the zero-based stream index
	Stream int
}

// RefreshPlanRequest represents a request to re-fetch a plan's listings.
type RefreshPlanRequest struct {
	PlanID string

	// DryRun reports changes without replacing listings
	DryRun bool
}

// ExportPlanRequest represents a request to render a plan as a calendar.
type ExportPlanRequest struct {
	PlanID string
}

// FetchListingRequest represents a request to fetch one course.
type FetchListingRequest struct {
	CourseCode string

	// Unset fields default to the configured values
	Campus   string
	Mode     string
	Year     int
	Semester int
}
