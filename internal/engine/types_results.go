package engine

import (
	"time"

	"github.com/WillCS/uqplanner/internal/conflict"
	"github.com/WillCS/uqplanner/internal/layout"
	"github.com/WillCS/uqplanner/internal/planner"
	"github.com/WillCS/uqplanner/internal/state"
	"github.com/WillCS/uqplanner/internal/timetable"
)

// OptimizeResult represents the outcome of a search.
type OptimizeResult struct {
	// Schedule is the search outcome
	Schedule *planner.Schedule `json:"schedule"`

	// PlanID is the plan the listings came from (empty for raw listings)
	PlanID string `json:"planId,omitempty"`

	// Applied is set when the selections were written to the plan
	Applied bool `json:"applied"`
}

// DayLayout holds the placements for one weekday.
type DayLayout struct {
	Day      timetable.Weekday `json:"day"`
	Sessions []layout.Placed   `json:"sessions"`
}

// LayoutResult represents the per-day placement of sessions.
type LayoutResult struct {
	PlanID string      `json:"planId,omitempty"`
	Days   []DayLayout `json:"days"`
}

// ClashesResult lists the clashing session pairs.
type ClashesResult struct {
	PlanID  string           `json:"planId,omitempty"`
	Clashes []conflict.Clash `json:"clashes"`
}

// PlanSummary is the listing view of a plan.
type PlanSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Year       int       `json:"year"`
	Semester   int       `json:"semester"`
	Listings   []string  `json:"listings"`
	LastEdited time.Time `json:"lastEdited"`
	Current    bool      `json:"current"`
}

// ListPlansResult lists every stored plan.
type ListPlansResult struct {
	Plans       []PlanSummary `json:"plans"`
	CurrentPlan string        `json:"currentPlan"`
}

// PlanResult carries one plan.
type PlanResult struct {
	Plan    state.Plan `json:"plan"`
	Current bool       `json:"current"`
}

// DeletePlanResult represents the result of deleting a plan.
type DeletePlanResult struct {
	PlanID     string `json:"planId"`
	WasCurrent bool   `json:"wasCurrent"`
}

// ListingResult represents the result of adding a listing.
type ListingResult struct {
	PlanID  string            `json:"planId"`
	Listing timetable.Listing `json:"listing"`

	// Added is false when the plan already had the listing
	Added bool `json:"added"`
}

// RefreshResult reports which listings changed in the feed.
type RefreshResult struct {
	PlanID    string   `json:"planId"`
	Changed   []string `json:"changed"`
	Unchanged []string `json:"unchanged"`

	// Failed maps listing name to the fetch error
	Failed map[string]string `json:"failed"`

	DryRun bool `json:"dryRun"`
}

// ExportResult carries a rendered calendar.
type ExportResult struct {
	PlanID   string `json:"planId"`
	FileName string `json:"fileName"`
	Events   int    `json:"events"`
	Data     []byte `json:"-"`
}
