package planner

import (
	"github.com/WillCS/uqplanner/internal/conflict"
	"github.com/WillCS/uqplanner/internal/timetable"
)

// MaxWeekdays is the largest day budget the search accepts.
const MaxWeekdays = 5

// Options configures a search.
type Options struct {
	// MinDays and MaxDays bound the number of distinct weekdays, inclusive
	MinDays int
	MaxDays int

	// AllowOverlap grants exceptions to the no-overlap rule (nil: none)
	AllowOverlap conflict.AllowFunc

	// MaxNodes caps the number of search nodes visited (0: unlimited)
	MaxNodes int
}

// Choice is the stream picked for one component, represented by the first
// occurrence of that stream.
type Choice struct {
	ListingName   string               `json:"listingName"`
	ComponentName string               `json:"componentName"`
	StreamIndex   int                  `json:"streamIndex"`
	StreamID      string               `json:"streamId"`
	Occurrence    timetable.Occurrence `json:"occurrence"`
}

func (c Choice) entry() conflict.Entry {
	return conflict.Entry{
		ListingName:   c.ListingName,
		ComponentName: c.ComponentName,
		Occurrence:    c.Occurrence,
	}
}

// Scheduled projects the choice for layout.
func (c Choice) Scheduled() timetable.ScheduledOccurrence {
	return timetable.ScheduledOccurrence{
		ListingName:   c.ListingName,
		ComponentName: c.ComponentName,
		StreamIndex:   c.StreamIndex,
		Occurrence:    c.Occurrence,
	}
}

// Schedule is the outcome of a search.
type Schedule struct {
	// Found is false when no assignment fits any day count in range
	Found bool `json:"found"`

	// DayCount is the size of the weekday subset the fit was found in
	DayCount int `json:"dayCount"`

	// Days is that weekday subset
	Days []timetable.Weekday `json:"days"`

	// Choices holds one entry per component, in listing then component order
	Choices []Choice `json:"choices"`

	// NodesVisited counts search nodes, for budgeting and diagnostics
	NodesVisited int `json:"nodesVisited"`

	// Truncated is set when the node budget or context stopped the search
	Truncated bool `json:"truncated"`
}

// emptySchedule is the "no result" outcome.
func emptySchedule(nodes int, truncated bool) *Schedule {
	return &Schedule{
		Days:         []timetable.Weekday{},
		Choices:      []Choice{},
		NodesVisited: nodes,
		Truncated:    truncated,
	}
}

// Selections maps listing name to component name to chosen stream index.
func (s *Schedule) Selections() map[string]map[string]int {
	out := make(map[string]map[string]int)
	for _, c := range s.Choices {
		if out[c.ListingName] == nil {
			out[c.ListingName] = make(map[string]int)
		}
		out[c.ListingName][c.ComponentName] = c.StreamIndex
	}
	return out
}
