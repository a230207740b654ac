package conflict

import (
	"fmt"
	"strings"

	"github.com/WillCS/uqplanner/internal/timetable"
)

// AllowFunc decides whether two component types may overlap in time. It
// receives the component names of both sides.
type AllowFunc func(componentA, componentB string) bool

// NeverAllow forbids every overlap.
func NeverAllow(string, string) bool { return false }

// AllowLectureOverlap permits an overlap whenever either side is a lecture,
// recognised by a component name containing "lec" in any case.
func AllowLectureOverlap(componentA, componentB string) bool {
	return strings.Contains(strings.ToLower(componentA), "lec") ||
		strings.Contains(strings.ToLower(componentB), "lec")
}

// Entry is an occurrence tagged with the listing and component it belongs to.
type Entry struct {
	ListingName   string
	ComponentName string
	Occurrence    timetable.Occurrence
}

// Conflict describes why a candidate entry was rejected.
type Conflict struct {
	// ListingName and ComponentName identify the rejected candidate
	ListingName   string
	ComponentName string

	// OtherListing and OtherComponent identify the entry it collided with
	OtherListing   string
	OtherComponent string

	// Weekday is the day both entries meet on
	Weekday timetable.Weekday

	// Reason is a human-readable explanation of the conflict
	Reason string
}

// Checker checks candidate entries against already chosen ones.
type Checker struct {
	allow AllowFunc
}

// NewChecker creates a Checker. A nil allow forbids every overlap.
func NewChecker(allow AllowFunc) *Checker {
	if allow == nil {
		allow = NeverAllow
	}
	return &Checker{allow: allow}
}

// Check returns the first chosen entry that candidate overlaps in time
// without an exception, or nil if the candidate is admissible.
func (c *Checker) Check(candidate Entry, chosen []Entry) *Conflict {
	for _, other := range chosen {
		if !OverlapsInTime(candidate.Occurrence, other.Occurrence) {
			continue
		}
		if c.allow(candidate.ComponentName, other.ComponentName) {
			continue
		}
		return &Conflict{
			ListingName:    candidate.ListingName,
			ComponentName:  candidate.ComponentName,
			OtherListing:   other.ListingName,
			OtherComponent: other.ComponentName,
			Weekday:        candidate.Occurrence.Weekday,
			Reason: fmt.Sprintf("%s %s overlaps %s %s on %s",
				candidate.ListingName, candidate.ComponentName,
				other.ListingName, other.ComponentName,
				candidate.Occurrence.Weekday),
		}
	}
	return nil
}

// Clash is a pair of scheduled occurrences that collide in a shared week.
type Clash struct {
	A timetable.ScheduledOccurrence `json:"a"`
	B timetable.ScheduledOccurrence `json:"b"`
}

// FindClashes returns every pair of sessions that clash, in input order.
func FindClashes(sessions []timetable.ScheduledOccurrence) ([]Clash, error) {
	clashes := []Clash{}
	for i := 0; i < len(sessions); i++ {
		for j := i + 1; j < len(sessions); j++ {
			clash, err := Clashes(sessions[i].Occurrence, sessions[j].Occurrence)
			if err != nil {
				return nil, fmt.Errorf("failed to compare %s with %s: %w", sessions[i], sessions[j], err)
			}
			if clash {
				clashes = append(clashes, Clash{A: sessions[i], B: sessions[j]})
			}
		}
	}
	return clashes, nil
}
