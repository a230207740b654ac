package timetable

import "fmt"

// Stream is a group of occurrences selected together, such as a lecture and
// its paired practical. Streams of one component are mutually exclusive.
type Stream struct {
	ID          string       `json:"streamId" yaml:"streamId"`
	Occurrences []Occurrence `json:"occurrences" yaml:"occurrences" validate:"min=1,dive"`
}

// Component is a class activity type within a course, for example "LEC1" or
// "TUT1". Stream order is the order the optimizer tries alternatives in.
type Component struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name" validate:"required"`
	Streams []Stream `json:"streams" yaml:"streams" validate:"min=1,dive"`
}

// Listing is a course offering and its components.
type Listing struct {
	Name         string      `json:"name" yaml:"name" validate:"required"`
	Description  string      `json:"description,omitempty" yaml:"description,omitempty"`
	Campus       string      `json:"campus,omitempty" yaml:"campus,omitempty"`
	DeliveryMode string      `json:"deliveryMode,omitempty" yaml:"deliveryMode,omitempty"`
	Hash         string      `json:"hash,omitempty" yaml:"hash,omitempty"`
	Components   []Component `json:"components" yaml:"components" validate:"min=1,dive"`
}

// Component returns the component with the given name.
func (l Listing) Component(name string) (Component, bool) {
	for _, c := range l.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// Scheduled projects the occurrences of one chosen stream of a component.
func (l Listing) Scheduled(componentName string, streamIndex int) ([]ScheduledOccurrence, error) {
	component, ok := l.Component(componentName)
	if !ok {
		return nil, fmt.Errorf("component %q not found in %s", componentName, l.Name)
	}
	if streamIndex < 0 || streamIndex >= len(component.Streams) {
		return nil, fmt.Errorf("stream %d out of range for %s %s (%d streams)",
			streamIndex, l.Name, componentName, len(component.Streams))
	}

	stream := component.Streams[streamIndex]
	sessions := make([]ScheduledOccurrence, 0, len(stream.Occurrences))
	for i, occ := range stream.Occurrences {
		sessions = append(sessions, ScheduledOccurrence{
			ListingName:     l.Name,
			ComponentName:   componentName,
			StreamIndex:     streamIndex,
			OccurrenceIndex: i,
			Occurrence:      occ,
		})
	}
	return sessions, nil
}

// ScheduledOccurrence is a chosen occurrence annotated with where it came
// from. It is built transiently for layout and never persisted.
type ScheduledOccurrence struct {
	ListingName     string     `json:"listingName"`
	ComponentName   string     `json:"componentName"`
	StreamIndex     int        `json:"streamIndex"`
	OccurrenceIndex int        `json:"occurrenceIndex"`
	Occurrence      Occurrence `json:"occurrence"`
}

// SessionKey identifies a scheduled occurrence.
type SessionKey struct {
	Listing    string
	Component  string
	Stream     int
	Occurrence int
}

// Key returns the identity of s.
func (s ScheduledOccurrence) Key() SessionKey {
	return SessionKey{
		Listing:    s.ListingName,
		Component:  s.ComponentName,
		Stream:     s.StreamIndex,
		Occurrence: s.OccurrenceIndex,
	}
}

func (s ScheduledOccurrence) String() string {
	return fmt.Sprintf("%s %s%02d", s.ListingName, s.ComponentName, s.StreamIndex+1)
}

// SessionsOnDay returns the sessions that meet on day, in input order.
func SessionsOnDay(sessions []ScheduledOccurrence, day Weekday) []ScheduledOccurrence {
	out := []ScheduledOccurrence{}
	for _, s := range sessions {
		if s.Occurrence.Weekday == day {
			out = append(out, s)
		}
	}
	return out
}
