// Package export renders a plan's selected classes as an iCalendar
// (RFC 5545) document.
//
// Each occurrence of a selected stream becomes one VEVENT per week it meets
// in. Times are floating local times: the plan does not record a zone.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/WillCS/uqplanner/internal/state"
	"github.com/WillCS/uqplanner/internal/timetable"
)

const (
	productID = "-//uqplanner//timetable export//EN"

	// localLayout is a floating DATE-TIME, without zone or Z suffix.
	localLayout = "20060102T150405"
)

// Event is one dated class meeting.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// Events expands the plan's selections into dated events, in listing,
// component, occurrence and then week order. Occurrences without an origin
// date or week presence cannot be dated and are skipped.
func Events(p state.Plan) ([]Event, error) {
	sessions, err := p.ScheduledSessions()
	if err != nil {
		return nil, err
	}

	events := []Event{}
	for _, s := range sessions {
		occ := s.Occurrence
		if occ.OriginDate.IsZero() || occ.WeekPresence == nil {
			continue
		}
		for _, week := range occ.WeekPresence.Weeks() {
			day := occ.DateInWeek(week)
			midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
			events = append(events, Event{
				UID: fmt.Sprintf("%s-%s-%s-%d-%d-w%d@uqplanner",
					p.ID, s.ListingName, s.ComponentName, s.StreamIndex, s.OccurrenceIndex, week),
				Summary:     s.String(),
				Description: s.ComponentName,
				Location:    occ.Location,
				Start:       midnight.Add(time.Duration(timetable.ToMinutes(occ.Start)) * time.Minute),
				End:         midnight.Add(time.Duration(timetable.ToMinutes(occ.End)) * time.Minute),
			})
		}
	}
	return events, nil
}

// Calendar renders the plan as an iCalendar document stamped with now.
func Calendar(p state.Plan, now time.Time) ([]byte, error) {
	events, err := Events(p)
	if err != nil {
		return nil, fmt.Errorf("failed to export plan %s: %w", p.ID, err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, p.Name, events, now); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName returns the download name for the plan's calendar.
func FileName(p state.Plan) string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "timetable"
	}
	return name + ".ics"
}

// Write encodes events as a VCALENDAR named name.
func Write(w io.Writer, name string, events []Event, now time.Time) error {
	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetCalscale("GREGORIAN")
	if name != "" {
		cal.SetXWRCalName(name)
	}

	for _, e := range events {
		event := cal.AddEvent(e.UID)
		event.SetDtStampTime(now)
		event.SetProperty(ics.ComponentPropertyDtStart, e.Start.Format(localLayout))
		event.SetProperty(ics.ComponentPropertyDtEnd, e.End.Format(localLayout))
		event.SetSummary(e.Summary)
		if e.Description != "" {
			event.SetDescription(e.Description)
		}
		if e.Location != "" {
			event.SetLocation(e.Location)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}
