package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/WillCS/uqplanner/internal/timetable"
)

const (
	// startDateLayout is the feed's dd/mm/yyyy date format.
	startDateLayout = "02/01/2006"

	// Semester 2 patterns are sometimes shifted; the usable span is
	// re-centred into a vector of the semester's real length.
	sem2PatternMinLen = 45
	sem2SliceStart    = 29
	sem2SliceEnd      = 46
	sem2PadStart      = 46
	sem2PadEnd        = 65
)

// Reformat extracts one course from a raw feed response and reshapes it
// into a Listing.
//
// The feed is an object keyed by offering, for example
// "CSSE1001_S2_STLUC_IN". The offering chosen is the first whose key
// contains "_<mode>" and whose prefix before '_' matches courseCode.
// Activities are grouped into components by activity_group_code and into
// streams by the part of their key before the first '-', both in the
// order they first appear.
func Reformat(courseCode string, feed []byte, mode string) (timetable.Listing, error) {
	offerings, err := decodeObject(feed)
	if err != nil {
		return timetable.Listing{}, err
	}
	if len(offerings) == 0 {
		return timetable.Listing{}, ErrNoMatchingCourses
	}

	code := strings.ToUpper(strings.TrimSpace(courseCode))
	var offering *member
	for i := range offerings {
		key := offerings[i].Key
		if !strings.Contains(key, "_"+mode) {
			continue
		}
		prefix, _, _ := strings.Cut(key, "_")
		if strings.ToUpper(prefix) == code {
			offering = &offerings[i]
			break
		}
	}
	if offering == nil {
		return timetable.Listing{}, fmt.Errorf("%w: %s (%s)", ErrCourseNotFound, code, mode)
	}

	var subject Subject
	if err := json.Unmarshal(offering.Value, &subject); err != nil {
		return timetable.Listing{}, fmt.Errorf("%w: subject %s: %v", ErrParse, offering.Key, err)
	}

	components, err := reformatActivities(subject.Activities)
	if err != nil {
		return timetable.Listing{}, fmt.Errorf("failed to reformat %s: %w", offering.Key, err)
	}

	name, _, _ := strings.Cut(offering.Key, "_")
	listing := timetable.Listing{
		Name:         name,
		Description:  subject.Description,
		DeliveryMode: mode,
		Components:   components,
	}
	if campus, err := CampusByCode(subject.Campus); err == nil {
		listing.Campus = campus.Code
	}

	if err := timetable.Validate(listing); err != nil {
		return timetable.Listing{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return listing, nil
}

func reformatActivities(raw json.RawMessage) ([]timetable.Component, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: missing activities", ErrParse)
	}
	activities, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	var components []timetable.Component
	groupIndex := make(map[string]int)
	streamIndex := make(map[string]map[string]int)

	for _, m := range activities {
		var activity Activity
		if err := json.Unmarshal(m.Value, &activity); err != nil {
			return nil, fmt.Errorf("%w: activity %s: %v", ErrParse, m.Key, err)
		}
		occ, err := ToOccurrence(activity)
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", m.Key, err)
		}

		group := activity.ActivityGroupCode
		gi, ok := groupIndex[group]
		if !ok {
			gi = len(components)
			groupIndex[group] = gi
			streamIndex[group] = make(map[string]int)
			components = append(components, timetable.Component{ID: group, Name: group})
		}

		streamID, _, _ := strings.Cut(m.Key, "-")
		si, ok := streamIndex[group][streamID]
		if !ok {
			si = len(components[gi].Streams)
			streamIndex[group][streamID] = si
			components[gi].Streams = append(components[gi].Streams, timetable.Stream{ID: streamID})
		}
		stream := &components[gi].Streams[si]
		stream.Occurrences = append(stream.Occurrences, occ)
	}
	return components, nil
}

// ToOccurrence converts one feed activity. The end time keeps the feed's
// additive arithmetic, so a 10:30 start with a 90 minute duration ends at
// 11:60 rather than 12:00.
func ToOccurrence(a Activity) (timetable.Occurrence, error) {
	day, err := timetable.ParseWeekday(a.DayOfWeek)
	if err != nil {
		return timetable.Occurrence{}, fmt.Errorf("%w: day_of_week: %v", ErrParse, err)
	}
	start, err := timetable.ParseClock(a.StartTime)
	if err != nil {
		return timetable.Occurrence{}, fmt.Errorf("%w: start_time: %v", ErrParse, err)
	}
	duration, err := strconv.Atoi(strings.TrimSpace(a.Duration))
	if err != nil {
		return timetable.Occurrence{}, fmt.Errorf("%w: duration %q", ErrParse, a.Duration)
	}
	weeks, err := timetable.ParseWeekPresence(FixWeekPattern(a.WeekPattern, a.Semester))
	if err != nil {
		return timetable.Occurrence{}, fmt.Errorf("%w: week_pattern: %v", ErrParse, err)
	}

	occ := timetable.Occurrence{
		Weekday:      day,
		Start:        start,
		End:          timetable.EndAfter(start, duration),
		Location:     firstWord(a.Location),
		WeekPresence: weeks,
	}
	if a.StartDate != "" {
		origin, err := time.Parse(startDateLayout, strings.TrimSpace(a.StartDate))
		if err != nil {
			return timetable.Occurrence{}, fmt.Errorf("%w: start_date %q", ErrParse, a.StartDate)
		}
		occ.OriginDate = origin
	}
	return occ, nil
}

// FixWeekPattern repairs semester 2 week patterns. Patterns of at least 45
// weeks in a semester containing "2" keep only positions 29..45, which are
// re-padded with zeros to sit at the same offset in a 65 week vector.
// Other patterns are returned unchanged.
func FixWeekPattern(pattern, semester string) string {
	if len(pattern) < sem2PatternMinLen || !strings.Contains(semester, "2") {
		return pattern
	}
	span := pattern[sem2SliceStart:min(sem2SliceEnd, len(pattern))]
	if len(span) < sem2PadStart {
		span = strings.Repeat("0", sem2PadStart-len(span)) + span
	}
	if len(span) < sem2PadEnd {
		span += strings.Repeat("0", sem2PadEnd-len(span))
	}
	return span
}

func firstWord(s string) string {
	word, _, _ := strings.Cut(s, " ")
	return word
}
