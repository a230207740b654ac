package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Subject is one course offering as the feed reports it.
type Subject struct {
	SubjectCode     string          `json:"subject_code"`
	Description     string          `json:"description"`
	Manager         string          `json:"manager"`
	Faculty         string          `json:"faculty"`
	Semester        string          `json:"semester"`
	Campus          string          `json:"campus"`
	ShowOnTimetable string          `json:"show_on_timetable"`
	ActivityCount   string          `json:"activity_count"`
	Activities      json.RawMessage `json:"activities"`
}

// Activity is a single class meeting as the feed reports it. Every field is
// a string on the wire, including durations.
type Activity struct {
	SubjectCode       string `json:"subject_code"`
	ActivityGroupCode string `json:"activity_group_code"`
	ActivityCode      string `json:"activity_code"`
	Campus            string `json:"campus"`
	DayOfWeek         string `json:"day_of_week"`
	StartTime         string `json:"start_time"`
	Location          string `json:"location"`
	Staff             string `json:"staff"`
	Duration          string `json:"duration"`
	WeekPattern       string `json:"week_pattern"`
	Description       string `json:"description"`
	Semester          string `json:"semester"`
	ActivityType      string `json:"activity_type"`
	StartDate         string `json:"start_date"`
}

// member is one key/value pair of a JSON object.
type member struct {
	Key   string
	Value json.RawMessage
}

// decodeObject decodes a JSON object into its members in document order.
// An empty array is accepted as an empty object, which is how the feed
// encodes a subject without activities.
func decodeObject(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %v", ErrParse, tok)
	}
	if delim == '[' {
		if dec.More() {
			return nil, fmt.Errorf("%w: expected object, got non-empty array", ErrParse)
		}
		return []member{}, nil
	}
	if delim != '{' {
		return nil, fmt.Errorf("%w: expected object, got %v", ErrParse, delim)
	}

	members := []member{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected object key, got %v", ErrParse, tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: value of %q: %v", ErrParse, key, err)
		}
		members = append(members, member{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return members, nil
}
