package timetable

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// WeekPresence marks the weeks of a term in which an occurrence meets.
// Index i is true iff the occurrence happens in week i. A nil WeekPresence
// means the information is absent.
//
// Every occurrence of one term shares the same length and origin; comparing
// vectors of different lengths is an error.
type WeekPresence []bool

// ParseWeekPresence parses a bitstring such as "0111011".
func ParseWeekPresence(pattern string) (WeekPresence, error) {
	wp := make(WeekPresence, len(pattern))
	for i, c := range pattern {
		switch c {
		case '1':
			wp[i] = true
		case '0':
		default:
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidWeekPattern, c, i)
		}
	}
	return wp, nil
}

// String renders the vector as a bitstring.
func (w WeekPresence) String() string {
	var b strings.Builder
	b.Grow(len(w))
	for _, v := range w {
		if v {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Weeks returns the indices of the weeks marked present.
func (w WeekPresence) Weeks() []int {
	weeks := []int{}
	for i, v := range w {
		if v {
			weeks = append(weeks, i)
		}
	}
	return weeks
}

// Intersects reports whether both vectors are present in at least one common
// week. Vectors of different lengths yield ErrWeekPresenceMismatch.
func (w WeekPresence) Intersects(other WeekPresence) (bool, error) {
	if len(w) != len(other) {
		return false, fmt.Errorf("%w: %d vs %d", ErrWeekPresenceMismatch, len(w), len(other))
	}
	for i, v := range w {
		if v && other[i] {
			return true, nil
		}
	}
	return false, nil
}

// MarshalJSON encodes the vector as a bitstring, or null when absent.
func (w WeekPresence) MarshalJSON() ([]byte, error) {
	if w == nil {
		return []byte("null"), nil
	}
	return json.Marshal(w.String())
}

// UnmarshalJSON accepts either a bitstring or an array of booleans.
func (w *WeekPresence) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*w = nil
		return nil
	}
	var pattern string
	if err := json.Unmarshal(data, &pattern); err == nil {
		parsed, err := ParseWeekPresence(pattern)
		if err != nil {
			return err
		}
		*w = parsed
		return nil
	}
	var flags []bool
	if err := json.Unmarshal(data, &flags); err != nil {
		return fmt.Errorf("%w: expected bitstring or boolean array", ErrInvalidWeekPattern)
	}
	*w = WeekPresence(flags)
	return nil
}

// MarshalYAML encodes the vector as a bitstring.
func (w WeekPresence) MarshalYAML() (interface{}, error) {
	if w == nil {
		return nil, nil
	}
	return w.String(), nil
}

// UnmarshalYAML accepts either a bitstring scalar or a sequence of booleans.
func (w *WeekPresence) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*w = nil
			return nil
		}
		parsed, err := ParseWeekPresence(value.Value)
		if err != nil {
			return err
		}
		*w = parsed
		return nil
	case yaml.SequenceNode:
		var flags []bool
		if err := value.Decode(&flags); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidWeekPattern, err)
		}
		*w = WeekPresence(flags)
		return nil
	default:
		return fmt.Errorf("%w: expected bitstring or boolean sequence", ErrInvalidWeekPattern)
	}
}

// Occurrence is a single weekly meeting pattern.
type Occurrence struct {
	Weekday  Weekday   `json:"weekday" yaml:"weekday" validate:"min=0,max=4"`
	Start    TimeOfDay `json:"start" yaml:"start"`
	End      TimeOfDay `json:"end" yaml:"end"`
	Location string    `json:"location" yaml:"location"`

	// WeekPresence is indexed from OriginDate in steps of one week.
	WeekPresence WeekPresence `json:"weekPresence" yaml:"weekPresence"`

	// OriginDate is the calendar date of week index 0.
	OriginDate time.Time `json:"originDate,omitzero" yaml:"originDate,omitempty"`
}

// DurationMinutes returns the end minus the start in minutes. The result is
// not corrected when the input is inconsistent and may be zero or negative.
func DurationMinutes(o Occurrence) int {
	return ToMinutes(o.End) - ToMinutes(o.Start)
}

// EarlierOf returns whichever occurrence starts first, preferring a on ties.
func EarlierOf(a, b Occurrence) Occurrence {
	if ToMinutes(a.Start) <= ToMinutes(b.Start) {
		return a
	}
	return b
}

// DateInWeek returns the calendar date the occurrence falls on in the given
// week, counting from OriginDate.
func (o Occurrence) DateInWeek(week int) time.Time {
	return o.OriginDate.AddDate(0, 0, 7*week+int(o.Weekday))
}
