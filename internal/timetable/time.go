package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time within a day.
//
// Values are not normalized: Minutes may exceed 59 and Hours may exceed 23
// when an end time is produced by EndAfter. Compare via ToMinutes, never
// structurally.
type TimeOfDay struct {
	Hours   int `json:"hours" yaml:"hours" validate:"min=0"`
	Minutes int `json:"minutes" yaml:"minutes" validate:"min=0"`
}

// ToMinutes returns the number of minutes since midnight.
func ToMinutes(t TimeOfDay) int {
	return t.Hours*60 + t.Minutes
}

// EndAfter returns start plus durationMinutes using the feed's additive
// arithmetic: whole hours are added to Hours and the remainder to Minutes
// with no carry.
func EndAfter(start TimeOfDay, durationMinutes int) TimeOfDay {
	return TimeOfDay{
		Hours:   start.Hours + durationMinutes/60,
		Minutes: start.Minutes + durationMinutes%60,
	}
}

// ParseClock parses an "HH:MM" string.
func ParseClock(s string) (TimeOfDay, error) {
	hours, minutes, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(hours)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid hours in %q: %w", s, err)
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}
	if h < 0 || m < 0 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: negative component", s)
	}
	return TimeOfDay{Hours: h, Minutes: m}, nil
}

// Clock formats t as HH:MM for display. The stored value is left untouched;
// only the printed form is carried through minutes since midnight.
func (t TimeOfDay) Clock() string {
	total := ToMinutes(t)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Weekday is a teaching day, 0 (Monday) through 4 (Friday).
type Weekday int

// Weekdays lists every teaching day in canonical order.
var Weekdays = []Weekday{0, 1, 2, 3, 4}

// WeekdayNames holds the short names indexed by Weekday.
var WeekdayNames = []string{"MON", "TUE", "WED", "THU", "FRI"}

// Valid reports whether d is Monday..Friday.
func (d Weekday) Valid() bool {
	return d >= 0 && int(d) < len(WeekdayNames)
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return WeekdayNames[d]
}

// weekdayFullNames holds the full names indexed by Weekday.
var weekdayFullNames = []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}

// ParseWeekday returns the first weekday whose short name starts with the
// upper-cased input, so "Mon" and "mo" resolve to Monday. A full day name
// such as "MONDAY" is also accepted.
func ParseWeekday(s string) (Weekday, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if upper == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidWeekday)
	}
	for i, name := range WeekdayNames {
		if strings.HasPrefix(name, upper) || upper == weekdayFullNames[i] {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}
