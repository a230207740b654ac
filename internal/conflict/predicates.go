package conflict

import (
	"github.com/WillCS/uqplanner/internal/timetable"
)

// OverlapsInTime reports whether a and b meet on the same weekday at
// intersecting times. Ranges are half-open, so one ending exactly when the
// other starts does not overlap.
func OverlapsInTime(a, b timetable.Occurrence) bool {
	if a.Weekday != b.Weekday {
		return false
	}

	aStart := timetable.ToMinutes(a.Start)
	aEnd := timetable.ToMinutes(a.End)
	bStart := timetable.ToMinutes(b.Start)
	bEnd := timetable.ToMinutes(b.End)

	return (aStart <= bStart && aEnd > bStart && aEnd <= bEnd) ||
		(bStart <= aStart && bEnd > aStart && bEnd <= aEnd) ||
		(aStart <= bStart && aEnd >= bEnd) ||
		(bStart <= aStart && bEnd >= aEnd)
}

// Clashes reports whether a and b overlap in time and share at least one
// active week. Missing week presence on either side never clashes; vectors
// of different lengths return timetable.ErrWeekPresenceMismatch.
func Clashes(a, b timetable.Occurrence) (bool, error) {
	if a.WeekPresence == nil || b.WeekPresence == nil {
		return false, nil
	}

	shared, err := a.WeekPresence.Intersects(b.WeekPresence)
	if err != nil {
		return false, err
	}
	if !shared {
		return false, nil
	}

	return OverlapsInTime(a, b), nil
}
