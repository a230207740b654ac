// Package layout places overlapping sessions of one day side by side.
//
// Clusters are built from apparent overlap (conflict.OverlapsInTime) and
// reach exactly two hops from the queried session: its direct overlaps and
// their direct overlaps. This is not a transitive closure; long chains of
// partially overlapping sessions can be grouped differently depending on
// which session is queried.
package layout

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/WillCS/uqplanner/internal/conflict"
	"github.com/WillCS/uqplanner/internal/timetable"
)

// gutter is the share of its column a non-final session occupies.
const gutter = 0.92

// ErrTargetNotFound indicates the queried session is not in the day's list.
var ErrTargetNotFound = errors.New("target session not in sessions for the day")

// Placement is the horizontal position of a session in its day column.
// A session with no apparent overlaps is not clustered and takes the full
// width; it serializes as an empty object.
type Placement struct {
	Clustered    bool
	LeftPercent  float64
	WidthPercent float64
}

// MarshalJSON writes {} for a full-width session and both percentages
// otherwise.
func (p Placement) MarshalJSON() ([]byte, error) {
	if !p.Clustered {
		return []byte("{}"), nil
	}
	return json.Marshal(struct {
		LeftPercent  float64 `json:"leftPercent"`
		WidthPercent float64 `json:"widthPercent"`
	}{p.LeftPercent, p.WidthPercent})
}

// overlapping returns every session in the day that overlaps s, in input order.
func overlapping(sessionsOnDay []timetable.ScheduledOccurrence, s timetable.ScheduledOccurrence) []timetable.ScheduledOccurrence {
	out := []timetable.ScheduledOccurrence{}
	for _, other := range sessionsOnDay {
		if conflict.OverlapsInTime(s.Occurrence, other.Occurrence) {
			out = append(out, other)
		}
	}
	return out
}

func contains(sessionsOnDay []timetable.ScheduledOccurrence, target timetable.ScheduledOccurrence) bool {
	key := target.Key()
	for _, s := range sessionsOnDay {
		if s.Key() == key {
			return true
		}
	}
	return false
}

// Cluster returns the clash cluster of target, sorted by start then end
// time. A session without other overlaps is its own single-member cluster.
func Cluster(sessionsOnDay []timetable.ScheduledOccurrence, target timetable.ScheduledOccurrence) ([]timetable.ScheduledOccurrence, error) {
	if !contains(sessionsOnDay, target) {
		return nil, ErrTargetNotFound
	}

	direct := overlapping(sessionsOnDay, target)
	if len(direct) == 1 {
		return direct, nil
	}

	cluster := []timetable.ScheduledOccurrence{}
	seen := make(map[timetable.SessionKey]bool)
	for _, d := range direct {
		meta := overlapping(sessionsOnDay, d)
		if len(meta) == 1 {
			continue
		}
		for _, m := range meta {
			if seen[m.Key()] {
				continue
			}
			seen[m.Key()] = true
			cluster = append(cluster, m)
		}
	}

	sort.SliceStable(cluster, func(i, j int) bool {
		si := timetable.ToMinutes(cluster[i].Occurrence.Start)
		sj := timetable.ToMinutes(cluster[j].Occurrence.Start)
		if si != sj {
			return si < sj
		}
		return timetable.ToMinutes(cluster[i].Occurrence.End) < timetable.ToMinutes(cluster[j].Occurrence.End)
	})

	return cluster, nil
}

// Place computes where target is drawn among the sessions of its day.
func Place(sessionsOnDay []timetable.ScheduledOccurrence, target timetable.ScheduledOccurrence) (Placement, error) {
	cluster, err := Cluster(sessionsOnDay, target)
	if err != nil {
		return Placement{}, err
	}
	if len(cluster) == 1 {
		return Placement{}, nil
	}

	index := -1
	key := target.Key()
	for i, s := range cluster {
		if s.Key() == key {
			index = i
			break
		}
	}
	if index == -1 {
		return Placement{}, ErrTargetNotFound
	}

	width := 100 / float64(len(cluster))
	placement := Placement{
		Clustered:    true,
		LeftPercent:  width * float64(index),
		WidthPercent: width,
	}
	if index != len(cluster)-1 {
		placement.WidthPercent = width * gutter
	}
	return placement, nil
}

// Placed pairs a session with its placement.
type Placed struct {
	Session   timetable.ScheduledOccurrence `json:"session"`
	Placement Placement                     `json:"placement"`
}

// PlaceAll places every session of the day, in input order.
func PlaceAll(sessionsOnDay []timetable.ScheduledOccurrence) ([]Placed, error) {
	placed := make([]Placed, 0, len(sessionsOnDay))
	for _, s := range sessionsOnDay {
		p, err := Place(sessionsOnDay, s)
		if err != nil {
			return nil, err
		}
		placed = append(placed, Placed{Session: s, Placement: p})
	}
	return placed, nil
}
