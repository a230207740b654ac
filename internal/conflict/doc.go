// Package conflict decides when two weekly occurrences collide.
//
// Two notions of collision are provided:
//   - OverlapsInTime: same weekday and intersecting half-open time ranges,
//     ignoring week presence. This is the apparent overlap a timetable grid
//     shows when every week is drawn on top of each other.
//   - Clashes: a time overlap that also shares at least one active week.
//     This is a hard conflict for somebody attending the classes.
//
// The Checker wraps OverlapsInTime with a configurable exception rule and
// reports why a candidate was rejected.
package conflict
