// Package timetable defines the value types shared by every layer of the
// planner: times of day, weekly occurrences, streams, components and
// listings.
//
// All types here are plain immutable data. They are produced by the feed
// acquisition layer (or decoded from a listings file) and read by the
// conflict, layout and search packages, which never modify them.
//
// Key concepts:
//   - TimeOfDay: hours and minutes, deliberately not normalized
//   - Occurrence: one weekly meeting pattern with its week presence bitmap
//   - Stream: a group of occurrences chosen together
//   - Component: a class activity type owning alternative streams
//   - Listing: a course owning components
//   - ScheduledOccurrence: a view projection used for layout
package timetable
