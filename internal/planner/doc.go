// Package planner searches for a weekly timetable that fits a day budget.
//
// The planner picks one stream for every component of every listing so that
// the chosen classes meet on at most a given number of weekdays and none of
// them overlap in time, except where an AllowFunc grants an exception. The
// search is an exhaustive depth-first backtrack run once per weekday subset,
// smallest subsets first, and returns the first fit it finds.
//
// Key responsibilities:
//   - Flatten listings into one ordered choice list per component
//   - Enumerate weekday subsets in canonical order
//   - Backtrack over stream choices with immediate conflict rejection
//   - Honour an optional node budget and context cancellation
//
// Known limitations kept on purpose: only the first occurrence of each
// stream takes part in conflict checks, and week presence is ignored.
package planner
