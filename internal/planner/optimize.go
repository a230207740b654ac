package planner

import (
	"context"
	"fmt"

	"github.com/WillCS/uqplanner/internal/conflict"
	"github.com/WillCS/uqplanner/internal/timetable"
)

// ctxCheckInterval is how many nodes pass between context checks.
const ctxCheckInterval = 256

// Optimize looks for one stream per component such that every chosen class
// meets within a weekday subset of MinDays..MaxDays days and no two overlap
// without an exception.
//
// Day counts are tried smallest first and subsets in Combinations order; the
// first fit is returned. No fit is a normal outcome: the schedule comes back
// with Found unset and a nil error. Malformed input returns ErrInvalidInput.
func Optimize(ctx context.Context, listings []timetable.Listing, opts Options) (*Schedule, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	choiceLists, err := BuildChoiceLists(listings)
	if err != nil {
		return nil, err
	}

	s := &search{
		ctx:      ctx,
		checker:  conflict.NewChecker(opts.AllowOverlap),
		lists:    choiceLists,
		maxNodes: opts.MaxNodes,
		chosen:   make([]Choice, 0, len(choiceLists)),
		entries:  make([]conflict.Entry, 0, len(choiceLists)),
	}

	for dayCount := opts.MinDays; dayCount <= opts.MaxDays; dayCount++ {
		for _, days := range Combinations(timetable.Weekdays, dayCount) {
			if err := ctx.Err(); err != nil {
				return emptySchedule(s.nodes, true), err
			}
			s.allowed = daySet(days)
			found := s.fit(0)
			if s.stopped {
				return emptySchedule(s.nodes, true), s.err
			}
			if found {
				choices := make([]Choice, len(s.chosen))
				copy(choices, s.chosen)
				return &Schedule{
					Found:        true,
					DayCount:     dayCount,
					Days:         days,
					Choices:      choices,
					NodesVisited: s.nodes,
				}, nil
			}
		}
	}

	return emptySchedule(s.nodes, false), nil
}

// BuildChoiceLists flattens listings into one choice list per component, in
// listing then component order. Each choice carries only the first
// occurrence of its stream.
func BuildChoiceLists(listings []timetable.Listing) ([][]Choice, error) {
	var lists [][]Choice
	for _, listing := range listings {
		if len(listing.Components) == 0 {
			return nil, fmt.Errorf("%w: %s has no components", ErrInvalidInput, listing.Name)
		}
		for _, component := range listing.Components {
			if len(component.Streams) == 0 {
				return nil, fmt.Errorf("%w: %s %s has no streams", ErrInvalidInput, listing.Name, component.Name)
			}
			choices := make([]Choice, 0, len(component.Streams))
			for i, stream := range component.Streams {
				if len(stream.Occurrences) == 0 {
					return nil, fmt.Errorf("%w: %s %s stream %d has no occurrences",
						ErrInvalidInput, listing.Name, component.Name, i)
				}
				choices = append(choices, Choice{
					ListingName:   listing.Name,
					ComponentName: component.Name,
					StreamIndex:   i,
					StreamID:      stream.ID,
					Occurrence:    stream.Occurrences[0],
				})
			}
			lists = append(lists, choices)
		}
	}
	if len(lists) == 0 {
		return nil, fmt.Errorf("%w: no components to schedule", ErrInvalidInput)
	}
	return lists, nil
}

func validateOptions(opts Options) error {
	if opts.MinDays < 0 || opts.MaxDays > MaxWeekdays || opts.MinDays > opts.MaxDays {
		return fmt.Errorf("%w: day range %d..%d must satisfy 0 <= min <= max <= %d",
			ErrInvalidInput, opts.MinDays, opts.MaxDays, MaxWeekdays)
	}
	if opts.MaxNodes < 0 {
		return fmt.Errorf("%w: negative node budget %d", ErrInvalidInput, opts.MaxNodes)
	}
	return nil
}

func daySet(days []timetable.Weekday) map[timetable.Weekday]bool {
	set := make(map[timetable.Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

// search holds the state of one Optimize call. chosen and entries are used
// as stacks and always have the same length.
type search struct {
	ctx      context.Context
	checker  *conflict.Checker
	lists    [][]Choice
	allowed  map[timetable.Weekday]bool
	maxNodes int

	chosen  []Choice
	entries []conflict.Entry

	nodes   int
	stopped bool
	err     error
}

// fit assigns components depth.. and reports whether all of them fit.
func (s *search) fit(depth int) bool {
	if s.budgetExhausted() {
		return false
	}
	if depth == len(s.lists) {
		return true
	}

	for _, option := range s.lists[depth] {
		if !s.allowed[option.Occurrence.Weekday] {
			continue
		}
		entry := option.entry()
		if s.checker.Check(entry, s.entries) != nil {
			continue
		}

		s.chosen = append(s.chosen, option)
		s.entries = append(s.entries, entry)
		if s.fit(depth + 1) {
			return true
		}
		s.chosen = s.chosen[:len(s.chosen)-1]
		s.entries = s.entries[:len(s.entries)-1]

		if s.stopped {
			return false
		}
	}
	return false
}

// budgetExhausted counts a node and reports whether the search must stop.
func (s *search) budgetExhausted() bool {
	if s.stopped {
		return true
	}
	s.nodes++
	if s.maxNodes > 0 && s.nodes > s.maxNodes {
		s.stopped = true
		return true
	}
	if s.nodes%ctxCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.stopped = true
			s.err = err
			return true
		}
	}
	return false
}
