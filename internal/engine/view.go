package engine

import (
	"context"
	"fmt"

	"github.com/WillCS/uqplanner/internal/conflict"
	"github.com/WillCS/uqplanner/internal/layout"
	"github.com/WillCS/uqplanner/internal/timetable"
)

// Layout places the sessions of each weekday in their day column.
func (e *Engine) Layout(ctx context.Context, req *LayoutRequest) (*LayoutResult, error) {
	sessions, planID, err := e.sessionsFor(req.PlanID, req.Sessions)
	if err != nil {
		return nil, err
	}

	result := &LayoutResult{PlanID: planID, Days: make([]DayLayout, 0, len(timetable.Weekdays))}
	for _, day := range timetable.Weekdays {
		placed, err := layout.PlaceAll(timetable.SessionsOnDay(sessions, day))
		if err != nil {
			return nil, fmt.Errorf("failed to lay out %s: %w", day, err)
		}
		result.Days = append(result.Days, DayLayout{Day: day, Sessions: placed})
	}
	return result, nil
}

// Clashes lists every pair of sessions that meet at the same time in a
// shared week.
func (e *Engine) Clashes(ctx context.Context, req *ClashesRequest) (*ClashesResult, error) {
	sessions, planID, err := e.sessionsFor(req.PlanID, req.Sessions)
	if err != nil {
		return nil, err
	}

	clashes, err := conflict.FindClashes(sessions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return &ClashesResult{PlanID: planID, Clashes: clashes}, nil
}

// sessionsFor returns the given sessions, or the selected sessions of the
// named plan when given is nil.
func (e *Engine) sessionsFor(planRef string, given []timetable.ScheduledOccurrence) ([]timetable.ScheduledOccurrence, string, error) {
	if given != nil {
		seen := make(map[timetable.SessionKey]bool, len(given))
		for _, s := range given {
			if seen[s.Key()] {
				return nil, "", fmt.Errorf("%w: duplicate session %s occurrence %d", ErrValidation, s, s.OccurrenceIndex)
			}
			seen[s.Key()] = true
		}
		return given, "", nil
	}

	p, err := e.resolvePlan(planRef)
	if err != nil {
		return nil, "", err
	}
	sessions, err := p.ScheduledSessions()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return sessions, p.ID, nil
}
