package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/WillCS/uqplanner/internal/conflict"
	"github.com/WillCS/uqplanner/internal/ingest"
	"github.com/WillCS/uqplanner/internal/planner"
	"github.com/WillCS/uqplanner/internal/state"
	"github.com/WillCS/uqplanner/internal/timetable"
)

// Optimize searches for a timetable over the requested listings.
// Algorithm steps:
// 1. Gather listings from the request, a file or the plan
// 2. Bound the search by the configured node budget and timeout
// 3. Run the search
// 4. Apply the selections to the plan if requested and found
func (e *Engine) Optimize(ctx context.Context, req *OptimizeRequest) (*OptimizeResult, error) {
	// Step 1: Gather listings
	listings, plan, fromPlan, err := e.optimizeListings(req)
	if err != nil {
		return nil, err
	}
	if req.Apply && !fromPlan {
		return nil, fmt.Errorf("%w: apply needs a plan, not raw listings", ErrValidation)
	}

	// Step 2: Bound the search
	opts := planner.Options{
		MinDays:  req.MinDays,
		MaxDays:  req.MaxDays,
		MaxNodes: e.settings.SearchMaxNodes,
	}
	if opts.MinDays == 0 && opts.MaxDays == 0 {
		opts.MinDays, opts.MaxDays = 1, planner.MaxWeekdays
	}
	if req.MaxNodes > 0 {
		opts.MaxNodes = req.MaxNodes
	}
	if req.AllowLectureOverlap {
		opts.AllowOverlap = conflict.AllowLectureOverlap
	}

	searchCtx := ctx
	if e.settings.SearchTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, e.settings.SearchTimeout)
		defer cancel()
	}

	// Step 3: Run the search
	schedule, err := planner.Optimize(searchCtx, listings, opts)
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			// Our own timeout: report the truncated search as a result.
			e.logger.Warn().Dur("timeout", e.settings.SearchTimeout).Msg("search timed out")
		default:
			return nil, fmt.Errorf("search stopped: %w", err)
		}
	}

	e.logger.Debug().
		Bool("found", schedule.Found).
		Int("nodes", schedule.NodesVisited).
		Bool("truncated", schedule.Truncated).
		Msg("search finished")

	result := &OptimizeResult{Schedule: schedule}
	if fromPlan {
		result.PlanID = plan.ID
	}

	// Step 4: Apply the selections
	if req.Apply && schedule.Found {
		updated, err := plan.ApplySelections(state.Selections(schedule.Selections()))
		if err != nil {
			return nil, fmt.Errorf("failed to apply schedule: %w", err)
		}
		if _, err := e.savePlan(updated); err != nil {
			return nil, err
		}
		result.Applied = true
	}

	return result, nil
}

// optimizeListings returns the listings to search and, when they came from
// a plan, that plan.
func (e *Engine) optimizeListings(req *OptimizeRequest) ([]timetable.Listing, state.Plan, bool, error) {
	switch {
	case req.Listings != nil:
		if err := timetable.ValidateListings(req.Listings); err != nil {
			return nil, state.Plan{}, false, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return req.Listings, state.Plan{}, false, nil
	case req.ListingsFile != "":
		listings, err := ingest.LoadListings(req.ListingsFile)
		if err != nil {
			return nil, state.Plan{}, false, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return listings, state.Plan{}, false, nil
	default:
		p, err := e.resolvePlan(req.PlanID)
		if err != nil {
			return nil, state.Plan{}, false, err
		}
		return p.Listings, p, true, nil
	}
}
