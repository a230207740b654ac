package engine

import (
	"context"
	"fmt"

	"github.com/WillCS/uqplanner/internal/clock"
	"github.com/WillCS/uqplanner/internal/state"
)

// NewPlan creates a plan and, unless asked not to, makes it current.
func (e *Engine) NewPlan(ctx context.Context, req *NewPlanRequest) (*PlanResult, error) {
	year, semester := req.Year, req.Semester
	if year == 0 {
		year = e.settings.DefaultYear
	}
	if semester == 0 {
		semester = e.settings.DefaultSemester
	}

	taken, err := e.takenNames("")
	if err != nil {
		return nil, err
	}

	p := state.NewPlan(state.NewPlanID(), year, semester, clock.Stamp(e.clock), taken)
	if req.Name != "" {
		p = p.Rename(req.Name, taken)
	}
	saved, err := e.savePlan(p)
	if err != nil {
		return nil, err
	}

	if !req.KeepCurrent {
		if err := e.sessions.SetCurrent(saved.ID, clock.Stamp(e.clock)); err != nil {
			return nil, fmt.Errorf("failed to set current plan: %w", err)
		}
	}

	e.logger.Info().Str("plan", saved.ID).Str("name", saved.Name).Msg("created plan")
	return &PlanResult{Plan: saved, Current: !req.KeepCurrent}, nil
}

// ListPlans summarizes every stored plan.
func (e *Engine) ListPlans(ctx context.Context) (*ListPlansResult, error) {
	plans, err := e.plans.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	current, err := e.sessions.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	result := &ListPlansResult{Plans: make([]PlanSummary, 0, len(plans)), CurrentPlan: current}
	for _, p := range plans {
		names := make([]string, 0, len(p.Listings))
		for _, l := range p.Listings {
			names = append(names, l.Name)
		}
		result.Plans = append(result.Plans, PlanSummary{
			ID:         p.ID,
			Name:       p.Name,
			Year:       p.Year,
			Semester:   p.Semester,
			Listings:   names,
			LastEdited: p.LastEdited,
			Current:    p.ID == current,
		})
	}
	return result, nil
}

// ShowPlan returns the named plan, or the current plan.
func (e *Engine) ShowPlan(ctx context.Context, planRef string) (*PlanResult, error) {
	p, err := e.resolvePlan(planRef)
	if err != nil {
		return nil, err
	}
	return &PlanResult{Plan: p, Current: e.isCurrent(p.ID)}, nil
}

// UsePlan makes the named plan current.
func (e *Engine) UsePlan(ctx context.Context, planRef string) (*PlanResult, error) {
	if planRef == "" {
		return nil, fmt.Errorf("%w: plan id or name required", ErrValidation)
	}
	p, err := e.resolvePlan(planRef)
	if err != nil {
		return nil, err
	}
	if err := e.sessions.SetCurrent(p.ID, clock.Stamp(e.clock)); err != nil {
		return nil, fmt.Errorf("failed to set current plan: %w", err)
	}
	return &PlanResult{Plan: p, Current: true}, nil
}

// DeletePlan deletes the named plan, clearing the session if it was current.
func (e *Engine) DeletePlan(ctx context.Context, planRef string) (*DeletePlanResult, error) {
	if planRef == "" {
		return nil, fmt.Errorf("%w: plan id or name required", ErrValidation)
	}
	p, err := e.resolvePlan(planRef)
	if err != nil {
		return nil, err
	}

	if err := e.plans.Delete(p.ID); err != nil {
		return nil, fmt.Errorf("failed to delete plan: %w", err)
	}

	wasCurrent := e.isCurrent(p.ID)
	if wasCurrent {
		if err := e.sessions.SetCurrent("", clock.Stamp(e.clock)); err != nil {
			return nil, fmt.Errorf("failed to clear current plan: %w", err)
		}
	}

	e.logger.Info().Str("plan", p.ID).Msg("deleted plan")
	return &DeletePlanResult{PlanID: p.ID, WasCurrent: wasCurrent}, nil
}

// RenamePlan renames a plan. An empty name restores the default.
func (e *Engine) RenamePlan(ctx context.Context, req *RenamePlanRequest) (*PlanResult, error) {
	p, err := e.resolvePlan(req.PlanID)
	if err != nil {
		return nil, err
	}
	taken, err := e.takenNames(p.ID)
	if err != nil {
		return nil, err
	}

	saved, err := e.savePlan(p.Rename(req.Name, taken))
	if err != nil {
		return nil, err
	}
	return &PlanResult{Plan: saved, Current: e.isCurrent(saved.ID)}, nil
}

// SetSemester moves a plan to another term, clearing its listings.
func (e *Engine) SetSemester(ctx context.Context, req *SetSemesterRequest) (*PlanResult, error) {
	p, err := e.resolvePlan(req.PlanID)
	if err != nil {
		return nil, err
	}
	taken, err := e.takenNames(p.ID)
	if err != nil {
		return nil, err
	}

	saved, err := e.savePlan(p.SetSemester(req.Year, req.Semester, taken))
	if err != nil {
		return nil, err
	}
	return &PlanResult{Plan: saved, Current: e.isCurrent(saved.ID)}, nil
}
