package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/WillCS/uqplanner/internal/hash"
	"github.com/WillCS/uqplanner/internal/ingest"
	"github.com/WillCS/uqplanner/internal/state"
	"github.com/WillCS/uqplanner/internal/timetable"
)

// FetchListing fetches and hashes one course without touching any plan.
func (e *Engine) FetchListing(ctx context.Context, req *FetchListingRequest) (timetable.Listing, error) {
	q := ingest.Query{
		CourseCode: strings.ToUpper(strings.TrimSpace(req.CourseCode)),
		Campus:     req.Campus,
		Mode:       req.Mode,
		Year:       req.Year,
		Semester:   req.Semester,
	}
	if q.CourseCode == "" {
		return timetable.Listing{}, fmt.Errorf("%w: course code required", ErrValidation)
	}
	if q.Campus == "" {
		q.Campus = e.settings.DefaultCampus
	}
	if q.Mode == "" {
		q.Mode = e.settings.DefaultMode
	}
	if q.Year == 0 {
		q.Year = e.settings.DefaultYear
	}
	if q.Semester == 0 {
		q.Semester = e.settings.DefaultSemester
	}
	return e.fetch(ctx, q)
}

func (e *Engine) fetch(ctx context.Context, q ingest.Query) (timetable.Listing, error) {
	listing, err := e.fetcher.FetchSubject(ctx, q)
	if err != nil {
		return timetable.Listing{}, fmt.Errorf("failed to fetch %s: %w", q.CourseCode, err)
	}
	hashed, err := hash.WithHash(e.hasher, listing)
	if err != nil {
		return timetable.Listing{}, fmt.Errorf("failed to hash %s: %w", listing.Name, err)
	}
	return hashed, nil
}

// AddListing fetches a course for the plan's term and adds it with the
// first stream of every component selected.
func (e *Engine) AddListing(ctx context.Context, req *AddListingRequest) (*ListingResult, error) {
	p, err := e.resolvePlan(req.PlanID)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.CourseCode))
	if existing, ok := p.Listing(code); ok {
		return &ListingResult{PlanID: p.ID, Listing: existing, Added: false}, nil
	}

	listing, err := e.FetchListing(ctx, &FetchListingRequest{
		CourseCode: code,
		Campus:     req.Campus,
		Mode:       req.Mode,
		Year:       p.Year,
		Semester:   p.Semester,
	})
	if err != nil {
		return nil, err
	}
	if p.HasListing(listing.Name) {
		existing, _ := p.Listing(listing.Name)
		return &ListingResult{PlanID: p.ID, Listing: existing, Added: false}, nil
	}

	if _, err := e.savePlan(p.AddListing(listing)); err != nil {
		return nil, err
	}

	e.logger.Info().Str("plan", p.ID).Str("listing", listing.Name).Msg("added listing")
	return &ListingResult{PlanID: p.ID, Listing: listing, Added: true}, nil
}

// RemoveListing drops a course and its selections from the plan.
func (e *Engine) RemoveListing(ctx context.Context, req *RemoveListingRequest) (*PlanResult, error) {
	p, err := e.resolvePlan(req.PlanID)
	if err != nil {
		return nil, err
	}

	name := strings.ToUpper(strings.TrimSpace(req.Listing))
	if !p.HasListing(name) {
		return nil, fmt.Errorf("%w: %w: %s", ErrNotFound, state.ErrUnknownListing, name)
	}

	saved, err := e.savePlan(p.RemoveListing(name))
	if err != nil {
		return nil, err
	}
	return &PlanResult{Plan: saved, Current: e.isCurrent(saved.ID)}, nil
}

// Select chooses the stream of one component.
func (e *Engine) Select(ctx context.Context, req *SelectRequest) (*PlanResult, error) {
	p, err := e.resolvePlan(req.PlanID)
	if err != nil {
		return nil, err
	}

	updated, err := p.Select(strings.ToUpper(strings.TrimSpace(req.Listing)), req.Component, req.Stream)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	saved, err := e.savePlan(updated)
	if err != nil {
		return nil, err
	}
	return &PlanResult{Plan: saved, Current: e.isCurrent(saved.ID)}, nil
}

// RefreshPlan fetches every listing of the plan again and replaces those
// whose content changed. A listing that fails to fetch is reported and
// left as it was.
func (e *Engine) RefreshPlan(ctx context.Context, req *RefreshPlanRequest) (*RefreshResult, error) {
	p, err := e.resolvePlan(req.PlanID)
	if err != nil {
		return nil, err
	}

	result := &RefreshResult{
		PlanID:    p.ID,
		Changed:   []string{},
		Unchanged: []string{},
		Failed:    map[string]string{},
		DryRun:    req.DryRun,
	}

	refreshed := make([]timetable.Listing, 0, len(p.Listings))
	for _, l := range p.Listings {
		mode := l.DeliveryMode
		if mode == "" {
			mode = e.settings.DefaultMode
		}
		fresh, err := e.fetch(ctx, ingest.Query{
			CourseCode: l.Name,
			Campus:     l.Campus,
			Mode:       mode,
			Year:       p.Year,
			Semester:   p.Semester,
		})
		if err != nil {
			e.logger.Warn().Err(err).Str("listing", l.Name).Msg("refresh failed")
			result.Failed[l.Name] = err.Error()
			continue
		}
		refreshed = append(refreshed, fresh)
	}

	changed := p.ChangedListings(refreshed)
	changedNames := make(map[string]bool, len(changed))
	for _, l := range changed {
		changedNames[l.Name] = true
		result.Changed = append(result.Changed, l.Name)
	}
	for _, l := range refreshed {
		if !changedNames[l.Name] {
			result.Unchanged = append(result.Unchanged, l.Name)
		}
	}

	if req.DryRun || len(changed) == 0 {
		return result, nil
	}
	if _, err := e.savePlan(p.ReplaceListings(changed)); err != nil {
		return nil, err
	}

	e.logger.Info().Str("plan", p.ID).Strs("changed", result.Changed).Msg("refreshed plan")
	return result, nil
}
