// Package engine provides the core business logic for uqplanner operations.
//
// The engine package acts as the orchestration layer between the CLI and
// HTTP surfaces and the lower-level packages. It resolves plans, fetches
// listings, runs the optimizer and layout, and persists every change.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Optimize/Layout/Clashes: Scheduling queries over a plan or raw listings
//   - Plan lifecycle: New, list, show, use, rename, delete
//   - Listing edits: Add, remove, select, refresh, export
package engine

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/WillCS/uqplanner/internal/clock"
	"github.com/WillCS/uqplanner/internal/config"
	"github.com/WillCS/uqplanner/internal/hash"
	"github.com/WillCS/uqplanner/internal/ingest"
	"github.com/WillCS/uqplanner/internal/state"
)

// Engine orchestrates all uqplanner operations.
// It is the main API surface called by the CLI and the HTTP server.
type Engine struct {
	plans    state.PlanStore
	sessions state.Sessions
	fetcher  ingest.Fetcher
	hasher   hash.Hasher
	clock    clock.Clock
	logger   zerolog.Logger
	settings *config.Settings
}

// New creates a new Engine with the given dependencies. A nil settings uses
// config.DefaultSettings.
func New(
	plans state.PlanStore,
	sessions state.Sessions,
	fetcher ingest.Fetcher,
	hasher hash.Hasher,
	clk clock.Clock,
	logger zerolog.Logger,
	settings *config.Settings,
) *Engine {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &Engine{
		plans:    plans,
		sessions: sessions,
		fetcher:  fetcher,
		hasher:   hasher,
		clock:    clk,
		logger:   logger,
		settings: settings,
	}
}

// Settings returns the settings the engine was built with.
func (e *Engine) Settings() *config.Settings {
	return e.settings
}

// resolvePlan loads the plan named by ref, or the current plan when ref is
// empty. ref may be a plan id, a unique id prefix or an exact plan name.
func (e *Engine) resolvePlan(ref string) (state.Plan, error) {
	if ref == "" {
		current, err := e.sessions.Current()
		if err != nil {
			return state.Plan{}, fmt.Errorf("failed to read session: %w", err)
		}
		if current == "" {
			return state.Plan{}, ErrNoCurrentPlan
		}
		ref = current
	}

	p, err := e.plans.Load(ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, os.ErrNotExist) && !errors.Is(err, state.ErrInvalidSchema) {
		return state.Plan{}, fmt.Errorf("failed to load plan: %w", err)
	}

	plans, err := e.plans.List()
	if err != nil {
		return state.Plan{}, fmt.Errorf("failed to list plans: %w", err)
	}
	var matches []state.Plan
	for _, candidate := range plans {
		if candidate.Name == ref || strings.HasPrefix(candidate.ID, ref) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return state.Plan{}, fmt.Errorf("%w: plan '%s'", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return state.Plan{}, fmt.Errorf("%w: '%s' matches %d plans", ErrValidation, ref, len(matches))
	}
}

// savePlan stamps and persists p, returning the stored version.
func (e *Engine) savePlan(p state.Plan) (state.Plan, error) {
	saved := p.MarkSaved(clock.Stamp(e.clock))
	if err := saved.Validate(); err != nil {
		return state.Plan{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := e.plans.Save(saved); err != nil {
		return state.Plan{}, fmt.Errorf("failed to save plan: %w", err)
	}
	return saved, nil
}

// takenNames lists the names of stored plans other than skipID.
func (e *Engine) takenNames(skipID string) ([]string, error) {
	plans, err := e.plans.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return state.PlanNames(plans, skipID), nil
}

// isCurrent reports whether id is the session's current plan.
func (e *Engine) isCurrent(id string) bool {
	current, err := e.sessions.Current()
	if err != nil {
		e.logger.Warn().Err(err).Msg("failed to read session")
		return false
	}
	return current == id
}
