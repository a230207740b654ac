package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/WillCS/uqplanner/internal/fsops"
	"github.com/WillCS/uqplanner/internal/hash"
)

// requiredPlanFields must be present in every stored plan.
var requiredPlanFields = []string{"id", "listings", "selections", "lastEdited"}

// PlanStore provides an interface for persisting plans.
type PlanStore interface {
	// List loads every stored plan, ordered by id.
	List() ([]Plan, error)

	// Load loads the plan with the given id.
	// Returns os.ErrNotExist if the plan doesn't exist.
	Load(id string) (Plan, error)

	// Save saves the plan atomically.
	Save(p Plan) error

	// Delete deletes the plan file.
	Delete(id string) error
}

// FilePlanStore implements PlanStore using one JSON file per plan.
type FilePlanStore struct {
	fs       fsops.FS
	plansDir string
	hasher   hash.Hasher
}

// NewFilePlanStore creates a new FilePlanStore. The hasher fills in listing
// hashes when migrating old plans.
func NewFilePlanStore(fs fsops.FS, plansDir string, hasher hash.Hasher) *FilePlanStore {
	return &FilePlanStore{
		fs:       fs,
		plansDir: plansDir,
		hasher:   hasher,
	}
}

func (s *FilePlanStore) planPath(id string) string {
	return filepath.Join(s.plansDir, id+".json")
}

// validatePlanID checks that id is a version 4 UUID.
func validatePlanID(fs fsops.FS, id string) error {
	if err := fs.ValidateIdentifier(id); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.Version() != 4 {
		return fmt.Errorf("%w: %q is not a version 4 UUID", ErrInvalidSchema, id)
	}
	return nil
}

// List loads every stored plan, ordered by id.
func (s *FilePlanStore) List() ([]Plan, error) {
	names, err := s.fs.ListFiles(s.plansDir, ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]Plan, 0, len(names))
	for _, name := range names {
		p, err := s.Load(strings.TrimSuffix(name, ".json"))
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// Load loads, validates and migrates the plan with the given id.
func (s *FilePlanStore) Load(id string) (Plan, error) {
	if err := validatePlanID(s.fs, id); err != nil {
		return Plan{}, err
	}

	data, err := s.fs.ReadFile(s.planPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Plan{}, os.ErrNotExist
		}
		return Plan{}, fmt.Errorf("failed to read plan: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Plan{}, fmt.Errorf("failed to unmarshal plan %s: %w", id, err)
	}
	for _, f := range requiredPlanFields {
		if _, ok := fields[f]; !ok {
			return Plan{}, fmt.Errorf("%w: plan %s has no %q", ErrInvalidSchema, id, f)
		}
	}

	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("failed to unmarshal plan %s: %w", id, err)
	}
	if p.ID != id {
		return Plan{}, fmt.Errorf("%w: file %s holds plan %s", ErrInvalidSchema, id, p.ID)
	}

	migrated, err := Migrate(p, s.hasher)
	if err != nil {
		return Plan{}, err
	}
	return migrated, nil
}

// Save saves the plan atomically.
func (s *FilePlanStore) Save(p Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := s.fs.AtomicWrite(s.planPath(p.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	return nil
}

// Delete deletes the plan file. Deleting a missing plan is not an error.
func (s *FilePlanStore) Delete(id string) error {
	if err := validatePlanID(s.fs, id); err != nil {
		return err
	}

	if err := s.fs.Remove(s.planPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	return nil
}

// MemoryPlanStore implements PlanStore in memory for testing.
type MemoryPlanStore struct {
	plans map[string]Plan
}

// NewMemoryPlanStore creates an empty MemoryPlanStore.
func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{plans: make(map[string]Plan)}
}

// List returns every plan, ordered by id.
func (s *MemoryPlanStore) List() ([]Plan, error) {
	ids := sortedKeys(s.plans)
	plans := make([]Plan, 0, len(ids))
	for _, id := range ids {
		plans = append(plans, s.plans[id].clone())
	}
	return plans, nil
}

// Load returns the plan with the given id.
func (s *MemoryPlanStore) Load(id string) (Plan, error) {
	p, ok := s.plans[id]
	if !ok {
		return Plan{}, os.ErrNotExist
	}
	return p.clone(), nil
}

// Save stores a copy of the plan.
func (s *MemoryPlanStore) Save(p Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.plans[p.ID] = p.clone()
	return nil
}

// Delete removes the plan.
func (s *MemoryPlanStore) Delete(id string) error {
	delete(s.plans, id)
	return nil
}

// PlanNames returns the names of plans, excluding the plan with skipID.
func PlanNames(plans []Plan, skipID string) []string {
	names := make([]string, 0, len(plans))
	for _, p := range plans {
		if p.ID != skipID {
			names = append(names, p.Name)
		}
	}
	return names
}
