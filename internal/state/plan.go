package state

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/WillCS/uqplanner/internal/timetable"
)

// SchemaVersion is the plan schema written by this version. Version 1 plans
// predate listing hashes.
const SchemaVersion = 2

// Selections maps listing name to component name to chosen stream index.
type Selections map[string]map[string]int

// Plan is a timetable being planned for one term.
type Plan struct {
	// ID is a version 4 UUID, also used as the file name
	ID string `json:"id" validate:"required,uuid4"`

	// Name is shown to the user; it defaults from the semester
	Name string `json:"name"`

	Year int `json:"year" validate:"min=2000"`

	// Semester is 1 or 2, or 3 for summer
	Semester int `json:"semester" validate:"min=1,max=3"`

	// Listings are the courses added to the plan, in the order they were added
	Listings []timetable.Listing `json:"listings"`

	// Selections holds the stream chosen for each listing's components
	Selections Selections `json:"selections"`

	// LastEdited is when the plan was last saved
	LastEdited time.Time `json:"lastEdited"`

	// Dirty is set when the plan has changes not yet saved
	Dirty bool `json:"isDirty"`

	// WasEmpty records whether the plan had no listings when last saved
	WasEmpty bool `json:"wasEmpty"`

	SchemaVersion int `json:"schemaVersion"`
}

var planValidate = validator.New()

// NewPlanID returns a fresh plan id.
func NewPlanID() string {
	return uuid.NewString()
}

// NewPlan creates an empty plan named after its semester. taken lists the
// names of existing plans so the default name stays unique.
func NewPlan(id string, year, semester int, now time.Time, taken []string) Plan {
	return Plan{
		ID:            id,
		Name:          DefaultPlanName(semester, taken),
		Year:          year,
		Semester:      semester,
		Listings:      []timetable.Listing{},
		Selections:    Selections{},
		LastEdited:    now,
		Dirty:         false,
		WasEmpty:      true,
		SchemaVersion: SchemaVersion,
	}
}

// DefaultPlanName returns "Semester N Timetable" (or "Semester 3 Draft
// Timetable" for summer), suffixed with " 2", " 3", ... until it is not in
// taken.
func DefaultPlanName(semester int, taken []string) string {
	base := fmt.Sprintf("Semester %d Timetable", semester)
	if semester == 3 {
		base = fmt.Sprintf("Semester %d Draft Timetable", semester)
	}

	name := base
	for n := 2; slices.Contains(taken, name); n++ {
		name = fmt.Sprintf("%s %d", base, n)
	}
	return name
}

// Validate checks the plan's identity and term fields.
func (p Plan) Validate() error {
	if err := planValidate.Struct(p); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidPlan, p.ID, err)
	}
	return nil
}

// clone copies the parts of the plan transformations modify. Listings are
// shared since nothing mutates them.
func (p Plan) clone() Plan {
	out := p
	out.Listings = slices.Clone(p.Listings)
	if out.Listings == nil {
		out.Listings = []timetable.Listing{}
	}
	out.Selections = make(Selections, len(p.Selections))
	for listing, components := range p.Selections {
		inner := make(map[string]int, len(components))
		for component, stream := range components {
			inner[component] = stream
		}
		out.Selections[listing] = inner
	}
	return out
}

// Listing returns the listing with the given name.
func (p Plan) Listing(name string) (timetable.Listing, bool) {
	for _, l := range p.Listings {
		if l.Name == name {
			return l, true
		}
	}
	return timetable.Listing{}, false
}

// HasListing reports whether a listing with the given name is in the plan.
func (p Plan) HasListing(name string) bool {
	_, ok := p.Listing(name)
	return ok
}

// AddListing appends a listing and selects stream 0 of each component.
// Adding a name already in the plan changes nothing.
func (p Plan) AddListing(l timetable.Listing) Plan {
	if p.HasListing(l.Name) {
		return p.clone()
	}

	out := p.clone()
	out.Listings = append(out.Listings, l)
	if _, ok := out.Selections[l.Name]; !ok {
		seeded := make(map[string]int, len(l.Components))
		for _, c := range l.Components {
			seeded[c.Name] = 0
		}
		out.Selections[l.Name] = seeded
	}
	out.Dirty = true
	return out
}

// RemoveListing drops a listing and its selections.
func (p Plan) RemoveListing(name string) Plan {
	out := p.clone()
	out.Listings = slices.DeleteFunc(out.Listings, func(l timetable.Listing) bool {
		return l.Name == name
	})
	delete(out.Selections, name)
	out.Dirty = true
	return out
}

// Select chooses a stream for one component of a listing.
func (p Plan) Select(listingName, componentName string, stream int) (Plan, error) {
	listing, ok := p.Listing(listingName)
	if !ok {
		return Plan{}, fmt.Errorf("%w: %s", ErrUnknownListing, listingName)
	}
	component, ok := listing.Component(componentName)
	if !ok {
		return Plan{}, fmt.Errorf("%w: %s %s", ErrUnknownComponent, listingName, componentName)
	}
	if stream < 0 || stream >= len(component.Streams) {
		return Plan{}, fmt.Errorf("%w: %s %s has %d streams, got %d",
			ErrStreamOutOfRange, listingName, componentName, len(component.Streams), stream)
	}

	out := p.clone()
	if out.Selections[listingName] == nil {
		out.Selections[listingName] = make(map[string]int)
	}
	out.Selections[listingName][componentName] = stream
	out.Dirty = true
	return out, nil
}

// ApplySelections chooses every stream in sel, failing without changes if
// any of them is invalid.
func (p Plan) ApplySelections(sel Selections) (Plan, error) {
	out := p
	for _, listingName := range sortedKeys(sel) {
		components := sel[listingName]
		for _, componentName := range sortedKeys(components) {
			next, err := out.Select(listingName, componentName, components[componentName])
			if err != nil {
				return Plan{}, err
			}
			out = next
		}
	}
	return out, nil
}

// Rename sets the plan's name. An empty name restores the default one.
func (p Plan) Rename(name string, taken []string) Plan {
	out := p.clone()
	if name == "" {
		name = DefaultPlanName(p.Semester, taken)
	}
	out.Name = name
	out.Dirty = true
	return out
}

// SetSemester moves the plan to another term. Listings only make sense for
// the term they were fetched for, so they are cleared along with selections.
func (p Plan) SetSemester(year, semester int, taken []string) Plan {
	out := p.clone()
	out.Year = year
	out.Semester = semester
	out.Listings = []timetable.Listing{}
	out.Selections = Selections{}
	out.Name = DefaultPlanName(semester, taken)
	out.Dirty = true
	return out
}

// MarkSaved records a save at now.
func (p Plan) MarkSaved(now time.Time) Plan {
	out := p.clone()
	if out.Name == "" {
		out.Name = DefaultPlanName(p.Semester, nil)
	}
	out.Dirty = false
	out.LastEdited = now
	out.WasEmpty = len(out.Listings) == 0
	return out
}

// ReplaceListings swaps in new versions of listings already in the plan.
// Selections of a replaced listing reset to stream 0.
func (p Plan) ReplaceListings(changed []timetable.Listing) Plan {
	out := p
	for _, l := range changed {
		out = out.RemoveListing(l.Name).AddListing(l)
	}
	return out.clone()
}

// ChangedListings returns the refreshed listings whose hash differs from the
// stored listing of the same name. Listings not in the plan are ignored.
func (p Plan) ChangedListings(refreshed []timetable.Listing) []timetable.Listing {
	changed := []timetable.Listing{}
	for _, r := range refreshed {
		existing, ok := p.Listing(r.Name)
		if !ok {
			continue
		}
		if existing.Hash != r.Hash {
			changed = append(changed, r)
		}
	}
	return changed
}

// ScheduledSessions projects the selected streams into scheduled
// occurrences, in listing then component order. Components without a
// selection are left out.
func (p Plan) ScheduledSessions() ([]timetable.ScheduledOccurrence, error) {
	sessions := []timetable.ScheduledOccurrence{}
	for _, l := range p.Listings {
		chosen := p.Selections[l.Name]
		for _, c := range l.Components {
			stream, ok := chosen[c.Name]
			if !ok {
				continue
			}
			scheduled, err := l.Scheduled(c.Name, stream)
			if err != nil {
				return nil, fmt.Errorf("failed to project selection: %w", err)
			}
			sessions = append(sessions, scheduled...)
		}
	}
	return sessions, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
