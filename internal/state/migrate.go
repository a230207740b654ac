package state

import (
	"fmt"

	"github.com/WillCS/uqplanner/internal/hash"
)

// Migrate upgrades a plan to SchemaVersion. Plans from 2019 are relabelled
// as 2020; the 2019 timetable data was never published.
func Migrate(p Plan, hasher hash.Hasher) (Plan, error) {
	out := p.clone()
	if out.Year == 2019 {
		out.Year = 2020
	}

	if out.SchemaVersion < 2 {
		for i, l := range out.Listings {
			hashed, err := hash.WithHash(hasher, l)
			if err != nil {
				return Plan{}, fmt.Errorf("failed to migrate plan %s: %w", p.ID, err)
			}
			out.Listings[i] = hashed
		}
		out.SchemaVersion = 2
	}
	return out, nil
}
