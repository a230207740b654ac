package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillCS/uqplanner/internal/timetable"
)

func TestOptimize_FromPlan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addPlan(t, planA, csse1001())

	result, err := env.engine.Optimize(ctx, &OptimizeRequest{})
	require.NoError(t, err)
	require.True(t, result.Schedule.Found)
	assert.Equal(t, planA, result.PlanID)
	assert.False(t, result.Applied)
	assert.Equal(t, 2, result.Schedule.DayCount)
	assert.Equal(t, []timetable.Weekday{0, 1}, result.Schedule.Days)
	assert.Equal(t, map[string]map[string]int{"CSSE1001": {"LEC1": 0, "TUT1": 1}}, result.Schedule.Selections())

	stored, err := env.plans.Load(planA)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Selections["CSSE1001"]["TUT1"], "selections change only with Apply")
}

func TestOptimize_Apply(t *testing.T) {
	env := newTestEnv(t)
	env.addPlan(t, planA, csse1001())

	result, err := env.engine.Optimize(context.Background(), &OptimizeRequest{Apply: true})
	require.NoError(t, err)
	assert.True(t, result.Applied)

	stored, err := env.plans.Load(planA)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Selections["CSSE1001"]["TUT1"])
	assert.Equal(t, testNow, stored.LastEdited)
}

func TestOptimize_LectureOverlap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	listings := []timetable.Listing{math1051(), csse1001()}

	strict, err := env.engine.Optimize(ctx, &OptimizeRequest{Listings: listings, MinDays: 1, MaxDays: 1})
	require.NoError(t, err)
	assert.False(t, strict.Schedule.Found)

	relaxed, err := env.engine.Optimize(ctx, &OptimizeRequest{
		Listings:            listings,
		MinDays:             1,
		MaxDays:             1,
		AllowLectureOverlap: true,
	})
	require.NoError(t, err)
	require.True(t, relaxed.Schedule.Found)
	assert.Equal(t, []timetable.Weekday{0}, relaxed.Schedule.Days)
	assert.Empty(t, relaxed.PlanID)
}

func TestOptimize_ListingsFile(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "listings.yaml")
	data := `
- name: PHYS1001
  components:
    - name: LEC1
      streams:
        - streamId: "01"
          occurrences:
            - weekday: 2
              start: {hours: 9, minutes: 0}
              end: {hours: 10, minutes: 0}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	result, err := env.engine.Optimize(context.Background(), &OptimizeRequest{ListingsFile: path})
	require.NoError(t, err)
	require.True(t, result.Schedule.Found)
	assert.Equal(t, []timetable.Weekday{2}, result.Schedule.Days)
}

func TestOptimize_Budget(t *testing.T) {
	env := newTestEnv(t)
	env.settings.SearchMaxNodes = 1
	env.addPlan(t, planA, csse1001())

	result, err := env.engine.Optimize(context.Background(), &OptimizeRequest{})
	require.NoError(t, err)
	assert.True(t, result.Schedule.Truncated)
	assert.False(t, result.Schedule.Found)

	override, err := env.engine.Optimize(context.Background(), &OptimizeRequest{MaxNodes: 1000})
	require.NoError(t, err)
	assert.True(t, override.Schedule.Found)
}

func TestOptimize_Cancelled(t *testing.T) {
	env := newTestEnv(t)
	env.addPlan(t, planA, csse1001())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.engine.Optimize(ctx, &OptimizeRequest{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptimize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     OptimizeRequest
		withPlan bool
		errIs   error
	}{
		{"no current plan", OptimizeRequest{}, false, ErrNoCurrentPlan},
		{"apply raw listings", OptimizeRequest{Listings: []timetable.Listing{csse1001()}, Apply: true}, false, ErrValidation},
		{"invalid listing", OptimizeRequest{Listings: []timetable.Listing{{Name: "EMPTY"}}}, false, ErrValidation},
		{"bad day range", OptimizeRequest{MinDays: 3, MaxDays: 2}, true, ErrValidation},
		{"empty plan", OptimizeRequest{}, true, ErrValidation},
		{"missing file", OptimizeRequest{ListingsFile: "does-not-exist.json"}, false, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.withPlan {
				env.addPlan(t, planA)
			}
			_, err := env.engine.Optimize(context.Background(), &tt.req)
			require.ErrorIs(t, err, tt.errIs)
		})
	}
}
