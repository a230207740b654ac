package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.engine.NewPlan(ctx, &NewPlanRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Semester 2 Timetable", first.Plan.Name)
	assert.Equal(t, 2020, first.Plan.Year)
	assert.Equal(t, testNow, first.Plan.LastEdited)
	assert.False(t, first.Plan.Dirty)
	assert.True(t, first.Current)

	current, err := env.sessions.Current()
	require.NoError(t, err)
	assert.Equal(t, first.Plan.ID, current)

	second, err := env.engine.NewPlan(ctx, &NewPlanRequest{KeepCurrent: true})
	require.NoError(t, err)
	assert.Equal(t, "Semester 2 Timetable 2", second.Plan.Name)
	assert.False(t, second.Current)

	current, err = env.sessions.Current()
	require.NoError(t, err)
	assert.Equal(t, first.Plan.ID, current, "KeepCurrent must not switch plans")

	named, err := env.engine.NewPlan(ctx, &NewPlanRequest{Name: "Summer", Year: 2021, Semester: 3})
	require.NoError(t, err)
	assert.Equal(t, "Summer", named.Plan.Name)
	assert.Equal(t, 2021, named.Plan.Year)
	assert.Equal(t, 3, named.Plan.Semester)
}

func TestNewPlan_InvalidSemester(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.NewPlan(context.Background(), &NewPlanRequest{Semester: 4})
	require.ErrorIs(t, err, ErrValidation)
}

func TestListPlans(t *testing.T) {
	env := newTestEnv(t)
	env.addPlan(t, planB)
	env.addPlan(t, planA, csse1001())

	result, err := env.engine.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Plans, 2)
	assert.Equal(t, planA, result.CurrentPlan)

	assert.Equal(t, planA, result.Plans[0].ID)
	assert.True(t, result.Plans[0].Current)
	assert.Equal(t, []string{"CSSE1001"}, result.Plans[0].Listings)
	assert.False(t, result.Plans[1].Current)
	assert.Empty(t, result.Plans[1].Listings)
}

func TestShowAndUsePlan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addPlan(t, planB)
	env.addPlan(t, planA)

	shown, err := env.engine.ShowPlan(ctx, planB)
	require.NoError(t, err)
	assert.Equal(t, planB, shown.Plan.ID)
	assert.False(t, shown.Current)

	used, err := env.engine.UsePlan(ctx, "9f1c")
	require.NoError(t, err)
	assert.True(t, used.Current)

	current, err := env.sessions.Current()
	require.NoError(t, err)
	assert.Equal(t, planB, current)

	_, err = env.engine.UsePlan(ctx, "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeletePlan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addPlan(t, planB)
	env.addPlan(t, planA)

	result, err := env.engine.DeletePlan(ctx, planB)
	require.NoError(t, err)
	assert.False(t, result.WasCurrent)

	result, err = env.engine.DeletePlan(ctx, planA)
	require.NoError(t, err)
	assert.True(t, result.WasCurrent)

	current, err := env.sessions.Current()
	require.NoError(t, err)
	assert.Empty(t, current)

	plans, err := env.plans.List()
	require.NoError(t, err)
	assert.Empty(t, plans)

	_, err = env.engine.DeletePlan(ctx, planA)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRenamePlan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addPlan(t, planA)

	renamed, err := env.engine.RenamePlan(ctx, &RenamePlanRequest{Name: "Mine"})
	require.NoError(t, err)
	assert.Equal(t, "Mine", renamed.Plan.Name)

	restored, err := env.engine.RenamePlan(ctx, &RenamePlanRequest{PlanID: planA})
	require.NoError(t, err)
	assert.Equal(t, "Semester 2 Timetable", restored.Plan.Name)

	stored, err := env.plans.Load(planA)
	require.NoError(t, err)
	assert.Equal(t, "Semester 2 Timetable", stored.Name)
}

func TestSetSemester(t *testing.T) {
	env := newTestEnv(t)
	env.addPlan(t, planA, csse1001())

	result, err := env.engine.SetSemester(context.Background(), &SetSemesterRequest{Year: 2021, Semester: 1})
	require.NoError(t, err)
	assert.Equal(t, 2021, result.Plan.Year)
	assert.Equal(t, 1, result.Plan.Semester)
	assert.Equal(t, "Semester 1 Timetable", result.Plan.Name)
	assert.Empty(t, result.Plan.Listings)
	assert.True(t, result.Plan.WasEmpty)
}
