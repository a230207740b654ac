package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillCS/uqplanner/internal/fsops"
	"github.com/WillCS/uqplanner/internal/hash"
)

func newTestStore(t *testing.T) (*FilePlanStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "plans")
	hasher := hash.NewFakeHasher()
	hasher.SetHash("CSSE1001", "migrated")
	return NewFilePlanStore(fsops.NewRealFS(), dir, hasher), dir
}

func TestFilePlanStore_SaveLoad(t *testing.T) {
	store, dir := newTestStore(t)

	p := NewPlan(planA, 2020, 2, created, nil).AddListing(csse1001()).MarkSaved(created)
	require.NoError(t, store.Save(p))

	_, err := os.Stat(filepath.Join(dir, planA+".json"))
	require.NoError(t, err)

	loaded, err := store.Load(planA)
	require.NoError(t, err)
	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, p.Selections, loaded.Selections)
	require.Len(t, loaded.Listings, 1)
	assert.Equal(t, "h1", loaded.Listings[0].Hash)
	assert.Equal(t, "11", loaded.Listings[0].Components[0].Streams[0].Occurrences[0].WeekPresence.String())
}

func TestFilePlanStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(planB)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilePlanStore_ListAndDelete(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, store.Save(NewPlan(planB, 2020, 2, created, nil)))
	require.NoError(t, store.Save(NewPlan(planA, 2020, 1, created, nil)))
	// stray files are ignored by extension
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	plans, err := store.List()
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, planA, plans[0].ID)
	assert.Equal(t, planB, plans[1].ID)
	assert.Equal(t, []string{"Semester 1 Timetable"}, PlanNames(plans, planB))

	require.NoError(t, store.Delete(planA))
	require.NoError(t, store.Delete(planA), "deleting twice is fine")

	plans, err = store.List()
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestFilePlanStore_SaveRejectsInvalid(t *testing.T) {
	store, _ := newTestStore(t)

	p := NewPlan("not-a-uuid", 2020, 2, created, nil)
	assert.ErrorIs(t, store.Save(p), ErrInvalidPlan)
}

func TestFilePlanStore_LoadValidatesSchema(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, os.MkdirAll(dir, 0755))

	write := func(name string, doc map[string]any) {
		data, err := json.Marshal(doc)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), data, 0644))
	}

	t.Run("missing field", func(t *testing.T) {
		write(planA, map[string]any{"id": planA, "listings": []any{}, "lastEdited": created})
		_, err := store.Load(planA)
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("id mismatch", func(t *testing.T) {
		write(planA, map[string]any{"id": planB, "listings": []any{}, "selections": map[string]any{}, "lastEdited": created})
		_, err := store.Load(planA)
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("non uuid file name", func(t *testing.T) {
		_, err := store.Load("timetableData")
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("version 1 uuid", func(t *testing.T) {
		_, err := store.Load("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("traversal", func(t *testing.T) {
		_, err := store.Load("../" + planA)
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("listing fails with a bad plan", func(t *testing.T) {
		write(planB, map[string]any{"id": planB})
		_, err := store.List()
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})
}

func TestFilePlanStore_LoadMigrates(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, os.MkdirAll(dir, 0755))

	old := NewPlan(planA, 2019, 2, created, nil).AddListing(csse1001())
	old.SchemaVersion = 1
	old.Listings[0].Hash = ""
	data, err := json.Marshal(old)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, planA+".json"), data, 0644))

	loaded, err := store.Load(planA)
	require.NoError(t, err)
	assert.Equal(t, 2020, loaded.Year)
	assert.Equal(t, SchemaVersion, loaded.SchemaVersion)
	assert.Equal(t, "migrated", loaded.Listings[0].Hash)
}

func TestMigrate_CurrentSchemaUntouched(t *testing.T) {
	p := NewPlan(planA, 2021, 1, created, nil).AddListing(csse1001())

	migrated, err := Migrate(p, hash.NewFakeHasher())
	require.NoError(t, err)
	assert.Equal(t, "h1", migrated.Listings[0].Hash)
	assert.Equal(t, 2021, migrated.Year)
}

func TestMemoryPlanStore(t *testing.T) {
	store := NewMemoryPlanStore()

	p := NewPlan(planA, 2020, 2, created, nil)
	require.NoError(t, store.Save(p))

	loaded, err := store.Load(planA)
	require.NoError(t, err)
	assert.Equal(t, p.Name, loaded.Name)

	loaded.Selections["X"] = map[string]int{"Y": 1}
	again, _ := store.Load(planA)
	assert.NotContains(t, again.Selections, "X", "stored copy must be isolated")

	require.NoError(t, store.Delete(planA))
	_, err = store.Load(planA)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
