package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillCS/uqplanner/internal/fsops"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(fsops.NewRealFS(), filepath.Join(t.TempDir(), "session.json"))

	current, err := store.Current()
	require.NoError(t, err)
	assert.Empty(t, current, "no session file means no current plan")

	require.NoError(t, store.SetCurrent(planA, created))
	current, err = store.Current()
	require.NoError(t, err)
	assert.Equal(t, planA, current)

	require.NoError(t, store.SetCurrent("", created))
	current, err = store.Current()
	require.NoError(t, err)
	assert.Empty(t, current)
}

func TestMemorySessionStore(t *testing.T) {
	var sessions Sessions = NewMemorySessionStore()

	require.NoError(t, sessions.SetCurrent(planB, created))
	current, err := sessions.Current()
	require.NoError(t, err)
	assert.Equal(t, planB, current)
}
