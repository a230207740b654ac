package state

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/WillCS/uqplanner/internal/fsops"
)

// Session records which plan commands operate on by default.
type Session struct {
	CurrentPlan string    `json:"currentPlan"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Sessions tracks the current plan.
type Sessions interface {
	// Current returns the current plan id, or "" when none is set.
	Current() (string, error)

	// SetCurrent makes id the current plan. An empty id clears it.
	SetCurrent(id string, now time.Time) error
}

// SessionStore persists the Session in a single file.
type SessionStore struct {
	fs   fsops.FS
	path string
}

// NewSessionStore creates a SessionStore backed by the file at path.
func NewSessionStore(fs fsops.FS, path string) *SessionStore {
	return &SessionStore{fs: fs, path: path}
}

// Current returns the current plan id, or "" when none is set.
func (s *SessionStore) Current() (string, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return "", fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session.CurrentPlan, nil
}

// SetCurrent makes id the current plan. An empty id clears the selection.
func (s *SessionStore) SetCurrent(id string, now time.Time) error {
	data, err := json.MarshalIndent(Session{CurrentPlan: id, UpdatedAt: now}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.fs.AtomicWrite(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// MemorySessionStore implements Sessions in memory for testing.
type MemorySessionStore struct {
	current string
}

// NewMemorySessionStore creates a MemorySessionStore with no current plan.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

// Current returns the current plan id.
func (s *MemorySessionStore) Current() (string, error) {
	return s.current, nil
}

// SetCurrent records id as the current plan.
func (s *MemorySessionStore) SetCurrent(id string, _ time.Time) error {
	s.current = id
	return nil
}
