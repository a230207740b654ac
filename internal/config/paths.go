// Package config manages uqplanner configuration and filesystem paths.
//
// Paths locate the plan files and the session file; the default root is
// ~/.uqplanner/ containing plans/ and session.json. Settings carry the
// tunables read from UQPLANNER_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by uqplanner.
type Paths struct {
	// Root is the base directory for all uqplanner data (default: ~/.uqplanner)
	Root string

	// Plans is the directory containing one JSON file per plan
	Plans string

	// Session is the file recording the current plan
	Session string
}

// DefaultPaths returns the default paths for uqplanner.
// Paths can be overridden with environment variables:
// - UQPLANNER_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("UQPLANNER_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".uqplanner")
	}

	return PathsAt(root), nil
}

// PathsAt returns the paths rooted at root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:    root,
		Plans:   filepath.Join(root, "plans"),
		Session: filepath.Join(root, "session.json"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.Plans} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
