package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/WillCS/uqplanner/internal/clock"
	"github.com/WillCS/uqplanner/internal/config"
	"github.com/WillCS/uqplanner/internal/engine"
	"github.com/WillCS/uqplanner/internal/fsops"
	"github.com/WillCS/uqplanner/internal/hash"
	"github.com/WillCS/uqplanner/internal/ingest"
	"github.com/WillCS/uqplanner/internal/logging"
	"github.com/WillCS/uqplanner/internal/state"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	logger := logging.Stderr(settings.LogLevel, verbose)
	fs := fsops.NewRealFS()
	hasher := hash.NewSHA256Hasher()
	clk := &clock.RealClock{}
	plans := state.NewFilePlanStore(fs, paths.Plans, hasher)
	sessions := state.NewSessionStore(fs, paths.Session)
	fetcher := ingest.NewClient(settings.FeedURL, settings.FeedTimeout, logger)

	logger.Debug().Str("root", paths.Root).Str("feed", settings.FeedURL).Msg("engine ready")
	return engine.New(plans, sessions, fetcher, hasher, clk, logger, settings), nil
}

// formatJSON formats a value as JSON.
func formatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseStream parses a one-based stream number into a stream index.
func parseStream(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: stream must be a number from 1, got %q", engine.ErrValidation, arg)
	}
	return n - 1, nil
}
