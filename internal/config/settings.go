package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// EnvPrefix prefixes every settings variable, e.g. UQPLANNER_LOG_LEVEL.
const EnvPrefix = "UQPLANNER"

// Settings holds the tunables read from the environment.
type Settings struct {
	// LogLevel is a zerolog level name
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// FeedURL is the timetable proxy; endpoints are addressed as FeedURL?/name
	FeedURL     string        `envconfig:"FEED_URL" default:"https://lingering-bush-c27d.late-night.workers.dev" validate:"required,url"`
	FeedTimeout time.Duration `envconfig:"FEED_TIMEOUT" default:"20s" validate:"gt=0"`

	// HTTPAddr is where "serve" listens
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080" validate:"required"`

	// SearchMaxNodes caps optimizer nodes per request (0: unlimited)
	SearchMaxNodes int `envconfig:"SEARCH_MAX_NODES" default:"0" validate:"min=0"`

	// SearchTimeout bounds a single optimizer run (0: no deadline)
	SearchTimeout time.Duration `envconfig:"SEARCH_TIMEOUT" default:"30s" validate:"min=0"`

	// Defaults for new plans and listing lookups
	DefaultYear     int    `envconfig:"DEFAULT_YEAR" default:"2020" validate:"min=2000"`
	DefaultSemester int    `envconfig:"DEFAULT_SEMESTER" default:"2" validate:"min=1,max=3"`
	DefaultCampus   string `envconfig:"DEFAULT_CAMPUS" default:"STLUC" validate:"required"`
	DefaultMode     string `envconfig:"DEFAULT_MODE" default:"IN" validate:"oneof=IN EX FD"`
}

var settingsValidate = validator.New()

// LoadSettings reads UQPLANNER_* environment variables over the defaults.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks field ranges and the log level name.
func (s *Settings) Validate() error {
	if err := settingsValidate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if _, err := zerolog.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid settings: log level %q: %w", s.LogLevel, err)
	}
	return nil
}

// DefaultSettings returns the settings used when no variables are set.
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:        "info",
		FeedURL:         "https://lingering-bush-c27d.late-night.workers.dev",
		FeedTimeout:     20 * time.Second,
		HTTPAddr:        ":8080",
		SearchTimeout:   30 * time.Second,
		DefaultYear:     2020,
		DefaultSemester: 2,
		DefaultCampus:   "STLUC",
		DefaultMode:     "IN",
	}
}
