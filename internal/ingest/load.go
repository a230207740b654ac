package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/WillCS/uqplanner/internal/timetable"
)

// listingFile is the on-disk shape of an offline listings file.
type listingFile struct {
	Listings []timetable.Listing `json:"listings" yaml:"listings"`
}

// LoadListings reads already shaped listings from a JSON or YAML file,
// chosen by extension (.yaml and .yml are YAML, anything else JSON). The
// file holds either a bare list or an object with a "listings" key.
func LoadListings(path string) ([]timetable.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings file: %w", err)
	}

	listings, err := ParseListings(data, isYAML(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return listings, nil
}

// ParseListings decodes and validates a listings document.
func ParseListings(data []byte, asYAML bool) ([]timetable.Listing, error) {
	var listings []timetable.Listing
	var err error
	if asYAML {
		listings, err = decodeYAML(data)
	} else {
		listings, err = decodeJSON(data)
	}
	if err != nil {
		return nil, err
	}

	if err := timetable.ValidateListings(listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func decodeJSON(data []byte) ([]timetable.Listing, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var listings []timetable.Listing
		if err := json.Unmarshal(data, &listings); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return listings, nil
	}

	var file listingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return file.Listings, nil
}

func decodeYAML(data []byte) ([]timetable.Listing, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var listings []timetable.Listing
		if err := root.Decode(&listings); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return listings, nil
	}

	var file listingFile
	if err := root.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return file.Listings, nil
}
