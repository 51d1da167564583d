package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ReportSettings controls how a sweep report is built and rendered. All
// fields have working defaults; an operator only writes a settings file to
// extend the denylist or change the displayed columns.
type ReportSettings struct {
	// Accounting selects the scheduler accounting backend: "sacct" queries
	// the cluster, "mock" serves canned records (demos and tests).
	Accounting string `yaml:"accounting"`

	// Workers bounds how many accounting queries run at once.
	Workers int `yaml:"max_workers"`

	// PadWidth is the zero-padding width used in log file names. It must
	// match the width used at submission time.
	PadWidth int `yaml:"pad_width"`

	// ExcerptLimit caps the error excerpt length in characters.
	ExcerptLimit int `yaml:"excerpt_limit"`

	// Columns picks configuration-row positions to show, with their labels.
	Columns []ColumnSelector `yaml:"columns"`

	// Denylist lists known-benign diagnostic lines to skip when hunting
	// for a meaningful error line.
	Denylist []MatcherConfig `yaml:"denylist"`
}

// ColumnSelector maps a 1-based configuration-row field position to a
// human-readable column label.
type ColumnSelector struct {
	Label    string `yaml:"label"`
	Position int    `yaml:"position"`
}

// MatcherConfig defines one denylist matcher by kind plus kind-specific
// parameters (decoded by the excerpt package).
type MatcherConfig struct {
	Kind   string         `yaml:"type"`
	Params map[string]any `yaml:"config"`
}

// Known-benign lines written by the HDF5 conversion toolchain on every run.
const (
	benignCompressionWarning = "compression may not be available on all installations of HDF5"
	benignDataIOTrace        = "data = H5DataIO("
)

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() *ReportSettings {
	return &ReportSettings{
		Accounting:   "sacct",
		Workers:      4,
		PadWidth:     3,
		ExcerptLimit: 50,
		Columns: []ColumnSelector{
			{Label: "Chunk", Position: 1},
			{Label: "Compression", Position: 2},
			{Label: "Level", Position: 5},
		},
		Denylist: []MatcherConfig{
			{Kind: "substring", Params: map[string]any{"value": benignCompressionWarning}},
			{Kind: "substring", Params: map[string]any{"value": benignDataIOTrace}},
		},
	}
}

// LoadReportSettings reads settings from a YAML file. Fields left unset fall
// back to their defaults, so a settings file may carry only the overrides.
func LoadReportSettings(path string) (*ReportSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Validate checks that the settings are usable.
func (s *ReportSettings) Validate() error {
	switch s.Accounting {
	case "sacct", "mock":
	default:
		return fmt.Errorf("unknown accounting backend: %q (supported: sacct, mock)", s.Accounting)
	}
	if s.Workers < 1 {
		return fmt.Errorf("max_workers must be at least 1, got %d", s.Workers)
	}
	if s.PadWidth < 1 {
		return fmt.Errorf("pad_width must be at least 1, got %d", s.PadWidth)
	}
	if s.ExcerptLimit < 1 {
		return fmt.Errorf("excerpt_limit must be at least 1, got %d", s.ExcerptLimit)
	}
	for i, col := range s.Columns {
		if col.Position < 1 {
			return fmt.Errorf("column %d (%q): position must be 1-based, got %d", i, col.Label, col.Position)
		}
	}
	return nil
}
