// Package config defines report configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// InputPath is the scorecard export to read (.csv or .xlsx).
	InputPath string `koanf:"input_path"`

	// Scope restricts the report to one group; empty means all groups.
	Scope string `koanf:"scope"`

	// Format selects the output: markdown or yaml.
	Format string `koanf:"format"`

	// ReportTitle is the top-level heading.
	ReportTitle string `koanf:"report_title"`

	// Extraction bounds.
	MaxInsights      int `koanf:"max_insights"`
	MinTextLength    int `koanf:"min_text_length"`
	MinInsightLength int `koanf:"min_insight_length"`
	MaxInsightLength int `koanf:"max_insight_length"`
	MatchesPerFamily int `koanf:"matches_per_family"`

	// WorkerCount bounds parallel per-agent processing.
	WorkerCount int `koanf:"worker_count"`

	// FallbackGroup labels records whose group cannot be derived.
	FallbackGroup string `koanf:"fallback_group"`

	// DefaultGroup labels every record when neither a team nor an email
	// column is present.
	DefaultGroup string `koanf:"default_group"`

	// MetricsTextfile, when set, receives a Prometheus textfile dump after
	// the report is written.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// Aliases adds extra column names per canonical key, tried after the
	// built-in ones.
	Aliases map[string][]string `koanf:"aliases"`
}

// New creates a Config with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Format:           FormatMarkdown,
		ReportTitle:      "QA Report",
		MaxInsights:      3,
		MinTextLength:    10,
		MinInsightLength: 20,
		MaxInsightLength: 200,
		MatchesPerFamily: 2,
		WorkerCount:      runtime.NumCPU(),
		FallbackGroup:    "Unknown",
		DefaultGroup:     "Default Team",
		Aliases:          map[string][]string{},
	}
}

// Validate checks value ranges; every failure wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case FormatMarkdown, FormatYAML:
	default:
		return fmt.Errorf("%w: format %q must be markdown or yaml", ErrInvalidConfig, c.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.MaxInsights < 1 {
		return fmt.Errorf("%w: max_insights must be at least 1", ErrInvalidConfig)
	}
	if c.MinTextLength < 0 {
		return fmt.Errorf("%w: min_text_length must not be negative", ErrInvalidConfig)
	}
	if c.MinInsightLength < 0 || c.MaxInsightLength < c.MinInsightLength {
		return fmt.Errorf("%w: insight length bounds [%d, %d] are invalid",
			ErrInvalidConfig, c.MinInsightLength, c.MaxInsightLength)
	}
	if c.MatchesPerFamily < 1 {
		return fmt.Errorf("%w: matches_per_family must be at least 1", ErrInvalidConfig)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be at least 1", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.FallbackGroup) == "" || strings.TrimSpace(c.DefaultGroup) == "" {
		return fmt.Errorf("%w: group labels must not be empty", ErrInvalidConfig)
	}
	return nil
}
