// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/fitscore/internal/scoring"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Startup tables. Empty paths fall back to the built-in catalog and
	// benchmarks.
	Catalog    string `json:"catalog,omitempty"`    // Path to signal catalog override JSON
	Benchmarks string `json:"benchmarks,omitempty"` // Path to role benchmarks override JSON

	// Verification
	APIKey        string  `json:"api_key,omitempty"`        // Gemini API key
	Verify        bool    `json:"verify,omitempty"`         // Enable verification escalation
	VerifyModel   string  `json:"verify_model,omitempty"`   // Model used for verification
	VerifyTimeout float64 `json:"verify_timeout,omitempty"` // Per-call timeout in seconds
	Tolerance     float64 `json:"tolerance,omitempty"`      // Divergence tolerance for merging

	// Decision banding
	StrongMaybeOffset float64 `json:"strong_maybe_offset,omitempty"`
	MaybeOffset       float64 `json:"maybe_offset,omitempty"`
	BorderlineMargin  float64 `json:"borderline_margin,omitempty"`
	ConfidenceFloor   float64 `json:"confidence_floor,omitempty"`

	// Cache bounds
	CacheMaxEntries int     `json:"cache_max_entries,omitempty"`
	CacheMaxAge     float64 `json:"cache_max_age,omitempty"` // Seconds

	// Batch
	BatchWorkers int `json:"batch_workers,omitempty"`

	// Output
	Verbose  bool `json:"verbose,omitempty"`
	JSONLogs bool `json:"json_logs,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.VerifyTimeout < 0 {
		return fmt.Errorf("config error: 'verify_timeout' must be non-negative")
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("config error: 'tolerance' must be non-negative")
	}
	if c.CacheMaxEntries < 0 {
		return fmt.Errorf("config error: 'cache_max_entries' must be non-negative")
	}
	if c.BatchWorkers < 0 {
		return fmt.Errorf("config error: 'batch_workers' must be non-negative")
	}
	if c.ConfidenceFloor < 0 || c.ConfidenceFloor > 100 {
		return fmt.Errorf("config error: 'confidence_floor' must be within [0,100]")
	}

	for name, path := range map[string]string{"catalog": c.Catalog, "benchmarks": c.Benchmarks} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.Benchmarks == "" {
		result.Benchmarks = defaults.Benchmarks
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.VerifyModel == "" {
		result.VerifyModel = defaults.VerifyModel
	}

	if result.VerifyTimeout == 0 {
		result.VerifyTimeout = defaults.VerifyTimeout
	}
	if result.Tolerance == 0 {
		result.Tolerance = defaults.Tolerance
	}
	if result.StrongMaybeOffset == 0 {
		result.StrongMaybeOffset = defaults.StrongMaybeOffset
	}
	if result.MaybeOffset == 0 {
		result.MaybeOffset = defaults.MaybeOffset
	}
	if result.BorderlineMargin == 0 {
		result.BorderlineMargin = defaults.BorderlineMargin
	}
	if result.ConfidenceFloor == 0 {
		result.ConfidenceFloor = defaults.ConfidenceFloor
	}
	if result.CacheMaxEntries == 0 {
		result.CacheMaxEntries = defaults.CacheMaxEntries
	}
	if result.CacheMaxAge == 0 {
		result.CacheMaxAge = defaults.CacheMaxAge
	}
	if result.BatchWorkers == 0 {
		result.BatchWorkers = defaults.BatchWorkers
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Bands converts the configured banding values into scoring bands, falling
// back to the defaults for any unset field.
func (c *Config) Bands() scoring.Bands {
	bands := scoring.DefaultBands()
	if c.StrongMaybeOffset > 0 {
		bands.StrongMaybeOffset = c.StrongMaybeOffset
	}
	if c.MaybeOffset > 0 {
		bands.MaybeOffset = c.MaybeOffset
	}
	if c.BorderlineMargin > 0 {
		bands.BorderlineMargin = c.BorderlineMargin
	}
	if c.ConfidenceFloor > 0 {
		bands.ConfidenceFloor = c.ConfidenceFloor
	}
	return bands
}

// VerifyTimeoutDuration returns the verification timeout as a duration,
// zero when unset.
func (c *Config) VerifyTimeoutDuration() time.Duration {
	return time.Duration(c.VerifyTimeout * float64(time.Second))
}

// CacheMaxAgeDuration returns the cache age bound as a duration, zero when
// unset.
func (c *Config) CacheMaxAgeDuration() time.Duration {
	return time.Duration(c.CacheMaxAge * float64(time.Second))
}
