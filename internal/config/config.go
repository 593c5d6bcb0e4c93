// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Default values applied by MergeWithDefaults.
const (
	DefaultPort         = 8080
	DefaultCacheSize    = 512
	DefaultMaxBodyBytes = 1 << 20 // 1 MiB
	DefaultMaxBatchJobs = 20
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or environment variables.
type Config struct {
	// Server
	Port         int   `json:"port,omitempty" validate:"min=0,max=65535"`
	MaxBodyBytes int64 `json:"max_body_bytes,omitempty" validate:"min=0"`
	MaxBatchJobs int   `json:"max_batch_jobs,omitempty" validate:"min=0,max=100"`
	CacheSize    int   `json:"cache_size,omitempty" validate:"min=0"` // 0 disables the result cache

	// Matching
	CatalogPath      string `json:"catalog_path,omitempty"`      // .json or .toml keyword catalog; empty uses the built-in list
	SimulatedLatency string `json:"simulated_latency,omitempty"` // Go duration, e.g. "1.5s"

	// Recommendations
	CourseKeywords []string `json:"course_keywords,omitempty" validate:"dive,required"` // missing keywords that suggest the course; nil uses the built-in set

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL; empty disables analysis history

	// Logging
	LogJSON bool `json:"log_json,omitempty"`
	Debug   bool `json:"debug,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:         DefaultPort,
		MaxBodyBytes: DefaultMaxBodyBytes,
		MaxBatchJobs: DefaultMaxBatchJobs,
		CacheSize:    DefaultCacheSize,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// ApplyEnv overrides fields from environment variables found by lookup
// (os.LookupEnv in production). Unparseable numbers are reported, not ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	if v, ok := lookup("PORT"); ok && v != "" {
		if n, err := strconv.Atoi(v); err != nil {
			errs = append(errs, fmt.Errorf("PORT: %w", err))
		} else {
			c.Port = n
		}
	}
	if v, ok := lookup("CACHE_SIZE"); ok && v != "" {
		if n, err := strconv.Atoi(v); err != nil {
			errs = append(errs, fmt.Errorf("CACHE_SIZE: %w", err))
		} else {
			c.CacheSize = n
		}
	}
	if v, ok := lookup("DATABASE_URL"); ok && v != "" {
		c.DatabaseURL = v
	}
	if v, ok := lookup("CATALOG_PATH"); ok && v != "" {
		c.CatalogPath = v
	}
	if v, ok := lookup("SIMULATED_LATENCY"); ok && v != "" {
		c.SimulatedLatency = v
	}
	if v, ok := lookup("COURSE_KEYWORDS"); ok && v != "" {
		c.CourseKeywords = splitList(v)
	}
	if v, ok := lookup("LOG_JSON"); ok && v != "" {
		if b, err := strconv.ParseBool(v); err != nil {
			errs = append(errs, fmt.Errorf("LOG_JSON: %w", err))
		} else {
			c.LogJSON = b
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Debug = v == "debug"
	}

	return errors.Join(errs...)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	var errs []error

	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = append(errs, fmt.Errorf("config error: '%s' failed '%s=%s'", fe.Field(), fe.Tag(), fe.Param()))
			}
		} else {
			errs = append(errs, err)
		}
	}

	if c.SimulatedLatency != "" {
		d, err := time.ParseDuration(c.SimulatedLatency)
		if err != nil {
			errs = append(errs, fmt.Errorf("config error: 'simulated_latency' is not a duration: %w", err))
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("config error: 'simulated_latency' must be non-negative"))
		}
	}

	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath))
		}
	}

	return errors.Join(errs...)
}

// Latency returns the parsed simulated latency, or zero when unset or invalid.
// Call Validate first to surface parse errors.
func (c *Config) Latency() time.Duration {
	if c.SimulatedLatency == "" {
		return 0
	}
	d, err := time.ParseDuration(c.SimulatedLatency)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxBodyBytes == 0 {
		result.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if result.MaxBatchJobs == 0 {
		result.MaxBatchJobs = defaults.MaxBatchJobs
	}
	if result.CacheSize == 0 {
		result.CacheSize = defaults.CacheSize
	}
	if result.CatalogPath == "" {
		result.CatalogPath = defaults.CatalogPath
	}
	if result.SimulatedLatency == "" {
		result.SimulatedLatency = defaults.SimulatedLatency
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CourseKeywords == nil {
		result.CourseKeywords = defaults.CourseKeywords
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (flags and environment should always win for bools)

	return result
}

// splitList parses a comma-separated list, dropping blank entries.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
