// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package config holds the process-wide gateway configuration.
// The configuration is constructed once at startup and read-only thereafter.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/shgate/shgate/pkg/ptr"
)

const (
	// DefaultTimeoutMs is the ceiling for command execution timeouts.
	// Caller-supplied timeouts can only shrink it, never extend it.
	DefaultTimeoutMs = 30000

	// DefaultMaxOutputBytes caps combined captured stdout+stderr (1 MiB).
	DefaultMaxOutputBytes = 1024 * 1024

	// DefaultActivityLog is the activity log filename, relative to the
	// working directory unless overridden.
	DefaultActivityLog = "shgate-activity.log"
)

type Config struct {
	// BlockedPatterns are substrings that cause a command to be rejected
	// outright. Matching is exact and case-sensitive.
	BlockedPatterns []string `yaml:"blockedPatterns"`

	// AllowedDirs are absolute directory prefixes permitted for
	// file-touching operations and for list/read requests.
	AllowedDirs []string `yaml:"allowedDirs"`

	// TimeoutMs is the maximum execution timeout in milliseconds.
	TimeoutMs *int `yaml:"timeoutMs,omitempty"`

	// MaxOutputBytes is the maximum combined captured output size.
	MaxOutputBytes *int64 `yaml:"maxOutputBytes,omitempty"`

	// ActivityLog is the path of the append-only activity log file.
	ActivityLog string `yaml:"activityLog,omitempty"`
}

func fillDefaults(cfg *Config) {
	if len(cfg.BlockedPatterns) == 0 {
		cfg.BlockedPatterns = []string{"rm -rf", "sudo", "wget", "curl -o", "mkfs", "> /dev/"}
	}
	if len(cfg.AllowedDirs) == 0 {
		cfg.AllowedDirs = []string{"/tmp/shgate"}
	}
	if cfg.TimeoutMs == nil {
		cfg.TimeoutMs = ptr.Of(DefaultTimeoutMs)
	}
	if cfg.MaxOutputBytes == nil {
		cfg.MaxOutputBytes = ptr.Of(int64(DefaultMaxOutputBytes))
	}
	if cfg.ActivityLog == "" {
		cfg.ActivityLog = DefaultActivityLog
	}
}

// Default returns the compiled-in reference configuration.
func Default() *Config {
	var cfg Config
	fillDefaults(&cfg)
	return &cfg
}

// Load reads a YAML configuration file and fills in defaults for
// omitted fields. An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %q: %w", path, err)
	}
	fillDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks invariants that fillDefaults cannot repair.
func Validate(cfg *Config) error {
	var errs []error
	for _, dir := range cfg.AllowedDirs {
		if !filepath.IsAbs(dir) {
			errs = append(errs, fmt.Errorf("allowed directory %q must be an absolute path", dir))
		}
	}
	if *cfg.TimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("timeoutMs must be positive, got %d", *cfg.TimeoutMs))
	}
	if *cfg.MaxOutputBytes <= 0 {
		errs = append(errs, fmt.Errorf("maxOutputBytes must be positive, got %d", *cfg.MaxOutputBytes))
	}
	return errors.Join(errs...)
}
