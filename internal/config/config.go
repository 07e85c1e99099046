// Package config loads gitsplit settings from project files and the
// environment.
//
// Precedence, lowest to highest: built-in defaults, a .gitsplit.toml or
// .gitsplit.yaml file in the repository root, GITSPLIT_* environment
// variables, then command-line flags applied by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// File names probed in the repository root, in order.
var configFileNames = []string{".gitsplit.toml", ".gitsplit.yaml", ".gitsplit.yml"}

// Config holds all gitsplit settings.
// Zero values use sensible defaults where noted.
type Config struct {
	// --- Model Selection ---

	// Model is the model passed to the CLI.
	// Empty uses the CLI's own default.
	Model string `json:"model" yaml:"model" toml:"model" mapstructure:"model"`

	// ClaudePath is the CLI binary to invoke.
	// Default: "claude", resolved via PATH.
	ClaudePath string `json:"claude_path" yaml:"claude_path" toml:"claude_path" mapstructure:"claude_path"`

	// --- Execution Limits ---

	// Timeout is the maximum duration for one completion request.
	// 0 uses the default (2 minutes).
	Timeout Duration `json:"timeout" yaml:"timeout" toml:"timeout" mapstructure:"timeout"`

	// MaxTurns limits conversation turns per grouping request.
	// Default: 2.
	MaxTurns int `json:"max_turns" yaml:"max_turns" toml:"max_turns" mapstructure:"max_turns"`

	// UseSchema requests schema-constrained JSON output from the CLI.
	UseSchema bool `json:"use_schema" yaml:"use_schema" toml:"use_schema" mapstructure:"use_schema"`

	// --- Prompt Sizing ---

	// MaxDiffPreviewLines is how many diff lines per file go into the
	// grouping prompt. Default: 5.
	MaxDiffPreviewLines int `json:"max_diff_preview_lines" yaml:"max_diff_preview_lines" toml:"max_diff_preview_lines" mapstructure:"max_diff_preview_lines"`

	// MaxTitleDiffLines is how many diff lines per file go into the
	// title prompt. Default: 10.
	MaxTitleDiffLines int `json:"max_title_diff_lines" yaml:"max_title_diff_lines" toml:"max_title_diff_lines" mapstructure:"max_title_diff_lines"`

	// MaxCommitTitleLength is the hard cap on generated commit titles.
	// Default: 50.
	MaxCommitTitleLength int `json:"max_commit_title_length" yaml:"max_commit_title_length" toml:"max_commit_title_length" mapstructure:"max_commit_title_length"`

	// --- Watch Mode ---

	// DebounceInterval is the quiet period after the last file change
	// before watch mode commits. Default: 500ms.
	DebounceInterval Duration `json:"debounce_interval" yaml:"debounce_interval" toml:"debounce_interval" mapstructure:"debounce_interval"`

	// MinCommitInterval is the minimum spacing between watch-mode
	// commit passes. Default: 400ms.
	MinCommitInterval Duration `json:"min_commit_interval" yaml:"min_commit_interval" toml:"min_commit_interval" mapstructure:"min_commit_interval"`

	// --- Output ---

	// Verbose enables debug logging.
	Verbose bool `json:"verbose" yaml:"verbose" toml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ClaudePath:           "claude",
		Timeout:              Duration(2 * time.Minute),
		MaxTurns:             2,
		MaxDiffPreviewLines:  5,
		MaxTitleDiffLines:    10,
		MaxCommitTitleLength: 50,
		DebounceInterval:     Duration(500 * time.Millisecond),
		MinCommitInterval:    Duration(400 * time.Millisecond),
	}
}

// LoadFromEnv populates config fields from environment variables.
// Only set (non-empty) variables override existing values.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("GITSPLIT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("GITSPLIT_CLAUDE_PATH"); v != "" {
		c.ClaudePath = v
	}
	if v := os.Getenv("GITSPLIT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = Duration(d)
		}
	}
	if v := os.Getenv("GITSPLIT_MAX_TURNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTurns = n
		}
	}
	if v := os.Getenv("GITSPLIT_USE_SCHEMA"); v == "true" || v == "1" {
		c.UseSchema = true
	}
	if v := os.Getenv("GITSPLIT_DIFF_PREVIEW_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxDiffPreviewLines = n
		}
	}
	if v := os.Getenv("GITSPLIT_TITLE_DIFF_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTitleDiffLines = n
		}
	}
	if v := os.Getenv("GITSPLIT_TITLE_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxCommitTitleLength = n
		}
	}
	if v := os.Getenv("GITSPLIT_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.DebounceInterval = Duration(d)
		}
	}
	if v := os.Getenv("GITSPLIT_MIN_COMMIT_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MinCommitInterval = Duration(d)
		}
	}
	if v := os.Getenv("GITSPLIT_VERBOSE"); v == "true" || v == "1" {
		c.Verbose = true
	}
}

// LoadFile merges settings from a TOML or YAML file into the config.
// The format is picked from the file extension.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	default:
		return fmt.Errorf("unsupported config format: %s", path)
	}
	return nil
}

// Discover looks for a config file in dir and returns its path, or ""
// when none exists.
func Discover(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load builds the effective config for a repository rooted at dir:
// defaults, then a discovered config file, then the environment.
func Load(dir string) (Config, error) {
	cfg := DefaultConfig()
	if path := Discover(dir); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks config invariants.
func (c *Config) Validate() error {
	if c.ClaudePath == "" {
		return fmt.Errorf("claude_path must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("max_turns must be at least 1")
	}
	if c.MaxCommitTitleLength < 10 {
		return fmt.Errorf("max_commit_title_length must be at least 10")
	}
	if c.MaxDiffPreviewLines < 0 || c.MaxTitleDiffLines < 0 {
		return fmt.Errorf("diff line limits must not be negative")
	}
	if c.DebounceInterval < 0 || c.MinCommitInterval < 0 {
		return fmt.Errorf("watch intervals must not be negative")
	}
	return nil
}
