// Package config loads the missiontext configuration from a YAML file.
// Absent keys keep their defaults, and path defaults are derived from
// data_dir after parsing so a single key relocates the whole data tree.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level missiontext configuration.
type Config struct {
	// LogLevel is the slog level name. debug | info | warn | error
	LogLevel string `yaml:"log_level"`

	// DataDir anchors every derived path default.
	DataDir string `yaml:"data_dir"`

	Catalog CatalogConfig `yaml:"catalog"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
	Clean   CleanConfig   `yaml:"clean"`
	Build   BuildConfig   `yaml:"build"`
	Serve   ServeConfig   `yaml:"serve"`
}

// CatalogConfig locates the SQLite catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// ScrapeConfig controls the journal page collector.
type ScrapeConfig struct {
	// URLsFile lists the main journal URLs, one per line.
	URLsFile string `yaml:"urls_file"`

	OutputDir string `yaml:"output_dir"`

	// ArchiveDir enables the Markdown archive when set.
	ArchiveDir string `yaml:"archive_dir"`

	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	DelayMS         int    `yaml:"delay_ms"` // per-page delay; negative disables
	MaxLinksPerMain int    `yaml:"max_links_per_main"`
	UserAgent       string `yaml:"user_agent"`

	// BlockPrivateHosts refuses URLs that resolve to private or
	// loopback addresses.
	BlockPrivateHosts bool `yaml:"block_private_hosts"`
}

// Timeout returns the fetch timeout as a duration.
func (c ScrapeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Delay returns the per-page delay as a duration. A negative
// configuration value maps to -1ms, which the scraper treats as
// disabled.
func (c ScrapeConfig) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// CleanConfig controls the transcript cleaner. PathFilter and Ext
// default per grammar: the mission layout keeps files under a
// "transcripts" path component, the journal layout keeps ".txt" files.
type CleanConfig struct {
	InputDir   string `yaml:"input_dir"`
	OutputDir  string `yaml:"output_dir"`
	Grammar    string `yaml:"grammar"` // mission | journal
	PathFilter string `yaml:"path_filter"`
	Ext        string `yaml:"ext"`
}

// BuildConfig controls the corpus builder.
type BuildConfig struct {
	Inputs []string `yaml:"inputs"`
	Output string   `yaml:"output"`
}

// ServeConfig controls the catalog HTTP API.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

func baseDefaults() *Config {
	return &Config{
		LogLevel: "info",
		Scrape: ScrapeConfig{
			URLsFile:       "urls.txt",
			TimeoutSeconds: 20,
			DelayMS:        200,
		},
		Clean: CleanConfig{
			Grammar: "mission",
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := baseDefaults()
	cfg.applyDerived()
	return cfg
}

// Load reads a YAML configuration file over the defaults and validates
// the result.
func Load(path string) (*Config, error) {
	cfg := baseDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDerived()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyDerived fills path defaults from DataDir and the grammar's
// filter defaults. Explicit values are never overwritten.
func (c *Config) applyDerived() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Catalog.Path == "" {
		c.Catalog.Path = filepath.Join(c.DataDir, "catalog.db")
	}
	if c.Scrape.OutputDir == "" {
		c.Scrape.OutputDir = filepath.Join(c.DataDir, "journals")
	}
	if c.Clean.InputDir == "" {
		c.Clean.InputDir = filepath.Join(c.DataDir, "missions")
	}
	if c.Clean.OutputDir == "" {
		c.Clean.OutputDir = filepath.Join(c.DataDir, "missions-clean")
	}
	if len(c.Build.Inputs) == 0 {
		c.Build.Inputs = []string{
			filepath.Join(c.DataDir, "journals-clean"),
			filepath.Join(c.DataDir, "missions-clean"),
		}
	}
	if c.Build.Output == "" {
		c.Build.Output = filepath.Join(c.DataDir, "corpus.txt")
	}

	switch c.Clean.Grammar {
	case "mission":
		if c.Clean.PathFilter == "" && c.Clean.Ext == "" {
			c.Clean.PathFilter = "transcripts"
		}
	case "journal":
		if c.Clean.PathFilter == "" && c.Clean.Ext == "" {
			c.Clean.Ext = ".txt"
		}
	}
}

// Validate checks enum fields and required values.
func (c *Config) Validate() error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	switch c.Clean.Grammar {
	case "mission", "journal":
	default:
		return fmt.Errorf("clean.grammar %q: unsupported (use mission or journal)", c.Clean.Grammar)
	}
	if c.Scrape.TimeoutSeconds <= 0 {
		return fmt.Errorf("scrape.timeout_seconds must be > 0")
	}
	if c.Build.Output == "" {
		return fmt.Errorf("build.output is required")
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("serve.addr is required")
	}
	return nil
}

// Level parses LogLevel into a slog level.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
