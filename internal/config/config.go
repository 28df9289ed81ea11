package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Document parser choices
const (
	ParserOOXML = "ooxml"
	ParserNone  = "none"
)

// Git backend choices
const (
	BackendCLI   = "cli"
	BackendGoGit = "gogit"
)

const fileName = "contextfinder.toml"

type Config struct {
	Documents DocumentsConfig `toml:"documents"`
	Git       GitConfig       `toml:"git"`
	Tickets   TicketsConfig   `toml:"tickets"`
	Limits    LimitsConfig    `toml:"limits"`
	Log       LogConfig       `toml:"log"`

	// Compiled from Tickets.Pattern (not serialized)
	ticketRegex *regexp.Regexp
	// Parsed from Git.Timeout (not serialized)
	gitTimeout time.Duration
}

type DocumentsConfig struct {
	DocsDir     string `toml:"docs_dir"`
	OutputDir   string `toml:"output_dir"`
	SourceLabel string `toml:"source_label"`
	Parser      string `toml:"parser"`
}

type GitConfig struct {
	Repo    string `toml:"repo"`
	Backend string `toml:"backend"`
	// Timeout is a Go duration string; empty means no timeout
	Timeout string `toml:"timeout"`
}

type TicketsConfig struct {
	Pattern string `toml:"pattern"`
}

type LimitsConfig struct {
	MaxCommits int `toml:"max_commits"`
	MaxFiles   int `toml:"max_files"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Documents: DocumentsConfig{
			DocsDir:     "~/.contextfinder/source-docs",
			OutputDir:   "~/.contextfinder/ms-cards",
			SourceLabel: "Master Data V2.0 Use Cases",
			Parser:      ParserOOXML,
		},
		Git: GitConfig{
			Repo:    "~/CT-Project",
			Backend: BackendCLI,
		},
		Tickets: TicketsConfig{
			Pattern: `^MD-\d{4,5}$`,
		},
		Limits: LimitsConfig{
			MaxCommits: 20,
			MaxFiles:   15,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, fileName), nil
}

// Load reads the user config, writing a default one on first run
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		cfg := DefaultConfig()
		if err := cfg.finalize(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		_ = cfg.SaveTo(path) // Best effort save
	}

	return cfg, nil
}

// LoadFrom reads the config at path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) finalize() error {
	if err := c.compileRegex(); err != nil {
		return err
	}

	switch c.Documents.Parser {
	case ParserOOXML, ParserNone:
	default:
		return fmt.Errorf("invalid documents.parser %q (want %q or %q)", c.Documents.Parser, ParserOOXML, ParserNone)
	}

	if err := ValidateBackend(c.Git.Backend); err != nil {
		return err
	}

	c.gitTimeout = 0
	if c.Git.Timeout != "" {
		d, err := time.ParseDuration(c.Git.Timeout)
		if err != nil {
			return fmt.Errorf("invalid git.timeout %q: %w", c.Git.Timeout, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid git.timeout %q: must not be negative", c.Git.Timeout)
		}
		c.gitTimeout = d
	}

	if c.Limits.MaxCommits <= 0 {
		c.Limits.MaxCommits = DefaultConfig().Limits.MaxCommits
	}
	if c.Limits.MaxFiles <= 0 {
		c.Limits.MaxFiles = DefaultConfig().Limits.MaxFiles
	}

	return nil
}

// ValidateBackend checks a git backend name
func ValidateBackend(backend string) error {
	switch backend {
	case BackendCLI, BackendGoGit:
		return nil
	default:
		return fmt.Errorf("invalid git backend %q (want %q or %q)", backend, BackendCLI, BackendGoGit)
	}
}

func (c *Config) compileRegex() error {
	// Empty pattern = ticket format check disabled
	if c.Tickets.Pattern == "" {
		c.ticketRegex = nil
		return nil
	}
	re, err := regexp.Compile(c.Tickets.Pattern)
	if err != nil {
		return fmt.Errorf("invalid tickets.pattern %q: %w", c.Tickets.Pattern, err)
	}
	c.ticketRegex = re
	return nil
}

// TicketRegex returns the compiled ticket format regex (nil if disabled)
func (c *Config) TicketRegex() *regexp.Regexp {
	return c.ticketRegex
}

// GitTimeout returns the per-invocation git timeout (0 = none)
func (c *Config) GitTimeout() time.Duration {
	return c.gitTimeout
}

func (c *Config) SaveTo(path string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) DocsPath() string {
	return expandTilde(c.Documents.DocsDir)
}

func (c *Config) OutputPath() string {
	return expandTilde(c.Documents.OutputDir)
}

func (c *Config) RepoPath() string {
	return expandTilde(c.Git.Repo)
}

// ExpandTilde resolves a leading "~/" against the home directory
func ExpandTilde(path string) string {
	return expandTilde(path)
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
