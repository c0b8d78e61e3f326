// Package config provides types and functions for loading, saving, and
// applying defaults to the optional YAML configuration file. Every field has
// a sensible default, so running without a config file is the normal case.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vojtapolasek/todo-mcp-server/internal/todotxt"
)

// SuggestionsConfig tunes next-task suggestions.
type SuggestionsConfig struct {
	// MaxResults caps how many tasks a suggestion query returns.
	MaxResults int `yaml:"max_results"`
}

// OverviewConfig tunes the overview aggregates.
type OverviewConfig struct {
	// DueSoonDays is the lookahead window for the due-soon count.
	DueSoonDays int `yaml:"due_soon_days"`
}

// ConventionsConfig overrides the context/project marker tables. Empty lists
// keep the defaults.
type ConventionsConfig struct {
	HighEnergyContexts []string `yaml:"high_energy_contexts"`
	LowEnergyContexts  []string `yaml:"low_energy_contexts"`
	QuickContexts      []string `yaml:"quick_contexts"`
	MediumContexts     []string `yaml:"medium_contexts"`
	DeepContexts       []string `yaml:"deep_contexts"`
	WaitingContexts    []string `yaml:"waiting_contexts"`
	WaitingProjects    []string `yaml:"waiting_projects"`
	InboxProjects      []string `yaml:"inbox_projects"`
	OnlineContexts     []string `yaml:"online_contexts"`
}

// LoggingConfig holds logging settings. File enables rotated file output;
// the default is console output on stderr only, since stdout carries the
// MCP transport.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config represents the contents of the YAML configuration file.
type Config struct {
	Suggestions SuggestionsConfig `yaml:"suggestions"`
	Overview    OverviewConfig    `yaml:"overview"`
	Conventions ConventionsConfig `yaml:"conventions"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// Default returns a Config populated with the standard values.
func Default() Config {
	conv := todotxt.DefaultConventions()
	return Config{
		Suggestions: SuggestionsConfig{MaxResults: 5},
		Overview:    OverviewConfig{DueSoonDays: 7},
		Conventions: ConventionsConfig{
			HighEnergyContexts: conv.HighEnergyContexts,
			LowEnergyContexts:  conv.LowEnergyContexts,
			QuickContexts:      conv.QuickContexts,
			MediumContexts:     conv.MediumContexts,
			DeepContexts:       conv.DeepContexts,
			WaitingContexts:    conv.WaitingContexts,
			WaitingProjects:    conv.WaitingProjects,
			InboxProjects:      conv.InboxProjects,
			OnlineContexts:     conv.OnlineContexts,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads and parses the YAML config at path. An empty path or a missing
// file returns the default Config and no error; any other failure is
// propagated. Missing fields are filled with defaults after parsing.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// TaskConventions converts the config's marker tables into the parser's
// Conventions type.
func (c Config) TaskConventions() todotxt.Conventions {
	return todotxt.Conventions{
		HighEnergyContexts: c.Conventions.HighEnergyContexts,
		LowEnergyContexts:  c.Conventions.LowEnergyContexts,
		QuickContexts:      c.Conventions.QuickContexts,
		MediumContexts:     c.Conventions.MediumContexts,
		DeepContexts:       c.Conventions.DeepContexts,
		WaitingContexts:    c.Conventions.WaitingContexts,
		WaitingProjects:    c.Conventions.WaitingProjects,
		InboxProjects:      c.Conventions.InboxProjects,
		OnlineContexts:     c.Conventions.OnlineContexts,
	}
}

// applyDefaults fills in zero-value fields with the standard values.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Suggestions.MaxResults == 0 {
		cfg.Suggestions.MaxResults = def.Suggestions.MaxResults
	}
	if cfg.Overview.DueSoonDays == 0 {
		cfg.Overview.DueSoonDays = def.Overview.DueSoonDays
	}
	if len(cfg.Conventions.HighEnergyContexts) == 0 {
		cfg.Conventions.HighEnergyContexts = def.Conventions.HighEnergyContexts
	}
	if len(cfg.Conventions.LowEnergyContexts) == 0 {
		cfg.Conventions.LowEnergyContexts = def.Conventions.LowEnergyContexts
	}
	if len(cfg.Conventions.QuickContexts) == 0 {
		cfg.Conventions.QuickContexts = def.Conventions.QuickContexts
	}
	if len(cfg.Conventions.MediumContexts) == 0 {
		cfg.Conventions.MediumContexts = def.Conventions.MediumContexts
	}
	if len(cfg.Conventions.DeepContexts) == 0 {
		cfg.Conventions.DeepContexts = def.Conventions.DeepContexts
	}
	if len(cfg.Conventions.WaitingContexts) == 0 {
		cfg.Conventions.WaitingContexts = def.Conventions.WaitingContexts
	}
	if len(cfg.Conventions.WaitingProjects) == 0 {
		cfg.Conventions.WaitingProjects = def.Conventions.WaitingProjects
	}
	if len(cfg.Conventions.InboxProjects) == 0 {
		cfg.Conventions.InboxProjects = def.Conventions.InboxProjects
	}
	if len(cfg.Conventions.OnlineContexts) == 0 {
		cfg.Conventions.OnlineContexts = def.Conventions.OnlineContexts
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}
