// Package config loads dispatch settings from .dispatch/config.json and the
// environment. Environment variables win over the file; the file wins over defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	corechannel "github.com/example/dispatch/internal/core/channel"
	"github.com/example/dispatch/internal/core/rank"
	coreunit "github.com/example/dispatch/internal/core/unit"
)

// AuditOff disables the audit database when used as the audit_db value.
const AuditOff = "off"

// Config is the resolved dispatch configuration.
type Config struct {
	AliveTTL      time.Duration `env:"DISPATCH_ALIVE_TTL"`
	AwayAfter     time.Duration `env:"DISPATCH_AWAY_AFTER"`
	SeniorRank    string        `env:"DISPATCH_SENIOR_RANK"`
	MarkingMaxLen int           `env:"DISPATCH_MARKING_MAX_LEN"`
	Channels      []string      `env:"DISPATCH_CHANNELS" envSeparator:","`
	AuditDB       string        `env:"DISPATCH_AUDIT_DB"` // path, "~/" expanded; AuditOff disables
	LogLevel      string        `env:"DISPATCH_LOG_LEVEL"`
}

// fileConfig is the on-disk shape. Durations are written as Go duration strings.
type fileConfig struct {
	AliveTTL      string   `json:"alive_ttl,omitempty"`
	AwayAfter     string   `json:"away_after,omitempty"`
	SeniorRank    string   `json:"senior_rank,omitempty"`
	MarkingMaxLen int      `json:"marking_max_len,omitempty"`
	Channels      []string `json:"channels,omitempty"`
	AuditDB       string   `json:"audit_db,omitempty"`
	LogLevel      string   `json:"log_level,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AliveTTL:      5 * time.Minute,
		AwayAfter:     2 * time.Minute,
		SeniorRank:    rank.DefaultSeniorThreshold.String(),
		MarkingMaxLen: coreunit.DefaultMarkingMaxLen,
		Channels:      append([]string(nil), corechannel.DefaultPool...),
		AuditDB:       filepath.Join("~", ".dispatch", "audit.db"),
		LogLevel:      "info",
	}
}

// Path returns the config file location under dir.
func Path(dir string) string {
	return filepath.Join(dir, ".dispatch", "config.json")
}

// Load resolves configuration for the working directory dir.
// A missing config file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(dir))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		var fc fileConfig
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if err := cfg.apply(fc); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(fc fileConfig) error {
	if fc.AliveTTL != "" {
		d, err := time.ParseDuration(fc.AliveTTL)
		if err != nil {
			return fmt.Errorf("alive_ttl: %w", err)
		}
		c.AliveTTL = d
	}
	if fc.AwayAfter != "" {
		d, err := time.ParseDuration(fc.AwayAfter)
		if err != nil {
			return fmt.Errorf("away_after: %w", err)
		}
		c.AwayAfter = d
	}
	if fc.SeniorRank != "" {
		c.SeniorRank = fc.SeniorRank
	}
	if fc.MarkingMaxLen != 0 {
		c.MarkingMaxLen = fc.MarkingMaxLen
	}
	if len(fc.Channels) > 0 {
		c.Channels = fc.Channels
	}
	if fc.AuditDB != "" {
		c.AuditDB = fc.AuditDB
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return nil
}

// Validate checks every setting can be used.
func (c *Config) Validate() error {
	if c.AliveTTL <= 0 {
		return fmt.Errorf("alive_ttl must be positive, got %s", c.AliveTTL)
	}
	if c.AwayAfter < 0 {
		return fmt.Errorf("away_after must not be negative, got %s", c.AwayAfter)
	}
	if _, err := c.SeniorThreshold(); err != nil {
		return err
	}
	if c.MarkingMaxLen <= 0 {
		return fmt.Errorf("marking_max_len must be positive, got %d", c.MarkingMaxLen)
	}
	if err := corechannel.ValidatePool(c.Channels); err != nil {
		return fmt.Errorf("channels: %w", err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SeniorThreshold parses the configured senior rank.
func (c *Config) SeniorThreshold() (rank.Rank, error) {
	r, err := rank.Parse(c.SeniorRank)
	if err != nil {
		return rank.Unranked, fmt.Errorf("senior_rank: %w", err)
	}
	if r == rank.Unranked {
		return rank.Unranked, fmt.Errorf("senior_rank: unranked cannot be the senior threshold")
	}
	return r, nil
}

// SlogLevel parses the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// AuditEnabled reports whether mutations are written to the audit database.
func (c *Config) AuditEnabled() bool {
	return !strings.EqualFold(strings.TrimSpace(c.AuditDB), AuditOff)
}

// AuditPath returns the audit database path with a leading "~/" expanded.
func (c *Config) AuditPath() (string, error) {
	path := strings.TrimSpace(c.AuditDB)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}

// Save writes cfg to .dispatch/config.json under dir.
func Save(dir string, cfg *Config) error {
	dispatchDir := filepath.Dir(Path(dir))
	if err := os.MkdirAll(dispatchDir, 0755); err != nil {
		return fmt.Errorf("failed to create .dispatch dir: %w", err)
	}

	fc := fileConfig{
		AliveTTL:      cfg.AliveTTL.String(),
		AwayAfter:     cfg.AwayAfter.String(),
		SeniorRank:    cfg.SeniorRank,
		MarkingMaxLen: cfg.MarkingMaxLen,
		Channels:      cfg.Channels,
		AuditDB:       cfg.AuditDB,
		LogLevel:      cfg.LogLevel,
	}
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
