// Package config provides HCL and JSON configuration handling.
package config

import (
	"fmt"

	"github.com/nftjctl/nftjctl/internal/engine"
)

// CurrentSchemaVersion is written into generated configs.
const CurrentSchemaVersion = "1.0"

// Config is the top-level configuration.
type Config struct {
	SchemaVersion string `hcl:"schema_version,optional" json:"schema_version,omitempty"`
	LogLevel      string `hcl:"log_level,optional" json:"log_level,omitempty"`

	Engine   *EngineConfig   `hcl:"engine,block" json:"engine,omitempty"`
	Audit    *AuditConfig    `hcl:"audit,block" json:"audit,omitempty"`
	Exporter *ExporterConfig `hcl:"exporter,block" json:"exporter,omitempty"`
}

// EngineConfig controls how the nft binary is invoked.
type EngineConfig struct {
	NFTPath   string `hcl:"nft_path,optional" json:"nft_path,omitempty"`
	Handles   bool   `hcl:"handles,optional" json:"handles"`
	Numeric   bool   `hcl:"numeric,optional" json:"numeric"`
	Stateless bool   `hcl:"stateless,optional" json:"stateless"`
	Terse     bool   `hcl:"terse,optional" json:"terse"`
}

// AuditConfig controls the local history of submitted commands.
type AuditConfig struct {
	Enabled       bool   `hcl:"enabled,optional" json:"enabled"`
	DBPath        string `hcl:"db_path,optional" json:"db_path,omitempty"`
	RetentionDays int    `hcl:"retention_days,optional" json:"retention_days,omitempty"`
}

// ExporterConfig controls the Prometheus exporter.
type ExporterConfig struct {
	Enabled         bool   `hcl:"enabled,optional" json:"enabled"`
	Listen          string `hcl:"listen,optional" json:"listen,omitempty"`
	IntervalSeconds int    `hcl:"interval_seconds,optional" json:"interval_seconds,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		SchemaVersion: CurrentSchemaVersion,
		LogLevel:      "info",
		Engine: &EngineConfig{
			Handles: true,
			Numeric: true,
		},
		Audit: &AuditConfig{
			Enabled:       true,
			RetentionDays: 90,
		},
		Exporter: &ExporterConfig{
			Listen:          ":9633",
			IntervalSeconds: 15,
		},
	}
}

// Normalize fills nil blocks and empty fields with defaults, so callers
// can use the config without nil checks.
func (c *Config) Normalize() {
	def := Default()
	if c.SchemaVersion == "" {
		c.SchemaVersion = def.SchemaVersion
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Engine == nil {
		c.Engine = def.Engine
	}
	if c.Audit == nil {
		c.Audit = def.Audit
	}
	if c.Audit.RetentionDays <= 0 {
		c.Audit.RetentionDays = def.Audit.RetentionDays
	}
	if c.Exporter == nil {
		c.Exporter = def.Exporter
	}
	if c.Exporter.Listen == "" {
		c.Exporter.Listen = def.Exporter.Listen
	}
	if c.Exporter.IntervalSeconds <= 0 {
		c.Exporter.IntervalSeconds = def.Exporter.IntervalSeconds
	}
}

// Validate reports the first problem found.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.Exporter != nil && c.Exporter.IntervalSeconds < 0 {
		return fmt.Errorf("exporter interval_seconds must not be negative")
	}
	if c.Audit != nil && c.Audit.RetentionDays < 0 {
		return fmt.Errorf("audit retention_days must not be negative")
	}
	return nil
}

// EngineOptions translates the engine block into invocation options.
func (c *Config) EngineOptions() engine.Options {
	if c.Engine == nil {
		return engine.DefaultOptions()
	}
	return engine.Options{
		NFTPath:         c.Engine.NFTPath,
		HandleOutput:    c.Engine.Handles,
		NumericOutput:   c.Engine.Numeric,
		StatelessOutput: c.Engine.Stateless,
		Terse:           c.Engine.Terse,
	}
}
