package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultMaxBatchCount       = 200
	defaultTimestampType       = "timestamp with time zone"
	defaultZeroDateReplacement = "1971-01-01 00:00:01"
)

// ConvertConfig holds the TOML-driven conversion configuration. CLI flags
// override values read from the file.
type ConvertConfig struct {
	Input           string `toml:"input"`
	Output          string `toml:"output"`
	ExportStructure bool   `toml:"export_structure"`
	MaxBatchCount   int    `toml:"max_batch_count"`
	TimestampType   string `toml:"timestamp_type"`

	// ZeroDateReplacement substitutes MySQL's 0000-00-00 00:00:00, which
	// PostgreSQL rejects.
	ZeroDateReplacement string `toml:"zero_date_replacement"`

	// Schema, when set, creates the schema and points search_path at it
	// before any table statement.
	Schema string `toml:"schema"`

	// DefaultKeywords are default values emitted unquoted, in addition to
	// CURRENT_TIMESTAMP.
	DefaultKeywords []string `toml:"default_keywords"`

	AddUnsignedChecks                 bool              `toml:"add_unsigned_checks"`
	ReplicateOnUpdateCurrentTimestamp bool              `toml:"replicate_on_update_current_timestamp"`
	Hooks                             HooksConfig       `toml:"hooks"`
	TypeMapping                       TypeMappingConfig `toml:"type_mapping"`

	// configDir is the directory containing the TOML file, used to resolve relative paths.
	configDir string
	// structureSet records whether export_structure was given explicitly.
	structureSet bool
}

// HooksConfig lists SQL files spliced into the generated script.
type HooksConfig struct {
	Preamble []string `toml:"preamble"`
	Epilogue []string `toml:"epilogue"`
}

// TypeMappingConfig controls type mappings beyond the base rule set.
type TypeMappingConfig struct {
	ExtendedTypes bool `toml:"extended_types"`
	UnknownAsText bool `toml:"unknown_as_text"`
	Bigserial     bool `toml:"bigserial"`
}

func defaultConfig() *ConvertConfig {
	return &ConvertConfig{
		MaxBatchCount:       defaultMaxBatchCount,
		TimestampType:       defaultTimestampType,
		ZeroDateReplacement: defaultZeroDateReplacement,
		TypeMapping:         defaultTypeMappingConfig(),
	}
}

func defaultTypeMappingConfig() TypeMappingConfig {
	return TypeMappingConfig{
		ExtendedTypes: true,
		UnknownAsText: false,
		Bigserial:     false,
	}
}

// loadConfig reads a TOML config file and returns a ConvertConfig with
// defaults applied. It does not validate; call validate once CLI overrides
// have been merged.
func loadConfig(path string) (*ConvertConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	cfg.structureSet = md.IsDefined("export_structure")

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.configDir = filepath.Dir(absPath)
	if cfg.Input != "" {
		cfg.Input = cfg.resolvePath(cfg.Input)
	}
	if cfg.Output != "" {
		cfg.Output = cfg.resolvePath(cfg.Output)
	}

	return cfg, nil
}

// setExportStructure sets the structure flag and marks it as explicitly given.
func (c *ConvertConfig) setExportStructure(v bool) {
	c.ExportStructure = v
	c.structureSet = true
}

// validate checks for missing required settings. It runs before any file is
// opened so a bad setup never truncates an output file.
func (c *ConvertConfig) validate() error {
	if c.Input == "" {
		return fmt.Errorf("input file is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output file is required")
	}
	if !c.structureSet {
		return fmt.Errorf("export_structure must be set explicitly (true for DDL + data, false for data only)")
	}
	if c.MaxBatchCount <= 0 {
		return fmt.Errorf("max_batch_count must be a positive integer, got %d", c.MaxBatchCount)
	}
	c.TimestampType = strings.TrimSpace(c.TimestampType)
	if c.TimestampType == "" {
		return fmt.Errorf("timestamp_type must not be empty")
	}
	c.Schema = strings.TrimSpace(c.Schema)
	for i, kw := range c.DefaultKeywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			return fmt.Errorf("default_keywords[%d] must not be empty", i)
		}
		c.DefaultKeywords[i] = kw
	}
	return nil
}

// resolvePath resolves a path relative to the config file directory.
func (c *ConvertConfig) resolvePath(p string) string {
	if filepath.IsAbs(p) || c.configDir == "" {
		return p
	}
	return filepath.Join(c.configDir, p)
}
