// Package config defines the run configuration for salesclean: where the raw
// file is read from, where the cleaned file goes, and the optional reject log,
// database mirror, metrics backend and logging settings.
//
// Every field has a default (see Default), so running without a config file
// reads data/raw/sales_data_raw.csv and writes
// data/processed/sales_data_clean.csv. A config file only needs the keys it
// changes:
//
//	{
//	  "output":  { "line_terminator": "lf" },
//	  "rejects": { "path": "out/rejects.csv" },
//	  "mirror":  { "kind": "sqlite", "dsn": "out/sales.db", "table": "sales_clean", "auto_create_table": true },
//	  "metrics": { "backend": "pushgateway", "options": { "url": "http://localhost:9091" } }
//	}
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default locations used when no config file overrides them.
const (
	DefaultInputPath  = "data/raw/sales_data_raw.csv"
	DefaultOutputPath = "data/processed/sales_data_clean.csv"
	DefaultJob        = "salesclean"
	DefaultBatchSize  = 1000
)

// Line terminators accepted by output.line_terminator.
const (
	TerminatorCRLF = "crlf"
	TerminatorLF   = "lf"
)

// Config is the top-level object decoded from a config file.
type Config struct {
	// Job labels metrics and log lines for this run.
	Job string `json:"job" yaml:"job"`

	Input   Input   `json:"input" yaml:"input"`
	Output  Output  `json:"output" yaml:"output"`
	Rejects Rejects `json:"rejects" yaml:"rejects"`
	Mirror  Mirror  `json:"mirror" yaml:"mirror"`
	Metrics Metrics `json:"metrics" yaml:"metrics"`
	Log     Log     `json:"log" yaml:"log"`
}

// Input locates the raw CSV file.
type Input struct {
	Path string `json:"path" yaml:"path"`
}

// Output locates the cleaned CSV file. The parent directory must exist.
type Output struct {
	Path string `json:"path" yaml:"path"`
	// LineTerminator is "crlf" (default) or "lf".
	LineTerminator string `json:"line_terminator" yaml:"line_terminator"`
}

// Rejects configures the optional rejected-row log. Empty Path disables it.
type Rejects struct {
	Path string `json:"path" yaml:"path"`
}

// Mirror configures the optional copy of the cleaned dataset into a database
// table. Empty Kind disables it.
type Mirror struct {
	// Kind selects the backend: "sqlite" or "postgres".
	Kind  string `json:"kind" yaml:"kind"`
	DSN   string `json:"dsn" yaml:"dsn"`
	Table string `json:"table" yaml:"table"`

	// AutoCreateTable issues CREATE TABLE IF NOT EXISTS with every column as TEXT.
	AutoCreateTable bool `json:"auto_create_table" yaml:"auto_create_table"`

	// BatchSize caps rows per copy call; zero means DefaultBatchSize.
	BatchSize int `json:"batch_size" yaml:"batch_size"`
}

// Enabled reports whether a mirror backend is configured.
func (m Mirror) Enabled() bool { return strings.TrimSpace(m.Kind) != "" }

// EffectiveBatchSize returns BatchSize or DefaultBatchSize when unset.
func (m Mirror) EffectiveBatchSize() int {
	if m.BatchSize > 0 {
		return m.BatchSize
	}
	return DefaultBatchSize
}

// Metrics selects a metrics backend. Backend is "none", "pushgateway" or
// "datadog"; Options carries backend-specific settings:
//
//	pushgateway: url
//	datadog:     addr, namespace, tags
type Metrics struct {
	Backend string  `json:"backend" yaml:"backend"`
	Options Options `json:"options" yaml:"options"`
}

// Log controls the console logger.
type Log struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level"`
	// Format is "console" (default) or "json".
	Format string `json:"format" yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Job:     DefaultJob,
		Input:   Input{Path: DefaultInputPath},
		Output:  Output{Path: DefaultOutputPath, LineTerminator: TerminatorCRLF},
		Metrics: Metrics{Backend: "none", Options: Options{}},
		Log:     Log{Level: "info", Format: "console"},
	}
}

// Load reads path and overlays it on Default. The format is chosen by
// extension: .json, .yaml or .yml.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("config %s: unsupported extension %q (want .json, .yaml or .yml)", path, ext)
	}
	if cfg.Metrics.Options == nil {
		cfg.Metrics.Options = Options{}
	}
	return cfg, nil
}
