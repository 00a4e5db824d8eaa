package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is reported but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single lint finding. Path is a dotted path into the
// config, e.g. "mirror.dsn".
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be returned as an error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidateConfig performs static checks over cfg without touching the
// filesystem or network. Callers decide whether warnings are fatal.
func ValidateConfig(cfg Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(cfg.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels metrics and log lines",
		})
	}
	issues = append(issues, validatePaths(cfg)...)
	issues = append(issues, validateMirror(cfg.Mirror)...)
	issues = append(issues, validateMetrics(cfg.Metrics)...)
	issues = append(issues, validateLog(cfg.Log)...)
	return issues
}

func validatePaths(cfg Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(cfg.Input.Path) == "" {
		issues = append(issues, Issue{SeverityError, "input.path", "input.path must not be empty"})
	}
	if strings.TrimSpace(cfg.Output.Path) == "" {
		issues = append(issues, Issue{SeverityError, "output.path", "output.path must not be empty"})
	}

	switch strings.ToLower(cfg.Output.LineTerminator) {
	case "", TerminatorCRLF, TerminatorLF:
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.line_terminator",
			Message:  fmt.Sprintf("unknown line terminator %q; use %q or %q", cfg.Output.LineTerminator, TerminatorCRLF, TerminatorLF),
		})
	}

	if samePath(cfg.Input.Path, cfg.Output.Path) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "output.path",
			Message:  "output.path equals input.path; the raw file will be overwritten",
		})
	}
	if cfg.Rejects.Path != "" {
		if samePath(cfg.Rejects.Path, cfg.Output.Path) || samePath(cfg.Rejects.Path, cfg.Input.Path) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "rejects.path",
				Message:  "rejects.path must differ from input.path and output.path",
			})
		}
	}
	return issues
}

func validateMirror(m Mirror) []Issue {
	if !m.Enabled() {
		return nil
	}
	var issues []Issue

	known := map[string]struct{}{
		"sqlite":   {},
		"postgres": {},
	}
	if _, ok := known[m.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "mirror.kind",
			Message:  fmt.Sprintf("unknown mirror kind %q; supported: sqlite, postgres", m.Kind),
		})
	}
	if strings.TrimSpace(m.DSN) == "" {
		issues = append(issues, Issue{SeverityError, "mirror.dsn", "mirror.dsn must not be empty"})
	}
	if strings.TrimSpace(m.Table) == "" {
		issues = append(issues, Issue{SeverityError, "mirror.table", "mirror.table must not be empty"})
	}
	if m.BatchSize < 0 {
		issues = append(issues, Issue{SeverityError, "mirror.batch_size", "mirror.batch_size must not be negative"})
	}
	if !m.AutoCreateTable {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "mirror.auto_create_table",
			Message:  "auto_create_table is false; the table must already exist with the cleaned column names",
		})
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch strings.ToLower(strings.TrimSpace(m.Backend)) {
	case "", "none":
	case "pushgateway", "prom", "prometheus":
		if strings.TrimSpace(m.Options.String("url", "")) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.options.url",
				Message:  "pushgateway backend requires options.url",
			})
		}
	case "datadog", "dogstatsd":
		if !m.Options.Has("addr") {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "metrics.options.addr",
				Message:  "datadog backend has no options.addr; defaulting to 127.0.0.1:8125",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; supported: none, pushgateway, datadog", m.Backend),
		})
	}
	return issues
}

func validateLog(l Log) []Issue {
	var issues []Issue

	if l.Level != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(l.Level)); err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "log.level",
				Message:  fmt.Sprintf("invalid log level %q: %v", l.Level, err),
			})
		}
	}
	switch strings.ToLower(l.Format) {
	case "", "console", "json":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "log.format",
			Message:  fmt.Sprintf("unknown log format %q; use console or json", l.Format),
		})
	}
	return issues
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
