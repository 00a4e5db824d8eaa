package config

import (
	"strings"
	"testing"
)

// hasIssue reports whether issues contains an Issue with the given severity,
// path, and a Message containing msgSubstr.
func hasIssue(t *testing.T, issues []Issue, sev IssueSeverity, path, msgSubstr string) bool {
	t.Helper()
	for _, iss := range issues {
		if iss.Severity == sev && iss.Path == path && strings.Contains(iss.Message, msgSubstr) {
			return true
		}
	}
	return false
}

/*
TestValidateConfig_Table checks each linter rule in isolation by mutating a
clean default config.
*/
func TestValidateConfig_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		sev    IssueSeverity
		path   string
		msg    string
	}{
		{"empty_job", func(c *Config) { c.Job = " " }, SeverityError, "job", "must not be empty"},
		{"empty_input", func(c *Config) { c.Input.Path = "" }, SeverityError, "input.path", "must not be empty"},
		{"empty_output", func(c *Config) { c.Output.Path = "" }, SeverityError, "output.path", "must not be empty"},
		{"bad_terminator", func(c *Config) { c.Output.LineTerminator = "cr" }, SeverityError, "output.line_terminator", "unknown line terminator"},
		{"output_is_input", func(c *Config) { c.Output.Path = "./" + c.Input.Path }, SeverityWarning, "output.path", "overwritten"},
		{"rejects_is_output", func(c *Config) { c.Rejects.Path = c.Output.Path }, SeverityError, "rejects.path", "must differ"},
		{"mirror_unknown_kind", func(c *Config) {
			c.Mirror = Mirror{Kind: "mssql", DSN: "x", Table: "t", AutoCreateTable: true}
		}, SeverityError, "mirror.kind", "unknown mirror kind"},
		{"mirror_no_dsn", func(c *Config) { c.Mirror = Mirror{Kind: "sqlite", Table: "t"} }, SeverityError, "mirror.dsn", "must not be empty"},
		{"mirror_no_table", func(c *Config) { c.Mirror = Mirror{Kind: "sqlite", DSN: "x"} }, SeverityError, "mirror.table", "must not be empty"},
		{"mirror_negative_batch", func(c *Config) {
			c.Mirror = Mirror{Kind: "sqlite", DSN: "x", Table: "t", BatchSize: -1}
		}, SeverityError, "mirror.batch_size", "negative"},
		{"mirror_no_autocreate", func(c *Config) { c.Mirror = Mirror{Kind: "postgres", DSN: "x", Table: "t"} }, SeverityWarning, "mirror.auto_create_table", "must already exist"},
		{"push_no_url", func(c *Config) { c.Metrics = Metrics{Backend: "pushgateway", Options: Options{}} }, SeverityError, "metrics.options.url", "requires options.url"},
		{"datadog_no_addr", func(c *Config) { c.Metrics = Metrics{Backend: "datadog", Options: Options{}} }, SeverityWarning, "metrics.options.addr", "defaulting"},
		{"unknown_metrics", func(c *Config) { c.Metrics.Backend = "graphite" }, SeverityError, "metrics.backend", "unknown metrics backend"},
		{"bad_level", func(c *Config) { c.Log.Level = "loud" }, SeverityError, "log.level", "invalid log level"},
		{"bad_format", func(c *Config) { c.Log.Format = "xml" }, SeverityError, "log.format", "unknown log format"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(&cfg)
			issues := ValidateConfig(cfg)
			if !hasIssue(t, issues, tc.sev, tc.path, tc.msg) {
				t.Fatalf("expected %s at %s containing %q; got %+v", tc.sev, tc.path, tc.msg, issues)
			}
		})
	}
}

func TestValidateConfig_ValidMirrorAndMetrics(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Mirror = Mirror{Kind: "sqlite", DSN: "out/sales.db", Table: "sales", AutoCreateTable: true}
	cfg.Metrics = Metrics{Backend: "datadog", Options: Options{"addr": "127.0.0.1:8125"}}
	cfg.Rejects.Path = "out/rejects.csv"

	if issues := ValidateConfig(cfg); len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestHasErrorsAndIssueError(t *testing.T) {
	t.Parallel()

	warn := Issue{SeverityWarning, "a", "w"}
	errIss := Issue{SeverityError, "b", "e"}

	if HasErrors([]Issue{warn}) {
		t.Fatalf("HasErrors = true for warnings only")
	}
	if !HasErrors([]Issue{warn, errIss}) {
		t.Fatalf("HasErrors = false with an error present")
	}
	if got, want := errIss.Error(), "error at b: e"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
