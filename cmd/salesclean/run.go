package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"salesclean/internal/config"
	"salesclean/internal/logging"
	"salesclean/internal/metrics"
	"salesclean/internal/metrics/datadog"
	"salesclean/internal/metrics/prompush"
	"salesclean/internal/pipeline"
)

// reportedError marks an error that has already been logged.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// run executes the root command and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		var re reportedError
		if !errors.As(err, &re) {
			fmt.Fprintf(stderr, "salesclean: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		cfgPath  string
		validate bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "salesclean",
		Short: "Clean a raw sales CSV export",
		Long: `salesclean loads a comma-delimited sales export, standardizes its column
names, fills missing values, drops rows whose price or quantity is invalid or
negative, and writes the cleaned rows to a new CSV file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if verbose {
				cfg.Log.Level = "debug"
			}

			log, err := logging.New(cfg.Log, stdout, stderr)
			if err != nil {
				return err
			}

			issues := config.ValidateConfig(cfg)
			for _, iss := range issues {
				ev := log.Warn()
				if iss.Severity == config.SeverityError {
					ev = log.Error()
				}
				ev.Str("path", iss.Path).Msg(iss.Message)
			}
			if config.HasErrors(issues) {
				log.Error().Str("config", cfgPath).Msg("configuration is invalid")
				return reportedError{errors.New("configuration is invalid")}
			}
			if validate {
				log.Info().Str("config", cfgPath).Msg("configuration is valid")
				return nil
			}

			flush := setupMetrics(cfg, log)
			defer flush()

			if _, err := pipeline.Run(cmd.Context(), cfg, log); err != nil {
				log.Error().Err(err).Msg("cleaning failed")
				return reportedError{err}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to a JSON or YAML config file")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the configuration and exit")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

// setupMetrics installs the configured metrics backend and returns a function
// that flushes it. A backend that cannot be created is reported and metrics
// stay disabled.
func setupMetrics(cfg config.Config, log zerolog.Logger) func() {
	opts := cfg.Metrics.Options
	var (
		b   metrics.Backend
		err error
	)
	switch name := strings.ToLower(strings.TrimSpace(cfg.Metrics.Backend)); name {
	case "", "none":
		log.Debug().Msg("metrics: disabled")
		return func() {}
	case "pushgateway", "prom", "prometheus":
		b, err = prompush.NewBackend(cfg.Job, opts.String("url", ""))
	case "datadog", "dogstatsd":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       opts.String("addr", datadog.DefaultAddr),
			Namespace:  opts.String("namespace", ""),
			GlobalTags: opts.StringSlice("tags"),
		})
	default:
		err = fmt.Errorf("unknown backend %q", name)
	}
	if err != nil {
		log.Warn().Err(err).Msg("metrics: backend unavailable; metrics disabled")
		return func() {}
	}

	log.Debug().Str("backend", cfg.Metrics.Backend).Str("job", cfg.Job).Msg("metrics: enabled")
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Warn().Err(err).Msg("metrics: flush failed")
		}
	}
}
