// Package pipeline runs one cleaning pass: load the raw CSV, normalize column
// names, impute missing values, drop invalid rows, write the cleaned CSV and
// optionally mirror it into a database table.
//
// Every step is synchronous and works on the whole dataset in memory.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"salesclean/internal/config"
	"salesclean/internal/fingerprint"
	"salesclean/internal/metrics"
	pcsv "salesclean/internal/parser/csv"
	"salesclean/internal/records"
	"salesclean/internal/skiplog"
	"salesclean/internal/storage"
	"salesclean/internal/storage/csvfile"
	"salesclean/internal/transformer"
	"salesclean/internal/transformer/builtin"
)

// Step names used in metrics and error messages.
const (
	StepLoad      = "load"
	StepNormalize = "normalize"
	StepImpute    = "impute"
	StepValidate  = "validate"
	StepWrite     = "write"
	StepMirror    = "mirror"
)

// Summary reports what a run did.
type Summary struct {
	RunID  string
	Loaded int
	Kept   int
	// Rejected counts dropped rows per reason.
	Rejected   map[string]int
	Written    bool
	OutputPath string
	// Checksum is the hex xxh3 fingerprint of the cleaned dataset.
	Checksum   string
	Duplicates int
	// Mirrored is the number of rows copied into the mirror table.
	Mirrored int64
}

// Dropped returns the total number of rejected rows.
func (s Summary) Dropped() int {
	n := 0
	for _, c := range s.Rejected {
		n += c
	}
	return n
}

// Run executes the pipeline described by cfg. Progress lines are logged at
// info level on log; every line carries the run id. An empty cleaned dataset
// is not an error: the summary reports Written == false.
func Run(ctx context.Context, cfg config.Config, log zerolog.Logger) (sum Summary, err error) {
	sum = Summary{
		RunID:      uuid.NewString(),
		OutputPath: cfg.Output.Path,
		Rejected:   map[string]int{},
	}
	log = log.With().Str("run_id", sum.RunID).Logger()
	ctx = log.WithContext(ctx)
	job := cfg.Job

	var rejects *skiplog.Log
	if cfg.Rejects.Path != "" {
		rejects, err = skiplog.Open(cfg.Rejects.Path)
		if err != nil {
			return sum, fmt.Errorf("rejects: %w", err)
		}
		defer func() {
			if cerr := rejects.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("rejects: %w", cerr)
			}
		}()
	}

	// Load.
	var ds records.Dataset
	err = timed(job, StepLoad, func() error {
		var lerr error
		ds, lerr = pcsv.Load(cfg.Input.Path)
		return lerr
	})
	if err != nil {
		return sum, fmt.Errorf("%s: %w", StepLoad, err)
	}
	sum.Loaded = len(ds)
	metrics.RecordRow(job, "loaded", int64(sum.Loaded))
	log.Info().Msgf("Loaded %d rows from %s", sum.Loaded, cfg.Input.Path)

	// Normalize, impute, validate.
	var rejectErr error
	chain := transformer.Chain{
		{Name: StepNormalize, Transformer: builtin.Normalize{
			OnCollision: func(canonical string, originals []string) {
				log.Warn().
					Str("column", canonical).
					Strs("originals", originals).
					Msg("column names collide after normalization; the later column wins")
			},
		}},
		{Name: StepImpute, Transformer: builtin.Impute{}},
		{Name: StepValidate, Transformer: builtin.Validate{
			Reject: func(rr builtin.RejectedRow) {
				sum.Rejected[rr.Reason]++
				metrics.RecordReject(job, rr.Reason, 1)
				log.Debug().Int("line", rr.Line).Str("reason", rr.Reason).Msg("row dropped")
				if rejects != nil && rejectErr == nil {
					rejectErr = rejects.Add(rr.Reason, rr.Line, rr.Row)
				}
			},
		}},
	}

	mark := time.Now()
	ds = chain.Apply(ds, func(stage string, out records.Dataset) {
		metrics.RecordStep(job, stage, nil, time.Since(mark))
		switch stage {
		case StepNormalize:
			// Nothing to rename without a first row.
			if len(out) > 0 {
				log.Info().Msg("Column names standardized.")
			}
		case StepImpute:
			log.Info().Msg("Missing values handled.")
		case StepValidate:
			log.Info().Msgf("Removed invalid rows. Remaining rows: %d", len(out))
		}
		mark = time.Now()
	})
	if rejectErr != nil {
		return sum, fmt.Errorf("rejects: %w", rejectErr)
	}
	if rejects != nil {
		log.Debug().Str("path", rejects.Path()).Int("rows", sum.Dropped()).Msg("rejects: rows logged")
	}
	sum.Kept = len(ds)
	metrics.RecordRow(job, "dropped", int64(sum.Loaded-sum.Kept))

	fp := fingerprint.Compute(ds)
	sum.Checksum = fp.Hex()
	sum.Duplicates = fp.Duplicates
	metrics.RecordRow(job, "duplicates", int64(fp.Duplicates))

	// Write.
	err = timed(job, StepWrite, func() error {
		werr := csvfile.Write(cfg.Output.Path, ds, writerOptions(cfg.Output))
		if errors.Is(werr, csvfile.ErrNothingToSave) {
			return nil
		}
		if werr == nil {
			sum.Written = true
		}
		return werr
	})
	if err != nil {
		return sum, fmt.Errorf("%s: %w", StepWrite, err)
	}
	if !sum.Written {
		log.Info().Msg("No data to save.")
		logSummary(log, sum)
		return sum, nil
	}
	metrics.RecordRow(job, "written", int64(sum.Kept))
	log.Info().Msgf("Cleaning complete. Cleaned data saved to %s", cfg.Output.Path)

	// Mirror.
	if cfg.Mirror.Enabled() {
		err = timed(job, StepMirror, func() error {
			n, merr := mirror(ctx, cfg, ds)
			sum.Mirrored = n
			return merr
		})
		if err != nil {
			return sum, fmt.Errorf("%s: %w", StepMirror, err)
		}
		metrics.RecordRow(job, "mirrored", sum.Mirrored)
		log.Info().
			Str("kind", cfg.Mirror.Kind).
			Str("table", cfg.Mirror.Table).
			Int64("rows", sum.Mirrored).
			Msg("mirror: rows copied")
	}

	logSummary(log, sum)
	return sum, nil
}

// mirror copies ds into the configured table, creating it first when asked.
func mirror(ctx context.Context, cfg config.Config, ds records.Dataset) (int64, error) {
	cols := ds.Columns()
	scfg := storage.Config{
		Kind:    cfg.Mirror.Kind,
		DSN:     cfg.Mirror.DSN,
		Table:   cfg.Mirror.Table,
		Columns: cols,
	}
	repo, err := storage.New(ctx, scfg)
	if err != nil {
		return 0, err
	}
	defer repo.Close()

	if cfg.Mirror.AutoCreateTable {
		if err := storage.EnsureTable(ctx, scfg, repo); err != nil {
			return 0, fmt.Errorf("ensure table: %w", err)
		}
	}

	batch := cfg.Mirror.EffectiveBatchSize()
	n, err := storage.LoadBatches(ctx, cols, storage.RowsFor(cols, ds), batch, repo.CopyFrom)
	if err != nil {
		return n, err
	}
	metrics.RecordBatches(cfg.Job, int64((len(ds)+batch-1)/batch))
	return n, nil
}

func writerOptions(o config.Output) csvfile.Options {
	return csvfile.Options{LF: strings.EqualFold(o.LineTerminator, config.TerminatorLF)}
}

// timed runs fn and records its duration and outcome under step.
func timed(job, step string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStep(job, step, err, time.Since(start))
	return err
}

func logSummary(log zerolog.Logger, s Summary) {
	log.Debug().
		Int("loaded", s.Loaded).
		Int("kept", s.Kept).
		Int("dropped", s.Dropped()).
		Interface("rejected", s.Rejected).
		Bool("written", s.Written).
		Str("checksum", s.Checksum).
		Int("duplicates", s.Duplicates).
		Int64("mirrored", s.Mirrored).
		Msg("run summary")
}
