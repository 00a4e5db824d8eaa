package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"salesclean/internal/records"
)

// CopyFn abstracts a backend's bulk insert. Implementations insert rows aligned
// to columns and return the number of rows reported as inserted.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBatches splits rows into batches of at most batchSize and calls copyFn
// for each, in order. It returns the total reported by copyFn and stops at the
// first error. A progress line is logged through the context logger after
// every flush.
func LoadBatches(
	ctx context.Context,
	columns []string,
	rows [][]any,
	batchSize int,
	copyFn CopyFn,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("copyFn must not be nil")
	}

	log := zerolog.Ctx(ctx)
	var (
		total   int64
		batches int64
		start   = time.Now()
	)
	for lo := 0; lo < len(rows); lo += batchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		hi := min(lo+batchSize, len(rows))

		n, err := copyFn(ctx, columns, rows[lo:hi])
		total += n
		if err != nil {
			log.Error().Err(err).Int64("after", n).Int64("total", total).Msg("loader: copy failed")
			return total, err
		}
		batches++
		log.Debug().
			Int64("batch", batches).
			Int64("inserted", n).
			Int64("total_inserted", total).
			Dur("elapsed", time.Since(start).Truncate(time.Millisecond)).
			Msg("loader: batch flushed")
	}
	return total, nil
}

// RowsFor converts ds into positional rows aligned to columns. Missing cells
// become empty strings.
func RowsFor(columns []string, ds records.Dataset) [][]any {
	out := make([][]any, len(ds))
	for i, r := range ds {
		row := make([]any, len(columns))
		for j, c := range columns {
			v, _ := r.Get(c)
			row[j] = v
		}
		out[i] = row
	}
	return out
}
