// Package csvfile writes a cleaned Dataset as a comma-delimited file: a header
// taken from the first row's key order followed by one record per row.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"salesclean/internal/records"
)

var (
	// ErrNothingToSave is returned for an empty Dataset. No file is created.
	ErrNothingToSave = errors.New("no data to save")
	// ErrSchemaMismatch is returned when a row's key set differs from the
	// first row's. No file is created.
	ErrSchemaMismatch = errors.New("row schema differs from header")
)

// Options controls the output dialect. The zero value writes CRLF-terminated
// records separated by commas.
type Options struct {
	// LF terminates records with "\n" instead of "\r\n".
	LF bool
}

// Write validates ds and writes it to path, truncating any existing file. The
// destination directory must already exist.
func Write(path string, ds records.Dataset, opts Options) (err error) {
	if len(ds) == 0 {
		return ErrNothingToSave
	}
	if err := CheckSchema(ds); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	if err := Encode(f, ds, opts); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Encode writes ds to w without the emptiness and schema checks done by
// Write. Cells are emitted in header order.
func Encode(w io.Writer, ds records.Dataset, opts Options) error {
	if len(ds) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = !opts.LF

	header := ds[0].Keys()
	if err := cw.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(header))
	for _, r := range ds {
		for i, k := range header {
			rec[i], _ = r.Get(k)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CheckSchema reports the first row whose key set is not exactly the first
// row's key set. Row indexes in the error are 0-based positions in ds.
func CheckSchema(ds records.Dataset) error {
	if len(ds) == 0 {
		return nil
	}
	first := ds[0]
	for i, r := range ds[1:] {
		idx := i + 1
		if r.SameKeySet(first) {
			continue
		}
		for _, k := range first.Keys() {
			if !r.Has(k) {
				return fmt.Errorf("%w: row %d missing key %q", ErrSchemaMismatch, idx, k)
			}
		}
		for _, k := range r.Keys() {
			if !first.Has(k) {
				return fmt.Errorf("%w: row %d has extra key %q", ErrSchemaMismatch, idx, k)
			}
		}
	}
	return nil
}
