// Package skiplog writes rows dropped by the validator to a CSV file with the
// columns reason, line and row.
package skiplog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"salesclean/internal/records"
)

// Header is the first record of every reject log.
var Header = []string{"reason", "line", "row"}

// Log is an open reject log. It is not safe for concurrent use.
type Log struct {
	path string
	f    *os.File
	w    *csv.Writer
}

// Open creates path (and any missing parent directories), truncating an
// existing file, and writes the header.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open reject log: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write reject header: %w", err)
	}
	return &Log{path: path, f: f, w: w}, nil
}

// Path returns the file the log writes to.
func (l *Log) Path() string { return l.path }

// Add appends one rejected row. line is the 1-based source line, or 0 when
// unknown. The row's cells are rendered in key order as a single CSV record.
func (l *Log) Add(reason string, line int, row *records.Row) error {
	return l.w.Write([]string{reason, strconv.Itoa(line), encodeRow(row)})
}

// Close flushes buffered records and closes the file.
func (l *Log) Close() error {
	l.w.Flush()
	werr := l.w.Error()
	cerr := l.f.Close()
	if werr != nil {
		return fmt.Errorf("flush reject log: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("close reject log: %w", cerr)
	}
	return nil
}

func encodeRow(row *records.Row) string {
	if row == nil {
		return ""
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(row.Values())
	w.Flush()
	return strings.TrimSuffix(sb.String(), "\n")
}
