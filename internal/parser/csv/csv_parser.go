// Package csv loads a comma-delimited, UTF-8 file with a header row into a
// records.Dataset. The first record names the columns; every later record
// becomes one Row keyed by those names in header order.
//
// The loader is strict about shape: a record whose field count differs from
// the header aborts the load with ErrFormat. Cell contents are not validated.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"salesclean/internal/parser"
	"salesclean/internal/records"
)

// ErrFormat is returned (wrapped) when the input is not a well-formed
// delimited file: a record whose field count differs from the header, or a
// read failure inside the csv reader.
var ErrFormat = errors.New("csv format error")

// Parser reads delimited input. The zero value uses a comma delimiter.
type Parser struct {
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

var _ parser.Parser = (*Parser)(nil)

// NewParser returns a comma-delimited Parser.
func NewParser() *Parser { return &Parser{Comma: ','} }

// Load opens path, parses it, and closes the file before returning.
func Load(path string) (records.Dataset, error) {
	return NewParser().Load(path)
}

// Load opens path, parses it, and closes the file before returning.
func (p *Parser) Load(path string) (records.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	adviseSequential(f)

	ds, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// Parse consumes r and returns one Row per data record. A missing header
// (empty input) or a header with no data rows yields an empty Dataset.
func (p *Parser) Parse(r io.Reader) (records.Dataset, error) {
	// The validator fails on the first ill-formed byte before the decoder can
	// replace it with U+FFFD. UTF8BOM strips a leading byte-order mark so it
	// never leaks into the first column name.
	dec := transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder())
	cr := csv.NewReader(transform.NewReader(r, dec))
	if p.Comma != 0 {
		cr.Comma = p.Comma
	}
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return records.Dataset{}, nil
	}
	if err != nil {
		return nil, formatError("read header", 0, err)
	}
	cr.FieldsPerRecord = len(header)

	out := records.Dataset{}
	last := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, formatError("read record", last, err)
		}
		line, _ := cr.FieldPos(0)
		last = line

		row := records.NewRow(len(header))
		row.Line = line
		for i, val := range rec {
			row.Set(header[i], val)
		}
		out = append(out, row)
	}
	return out, nil
}

// formatError wraps err in ErrFormat. Invalid UTF-8 is reported after the
// last line read successfully, since the reader only sees it when it pulls
// more input. after is 0 while the header is being read.
func formatError(op string, after int, err error) error {
	if errors.Is(err, encoding.ErrInvalidUTF8) {
		if after == 0 {
			return fmt.Errorf("%w: invalid UTF-8 in header: %w", ErrFormat, err)
		}
		return fmt.Errorf("%w: invalid UTF-8 after line %d: %w", ErrFormat, after, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrFormat, op, err)
}
