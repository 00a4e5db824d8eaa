// Package parser holds the contract shared by input parsers.
package parser

import (
	"io"

	"salesclean/internal/records"
)

// Parser turns raw bytes into a Dataset in source order.
type Parser interface {
	Parse(r io.Reader) (records.Dataset, error)
}
