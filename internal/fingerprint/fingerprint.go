// Package fingerprint summarizes a Dataset with an xxh3 checksum and an exact
// count of duplicate rows. Both depend on column names, cell values and key
// order; Row.Line is ignored.
package fingerprint

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"

	"salesclean/internal/records"
)

// Result describes a Dataset.
type Result struct {
	Rows int
	// Duplicates counts rows equal to an earlier row.
	Duplicates int
	// Checksum is the xxh3 digest over every row in order.
	Checksum uint64
}

// Hex renders the checksum as 16 lowercase hex digits.
func (r Result) Hex() string { return fmt.Sprintf("%016x", r.Checksum) }

// Compute fingerprints ds. Duplicate detection compares full rows on hash
// collision, so the count is exact.
func Compute(ds records.Dataset) Result {
	res := Result{Rows: len(ds)}
	h := xxh3.New()
	seen := make(map[uint64][]*records.Row, len(ds))

	var buf []byte
	for _, r := range ds {
		buf = appendRow(buf[:0], r)
		_, _ = h.Write(buf)

		rh := xxh3.Hash(buf)
		dup := false
		for _, prev := range seen[rh] {
			if prev.Equal(r) {
				dup = true
				break
			}
		}
		if dup {
			res.Duplicates++
			continue
		}
		seen[rh] = append(seen[rh], r)
	}
	res.Checksum = h.Sum64()
	return res
}

// appendRow length-prefixes every key and value so that distinct rows never
// share an encoding.
func appendRow(dst []byte, r *records.Row) []byte {
	dst = binary.AppendUvarint(dst, uint64(r.Len()))
	r.Each(func(k, v string) {
		dst = binary.AppendUvarint(dst, uint64(len(k)))
		dst = append(dst, k...)
		dst = binary.AppendUvarint(dst, uint64(len(v)))
		dst = append(dst, v...)
	})
	return dst
}
