package builtin

import (
	"strings"

	"salesclean/internal/records"
)

// Column names the cleaning stages know about.
const (
	ColPrice       = "price"
	ColQuantity    = "quantity"
	ColProductName = "product_name"
	ColCategory    = "category"
)

// Reasons reported for dropped rows.
const (
	ReasonInvalidPrice     = "invalid_price"
	ReasonInvalidQuantity  = "invalid_quantity"
	ReasonNegativePrice    = "negative_price"
	ReasonNegativeQuantity = "negative_quantity"
)

// trimmedColumns are stripped of edge whitespace on rows that survive.
var trimmedColumns = []string{ColProductName, ColCategory}

// RejectedRow describes a row dropped by Validate.
type RejectedRow struct {
	Line   int
	Row    *records.Row
	Reason string
}

// Validate keeps rows whose price parses as a non-negative real number and
// whose quantity parses as a non-negative integer. A missing price or
// quantity column counts as 0. Rows that fail are dropped silently; Reject,
// when set, is told about each one.
type Validate struct {
	Reject func(RejectedRow)
}

// Apply returns a new dataset with the surviving rows in their original
// relative order. product_name and category are trimmed on survivors only.
func (v Validate) Apply(in records.Dataset) records.Dataset {
	out := make(records.Dataset, 0, len(in))
	for _, r := range in {
		if reason := rejectReason(r); reason != "" {
			if v.Reject != nil {
				v.Reject(RejectedRow{Line: r.Line, Row: r, Reason: reason})
			}
			continue
		}
		for _, col := range trimmedColumns {
			if s, ok := r.Get(col); ok {
				r.Set(col, strings.TrimSpace(s))
			}
		}
		out = append(out, r)
	}
	return out
}

// rejectReason returns "" for a valid row. Price is checked before quantity.
func rejectReason(r *records.Row) string {
	price := 0.0
	if s, ok := r.Get(ColPrice); ok {
		f, err := ParseReal(s)
		if err != nil {
			return ReasonInvalidPrice
		}
		price = f
	}

	qtySign := 0
	if s, ok := r.Get(ColQuantity); ok {
		n, err := ParseInteger(s)
		if err != nil {
			return ReasonInvalidQuantity
		}
		qtySign = n.Sign()
	}

	switch {
	case price < 0:
		return ReasonNegativePrice
	case qtySign < 0:
		return ReasonNegativeQuantity
	}
	return ""
}
