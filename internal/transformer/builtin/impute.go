package builtin

import "salesclean/internal/records"

// Default fill values.
const (
	NumericFill = "0"
	TextFill    = "Unknown"
)

// numericColumns are filled with NumericFill; every other column gets TextFill.
var numericColumns = map[string]struct{}{
	ColPrice:    {},
	ColQuantity: {},
}

// Impute replaces empty cells in place. Only the empty string counts as
// missing; whitespace-only values are left alone.
type Impute struct{}

// Apply fills every empty cell and returns in. No rows are added or removed.
func (Impute) Apply(in records.Dataset) records.Dataset {
	for _, r := range in {
		r.Each(func(k, v string) {
			if v != "" {
				return
			}
			r.Set(k, FillFor(k))
		})
	}
	return in
}

// FillFor returns the replacement for an empty cell in column col.
func FillFor(col string) string {
	if _, ok := numericColumns[col]; ok {
		return NumericFill
	}
	return TextFill
}
