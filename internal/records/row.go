// Package records defines the in-memory representation of a tabular dataset
// as it moves through the cleaning pipeline.
//
// A Row is an ordered mapping from column name to cell value. Key order is
// insertion order and is significant: the writer derives the output header
// from the first row's key order. Cell values are always strings; numeric
// interpretation happens transiently inside the validator.
package records

// Row is one data record. The zero value is an empty, usable row.
type Row struct {
	// Line is the 1-based source line on which the record started, or 0 when
	// the row was not produced by the loader. It is never serialized.
	Line int

	keys []string
	vals map[string]string
}

// NewRow returns an empty row with room for n columns.
func NewRow(n int) *Row {
	return &Row{
		keys: make([]string, 0, n),
		vals: make(map[string]string, n),
	}
}

// Set stores v under key. A new key is appended to the key order; an existing
// key keeps its position and only its value is replaced (last write wins).
func (r *Row) Set(key, v string) {
	if r.vals == nil {
		r.vals = make(map[string]string)
	}
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
}

// Get returns the value stored under key and whether the key is present.
func (r *Row) Get(key string) (string, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Row) Has(key string) bool {
	_, ok := r.vals[key]
	return ok
}

// Len returns the number of columns in the row.
func (r *Row) Len() int { return len(r.keys) }

// Keys returns a copy of the column names in key order.
func (r *Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Values returns the cell values in key order.
func (r *Row) Values() []string {
	out := make([]string, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.vals[k]
	}
	return out
}

// Each calls fn for every column in key order. fn may replace the value of the
// current key through Set; it must not add or remove keys.
func (r *Row) Each(fn func(key, v string)) {
	for _, k := range r.keys {
		fn(k, r.vals[k])
	}
}

// Clone returns a deep copy of r.
func (r *Row) Clone() *Row {
	c := NewRow(len(r.keys))
	c.Line = r.Line
	for _, k := range r.keys {
		c.Set(k, r.vals[k])
	}
	return c
}

// Equal reports whether r and o hold the same keys in the same order with the
// same values. Line is ignored.
func (r *Row) Equal(o *Row) bool {
	if r == nil || o == nil {
		return r == o
	}
	if len(r.keys) != len(o.keys) {
		return false
	}
	for i, k := range r.keys {
		if o.keys[i] != k || o.vals[k] != r.vals[k] {
			return false
		}
	}
	return true
}

// SameKeySet reports whether o has exactly the keys of r, ignoring order.
func (r *Row) SameKeySet(o *Row) bool {
	if len(r.keys) != len(o.keys) {
		return false
	}
	for _, k := range r.keys {
		if !o.Has(k) {
			return false
		}
	}
	return true
}

// FromPairs builds a row from alternating key/value arguments. It is mostly a
// convenience for tests and fixtures; an odd trailing key is stored with an
// empty value.
func FromPairs(kv ...string) *Row {
	r := NewRow(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		v := ""
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		r.Set(kv[i], v)
	}
	return r
}

// Dataset is an ordered sequence of rows in source order.
type Dataset []*Row

// Columns returns the key order of the first row, or nil for an empty dataset.
func (d Dataset) Columns() []string {
	if len(d) == 0 {
		return nil
	}
	return d[0].Keys()
}

// Equal reports whether d and o contain equal rows in the same order.
func (d Dataset) Equal(o Dataset) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if !d[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Clone deep-copies every row.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	for i, r := range d {
		out[i] = r.Clone()
	}
	return out
}
