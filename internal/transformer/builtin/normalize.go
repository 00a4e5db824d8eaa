// Package builtin contains the cleaning stages of the pipeline: schema
// normalization, missing-value imputation, and row validation.
package builtin

import (
	"strings"

	"salesclean/internal/records"
)

// CanonicalName trims leading/trailing whitespace, lowercases, and replaces
// each space with an underscore. No other characters are altered.
func CanonicalName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// Collisions returns, for every canonical name produced by more than one of
// keys, the original names in key order. It returns nil when there are none.
func Collisions(keys []string) map[string][]string {
	groups := make(map[string][]string, len(keys))
	for _, k := range keys {
		c := CanonicalName(k)
		groups[c] = append(groups[c], k)
	}
	var out map[string][]string
	for c, orig := range groups {
		if len(orig) < 2 {
			continue
		}
		if out == nil {
			out = map[string][]string{}
		}
		out[c] = orig
	}
	return out
}

// Normalize re-keys every row under canonical column names.
//
// The mapping is derived from the first row's keys. When several original
// names share a canonical name the later column's value wins and the merged
// key keeps the position of its first occurrence.
type Normalize struct {
	// OnCollision, if set, is called once per colliding canonical name per
	// Apply, in first-occurrence order. It does not change the result.
	OnCollision func(canonical string, originals []string)
}

// Apply returns a dataset with the same rows in the same order under
// canonical keys. An empty dataset is returned unchanged.
func (n Normalize) Apply(in records.Dataset) records.Dataset {
	if len(in) == 0 {
		return in
	}

	oldKeys := in[0].Keys()
	newKeys := make([]string, len(oldKeys))
	for i, k := range oldKeys {
		newKeys[i] = CanonicalName(k)
	}

	if n.OnCollision != nil {
		if groups := Collisions(oldKeys); groups != nil {
			seen := make(map[string]bool, len(groups))
			for _, c := range newKeys {
				if orig, ok := groups[c]; ok && !seen[c] {
					seen[c] = true
					n.OnCollision(c, orig)
				}
			}
		}
	}

	out := make(records.Dataset, len(in))
	for i, r := range in {
		nr := records.NewRow(len(oldKeys))
		nr.Line = r.Line
		for j, old := range oldKeys {
			if v, ok := r.Get(old); ok {
				nr.Set(newKeys[j], v)
			}
		}
		out[i] = nr
	}
	return out
}
