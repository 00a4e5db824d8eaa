// Package transformer defines the stage contract of the cleaning pipeline and
// an ordered Chain that threads a Dataset through a list of stages.
package transformer

import "salesclean/internal/records"

// Transformer is one pipeline stage. Apply may mutate rows in place and may
// return the input slice or a new one.
type Transformer interface {
	Apply(records.Dataset) records.Dataset
}

// Func adapts a plain function to Transformer.
type Func func(records.Dataset) records.Dataset

// Apply calls f.
func (f Func) Apply(in records.Dataset) records.Dataset { return f(in) }

// Named pairs a stage with the name used in logs and metrics.
type Named struct {
	Name string
	Transformer
}

// Chain is an ordered list of transformers.
type Chain []Named

// Apply runs every stage in order. After each stage, observe (if non-nil)
// receives the stage name and the dataset that stage produced.
func (c Chain) Apply(in records.Dataset, observe func(stage string, out records.Dataset)) records.Dataset {
	out := in
	for _, t := range c {
		out = t.Apply(out)
		if observe != nil {
			observe(t.Name, out)
		}
	}
	return out
}
