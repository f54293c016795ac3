// Package transform defines the table transformation contract used by the
// normalization pipeline.
package transform

import "tablemill/internal/table"

// Transform rewrites a table. Implementations are total functions: any input
// table yields an output table, never an error. Implementations may return a
// table sharing storage with the input; callers that need isolation clone.
type Transform interface {
	Apply(table.Table) table.Table
}

// Chain is an ordered list of transforms.
type Chain []Transform

func (c Chain) Apply(t table.Table) table.Table {
	out := t
	for _, tr := range c {
		out = tr.Apply(out)
	}
	return out
}
