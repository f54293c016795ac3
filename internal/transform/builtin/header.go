package builtin

import (
	"fmt"
	"unicode"

	"tablemill/internal/table"
)

// ResolveHeader is the header-promotion transform for raw tables.
//
// Extracted tables carry no reliable header information: the first row may be
// column titles, or it may be data. ResolveHeader decides with a statistical
// guess and is deliberately simple so that its behavior is reproducible:
//
//   - compute the alpha ratio of the first row: the fraction of its cells
//     (null coerced to the empty string) containing at least one letter;
//   - ratio >= 0.5: promote the first row to column names, substituting
//     "col_{1-based position}" for any empty cell or the literal "None", and
//     drop the row from the data;
//   - ratio < 0.5: the table is headerless. If the column identifiers are
//     still the default positional sequence they become "col_{n}" names;
//     columns already named by an upstream stage are left untouched.
//
// The 0.5 threshold and first-row-only scope are part of the observable
// contract: false positives and negatives are expected and accepted, the
// guarantee is determinism, not accuracy. An empty table is returned
// unchanged.
type ResolveHeader struct{}

func (ResolveHeader) Apply(t table.Table) table.Table {
	if t.Empty() {
		return t
	}
	first := t.Rows[0]
	alpha := 0
	for _, c := range first {
		if containsLetter(c.Value()) {
			alpha++
		}
	}
	if float64(alpha)/float64(len(first)) >= 0.5 {
		cols := make([]string, len(first))
		for i, c := range first {
			v := c.Value()
			if v == "" || v == "None" {
				v = positionalName(i)
			}
			cols[i] = v
		}
		t.Columns = cols
		t.Rows = t.Rows[1:]
		return t
	}
	if table.IsPositional(t.Columns) {
		cols := make([]string, len(t.Columns))
		for i := range cols {
			cols[i] = positionalName(i)
		}
		t.Columns = cols
	}
	return t
}

// positionalName is the synthetic column name for 0-based position i.
func positionalName(i int) string { return fmt.Sprintf("col_%d", i+1) }

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
