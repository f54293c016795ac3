// Package builtin contains the built-in table transforms: cell normalization,
// empty row/column cleaning, header resolution, column-name sanitization, and
// the multi-table merge.
package builtin

import (
	"strings"

	"tablemill/internal/table"
)

// Normalize rewrites every cell so that downstream stages see a uniform
// value space: null stays null, text is trimmed, internal whitespace runs
// collapse to a single space, and whitespace-only text becomes null.
type Normalize struct{}

// NormalizeCell normalizes a single raw cell value.
func NormalizeCell(c table.Cell) table.Cell {
	if !c.Valid {
		return table.Null
	}
	fields := strings.Fields(c.Text)
	if len(fields) == 0 {
		return table.Null
	}
	return table.String(strings.Join(fields, " "))
}

func (Normalize) Apply(t table.Table) table.Table {
	for _, row := range t.Rows {
		for i, c := range row {
			row[i] = NormalizeCell(c)
		}
	}
	return t
}
