package builtin

import (
	"strings"

	"tablemill/internal/table"
)

// Clean removes unusable rows and columns. Order matters:
//
//  1. drop every column whose cells are all null,
//  2. drop every row whose cells are all null,
//  3. drop every remaining column whose every value trims to the empty
//     string (cells that survived step 1 because they hold whitespace text).
//
// Step 3 only treats literal empty/whitespace text as empty: a cell holding
// an em-dash or other punctuation is data and keeps its column alive.
//
// Clean is idempotent. The result may have zero rows and/or zero columns;
// callers must treat that as "no usable table".
type Clean struct{}

func (Clean) Apply(t table.Table) table.Table {
	t = dropColumns(t, func(c table.Cell) bool { return !c.Valid })
	t = dropNullRows(t)
	t = dropColumns(t, func(c table.Cell) bool {
		return strings.TrimSpace(c.Value()) == ""
	})
	return t
}

// dropColumns removes every column for which empty(cell) holds in all rows.
// Columns of a zero-row table are kept: with no values there is no evidence.
func dropColumns(t table.Table, empty func(table.Cell) bool) table.Table {
	if len(t.Rows) == 0 {
		return t
	}
	keep := make([]int, 0, len(t.Columns))
	for j := range t.Columns {
		for _, row := range t.Rows {
			if !empty(row[j]) {
				keep = append(keep, j)
				break
			}
		}
	}
	if len(keep) == len(t.Columns) {
		return t
	}
	out := table.Table{Columns: make([]string, len(keep))}
	for i, j := range keep {
		out.Columns[i] = t.Columns[j]
	}
	out.Rows = make([][]table.Cell, len(t.Rows))
	for i, row := range t.Rows {
		nr := make([]table.Cell, len(keep))
		for k, j := range keep {
			nr[k] = row[j]
		}
		out.Rows[i] = nr
	}
	return out
}

func dropNullRows(t table.Table) table.Table {
	out := t.Rows[:0]
	for _, row := range t.Rows {
		allNull := true
		for _, c := range row {
			if c.Valid {
				allNull = false
				break
			}
		}
		if !allNull {
			out = append(out, row)
		}
	}
	t.Rows = out
	return t
}
