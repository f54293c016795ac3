// Package table defines the in-memory tabular model shared by every pipeline
// stage: a Cell is either text or null, and a Table is an ordered grid of
// cells under an ordered list of column names.
//
// Cell values from extractors may arrive as arbitrary text; everything after
// the ingestion boundary operates on this single closed representation. No
// data-type inference is performed anywhere: values stay text for the life of
// the pipeline.
package table

import "strconv"

// Cell is a single table value: either text (Valid=true) or null.
type Cell struct {
	Valid bool
	Text  string
}

// Null is the absent/empty cell value.
var Null = Cell{}

// String returns a valid text cell holding s.
func String(s string) Cell { return Cell{Valid: true, Text: s} }

// Value returns the cell's text, or "" when the cell is null. Used wherever
// the pipeline coerces a cell "to text" (header inspection, emptiness checks).
func (c Cell) Value() string {
	if !c.Valid {
		return ""
	}
	return c.Text
}

// Table is an ordered sequence of named columns and data rows. Every row has
// exactly len(Columns) cells; constructors enforce this by padding short rows
// with nulls.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// FromRows builds a raw table from extracted rows. Column identifiers are the
// default positional sequence ("0", "1", ...) until a header is resolved.
// Ragged rows are padded with trailing nulls to the widest row so that
// malformed extractor output never raises downstream.
func FromRows(rows [][]Cell) Table {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	out := Table{Columns: PositionalColumns(width)}
	for _, r := range rows {
		row := make([]Cell, width)
		copy(row, r)
		out.Rows = append(out.Rows, row)
	}
	return out
}

// PositionalColumns returns the default column identifiers "0".."n-1".
func PositionalColumns(n int) []string {
	if n == 0 {
		return nil
	}
	cols := make([]string, n)
	for i := range cols {
		cols[i] = strconv.Itoa(i)
	}
	return cols
}

// IsPositional reports whether cols is exactly the default positional
// sequence "0".."n-1". The header resolver uses this to tell a never-named
// table apart from one whose columns were already assigned upstream.
func IsPositional(cols []string) bool {
	for i, c := range cols {
		if c != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

// Width returns the number of columns.
func (t Table) Width() int { return len(t.Columns) }

// Height returns the number of data rows.
func (t Table) Height() int { return len(t.Rows) }

// Empty reports whether the table has no usable shape: zero rows or zero
// columns. Callers treat an empty result as "no usable table" and skip
// downstream stages.
func (t Table) Empty() bool { return len(t.Rows) == 0 || len(t.Columns) == 0 }

// Clone returns a deep copy. Stages that must not alias their input (e.g.
// tagging a per-document table for the master dataset) copy first.
func (t Table) Clone() Table {
	out := Table{Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([][]Cell, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = append([]Cell(nil), r...)
	}
	return out
}

// Reindex projects the table onto the given column sequence. Columns absent
// from the table are filled with nulls; column order follows cols, not the
// receiver. Duplicate source names resolve to their first occurrence.
func (t Table) Reindex(cols []string) Table {
	src := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, ok := src[c]; !ok {
			src[c] = i
		}
	}
	out := Table{Columns: append([]string(nil), cols...)}
	out.Rows = make([][]Cell, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]Cell, len(cols))
		for j, c := range cols {
			if k, ok := src[c]; ok && k < len(r) {
				row[j] = r[k]
			}
		}
		out.Rows[i] = row
	}
	return out
}

// Prepend returns a copy of the table with an extra leading column named name
// holding value in every row.
func (t Table) Prepend(name string, value Cell) Table {
	out := Table{Columns: append([]string{name}, t.Columns...)}
	out.Rows = make([][]Cell, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]Cell, 0, len(r)+1)
		row = append(row, value)
		row = append(row, r...)
		out.Rows[i] = row
	}
	return out
}
