// Package pdf extracts raw tables from PDF documents using ledongthuc/pdf
// (pure Go, no CGO). It is a separate subpackage so the dependency is only
// pulled in by callers that need PDF input.
//
// The extractor is a light stand-in for a full table-structure engine: each
// page's text is grouped into rows, and a row is cut into cells wherever the
// horizontal gap between adjacent text fragments exceeds a threshold. That is
// good enough for the column-ruled reports this pipeline consumes; the
// downstream cleaner and header resolver absorb the noise.
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"tablemill/internal/table"
)

// DefaultCellGap is the horizontal distance, in PDF points, above which two
// adjacent fragments belong to different cells.
const DefaultCellGap = 12.0

// wordGap is the distance above which two fragments in the same cell are
// separated by a space when joined.
const wordGap = 1.0

// Extractor reads one raw table per non-empty PDF page.
type Extractor struct {
	// CellGap overrides DefaultCellGap when > 0.
	CellGap float64
}

func (e Extractor) cellGap() float64 {
	if e.CellGap > 0 {
		return e.CellGap
	}
	return DefaultCellGap
}

// Extract opens the document, walks its pages in order, and returns the
// per-page raw tables. The file handle is closed before returning on every
// path.
func (e Extractor) Extract(ctx context.Context, path string) ([]table.Table, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var tables []table.Table
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d of %s: %w", i, path, err)
		}
		t := e.pageTable(rows)
		if !t.Empty() {
			tables = append(tables, t)
		}
	}
	return tables, nil
}

// pageTable converts one page's text rows into a raw table.
func (e Extractor) pageTable(rows pdf.Rows) table.Table {
	var out [][]table.Cell
	for _, row := range rows {
		cells := e.splitRow(row.Content)
		if len(cells) > 0 {
			out = append(out, cells)
		}
	}
	return table.FromRows(out)
}

// splitRow cuts a row's fragments into cells on horizontal gaps.
func (e Extractor) splitRow(frags pdf.TextHorizontal) []table.Cell {
	if len(frags) == 0 {
		return nil
	}
	sorted := make([]pdf.Text, len(frags))
	copy(sorted, frags)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var cells []table.Cell
	var b strings.Builder
	flush := func() {
		s := strings.TrimSpace(b.String())
		b.Reset()
		if s == "" {
			cells = append(cells, table.Null)
			return
		}
		cells = append(cells, table.String(s))
	}

	end := sorted[0].X
	for i, fr := range sorted {
		if i > 0 {
			gap := fr.X - end
			switch {
			case gap > e.cellGap():
				flush()
			case gap > wordGap:
				b.WriteByte(' ')
			}
		}
		b.WriteString(fr.S)
		if right := fr.X + fr.W; right > end {
			end = right
		}
	}
	flush()
	return cells
}
