// Package grid extracts raw tables from delimited text documents. A document
// is a sequence of pages separated by form feeds; within a page, tables are
// blocks of delimited lines separated by blank lines. The parser is
// best-effort: malformed lines are tolerated, variable field counts are
// allowed, and cell values are passed through untouched for the downstream
// normalizer.
package grid

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"tablemill/internal/table"
)

// Extractor reads delimited grids. The zero value uses tab as delimiter.
type Extractor struct {
	// Comma is the cell delimiter; 0 means '\t'.
	Comma rune
}

func (e Extractor) delimiter() rune {
	if e.Comma == 0 {
		return '\t'
	}
	return e.Comma
}

// Extract parses the document at path into raw tables. The file handle is
// closed before returning.
func (e Extractor) Extract(ctx context.Context, path string) ([]table.Table, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var tables []table.Table
	for _, page := range strings.Split(string(data), "\f") {
		for _, block := range splitBlocks(page) {
			t, err := e.parseBlock(block)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			if t.Width() > 0 {
				tables = append(tables, t)
			}
		}
	}
	return tables, nil
}

// splitBlocks cuts a page into blank-line-separated line blocks.
func splitBlocks(page string) []string {
	var blocks []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	for _, line := range strings.Split(page, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return blocks
}

// parseBlock reads one delimited block into a raw table. Rows keep their raw
// cell text; empty fields become null cells so the cleaner can see them.
func (e Extractor) parseBlock(block string) (table.Table, error) {
	r := csv.NewReader(strings.NewReader(block))
	r.Comma = e.delimiter()
	r.FieldsPerRecord = -1 // tolerate ragged rows; FromRows pads them
	r.LazyQuotes = true

	var rows [][]table.Cell
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table.Table{}, err
		}
		row := make([]table.Cell, len(rec))
		for i, f := range rec {
			if f == "" {
				row[i] = table.Null
				continue
			}
			row[i] = table.String(f)
		}
		rows = append(rows, row)
	}
	return table.FromRows(rows), nil
}
