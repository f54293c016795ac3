// Package tsv serializes tables as tab-separated text: one header row with
// the column names, one line per data row, null values as empty fields. The
// writer quotes fields only when required, so all cell characters survive a
// round trip.
package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tablemill/internal/table"
)

// Write serializes t to w.
func Write(w io.Writer, t table.Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, t.Width())
	for i, row := range t.Rows {
		for j, c := range row {
			record[j] = c.Value()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile serializes t to path, creating parent directories as needed.
func WriteFile(path string, t table.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, t); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
