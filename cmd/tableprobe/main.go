// Command tableprobe inspects a single document: it extracts the raw tables,
// runs each through the normalization pipeline, and prints the resolved
// schema plus a sample of rows. Useful for tuning extractor options before
// wiring a document set into a pipeline config.
//
// Usage:
//
//	tableprobe [-raw] [-rows N] [-comma c] [-cell-gap pts] FILE
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"tablemill/internal/dataset"
	"tablemill/internal/extract"
	"tablemill/internal/extract/grid"
	pdfext "tablemill/internal/extract/pdf"
	"tablemill/internal/table"
	"tablemill/internal/transform/builtin"
	"unicode/utf8"
)

func main() {
	raw := flag.Bool("raw", false, "print raw extracted tables instead of normalized ones")
	sample := flag.Int("rows", 10, "max sample rows to print per table")
	comma := flag.String("comma", "\t", "grid cell delimiter")
	cellGap := flag.Float64("cell-gap", 0, "pdf column-gap threshold in points (0 = default)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tableprobe [flags] FILE")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	ex := buildExtractor(path, *comma, *cellGap)
	tables, err := ex.Extract(context.Background(), path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extract %s: %v\n", path, err)
		os.Exit(1)
	}
	if len(tables) == 0 {
		fmt.Printf("%s: no table detected\n", path)
		return
	}

	chain := dataset.Pipeline()
	var kept []table.Table
	for i, t := range tables {
		out := t
		if !*raw {
			out = chain.Apply(t)
		}
		if out.Empty() {
			fmt.Printf("table %d: empty after cleaning (raw %dx%d)\n", i+1, t.Height(), t.Width())
			continue
		}
		kept = append(kept, out)
		fmt.Printf("table %d: %d rows, %d columns\n", i+1, out.Height(), out.Width())
		printTable(out, *sample)
		fmt.Println()
	}

	if *raw || len(kept) < 2 {
		return
	}
	merged := builtin.Merge(kept)
	fmt.Printf("merged: %d rows, %d columns\n", merged.Height(), merged.Width())
	printTable(merged, *sample)
}

func buildExtractor(path, comma string, cellGap float64) extract.Extractor {
	c := '\t'
	if comma != "" {
		c = []rune(comma)[0]
	}
	a := extract.NewAuto()
	a.Register(".pdf", pdfext.Extractor{CellGap: cellGap})
	a.Register("", grid.Extractor{Comma: c})
	return a
}

// printTable writes the columns and up to max rows as aligned text, with "∅"
// standing in for null cells.
func printTable(t table.Table, max int) {
	widths := make([]int, t.Width())
	for i, c := range t.Columns {
		widths[i] = len(c)
	}
	n := t.Height()
	if n > max {
		n = max
	}
	for _, row := range t.Rows[:n] {
		for i, c := range row {
			if w := utf8.RuneCountInString(cellText(c)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	fmt.Println("  " + formatRow(t.Columns, widths))
	for _, row := range t.Rows[:n] {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cellText(c)
		}
		fmt.Println("  " + formatRow(cells, widths))
	}
	if t.Height() > n {
		fmt.Printf("  ... %d more rows\n", t.Height()-n)
	}
}

func cellText(c table.Cell) string {
	if !c.Valid {
		return "∅"
	}
	return c.Text
}

func formatRow(cells []string, widths []int) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(c)
		b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(c)))
	}
	return strings.TrimRight(b.String(), " ")
}
