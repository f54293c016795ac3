package pdf

import (
	"reflect"
	"testing"

	"github.com/ledongthuc/pdf"

	"tablemill/internal/table"
)

func frag(s string, x, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, W: w}
}

// TestSplitRow_CutsOnCellGap verifies that fragments separated by more than
// the cell gap land in different cells while close fragments join.
func TestSplitRow_CutsOnCellGap(t *testing.T) {
	t.Parallel()

	row := pdf.TextHorizontal{
		frag("Invoice", 10, 30),
		frag("2024", 42, 20), // gap 2: same cell, space-joined
		frag("Total", 120, 25),
	}
	got := Extractor{}.splitRow(row)

	want := []table.Cell{table.String("Invoice 2024"), table.String("Total")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitRow = %v, want %v", got, want)
	}
}

// TestSplitRow_TightFragmentsConcatenate verifies that fragments closer than
// the word gap join without a space (split glyph runs).
func TestSplitRow_TightFragmentsConcatenate(t *testing.T) {
	t.Parallel()

	row := pdf.TextHorizontal{
		frag("To", 10, 10),
		frag("tal", 20.5, 12),
	}
	got := Extractor{}.splitRow(row)

	want := []table.Cell{table.String("Total")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitRow = %v, want %v", got, want)
	}
}

// TestSplitRow_SortsByX verifies that fragment order on the page, not in the
// content stream, decides cell order.
func TestSplitRow_SortsByX(t *testing.T) {
	t.Parallel()

	row := pdf.TextHorizontal{
		frag("right", 100, 20),
		frag("left", 10, 20),
	}
	got := Extractor{}.splitRow(row)

	want := []table.Cell{table.String("left"), table.String("right")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitRow = %v, want %v", got, want)
	}
}

// TestSplitRow_CustomGap verifies that CellGap tightens or loosens the cut
// threshold.
func TestSplitRow_CustomGap(t *testing.T) {
	t.Parallel()

	row := pdf.TextHorizontal{
		frag("a", 10, 10),
		frag("b", 26, 10), // gap 6
	}

	if got := (Extractor{}).splitRow(row); len(got) != 1 {
		t.Fatalf("default gap should keep one cell, got %v", got)
	}
	if got := (Extractor{CellGap: 5}).splitRow(row); len(got) != 2 {
		t.Fatalf("CellGap=5 should cut into two cells, got %v", got)
	}
}

func TestSplitRow_Empty(t *testing.T) {
	t.Parallel()

	if got := (Extractor{}).splitRow(nil); got != nil {
		t.Fatalf("splitRow(nil) = %v, want nil", got)
	}
}

// TestPageTable verifies row assembly: each text row becomes a table row,
// positional columns, ragged rows padded.
func TestPageTable(t *testing.T) {
	t.Parallel()

	rows := pdf.Rows{
		&pdf.Row{Position: 700, Content: pdf.TextHorizontal{
			frag("Name", 10, 30),
			frag("Amount", 100, 40),
		}},
		&pdf.Row{Position: 680, Content: pdf.TextHorizontal{
			frag("Bob", 10, 20),
		}},
	}
	got := Extractor{}.pageTable(rows)

	if want := []string{"0", "1"}; !reflect.DeepEqual(got.Columns, want) {
		t.Fatalf("Columns = %v, want %v", got.Columns, want)
	}
	if got.Height() != 2 {
		t.Fatalf("Height = %d, want 2", got.Height())
	}
	if got.Rows[0][1] != table.String("Amount") {
		t.Fatalf("row 0 = %v", got.Rows[0])
	}
	if got.Rows[1][1] != table.Null {
		t.Fatalf("short row not padded: %v", got.Rows[1])
	}
}
