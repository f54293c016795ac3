package builtin

import (
	"reflect"
	"testing"

	"tablemill/internal/table"
)

func mustTable(cols []string, rows ...[]table.Cell) table.Table {
	return table.Table{Columns: cols, Rows: rows}
}

// TestClean_DropsAllNullColumns verifies step 1: columns whose every cell is
// null disappear while partially filled columns survive.
func TestClean_DropsAllNullColumns(t *testing.T) {
	t.Parallel()

	in := mustTable([]string{"0", "1", "2"},
		[]table.Cell{table.String("a"), table.Null, table.String("x")},
		[]table.Cell{table.String("b"), table.Null, table.Null},
	)
	got := Clean{}.Apply(in)

	if want := []string{"0", "2"}; !reflect.DeepEqual(got.Columns, want) {
		t.Fatalf("Columns = %v, want %v", got.Columns, want)
	}
	if got.Height() != 2 {
		t.Fatalf("Height = %d, want 2", got.Height())
	}
}

// TestClean_DropsAllNullRows verifies step 2: rows that are entirely null
// after column dropping are removed.
func TestClean_DropsAllNullRows(t *testing.T) {
	t.Parallel()

	in := mustTable([]string{"0", "1"},
		[]table.Cell{table.String("a"), table.String("b")},
		[]table.Cell{table.Null, table.Null},
		[]table.Cell{table.String("c"), table.Null},
	)
	got := Clean{}.Apply(in)

	if got.Height() != 2 {
		t.Fatalf("Height = %d, want 2", got.Height())
	}
	if got.Rows[1][0] != table.String("c") {
		t.Fatalf("surviving rows out of order: %v", got.Rows)
	}
}

// TestClean_DropsTrimmedEmptyColumns verifies step 3: a column whose values
// are all whitespace text goes away, while punctuation keeps a column alive.
func TestClean_DropsTrimmedEmptyColumns(t *testing.T) {
	t.Parallel()

	in := mustTable([]string{"0", "1", "2"},
		[]table.Cell{table.String("a"), table.String("  "), table.String("-")},
		[]table.Cell{table.String("b"), table.String("\t"), table.String("-")},
	)
	got := Clean{}.Apply(in)

	if want := []string{"0", "2"}; !reflect.DeepEqual(got.Columns, want) {
		t.Fatalf("Columns = %v, want %v", got.Columns, want)
	}
}

// TestClean_Order exercises the interaction of the three steps: dropping an
// all-null column can leave a row entirely null, and that row must then
// disappear as well.
func TestClean_Order(t *testing.T) {
	t.Parallel()

	in := mustTable([]string{"0", "1"},
		[]table.Cell{table.String("a"), table.Null},
		[]table.Cell{table.Null, table.Null},
	)
	// Column 1 is all null and gets dropped; row 1 becomes all null.
	got := Clean{}.Apply(in)

	if want := []string{"0"}; !reflect.DeepEqual(got.Columns, want) {
		t.Fatalf("Columns = %v, want %v", got.Columns, want)
	}
	if got.Height() != 1 {
		t.Fatalf("Height = %d, want 1", got.Height())
	}
}

// TestClean_Idempotent verifies that applying Clean twice equals applying it
// once.
func TestClean_Idempotent(t *testing.T) {
	t.Parallel()

	tables := []table.Table{
		mustTable([]string{"0", "1", "2"},
			[]table.Cell{table.String("a"), table.Null, table.String(" ")},
			[]table.Cell{table.Null, table.Null, table.Null},
		),
		mustTable([]string{"0"},
			[]table.Cell{table.String("x")},
		),
		{},
	}

	for i, in := range tables {
		once := Clean{}.Apply(in.Clone())
		twice := Clean{}.Apply(once.Clone())
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("table %d: Clean not idempotent: once=%v twice=%v", i, once, twice)
		}
	}
}

// TestClean_AllEmptyTable verifies that a fully unusable table cleans down to
// zero rows while keeping its (now unverifiable) columns droppable.
func TestClean_AllEmptyTable(t *testing.T) {
	t.Parallel()

	in := mustTable([]string{"0", "1"},
		[]table.Cell{table.Null, table.String("  ")},
		[]table.Cell{table.Null, table.String(" ")},
	)
	got := Clean{}.Apply(in)

	if !got.Empty() {
		t.Fatalf("expected empty result, got %v", got)
	}
}

// TestClean_ZeroRowTableKeepsColumns documents that with no rows there is no
// evidence for dropping columns.
func TestClean_ZeroRowTableKeepsColumns(t *testing.T) {
	t.Parallel()

	in := table.Table{Columns: []string{"a", "b"}}
	got := Clean{}.Apply(in)

	if want := []string{"a", "b"}; !reflect.DeepEqual(got.Columns, want) {
		t.Fatalf("Columns = %v, want %v", got.Columns, want)
	}
}
