package builtin

import (
	"testing"

	"tablemill/internal/table"
)

func TestNormalizeCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   table.Cell
		want table.Cell
	}{
		{"null stays null", table.Null, table.Null},
		{"plain text unchanged", table.String("abc"), table.String("abc")},
		{"leading and trailing trimmed", table.String("  abc  "), table.String("abc")},
		{"internal runs collapse", table.String("a \t b\n\nc"), table.String("a b c")},
		{"whitespace only becomes null", table.String(" \t\n "), table.Null},
		{"empty text becomes null", table.String(""), table.Null},
		{"punctuation is preserved", table.String(" - "), table.String("-")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeCell(tt.in); got != tt.want {
				t.Fatalf("NormalizeCell(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Apply(t *testing.T) {
	t.Parallel()

	in := table.FromRows([][]table.Cell{
		{table.String("  a  b "), table.String("   ")},
		{table.Null, table.String("c")},
	})
	got := Normalize{}.Apply(in)

	if got.Rows[0][0] != table.String("a b") {
		t.Fatalf("cell (0,0) = %#v, want %q", got.Rows[0][0], "a b")
	}
	if got.Rows[0][1] != table.Null {
		t.Fatalf("cell (0,1) = %#v, want null", got.Rows[0][1])
	}
	if got.Rows[1][0] != table.Null {
		t.Fatalf("cell (1,0) = %#v, want null", got.Rows[1][0])
	}
	if got.Rows[1][1] != table.String("c") {
		t.Fatalf("cell (1,1) = %#v, want %q", got.Rows[1][1], "c")
	}
}
