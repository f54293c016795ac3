package builtin

import "tablemill/internal/table"

// Merge unions the column sets of the given tables and stacks their rows.
//
// The merged column sequence is the first-seen order across inputs: columns
// of the first table in order, then columns of the second table not yet seen,
// and so on. This keeps the output order deterministic for a given input
// sequence; nothing beyond that stability is promised. Each input is
// reindexed onto the union (missing columns become null for its rows), rows
// are concatenated in input order preserving every table's internal row
// order, and the concatenation is re-cleaned so rows or columns that ended up
// all-null do not survive.
//
// An empty input sequence yields an empty table.
func Merge(tables []table.Table) table.Table {
	if len(tables) == 0 {
		return table.Table{}
	}

	var cols []string
	seen := make(map[string]struct{})
	for _, t := range tables {
		for _, c := range t.Columns {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			cols = append(cols, c)
		}
	}

	out := table.Table{Columns: cols}
	for _, t := range tables {
		re := t.Reindex(cols)
		out.Rows = append(out.Rows, re.Rows...)
	}
	return Clean{}.Apply(out)
}
