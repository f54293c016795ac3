package builtin

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"tablemill/internal/table"
)

// SanitizeColumns converts every column name into a normalized, collision-free
// identifier: diacritics folded to ASCII, whitespace runs to underscore,
// anything outside [0-9A-Za-z_] dropped, lowercased, empty results becoming
// the literal "col". Duplicates are resolved left to right; the first
// occurrence keeps the name, later ones get "_2", "_3", ... suffixes.
type SanitizeColumns struct{}

// accent folding: decompose, strip nonspacing marks, recompose. Runs before
// the character filter so "Libellé" becomes "libelle", not "libell".
var foldAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// SanitizeName normalizes a single column name without collision handling.
func SanitizeName(s string) string {
	s = strings.TrimSpace(s)
	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}
	s = strings.Join(strings.Fields(s), "_")

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r == '_':
			b.WriteRune(r)
		}
	}
	name := strings.ToLower(b.String())
	if name == "" {
		return "col"
	}
	return name
}

func (SanitizeColumns) Apply(t table.Table) table.Table {
	taken := make(map[string]struct{}, len(t.Columns))
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		name := SanitizeName(c)
		if _, dup := taken[name]; dup {
			for n := 2; ; n++ {
				cand := name + "_" + strconv.Itoa(n)
				if _, dup := taken[cand]; !dup {
					name = cand
					break
				}
			}
		}
		taken[name] = struct{}{}
		cols[i] = name
	}
	t.Columns = cols
	return t
}
