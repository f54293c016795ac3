package remote

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// nameCleaner replaces sequences of characters that are awkward in filenames
// with "_".
var nameCleaner = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// HashString returns a stable SHA1 hex digest of s. It is useful for
// generating deterministic document names when a URL carries no natural one.
func HashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

// DocumentName derives a filesystem-safe document name from a raw URL string.
// It prefers the last path segment (which usually carries the document's real
// name and extension, e.g. "invoice_0042.pdf") and falls back to hashing the
// entire URL when:
//
//   - the URL cannot be parsed, or
//   - the cleaned path segment is empty or just an extension.
//
// Characters outside [a-zA-Z0-9._-] are replaced by underscores, and runs of
// such characters collapse into a single "_".
func DocumentName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return HashString(rawURL)
	}

	base := path.Base(u.Path)
	if base == "/" || base == "." {
		base = ""
	}
	clean := nameCleaner.ReplaceAllString(base, "_")
	clean = strings.Trim(clean, "_")
	if clean == "" || strings.Trim(clean, ".") == "" {
		// Nothing usable in the path; a query-only URL hashes to a stable name.
		return HashString(rawURL)
	}
	return clean
}
