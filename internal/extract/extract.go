// Package extract defines the raw-table extraction contract. Extraction is an
// external capability as far as the normalization core is concerned: an
// Extractor turns one document into a flat, page-ordered sequence of raw
// tables, and the pipeline makes no assumption about how the grid was found.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"tablemill/internal/table"
)

// Extractor produces the raw tables of a single document. Tables are returned
// in page order, then in extraction order within a page, with default
// positional column identifiers. Any resource the extractor opens is released
// before Extract returns, on both the success and failure path.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]table.Table, error)
}

// Auto dispatches to a concrete extractor by file extension (lowercased,
// including the dot). Registering under the empty string sets the fallback
// used when no extension matches.
type Auto struct {
	byExt map[string]Extractor
}

// NewAuto returns an empty dispatcher.
func NewAuto() *Auto { return &Auto{byExt: map[string]Extractor{}} }

// Register binds ext (e.g. ".pdf") to e. The empty ext sets the fallback.
func (a *Auto) Register(ext string, e Extractor) {
	a.byExt[strings.ToLower(ext)] = e
}

// Extract routes to the extractor registered for the document's extension.
func (a *Auto) Extract(ctx context.Context, path string) ([]table.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := a.byExt[ext]
	if !ok {
		e, ok = a.byExt[""]
	}
	if !ok {
		return nil, fmt.Errorf("no extractor for %q (extension %q)", path, ext)
	}
	return e.Extract(ctx, path)
}
