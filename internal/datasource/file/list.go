// Package file enumerates input documents on the local filesystem.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

// Document is one input document discovered by List.
type Document struct {
	// Name is the base filename, used as the document identifier in outputs.
	Name string
	// Path is the path to the document (dir-relative or absolute).
	Path string
	// Fingerprint is the xxh3 hash of the document's content, for progress
	// and traceability logs. Zero when fingerprinting was disabled.
	Fingerprint uint64
}

// Base returns the document name without its extension, used to name
// per-document outputs.
func (d Document) Base() string {
	return strings.TrimSuffix(d.Name, filepath.Ext(d.Name))
}

// fingerprintWorkers bounds concurrent hashing during listing. Hashing is the
// only concurrent step in the program; the pipeline itself stays sequential.
const fingerprintWorkers = 4

// List returns the documents in dir whose lowercased extension is in exts
// (all regular files when exts is empty), sorted lexicographically by
// filename. Downstream processing order is exactly this order.
//
// When fingerprint is true, each document's content hash is computed with a
// bounded worker group before the sorted list is returned, so concurrency
// never affects ordering.
func List(ctx context.Context, dir string, exts []string, fingerprint bool) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	want := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		want[strings.ToLower(e)] = struct{}{}
	}

	var docs []Document
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if len(want) > 0 {
			if _, ok := want[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
				continue
			}
		}
		docs = append(docs, Document{Name: e.Name(), Path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })

	if fingerprint {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(fingerprintWorkers)
		for i := range docs {
			g.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				h, err := hashFile(docs[i].Path)
				if err != nil {
					return err
				}
				docs[i].Fingerprint = h
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// hashFile computes the xxh3 hash of the file's content.
func hashFile(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("fingerprint %s: %w", path, err)
	}
	defer f.Close()
	adviseSequential(f)

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, fmt.Errorf("fingerprint %s: %w", path, err)
	}
	return h.Sum64(), nil
}
