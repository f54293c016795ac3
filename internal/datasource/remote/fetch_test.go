package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestFetcher_DownloadsDocuments(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/docs/a.tsv":
			w.Write([]byte("x\ty\n1\t2\n"))
		case "/docs/b.tsv":
			w.Write([]byte("x\ty\n3\t4\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := Fetcher{Dir: dir}

	paths, err := f.Fetch(context.Background(), []string{
		srv.URL + "/docs/a.tsv",
		srv.URL + "/docs/b.tsv",
	})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}

	want := map[string]string{
		filepath.Join(dir, "a.tsv"): "x\ty\n1\t2\n",
		filepath.Join(dir, "b.tsv"): "x\ty\n3\t4\n",
	}
	for i, p := range paths {
		wantBody, ok := want[p]
		if !ok {
			t.Fatalf("paths[%d] = %q, not an expected destination", i, p)
		}
		b, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if string(b) != wantBody {
			t.Fatalf("content of %s = %q, want %q", p, b, wantBody)
		}
	}

	// No temp files left behind.
	leftovers, err := filepath.Glob(filepath.Join(dir, ".fetch-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("expected no temp files, found %v", leftovers)
	}
}

func TestFetcher_SkipsExistingFiles(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	existing := filepath.Join(dir, "doc.tsv")
	if err := os.WriteFile(existing, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	f := Fetcher{Dir: dir}
	paths, err := f.Fetch(context.Background(), []string{srv.URL + "/doc.tsv"})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(paths) != 1 || paths[0] != existing {
		t.Fatalf("paths = %v, want [%s]", paths, existing)
	}
	if got := atomic.LoadInt32(&hits); got != 0 {
		t.Fatalf("expected no requests for existing file, got %d", got)
	}
	b, _ := os.ReadFile(existing)
	if string(b) != "stale" {
		t.Fatalf("existing file was overwritten: %q", b)
	}

	// With Overwrite the same URL is downloaded again.
	f.Overwrite = true
	if _, err := f.Fetch(context.Background(), []string{srv.URL + "/doc.tsv"}); err != nil {
		t.Fatalf("Fetch (overwrite) error: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("expected 1 request with Overwrite, got %d", got)
	}
	b, _ = os.ReadFile(existing)
	if string(b) != "fresh" {
		t.Fatalf("file not refreshed: %q", b)
	}
}

func TestFetcher_FailsOnHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := Fetcher{Dir: t.TempDir()}
	_, err := f.Fetch(context.Background(), []string{srv.URL + "/missing.tsv"})
	if err == nil {
		t.Fatalf("expected error for 404 response, got nil")
	}
}

func TestFetcher_EmptyURLList(t *testing.T) {
	t.Parallel()

	f := Fetcher{Dir: t.TempDir()}
	paths, err := f.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no paths, got %v", paths)
	}
}
