package remote

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// Fetcher downloads a list of document URLs into a local directory so they
// can be processed like any other input documents.
type Fetcher struct {
	// Client performs the downloads. When nil, a default client is used.
	Client *Client

	// Dir is the destination directory. Created if missing.
	Dir string

	// Overwrite re-downloads documents that already exist in Dir. The default
	// keeps existing files, so repeated runs are cheap.
	Overwrite bool
}

// Fetch downloads every URL and returns the local paths in input order.
// Filenames are derived with DocumentName; an existing file is kept unless
// Overwrite is set. The first failed download aborts the fetch.
func (f Fetcher) Fetch(ctx context.Context, urls []string) ([]string, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	if f.Dir == "" {
		return nil, fmt.Errorf("remote: destination directory is required")
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("remote: create dir: %w", err)
	}

	client := f.Client
	if client == nil {
		client = NewClient(Config{})
	}

	paths := make([]string, 0, len(urls))
	for _, u := range urls {
		dest := filepath.Join(f.Dir, DocumentName(u))
		if !f.Overwrite {
			if _, err := os.Stat(dest); err == nil {
				log.Printf("fetch %s: already present, skipping", filepath.Base(dest))
				paths = append(paths, dest)
				continue
			}
		}
		if err := f.download(ctx, client, u, dest); err != nil {
			return paths, fmt.Errorf("remote: fetch %s: %w", u, err)
		}
		paths = append(paths, dest)
	}
	return paths, nil
}

// download streams one URL into dest via a temp file, so a partial download
// never shows up under the final name.
func (f Fetcher) download(ctx context.Context, client *Client, url, dest string) error {
	resp, err := client.Get(ctx, url, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(f.Dir, ".fetch-*")
	if err != nil {
		return err
	}
	n, err := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	log.Printf("fetch %s: %d bytes", filepath.Base(dest), n)
	return nil
}
