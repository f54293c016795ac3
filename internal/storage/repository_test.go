package storage

import (
	"context"
	"testing"
)

type fakeRepo struct {
	ensured  [][]string
	copied   [][][]any
	copyErr  error
	copyN    func(rows [][]any) int64
	closed   bool
	lastCols []string
}

func (f *fakeRepo) EnsureTable(ctx context.Context, columns []string) error {
	f.ensured = append(f.ensured, columns)
	return nil
}

func (f *fakeRepo) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	f.lastCols = columns
	cp := make([][]any, len(rows))
	copy(cp, rows)
	f.copied = append(f.copied, cp)
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	if f.copyN != nil {
		return f.copyN(rows), nil
	}
	return int64(len(rows)), nil
}

func (f *fakeRepo) Close() { f.closed = true }

// TestRegisterAndNew verifies the factory mechanism: a registered kind
// resolves and receives its config, an unknown kind errors.
func TestRegisterAndNew(t *testing.T) {
	var gotCfg Config
	repo := &fakeRepo{}
	Register("test-fake", func(ctx context.Context, cfg Config) (Repository, error) {
		gotCfg = cfg
		return repo, nil
	})

	cfg := Config{Kind: "test-fake", DSN: "dsn", Table: "t"}
	r, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if r != repo {
		t.Fatalf("New returned %v, want the registered repo", r)
	}
	if gotCfg != cfg {
		t.Fatalf("factory config = %+v, want %+v", gotCfg, cfg)
	}

	if _, err := New(context.Background(), Config{Kind: "no-such-kind"}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
