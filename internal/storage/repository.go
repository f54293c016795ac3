// Package storage contains storage-agnostic contracts and utilities for
// loading the master dataset into a database. Concrete backends live in
// subpackages and register themselves with the factory in init; callers stay
// backend-agnostic by depending only on Repository.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind selects the backend ("sqlite", "postgres").
	Kind string

	// DSN is the backend connection string.
	DSN string

	// Table is the destination table name.
	Table string
}

// Repository is the minimal contract a backend must satisfy. Every column is
// TEXT: the pipeline carries no type information by design.
type Repository interface {
	// EnsureTable creates the destination table with the given TEXT columns
	// if it does not exist yet.
	EnsureTable(ctx context.Context, columns []string) error

	// CopyFrom bulk-inserts rows aligned to the columns order, returning the
	// number of rows written. Null cells arrive as nil.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)

	// Close releases the backend's resources.
	Close()
}

// Factory constructs a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.Mutex
	factories = map[string]Factory{}
)

// Register installs a backend factory under kind. Typically called from a
// backend package's init.
func Register(kind string, fn Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = fn
}

// New constructs the Repository for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.Lock()
	fn, ok := factories[cfg.Kind]
	mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q", cfg.Kind)
	}
	return fn(ctx, cfg)
}
