package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"tablemill/internal/table"
)

// DefaultBatchSize is used when the pipeline does not configure one.
const DefaultBatchSize = 500

// LoadTable writes t into repo in batches of batchSize rows, returning the
// total number of rows written. Null cells are passed as nil. A concise
// progress line is logged per flushed batch.
func LoadTable(ctx context.Context, repo Repository, t table.Table, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	var (
		total   int64
		batches int64
		start   = time.Now()
		batch   = make([][]any, 0, batchSize)
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := repo.CopyFrom(ctx, t.Columns, batch)
		total += n
		batch = batch[:0]
		if err != nil {
			return fmt.Errorf("copy batch: %w", err)
		}
		batches++
		log.Printf("load batch #%d: inserted=%d total=%d elapsed=%s",
			batches, n, total, time.Since(start).Truncate(time.Millisecond))
		return nil
	}

	for _, row := range t.Rows {
		vals := make([]any, len(row))
		for i, c := range row {
			if c.Valid {
				vals[i] = c.Text
			}
		}
		batch = append(batch, vals)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}
