// Package dataset orchestrates the per-document normalization pipelines and
// consolidates their results into one master dataset.
//
// The assembler is deliberately pure with respect to outputs: it returns the
// per-document tables and the master as values and performs no file or
// database writes. All sink interaction happens at the caller's boundary
// (cmd/tablemill), so accumulated state is threaded explicitly instead of
// living in ambient globals.
package dataset

import (
	"context"
	"fmt"
	"log"
	"time"

	"tablemill/internal/datasource/file"
	"tablemill/internal/extract"
	"tablemill/internal/metrics"
	"tablemill/internal/table"
	"tablemill/internal/transform"
	"tablemill/internal/transform/builtin"
)

// SourceColumn is the name of the master dataset's leading column tagging
// each row with its originating document.
const SourceColumn = "source_document"

// Pipeline is the per-table normalization chain: uniform cell values, empty
// row/column removal, header resolution, a second cleaning pass for rows and
// columns emptied by header promotion, and schema sanitization.
func Pipeline() transform.Chain {
	return transform.Chain{
		builtin.Normalize{},
		builtin.Clean{},
		builtin.ResolveHeader{},
		builtin.Clean{},
		builtin.SanitizeColumns{},
	}
}

// DocumentResult is the outcome of one document's pipeline.
type DocumentResult struct {
	Document file.Document

	// Table is the document's merged table, nil when the document yielded no
	// usable table ("no table detected") or failed extraction.
	Table *table.Table

	// Tables is the number of extracted tables that survived cleaning.
	Tables int

	// Err is the extraction failure, if any. Cleaning never errors.
	Err error
}

// Result is the outcome of a batch run.
type Result struct {
	Documents []DocumentResult

	// Master is the row-stacked union of every document's merged table, each
	// row tagged with SourceColumn. Nil when no document produced a usable
	// table; that is a reported condition, not an error.
	Master *table.Table
}

// Assembler runs the batch. Documents are processed strictly one at a time in
// the order given (List returns them lexicographically); each document's
// intermediate tables are private to its own iteration.
type Assembler struct {
	Extractor extract.Extractor

	// Job labels metrics emitted during the run.
	Job string

	// AbortOnError stops the batch at the first extraction failure instead of
	// skipping the document. Either way the failure is visibly reported.
	AbortOnError bool
}

// Run processes every document and assembles the master dataset.
func (a Assembler) Run(ctx context.Context, docs []file.Document) (Result, error) {
	var res Result
	var tagged []table.Table

	for _, doc := range docs {
		start := time.Now()
		dr := a.processDocument(ctx, doc)
		metrics.RecordStep(a.Job, "document", dr.Err, time.Since(start))
		res.Documents = append(res.Documents, dr)

		switch {
		case dr.Err != nil:
			metrics.RecordDocument(a.Job, "failed")
			log.Printf("document %s: extraction failed: %v", doc.Name, dr.Err)
			if a.AbortOnError {
				return res, fmt.Errorf("document %s: %w", doc.Name, dr.Err)
			}
		case dr.Table == nil:
			metrics.RecordDocument(a.Job, "empty")
			log.Printf("document %s: no table detected", doc.Name)
		default:
			metrics.RecordDocument(a.Job, "processed")
			metrics.RecordRows(a.Job, "document", int64(dr.Table.Height()))
			log.Printf("document %s: fingerprint=%016x tables=%d rows=%d columns=%d",
				doc.Name, doc.Fingerprint, dr.Tables, dr.Table.Height(), dr.Table.Width())
			// The master gets a tagged copy; Prepend never aliases dr.Table.
			tagged = append(tagged, dr.Table.Prepend(SourceColumn, table.String(doc.Name)))
		}
	}

	if len(tagged) > 0 {
		m := builtin.Merge(tagged)
		res.Master = &m
		metrics.RecordRows(a.Job, "master", int64(m.Height()))
	}
	return res, nil
}

// processDocument runs one document through extraction and normalization.
func (a Assembler) processDocument(ctx context.Context, doc file.Document) DocumentResult {
	dr := DocumentResult{Document: doc}

	raw, err := a.Extractor.Extract(ctx, doc.Path)
	if err != nil {
		dr.Err = fmt.Errorf("extract: %w", err)
		return dr
	}

	chain := Pipeline()
	var cleaned []table.Table
	for _, t := range raw {
		out := chain.Apply(t)
		if out.Empty() {
			continue
		}
		cleaned = append(cleaned, out)
	}
	if len(cleaned) == 0 {
		return dr
	}

	merged := builtin.Merge(cleaned)
	if merged.Empty() {
		return dr
	}
	dr.Table = &merged
	dr.Tables = len(cleaned)
	return dr
}
