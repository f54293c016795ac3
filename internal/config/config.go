// Package config defines the canonical, JSON-serializable configuration model
// for the table pipeline. It is intentionally small, explicit, and dependency-
// free so that pipeline files can be loaded from disk and passed through the
// program without additional glue code.
//
// Design goals:
//
//  1. Stability: changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: field names in Go mirror the JSON structure used in pipeline
//     files under configs/*.json.
//  3. Minimalism: no third-party config libraries; decoding is performed by
//     the standard library, with a light Options helper for typed access.
//
// Example (trimmed):
//
//	{
//	  "job":    "invoices",
//	  "input":  { "dir": "data/raw", "extensions": [".pdf", ".tsv"] },
//	  "extractor": { "kind": "auto", "options": { "comma": "\t" } },
//	  "output": { "dir": "data/processed" },
//	  "storage": { "kind": "sqlite", "db": { "dsn": "master.db", "table": "master" } }
//	}
package config

import "encoding/json"

// Pipeline describes a full batch run. It is the top-level object decoded
// from a pipeline file.
type Pipeline struct {
	// Job names the run for logs and metrics.
	Job string `json:"job"`

	// Input describes where documents are discovered.
	Input Input `json:"input"`

	// Extractor configures how raw tables are pulled out of a document.
	Extractor Extractor `json:"extractor"`

	// Output describes the TSV destinations.
	Output Output `json:"output"`

	// Storage optionally loads the master dataset into a database. Empty
	// kind disables the load.
	Storage Storage `json:"storage"`

	// OnError selects the batch policy for extraction failures: "skip"
	// (default; report and continue) or "abort".
	OnError string `json:"on_error"`
}

// Input identifies the document directory.
type Input struct {
	// Dir is the directory holding the input documents. Documents are
	// processed in lexicographic filename order.
	Dir string `json:"dir"`

	// URLs lists remote documents downloaded into Dir before the run.
	// Already-present files are kept, so repeated runs stay cheap.
	URLs []string `json:"urls"`

	// Extensions filters documents by lowercased extension (with dot).
	// Empty means every regular file.
	Extensions []string `json:"extensions"`

	// Fingerprint enables xxh3 content hashes in the run report.
	Fingerprint bool `json:"fingerprint"`
}

// Extractor selects how raw tables are extracted from a document.
type Extractor struct {
	// Kind selects the extractor implementation: "auto" (default, dispatch
	// by extension), "grid", or "pdf".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the extractor. Typical keys:
	//   comma (string)      grid cell delimiter, default tab
	//   cell_gap (number)   pdf column-gap threshold in points
	Options Options `json:"options"`
}

// Output configures the TSV sink.
type Output struct {
	// Dir is the output root. Required.
	Dir string `json:"dir"`

	// PerDocumentDir is the subdirectory for per-document tables
	// (default "tables").
	PerDocumentDir string `json:"per_document_dir"`

	// MasterName is the master dataset filename (default "master.tsv").
	MasterName string `json:"master_name"`
}

// Storage selects the optional database sink for the master dataset.
type Storage struct {
	// Kind selects the storage implementation: "sqlite", "postgres", or
	// empty to disable.
	Kind string `json:"kind"`

	// DB carries the backend connection settings.
	DB DBConfig `json:"db"`
}

// DBConfig configures the database sink.
type DBConfig struct {
	// DSN is the backend connection string (pgx DSN, SQLite path).
	DSN string `json:"dsn"`

	// Table is the destination table name.
	Table string `json:"table"`

	// BatchSize bounds rows per insert batch (default 500).
	BatchSize int `json:"batch_size"`

	// AutoCreateTable creates the destination table (all TEXT columns; the
	// pipeline carries no type information) before loading.
	AutoCreateTable bool `json:"auto_create_table"`
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without introducing third-party configuration libraries. It performs only
// minimal type coercion and returns the provided defaults when a key is
// absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Float returns the float64 value for key or def. encoding/json decodes JSON
// numbers as float64; int is accepted for convenience.
func (o Options) Float(key string, def float64) float64 {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Useful for single-character settings such as a cell
// delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null
// "options" object decodes to a non-nil, empty Options map. This removes the
// need to nil-check Options at call sites.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
