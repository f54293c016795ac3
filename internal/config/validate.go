// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.kind"); Message is
// human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

var extractorKinds = map[string]struct{}{
	"": {}, "auto": {}, "grid": {}, "pdf": {},
}

var storageKinds = map[string]struct{}{
	"": {}, "sqlite": {}, "postgres": {},
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; it returns a slice of Issue values and callers decide
// whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{SeverityWarning, "job", "job name is empty; logs and metrics will use a default"})
	}
	if strings.TrimSpace(p.Input.Dir) == "" {
		issues = append(issues, Issue{SeverityError, "input.dir", "input directory is required"})
	}
	for i, u := range p.Input.URLs {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			issues = append(issues, Issue{SeverityError,
				fmt.Sprintf("input.urls[%d]", i),
				fmt.Sprintf("URL %q must use http or https", u)})
		}
	}
	for i, ext := range p.Input.Extensions {
		if !strings.HasPrefix(ext, ".") {
			issues = append(issues, Issue{SeverityError,
				fmt.Sprintf("input.extensions[%d]", i),
				fmt.Sprintf("extension %q must start with a dot", ext)})
		}
	}
	if _, ok := extractorKinds[p.Extractor.Kind]; !ok {
		issues = append(issues, Issue{SeverityError, "extractor.kind",
			fmt.Sprintf("unknown extractor kind %q (want auto, grid, or pdf)", p.Extractor.Kind)})
	}
	if strings.TrimSpace(p.Output.Dir) == "" {
		issues = append(issues, Issue{SeverityError, "output.dir", "output directory is required"})
	}
	if _, ok := storageKinds[p.Storage.Kind]; !ok {
		issues = append(issues, Issue{SeverityError, "storage.kind",
			fmt.Sprintf("unknown storage kind %q (want sqlite, postgres, or empty)", p.Storage.Kind)})
	}
	if p.Storage.Kind != "" {
		if strings.TrimSpace(p.Storage.DB.DSN) == "" {
			issues = append(issues, Issue{SeverityError, "storage.db.dsn", "DSN is required when storage is enabled"})
		}
		if strings.TrimSpace(p.Storage.DB.Table) == "" {
			issues = append(issues, Issue{SeverityError, "storage.db.table", "table is required when storage is enabled"})
		}
		if p.Storage.DB.BatchSize < 0 {
			issues = append(issues, Issue{SeverityError, "storage.db.batch_size", "batch size must not be negative"})
		}
	}
	switch p.OnError {
	case "", "skip", "abort":
	default:
		issues = append(issues, Issue{SeverityError, "on_error",
			fmt.Sprintf("unknown policy %q (want skip or abort)", p.OnError)})
	}
	return issues
}
