// Command tablemill runs the document table pipeline: it discovers the input
// documents, extracts and normalizes their raw tables, writes one TSV per
// document plus the consolidated master dataset, and optionally loads the
// master into a database.
//
// The CLI layer stays thin: it decodes and validates the pipeline config,
// wires the extractor and metrics backend, invokes the assembler, and
// performs every sink write itself. The assembler returns values and never
// touches disk.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"tablemill/internal/config"
	"tablemill/internal/dataset"
	"tablemill/internal/datasource/file"
	"tablemill/internal/datasource/remote"
	"tablemill/internal/extract"
	"tablemill/internal/extract/grid"
	pdfext "tablemill/internal/extract/pdf"
	"tablemill/internal/metrics"
	"tablemill/internal/metrics/datadog"
	"tablemill/internal/metrics/prompush"
	"tablemill/internal/sink/tsv"
	"tablemill/internal/storage"
	"tablemill/internal/table"

	// register all backends with the storage factory.
	_ "tablemill/internal/storage/all"
)

func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/sample.json", "pipeline config JSON path")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (pushgateway, datadog, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	f, err := os.Open(cfgPath)
	if err != nil {
		fatalf("open config: %v", err)
	}
	var p config.Pipeline
	decodeErr := json.NewDecoder(f).Decode(&p)
	f.Close()
	if decodeErr != nil {
		fatalf("decode config: %v", decodeErr)
	}

	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	setupMetrics(p.Job, metricsBackendFlg, pushGatewayURLFlg, *verbose)

	ctx := context.Background()
	start := time.Now()

	runErr := run(ctx, p, *verbose)
	if err := metrics.Flush(); err != nil {
		log.Printf("metrics: flush: %v", err)
	}
	if runErr != nil {
		log.Fatalf("%v", runErr)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

// run executes the batch and performs all sink writes.
func run(ctx context.Context, p config.Pipeline, verbose bool) error {
	if len(p.Input.URLs) > 0 {
		fetcher := remote.Fetcher{Dir: p.Input.Dir}
		start := time.Now()
		_, err := fetcher.Fetch(ctx, p.Input.URLs)
		metrics.RecordStep(p.Job, "fetch", err, time.Since(start))
		if err != nil {
			return err
		}
	}

	docs, err := file.List(ctx, p.Input.Dir, p.Input.Extensions, p.Input.Fingerprint)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		log.Printf("no documents found in %s", p.Input.Dir)
		return nil
	}
	if verbose {
		log.Printf("pipeline: job=%s documents=%d extractor=%s output=%s",
			p.Job, len(docs), p.Extractor.Kind, p.Output.Dir)
	}

	asm := dataset.Assembler{
		Extractor:    buildExtractor(p.Extractor),
		Job:          p.Job,
		AbortOnError: p.OnError == "abort",
	}
	assembleStart := time.Now()
	res, err := asm.Run(ctx, docs)
	metrics.RecordStep(p.Job, "assemble", err, time.Since(assembleStart))
	if err != nil {
		return err
	}

	perDocDir := p.Output.PerDocumentDir
	if perDocDir == "" {
		perDocDir = "tables"
	}
	for _, dr := range res.Documents {
		if dr.Table == nil {
			continue
		}
		out := filepath.Join(p.Output.Dir, perDocDir, dr.Document.Base()+".tsv")
		if err := tsv.WriteFile(out, *dr.Table); err != nil {
			return err
		}
		if verbose {
			log.Printf("wrote %s (%d rows, %d columns)", out, dr.Table.Height(), dr.Table.Width())
		}
	}

	if res.Master == nil {
		// Reported condition, not an error: the batch ran, nothing merged.
		log.Printf("no table detected in any document; master not written")
		return nil
	}

	masterName := p.Output.MasterName
	if masterName == "" {
		masterName = "master.tsv"
	}
	masterPath := filepath.Join(p.Output.Dir, masterName)
	if err := tsv.WriteFile(masterPath, *res.Master); err != nil {
		return err
	}
	log.Printf("master: %s (%d rows, %d columns)", masterPath, res.Master.Height(), res.Master.Width())

	if p.Storage.Kind != "" {
		if err := loadMaster(ctx, p, *res.Master); err != nil {
			return err
		}
	}
	return nil
}

// loadMaster pushes the master dataset into the configured database backend.
func loadMaster(ctx context.Context, p config.Pipeline, master table.Table) error {
	repo, err := storage.New(ctx, storage.Config{
		Kind:  p.Storage.Kind,
		DSN:   p.Storage.DB.DSN,
		Table: p.Storage.DB.Table,
	})
	if err != nil {
		return err
	}
	defer repo.Close()

	if p.Storage.DB.AutoCreateTable {
		if err := repo.EnsureTable(ctx, master.Columns); err != nil {
			return err
		}
	}
	start := time.Now()
	n, err := storage.LoadTable(ctx, repo, master, p.Storage.DB.BatchSize)
	metrics.RecordStep(p.Job, "load", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("load master: %w", err)
	}
	metrics.RecordRows(p.Job, "loaded", n)
	log.Printf("loaded %d rows into %s (%s)", n, p.Storage.DB.Table, p.Storage.Kind)
	return nil
}

// buildExtractor wires the configured extractor. "auto" dispatches grid/pdf
// by extension, with grid as the fallback for unknown extensions.
func buildExtractor(cfg config.Extractor) extract.Extractor {
	g := grid.Extractor{Comma: cfg.Options.Rune("comma", '\t')}
	pd := pdfext.Extractor{CellGap: cfg.Options.Float("cell_gap", 0)}

	switch cfg.Kind {
	case "grid":
		return g
	case "pdf":
		return pd
	default: // "auto" and ""
		a := extract.NewAuto()
		a.Register(".pdf", pd)
		a.Register(".tsv", g)
		a.Register(".csv", grid.Extractor{Comma: cfg.Options.Rune("comma", ',')})
		a.Register(".txt", g)
		a.Register("", g)
		return a
	}
}

// setupMetrics decides the metrics backend: flag, then env, then none.
func setupMetrics(job, backendFlag, gatewayFlag string, verbose bool) {
	backendName := backendFlag
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		gwURL := gatewayFlag
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		if job == "" {
			job = "tablemill"
		}
		b, err := prompush.NewBackend(job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: url=%v backend=%v job=%v", gwURL, backendName, job)
		metrics.SetBackend(b)
	case "datadog":
		addr := os.Getenv("DD_AGENT_ADDR")
		if addr == "" {
			addr = "127.0.0.1:8125"
		}
		b, err := datadog.NewBackend(datadog.Config{Addr: addr, Namespace: "tablemill."})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: addr=%v backend=%v job=%v", addr, backendName, job)
		metrics.SetBackend(b)
	case "", "none":
		if verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}
	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
