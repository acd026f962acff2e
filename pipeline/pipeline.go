// CLAUDE:SUMMARY Batch orchestrator: per-source document iteration, extract→dedupe→filter→persist.
// Package pipeline drives the read → extract → filter → persist workflow
// over directories of downloaded basket-price bulletins.
//
// Processing is single-threaded and sequential: each document runs to
// completion before the next starts, and one failed document never stops
// the batch. Store failures do stop it; an ingestion batch is persisted
// all-or-nothing per source.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cestalab/cesta/doctext"
	"github.com/cestalab/cesta/extract"
	"github.com/cestalab/cesta/store"
	"github.com/cestalab/cesta/wage"
)

// SkippedDoc records one document that could not be processed.
type SkippedDoc struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Report summarises one ingestion run.
type Report struct {
	Documents  int          `json:"documents"`
	Candidates int          `json:"candidates"`
	Persisted  int          `json:"persisted"`
	Skipped    []SkippedDoc `json:"skipped,omitempty"`
}

// Runner executes ingestion batches against one store.
type Runner struct {
	cfg    Config
	store  *store.Store
	docs   *doctext.Pipeline
	logger *slog.Logger
}

// New creates a Runner. A nil logger falls back to slog.Default().
func New(cfg Config, st *store.Store, logger *slog.Logger) *Runner {
	cfg.Defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:    cfg,
		store:  st,
		docs:   doctext.New(doctext.Config{Logger: logger}),
		logger: logger,
	}
}

// Run ingests every configured source and returns the run report.
// Document-level failures are recorded in the report and logged, never
// raised; a store failure aborts the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	for _, src := range r.cfg.Sources {
		if err := r.runSource(ctx, src, report); err != nil {
			return report, err
		}
	}
	r.logger.Info("ingestion finished",
		"documents", report.Documents,
		"candidates", report.Candidates,
		"persisted", report.Persisted,
		"skipped", len(report.Skipped))
	return report, nil
}

// runSource processes one agency's directory and persists its batch.
func (r *Runner) runSource(ctx context.Context, src SourceConfig, report *Report) error {
	log := r.logger.With("source", src.Name, "dir", src.Dir)

	paths, err := r.listDocuments(src)
	if err != nil {
		// An unavailable source directory degrades to zero documents.
		log.Warn("source unavailable", "error", err)
		report.Skipped = append(report.Skipped, SkippedDoc{Path: src.Dir, Reason: err.Error()})
		return nil
	}

	var batch []store.PriceObservation
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		rows, n, err := r.processDocument(ctx, path, src)
		if err != nil {
			log.Warn("skipping document", "path", path, "error", err)
			report.Skipped = append(report.Skipped, SkippedDoc{Path: path, Reason: err.Error()})
			continue
		}
		report.Documents++
		report.Candidates += n
		batch = append(batch, rows...)
	}

	if err := r.store.AppendPrices(ctx, batch); err != nil {
		return fmt.Errorf("persist %s batch: %w", src.Name, err)
	}
	report.Persisted += len(batch)
	log.Info("source ingested", "documents", len(paths), "rows", len(batch))
	return nil
}

// processDocument runs the full extraction pipeline over one bulletin and
// returns its validated rows plus the raw candidate count.
func (r *Runner) processDocument(ctx context.Context, path string, src SourceConfig) ([]store.PriceObservation, int, error) {
	text, err := r.docs.Extract(ctx, path)
	if err != nil {
		return nil, 0, err
	}

	cands := extract.Extract(text, src.Name, r.cfg.Product, src.Location, r.logger)
	raw := len(cands)
	cands = extract.FilterOutliers(extract.Dedupe(cands))

	// The period is a property of the document: resolved once from the
	// filename and stamped on every surviving candidate.
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	period, _ := extract.ResolvePeriod(base)

	rows := make([]store.PriceObservation, 0, len(cands))
	for _, c := range cands {
		rows = append(rows, store.PriceObservation{
			Source:   c.Source,
			Location: c.Location,
			Date:     period,
			Product:  c.Product,
			Price:    c.Price,
		})
	}
	return rows, raw, nil
}

// listDocuments returns the source's matching documents in lexical order.
func (r *Runner) listDocuments(src SourceConfig) ([]string, error) {
	entries, err := os.ReadDir(src.Dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if _, err := doctext.Detect(name); err != nil {
			continue
		}
		if src.Match != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(src.Match)) {
			continue
		}
		paths = append(paths, filepath.Join(src.Dir, name))
	}
	return paths, nil
}

// RunWage parses a saved minimum-wage table and upserts its rows.
// It returns the number of rows written.
func (r *Runner) RunWage(ctx context.Context, rd io.Reader) (int, error) {
	rows, err := wage.ParseTable(rd)
	if err != nil {
		return 0, fmt.Errorf("parse wage table: %w", err)
	}

	obs := make([]store.WageObservation, len(rows))
	for i, row := range rows {
		obs[i] = store.WageObservation{Date: row.Date, Nominal: row.Nominal, Required: row.Required}
	}
	if err := r.store.UpsertWages(ctx, obs); err != nil {
		return 0, err
	}
	r.logger.Info("wage table ingested", "rows", len(obs))
	return len(obs), nil
}
