// Package scan orchestrates page analysis: it acquires HTML (directly or via
// livedom), runs the uitext classifier, persists the run and exposes the
// results over HTTP and MCP.
package scan

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/net/html"

	"github.com/hazyhaar/skylt/idgen"
	"github.com/hazyhaar/skylt/kit"
	"github.com/hazyhaar/skylt/livedom"
	"github.com/hazyhaar/skylt/report"
	"github.com/hazyhaar/skylt/runstore"
	"github.com/hazyhaar/skylt/uitext"
)

// SourceHTML marks runs analyzed from caller-supplied HTML.
const SourceHTML = "html"

// Service runs analyses and manages stored runs.
type Service struct {
	cfg      Config
	analyzer *uitext.Analyzer
	acquirer *livedom.Acquirer
	store    *runstore.Store
	builder  *report.Builder
	logger   *slog.Logger
	newID    func() string
}

// New creates a Service on an open database. The runstore schema is applied.
func New(db *sql.DB, cfg Config) (*Service, error) {
	cfg.defaults()
	store, err := runstore.New(db)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:      cfg,
		analyzer: uitext.New(),
		acquirer: livedom.New(cfg.Acquire),
		store:    store,
		builder:  report.NewBuilder(),
		logger:   cfg.Logger,
		newID:    idgen.Prefixed("run_", idgen.Default),
	}, nil
}

// Close releases the acquirer's browser, if one was launched.
func (s *Service) Close() error {
	return s.acquirer.Close()
}

// AnalyzeHTML classifies caller-supplied HTML and persists the run.
// pageURL is optional provenance.
func (s *Service) AnalyzeHTML(ctx context.Context, pageHTML []byte, pageURL string) (*runstore.Run, error) {
	if len(bytes.TrimSpace(pageHTML)) == 0 {
		return nil, fmt.Errorf("scan: html must not be empty")
	}
	return s.analyze(ctx, pageHTML, pageURL, SourceHTML)
}

// AnalyzeURL acquires a page and classifies it. The acquisition path (plain
// HTTP or headless browser) is recorded as the run source.
func (s *Service) AnalyzeURL(ctx context.Context, pageURL string) (*runstore.Run, error) {
	acq, err := s.acquirer.Acquire(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, acq.HTML, pageURL, string(acq.Source))
}

func (s *Service) analyze(ctx context.Context, pageHTML []byte, pageURL, source string) (*runstore.Run, error) {
	start := time.Now()

	doc, err := html.Parse(bytes.NewReader(pageHTML))
	if err != nil {
		// html.Parse recovers from malformed markup, so this only fires on
		// reader errors.
		return nil, fmt.Errorf("scan: parse html: %w", err)
	}

	result := s.analyzer.AnalyzePage(uitext.Wrap(doc))

	run := &runstore.Run{
		RunID:   s.newID(),
		PageURL: pageURL,
		Source:  source,
		Result:  result,
	}
	if err := s.store.Save(ctx, run); err != nil {
		return nil, err
	}

	log := s.logger
	if reqID := kit.GetRequestID(ctx); reqID != "" {
		log = log.With("request_id", reqID, "remote_addr", kit.GetRemoteAddr(ctx))
	}
	log.Info("scan: analyzed page",
		"run_id", run.RunID, "url", pageURL, "source", source,
		"transport", kit.GetTransport(ctx),
		"elements", result.Summary.TotalElements,
		"language", result.Summary.Language,
		"duration", time.Since(start))
	return run, nil
}

// GetRun returns a stored run with its full result.
func (s *Service) GetRun(ctx context.Context, runID string) (*runstore.Run, error) {
	return s.store.Get(ctx, runID)
}

// ListRuns returns recent runs, newest first, without result payloads.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]*runstore.Run, error) {
	if limit <= 0 || limit > s.cfg.ListLimit {
		limit = s.cfg.ListLimit
	}
	return s.store.List(ctx, limit)
}

// DeleteRun removes a stored run.
func (s *Service) DeleteRun(ctx context.Context, runID string) error {
	return s.store.Delete(ctx, runID)
}

// ExportRun writes the report artifact for a run into the export directory
// and returns the file path. pageHTML is optional; when present the export
// also carries a sanitized markdown rendering of the page.
func (s *Service) ExportRun(ctx context.Context, runID string, pageHTML []byte) (string, error) {
	run, err := s.store.Get(ctx, runID)
	if err != nil {
		return "", err
	}
	exp, err := s.builder.Build(run, pageHTML)
	if err != nil {
		return "", err
	}
	path, err := s.builder.Write(s.cfg.ExportDir, exp)
	if err != nil {
		return "", err
	}
	s.logger.Info("scan: exported run", "run_id", runID, "path", path)
	return path, nil
}

// Cleanup removes runs older than the configured retention.
func (s *Service) Cleanup(ctx context.Context) (int64, error) {
	n, err := s.store.Cleanup(ctx, s.cfg.Retention)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("scan: cleaned up runs", "deleted", n)
	}
	return n, nil
}
