// Package report turns a stored analysis run into the exported JSON artifact
// consumed by the dashboard tooling. The export carries the full element
// classification plus a sanitized markdown rendering of the analyzed page so
// a reviewer can read the page content next to the classification.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hazyhaar/skylt/runstore"
)

// Export is the serialized report artifact.
type Export struct {
	RunID       string    `json:"run_id"`
	PageURL     string    `json:"page_url,omitempty"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`

	Analysis any `json:"analysis"`

	// PageMarkdown is a sanitized markdown rendering of the analyzed page.
	// Empty when the page HTML was not retained.
	PageMarkdown string `json:"page_markdown,omitempty"`
}

// Builder renders exports.
type Builder struct {
	policy *bluemonday.Policy
	md     *converter.Converter
}

// NewBuilder creates a Builder with a UGC sanitization policy and a
// commonmark converter.
func NewBuilder() *Builder {
	return &Builder{
		policy: bluemonday.UGCPolicy(),
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Build assembles the export for a run. pageHTML may be empty.
func (b *Builder) Build(run *runstore.Run, pageHTML []byte) (*Export, error) {
	if run == nil || run.Result == nil {
		return nil, fmt.Errorf("report: run with result required")
	}
	exp := &Export{
		RunID:       run.RunID,
		PageURL:     run.PageURL,
		Source:      run.Source,
		GeneratedAt: time.Now(),
		Analysis:    run.Result,
	}
	if len(pageHTML) > 0 {
		exp.PageMarkdown = b.renderMarkdown(string(pageHTML), run.PageURL)
	}
	return exp, nil
}

// Write serializes the export as indented JSON into dir using the
// ui-analysis-<timestamp>.json naming convention and returns the full path.
func (b *Builder) Write(dir string, exp *Export) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("report: mkdir: %w", err)
	}
	name := Filename(exp.GeneratedAt)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("report: write: %w", err)
	}
	return path, nil
}

// Filename returns the export file name for a generation time.
func Filename(t time.Time) string {
	return fmt.Sprintf("ui-analysis-%s.json", t.UTC().Format("20060102T150405Z"))
}

func (b *Builder) renderMarkdown(html, pageURL string) string {
	clean := b.policy.Sanitize(html)
	out, err := b.md.ConvertString(clean, converter.WithDomain(pageURL))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
