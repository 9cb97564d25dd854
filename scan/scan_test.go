package scan

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/hazyhaar/skylt/dbopen"
	"github.com/hazyhaar/skylt/runstore"
	"github.com/hazyhaar/skylt/uitext"
	_ "modernc.org/sqlite"
)

const testPage = `<!DOCTYPE html>
<html lang="sv">
<body>
  <h1>Kostnadskontroll</h1>
  <form>
    <label for="namn">Ange namn på maträtten</label>
    <input id="namn" name="dish_name" placeholder="t.ex. Köttbullar med potatismos">
    <button type="submit">Spara maträtt</button>
  </form>
  <span class="error-message">Ogiltigt format, kontrollera värdet</span>
</body>
</html>`

func newService(t *testing.T, cfg Config) *Service {
	t.Helper()
	db := dbopen.OpenMemory(t)
	if cfg.ExportDir == "" {
		cfg.ExportDir = t.TempDir()
	}
	cfg.Acquire.DisableBrowser = true
	s, err := New(db, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAnalyzeHTML_PersistsRun(t *testing.T) {
	s := newService(t, Config{})
	ctx := context.Background()

	run, err := s.AnalyzeHTML(ctx, []byte(testPage), "https://example.com/matratter")
	if err != nil {
		t.Fatalf("AnalyzeHTML: %v", err)
	}
	if !strings.HasPrefix(run.RunID, "run_") {
		t.Errorf("RunID = %q, want run_ prefix", run.RunID)
	}
	if run.Source != SourceHTML {
		t.Errorf("Source = %q", run.Source)
	}
	if run.Result.Summary.TotalElements == 0 {
		t.Fatal("no elements classified")
	}
	if run.Result.Summary.Language != uitext.LangSwedish {
		t.Errorf("Language = %q, want swedish", run.Result.Summary.Language)
	}

	got, err := s.GetRun(ctx, run.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Result.Summary.TotalElements != run.Result.Summary.TotalElements {
		t.Error("persisted summary differs from returned one")
	}
}

func TestAnalyzeHTML_Empty(t *testing.T) {
	s := newService(t, Config{})
	if _, err := s.AnalyzeHTML(context.Background(), []byte("   "), ""); err == nil {
		t.Error("empty html should fail")
	}
}

func TestAnalyzeHTML_FindsExpectedCategories(t *testing.T) {
	s := newService(t, Config{})
	run, err := s.AnalyzeHTML(context.Background(), []byte(testPage), "")
	if err != nil {
		t.Fatalf("AnalyzeHTML: %v", err)
	}

	counts := run.Result.Summary.CategoryCounts
	if counts[uitext.CategoryAction] == 0 {
		t.Error("expected at least one action element (Spara maträtt)")
	}
	if counts[uitext.CategoryInput] == 0 {
		t.Error("expected at least one input element (label/placeholder)")
	}
	if counts[uitext.CategoryValidation] == 0 {
		t.Error("expected at least one validation element (error-message)")
	}
}

func TestListAndDelete(t *testing.T) {
	s := newService(t, Config{})
	ctx := context.Background()

	first, err := s.AnalyzeHTML(ctx, []byte(testPage), "")
	if err != nil {
		t.Fatalf("AnalyzeHTML: %v", err)
	}
	if _, err := s.AnalyzeHTML(ctx, []byte(testPage), ""); err != nil {
		t.Fatalf("AnalyzeHTML: %v", err)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}

	if err := s.DeleteRun(ctx, first.RunID); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}
	if err := s.DeleteRun(ctx, first.RunID); !errors.Is(err, runstore.ErrNotFound) {
		t.Fatalf("second DeleteRun = %v, want ErrNotFound", err)
	}
}

func TestExportRun(t *testing.T) {
	dir := t.TempDir()
	s := newService(t, Config{ExportDir: dir})
	ctx := context.Background()

	run, err := s.AnalyzeHTML(ctx, []byte(testPage), "https://example.com")
	if err != nil {
		t.Fatalf("AnalyzeHTML: %v", err)
	}

	path, err := s.ExportRun(ctx, run.RunID, []byte(testPage))
	if err != nil {
		t.Fatalf("ExportRun: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), run.RunID) {
		t.Error("export missing run id")
	}
	if !strings.Contains(string(data), "Kostnadskontroll") {
		t.Error("export missing page markdown")
	}
}

func TestExportRun_Missing(t *testing.T) {
	s := newService(t, Config{})
	if _, err := s.ExportRun(context.Background(), "run_missing", nil); !errors.Is(err, runstore.ErrNotFound) {
		t.Fatalf("ExportRun missing = %v, want ErrNotFound", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBPath != "data/skylt.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ListLimit != 50 {
		t.Errorf("ListLimit = %d", cfg.ListLimit)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := t.TempDir() + "/skylt.yaml"
	content := "db_path: /tmp/x.db\nexport_dir: /tmp/out\nlist_limit: 7\nacquire:\n  disable_browser: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ListLimit != 7 {
		t.Errorf("ListLimit = %d", cfg.ListLimit)
	}
	if !cfg.Acquire.DisableBrowser {
		t.Error("acquire.disable_browser not parsed")
	}
}
