package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hyperifyio/newsdigest/internal/extract"
	"github.com/hyperifyio/newsdigest/internal/feed"
)

const testPara = "Questa frase di prova è abbastanza lunga da superare la soglia dei cinquanta caratteri richiesti."

func articleHTML() string {
	var b strings.Builder
	b.WriteString(`<!doctype html><html><head><title>Articolo di prova</title></head><body><div itemprop="articleBody">`)
	for i := 0; i < 4; i++ {
		b.WriteString("<p>")
		b.WriteString(testPara)
		b.WriteString("</p>")
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func newsServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>
<item><title>Prima</title><link>%s/article</link><description>desc prima</description></item>
<item><title>Seconda</title><link>%s/missing</link><description>desc seconda</description></item>
</channel></rss>`, srv.URL, srv.URL)
	})
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articleHTML()))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<!doctype html><html><body><p>corto</p></body></html>`))
	})
	srv = httptest.NewServer(mux)
	return srv
}

func testConfig(srv *httptest.Server) Config {
	cfg := DefaultConfig()
	cfg.Category = "test"
	cfg.Catalog = feed.Catalog{
		"test": {
			Name:  "Test",
			Feeds: []feed.Source{{Name: "Local", URL: srv.URL + "/feed.xml"}},
		},
	}
	return cfg
}

func TestRunProcessesCategoryAndIsolatesFailures(t *testing.T) {
	srv := newsServer(t)
	defer srv.Close()

	cfg := testConfig(srv)
	records, err := New(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.ContentStrategy != extract.StrategySelectorCascade {
		t.Fatalf("expected cascade extraction, got %s", first.ContentStrategy)
	}
	if !strings.Contains(first.Content, "soglia dei cinquanta") {
		t.Fatalf("article content missing: %q", first.Content)
	}
	if first.Summary == "" || first.SummaryMethod == "" {
		t.Fatalf("expected a summary with method metadata")
	}

	// The 404 article must not abort the batch; its record keeps the feed
	// metadata with the no-content sentinel.
	second := records[1]
	if second.Title != "Seconda" {
		t.Fatalf("unexpected second record: %+v", second)
	}
	if second.ContentStrategy != extract.StrategyNone {
		t.Fatalf("failed fetch must report no strategy, got %s", second.ContentStrategy)
	}
}

func TestRunUnknownCategory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Category = "does-not-exist"
	cfg.Catalog = feed.Catalog{}
	if _, err := New(cfg).Run(context.Background()); err == nil {
		t.Fatalf("expected unknown category error")
	}
}

func TestProcessURLAppliesCapsAndSummary(t *testing.T) {
	srv := newsServer(t)
	defer srv.Close()

	cfg := testConfig(srv)
	cfg.ContentMaxChars = 150
	cfg.SummaryMaxChars = 120
	rec, err := New(cfg).ProcessURL(context.Background(), srv.URL+"/article")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if utf8.RuneCountInString(rec.Content) > 150 {
		t.Fatalf("content cap not applied: %d", utf8.RuneCountInString(rec.Content))
	}
	if utf8.RuneCountInString(rec.Summary) > 120 {
		t.Fatalf("summary cap not applied: %d", utf8.RuneCountInString(rec.Summary))
	}
}

func TestProcessURLSentinelOnEmptyPage(t *testing.T) {
	srv := newsServer(t)
	defer srv.Close()

	cfg := testConfig(srv)
	rec, err := New(cfg).ProcessURL(context.Background(), srv.URL+"/empty")
	if err != nil {
		t.Fatalf("empty pages are an expected outcome, not an error: %v", err)
	}
	if rec.ContentStrategy != extract.StrategyNone {
		t.Fatalf("expected no-content strategy, got %s", rec.ContentStrategy)
	}
	if rec.Content != extract.LimitedContent {
		t.Fatalf("expected sentinel content, got %q", rec.Content)
	}
	// The sentinel passes through summarization unchanged.
	if rec.Summary != extract.LimitedContent {
		t.Fatalf("sentinel must pass through the summarizer, got %q", rec.Summary)
	}
}

func TestSummaryToggleOff(t *testing.T) {
	srv := newsServer(t)
	defer srv.Close()

	cfg := testConfig(srv)
	cfg.Summarize = false
	rec, err := New(cfg).ProcessURL(context.Background(), srv.URL+"/article")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Summary != "" || rec.SummaryMethod != "" {
		t.Fatalf("summary must be absent when disabled")
	}
}

func TestApplyFileConfigOverlaysDefaultsOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
fetch:
  timeout: 5s
summary:
  enable: false
  maxChars: 256
  method: lead
extract:
  minBlocks: 4
clean:
  duplicateOverlap: 0.9
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	cfg := DefaultConfig()
	// Simulate an explicit flag that must keep precedence over the file.
	cfg.SummaryMaxChars = 300
	ApplyFileConfig(&cfg, fc)

	if cfg.Timeout.Seconds() != 5 {
		t.Fatalf("timeout not applied: %v", cfg.Timeout)
	}
	if cfg.Summarize {
		t.Fatalf("summary.enable=false not applied")
	}
	if cfg.SummaryMaxChars != 300 {
		t.Fatalf("explicit value overridden by file: %d", cfg.SummaryMaxChars)
	}
	if cfg.SummaryMethod != "lead" {
		t.Fatalf("summary method not applied: %q", cfg.SummaryMethod)
	}
	if cfg.Extract.MinBlocks != 4 {
		t.Fatalf("extract threshold not applied: %d", cfg.Extract.MinBlocks)
	}
	if cfg.Sanitize.DuplicateOverlap != 0.9 {
		t.Fatalf("overlap threshold not applied: %f", cfg.Sanitize.DuplicateOverlap)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("NEWSDIGEST_SUMMARY_METHOD", "keyword")
	t.Setenv("NEWSDIGEST_SUMMARY_MAX_CHARS", "333")
	t.Setenv("NEWSDIGEST_SUMMARIZE", "false")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	if cfg.SummaryMethod != "keyword" {
		t.Fatalf("env method not applied: %q", cfg.SummaryMethod)
	}
	if cfg.SummaryMaxChars != 333 {
		t.Fatalf("env max chars not applied: %d", cfg.SummaryMaxChars)
	}
	if cfg.Summarize {
		t.Fatalf("env toggle not applied")
	}
}
