package preview

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tumult/hype-documentation/internal/config"
)

func newTestServer(t *testing.T) (*Server, config.Config) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.OutputFile = filepath.Join(dir, "README.md")
	cfg.ReportFile = filepath.Join(dir, "unused_files.txt")
	cfg.ImagesDir = filepath.Join(dir, "images")

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(log, cfg), cfg
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"status":"ok"}` {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestServer_DocumentRendered(t *testing.T) {
	s, cfg := newTestServer(t)
	doc := "# Tumult Hype Documentation\n\n| A | B |\n| --- | --- |\n| 1 | 2 |\n\n<img src=\"x.png\" width=\"600\"/>\n"
	if err := os.WriteFile(cfg.OutputFile, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type: %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<h1") {
		t.Errorf("expected rendered heading, got %q", body)
	}
	if !strings.Contains(body, "<table>") {
		t.Errorf("expected rendered markdown table, got %q", body)
	}
	// Raw HTML in the document must pass through the renderer.
	if !strings.Contains(body, `<img src="x.png" width="600"/>`) {
		t.Errorf("expected raw img tag preserved, got %q", body)
	}
}

func TestServer_DocumentMissing(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unbuilt document, got %d", rec.Code)
	}
}

func TestServer_RawServesMarkdown(t *testing.T) {
	s, cfg := newTestServer(t)
	doc := "# Title\n\nplain markdown\n"
	if err := os.WriteFile(cfg.OutputFile, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s, "/raw")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != doc {
		t.Errorf("expected raw markdown, got %q", rec.Body.String())
	}
}

func TestServer_ReportRoute(t *testing.T) {
	s, cfg := newTestServer(t)

	if rec := get(t, s, "/report"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a report, got %d", rec.Code)
	}

	report := "# Unused image files (not referenced in README.md)\n# Total: 1 files, 3 bytes\n\nold.png\n"
	if err := os.WriteFile(cfg.ReportFile, []byte(report), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s, "/report")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != report {
		t.Errorf("expected report body, got %q", rec.Body.String())
	}
}

func TestServer_ImagesStatic(t *testing.T) {
	s, cfg := newTestServer(t)
	if err := os.Mkdir(cfg.ImagesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.ImagesDir, "shot.png"), []byte("pngdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s, "/images/shot.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "pngdata" {
		t.Errorf("expected file bytes, got %q", rec.Body.String())
	}
}
