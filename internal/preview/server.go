// Package preview serves the combined document over HTTP for local review
// before it is committed and pushed.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tumult/hype-documentation/internal/config"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Server renders and serves the combined document, the image assets, and
// the most recent unused-files report.
type Server struct {
	router chi.Router
	log    *slog.Logger
	cfg    config.Config
	md     goldmark.Markdown
}

// NewServer creates and configures the preview server. The renderer allows
// raw HTML because the combined document legitimately carries img tags.
func NewServer(log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		log: log,
		cfg: cfg,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleDocument)
	r.Get("/raw", s.handleRaw)
	r.Get("/report", s.handleReport)
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(s.cfg.ImagesDir))))

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body{max-width:56rem;margin:2rem auto;padding:0 1rem;font-family:sans-serif;line-height:1.5}
img{max-width:100%%}
table{border-collapse:collapse}
td,th{border:1px solid #ccc;padding:.3rem .6rem}
</style>
</head>
<body>
%s
</body>
</html>
`

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	src, err := os.ReadFile(s.cfg.OutputFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "document not built yet; run combine first", http.StatusNotFound)
			return
		}
		s.log.Error("read document", "error", err)
		http.Error(w, "failed to read document", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.md.Convert(src, &buf); err != nil {
		s.log.Error("render document", "error", err)
		http.Error(w, "failed to render document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell, strings.TrimPrefix(s.cfg.Title, "# "), buf.String())
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, s.cfg.OutputFile, "text/markdown; charset=utf-8",
		"document not built yet; run combine first")
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, s.cfg.ReportFile, "text/plain; charset=utf-8",
		"no unused-files report present")
}

func (s *Server) serveFile(w http.ResponseWriter, path, contentType, missing string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, missing, http.StatusNotFound)
			return
		}
		s.log.Error("read file", "path", path, "error", err)
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}
