// Package server serves the upload, plot and download pages and a stateless
// render API.
package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/charts"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/config"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/logger"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/session"
)

//go:embed templates/index.html templates/help.md
var templateFS embed.FS

// Server represents the visualizer web application
type Server struct {
	Config   *config.Config
	Sessions *session.Store
	Renderer *charts.Renderer
	Version  string

	page *template.Template
	help template.HTML
	log  *logger.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, sessions *session.Store) (*Server, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	help, err := renderHelp()
	if err != nil {
		return nil, err
	}

	return &Server{
		Config:   cfg,
		Sessions: sessions,
		Renderer: charts.NewRenderer(charts.Options{
			Width:  cfg.ChartWidth,
			Height: cfg.ChartHeight,
		}),
		Version: config.GetVersion(),
		page:    page,
		help:    help,
		log:     logger.Component("server"),
	}, nil
}

// renderHelp converts the embedded usage notes to HTML
func renderHelp() (template.HTML, error) {
	source, err := templateFS.ReadFile("templates/help.md")
	if err != nil {
		return "", fmt.Errorf("failed to read help text: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("failed to convert help text: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/upload", s.HandleUpload)
	mux.HandleFunc("/plot", s.HandlePlot)
	mux.HandleFunc("/reset", s.HandleReset)
	mux.HandleFunc("/api/render", s.HandleRenderAPI)

	// Handle root path last (catch-all)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Handler returns the routes wrapped with request logging
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.SetupRoutes())
}
