// Package server hosts the outreach form UI and its JSON API.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"investor_outreach/agent"
	"investor_outreach/export"
	"investor_outreach/outreach"
)

//go:embed templates/*.html
var templateFS embed.FS

// Drafter produces one email per request. *agent.Orchestrator satisfies it.
type Drafter interface {
	DraftEmail(ctx context.Context, req outreach.Request) (agent.Draft, error)
	Product() outreach.ProductProfile
}

type Server struct {
	drafter Drafter
	page    *template.Template
	logger  *zap.Logger
}

func New(drafter Drafter, logger *zap.Logger) (*Server, error) {
	if drafter == nil {
		return nil, errors.New("drafter required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		drafter: drafter,
		page:    page,
		logger:  logger.Named("http"),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /draft", s.handleDraftForm)
	mux.HandleFunc("POST /download", s.handleDownload)
	mux.HandleFunc("POST /api/drafts", s.handleDraftAPI)
	mux.HandleFunc("POST /api/compose", s.handleComposeAPI)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	return requestIDMiddleware(s.logMiddleware(metricsMiddleware(mux)))
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for up to shutdownGrace.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

const shutdownGrace = 15 * time.Second

func (s *Server) title() string {
	return s.drafter.Product().Name + " Investor Email Agent"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// renderDraft converts a draft into the form's result block.
func renderDraft(d agent.Draft) *draftView {
	view := &draftView{
		Text:    d.Text,
		Runtime: d.Runtime,
		Issues:  d.Issues(),
		Debug:   d.Debug,
	}
	for _, f := range export.Formats {
		view.Formats = append(view.Formats, string(f))
	}
	// goldmark drops raw HTML, so the fragment is safe to inline.
	if preview, err := export.ToHTML(d.Text); err == nil {
		view.Preview = template.HTML(preview)
	}
	return view
}
