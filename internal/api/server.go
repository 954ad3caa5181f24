// Package api exposes the subnet calculator over HTTP: a JSON API, a
// field,value CSV export, calculation history, and the embedded form UI.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"

	"subnetter/internal/history"
	"subnetter/internal/observability"
	"subnetter/internal/subnet"
	"subnetter/web"
)

type apiError struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Server routes calculator requests to the core and the history store.
type Server struct {
	mux     *http.ServeMux
	store   history.Store
	logger  observability.Logger
	metrics *observability.Metrics
}

// NewServer creates the HTTP server with the given dependencies.
// If logger is nil, a default logger is used. If metrics is nil, metrics
// collection is disabled.
func NewServer(mux *http.ServeMux, store history.Store, logger observability.Logger, metrics *observability.Metrics) *Server {
	if logger == nil {
		logger = observability.NewLogger(observability.DefaultLogConfig())
	}
	if store == nil {
		store = history.NewMemoryStore()
	}
	return &Server{mux: mux, store: store, logger: logger, metrics: metrics}
}

// RegisterRoutes registers all HTTP routes on the mux.
func (s *Server) RegisterRoutes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/readyz", s.handleReady)
	if s.metrics != nil {
		s.mux.Handle("/metrics", s.metrics.Handler())
	}
	s.mux.HandleFunc("/api/v1/subnet", s.handleCalc)
	s.mux.HandleFunc("/api/v1/subnet/export", s.handleExport)
	s.mux.HandleFunc("/api/v1/history", s.handleHistory)
	s.mux.HandleFunc("/", s.handleIndex)
}

func (s *Server) writeErr(ctx context.Context, w http.ResponseWriter, code int, msg string, detail string) {
	fields := []any{
		"status", code,
		"error", msg,
	}
	if detail != "" {
		fields = append(fields, "detail", detail)
	}
	if code >= 500 {
		s.logger.ErrorContext(ctx, "request failed", fields...)
		sentry.CaptureMessage(fmt.Sprintf("HTTP %d: %s (detail: %s)", code, msg, detail))
	} else {
		s.logger.WarnContext(ctx, "request failed", fields...)
	}
	writeJSON(w, code, apiError{Error: msg, Detail: detail})
}

// writeParseErr reports an input validation failure. Every parse failure
// maps to 400; the message identifies the violated rule and is passed
// through verbatim for the UI to display.
func (s *Server) writeParseErr(ctx context.Context, w http.ResponseWriter, err error) {
	if s.metrics != nil {
		s.metrics.RecordParseFailure()
	}
	var perr *subnet.ParseError
	if errors.As(err, &perr) {
		s.writeErr(ctx, w, http.StatusBadRequest, perr.Error(), "")
		return
	}
	s.writeErr(ctx, w, http.StatusBadRequest, err.Error(), "")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(web.Index)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// The calculator has no external dependencies to probe; readiness
	// only checks that the history store answers.
	if _, err := s.store.List(r.Context(), 1); err != nil {
		s.writeErr(r.Context(), w, http.StatusServiceUnavailable, "history store unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
