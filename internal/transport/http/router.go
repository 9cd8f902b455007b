// Package httptransport exposes command processors over HTTP. It is the thin
// layer between chi and the dispatch core: every command route delegates to a
// command.Processor, which owns the response envelope.
package httptransport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"nebula/internal/command"
	"nebula/internal/platform/middleware"
	dErrors "nebula/pkg/domain-errors"
	"nebula/pkg/platform/httputil"
	"nebula/pkg/platform/middleware/metadata"
	"nebula/pkg/platform/middleware/requesttime"
	"nebula/pkg/platform/sentinel"
)

// Handler routes function endpoints to their processors.
type Handler struct {
	logger    *slog.Logger
	functions map[string]*command.Processor
}

// NewHandler returns a Handler serving the given function endpoints, keyed by
// the {function} path segment.
func NewHandler(logger *slog.Logger, functions map[string]*command.Processor) (*Handler, error) {
	if len(functions) == 0 {
		return nil, fmt.Errorf("at least one function is required")
	}
	for name, p := range functions {
		if p == nil {
			return nil, fmt.Errorf("function %q has no processor", name)
		}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{logger: logger, functions: functions}, nil
}

// NewRouter wires the public endpoints. metricsHandler may be nil, in which
// case /metrics is not mounted.
func NewRouter(h *Handler, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.AccessLog(h.logger))

	r.Get("/healthz", h.handleHealth)
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/{function}", func(r chi.Router) {
		r.Get("/", h.handleCommand)
		r.Post("/", h.handleCommand)
		r.Options("/", h.handlePreflight)
		r.Get("/commands", h.handleCatalog)
	})
	return r
}

func (h *Handler) handleCommand(w http.ResponseWriter, r *http.Request) {
	p, err := h.processor(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p.ServeHTTP(w, r)
}

func (h *Handler) handlePreflight(w http.ResponseWriter, r *http.Request) {
	if _, err := h.processor(r); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.SetNoCacheCORS(w.Header())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	p, err := h.processor(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.SetNoCacheCORS(w.Header())
	httputil.WriteJSON(w, http.StatusOK, p.Catalog())
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"functions": len(h.functions),
	})
}

func (h *Handler) processor(r *http.Request) (*command.Processor, error) {
	name := chi.URLParam(r, "function")
	p, ok := h.functions[name]
	if !ok {
		return nil, dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, "unknown function "+name)
	}
	return p, nil
}
