// Package httpapi exposes the advisor over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/raphaelgruber/rendercheck/internal/caching"
	"github.com/raphaelgruber/rendercheck/internal/classifier"
	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/raphaelgruber/rendercheck/internal/profile"
	"github.com/raphaelgruber/rendercheck/internal/service"
	"github.com/raphaelgruber/rendercheck/internal/validator"
)

// maxBodyBytes caps manifest request bodies.
const maxBodyBytes = 1 << 20

// Handler serves the advisor API.
type Handler struct {
	advisor *service.AdvisorService
	metrics *Metrics
	logger  *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(advisor *service.AdvisorService, logger *slog.Logger) *Handler {
	return &Handler{
		advisor: advisor,
		metrics: NewMetrics(),
		logger:  logger,
	}
}

// Routes returns the router with all endpoints mounted.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.observe)

	r.Get("/health", h.Health)
	r.Handle("/metrics", h.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/recommend", h.Recommend)
		r.Post("/validate", h.Validate)
		r.Get("/rules", h.Rules)
		r.Get("/stats", h.Stats)
	})
	return r
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// Recommend runs the full pipeline for the manifest in the request body.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	m, ok := h.decodeManifest(w, r)
	if !ok {
		return
	}

	report, err := h.advisor.Recommend(m)
	if err != nil {
		h.respondError(w, statusFor(err), err)
		return
	}
	h.metrics.RecordReport(report)
	h.respondJSON(w, http.StatusOK, report)
}

// Validate checks the manifest's config. The strategy query parameter
// overrides the manifest's own strategy.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var strategy models.Strategy
	if q := r.URL.Query().Get("strategy"); q != "" {
		s, err := models.ParseStrategy(q)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err)
			return
		}
		strategy = s
	}

	m, ok := h.decodeManifest(w, r)
	if !ok {
		return
	}

	report, err := h.advisor.Validate(m, strategy)
	if err != nil {
		h.respondError(w, statusFor(err), err)
		return
	}
	h.metrics.RecordReport(report)
	h.respondJSON(w, http.StatusOK, report)
}

// Rules lists the classification and validation rules.
func (h *Handler) Rules(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"classification": classifier.Rules(),
		"validation":     validator.Rules(),
	})
}

// Stats returns the advisor's in-memory operation statistics.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.advisor.Metrics().Snapshot())
}

func (h *Handler) decodeManifest(w http.ResponseWriter, r *http.Request) (models.Manifest, bool) {
	var m models.Manifest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Errorf("decode manifest: %w", err))
		return models.Manifest{}, false
	}
	return m, true
}

// statusFor maps advisor errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, profile.ErrMissingField),
		errors.Is(err, profile.ErrUnknownValue),
		errors.Is(err, profile.ErrConflictingConstraint),
		errors.Is(err, caching.ErrInvalidHint):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrIncompleteManifest),
		errors.Is(err, models.ErrUnknownStrategy):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// observe records request metrics against the matched route pattern.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.metrics.RecordRequest(r.Method, route, status, time.Since(start).Seconds())
		h.logger.Debug("http request",
			"method", r.Method,
			"route", route,
			"status", status,
			"request_id", middleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("API error", "error", err, "status", status)
	} else {
		h.logger.Debug("request rejected", "error", err, "status", status)
	}
	h.respondJSON(w, status, map[string]string{
		"error": err.Error(),
	})
}
