package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"discount_etl/internal/domain"
)

// Controller is the part of the run coordinator exposed over HTTP.
type Controller interface {
	Start(ctx context.Context, trigger domain.TriggerType, scopes []domain.Scope) (uuid.UUID, error)
	Status(ctx context.Context) (*domain.StatusSnapshot, error)
	Cleanup(ctx context.Context) (int64, error)
}

type Handler struct {
	controller Controller
	metrics    http.Handler
	logger     *slog.Logger
}

// New builds the control surface. metrics may be nil.
func New(controller Controller, metrics http.Handler, logger *slog.Logger) *Handler {
	return &Handler{
		controller: controller,
		metrics:    metrics,
		logger:     logger.With("component", "httpapi"),
	}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/etl/trigger", h.trigger)
	mux.HandleFunc("GET /api/v1/etl/status", h.status)
	mux.HandleFunc("POST /api/v1/etl/cleanup", h.cleanup)
	mux.HandleFunc("GET /health", h.health)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics)
	}
	return mux
}

type triggerResponse struct {
	Status string `json:"status"`
	RunID  string `json:"run_id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) trigger(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var scopes []domain.Scope
	for _, raw := range r.URL.Query()["scope"] {
		scope, err := domain.ParseScope(raw)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		scopes = append(scopes, scope)
	}

	runID, err := h.controller.Start(ctx, domain.TriggerManual, scopes)
	if errors.Is(err, domain.ErrRunInProgress) {
		h.writeJSON(w, http.StatusConflict, triggerResponse{Status: "already running"})
		return
	}
	if err != nil {
		h.logger.Error("failed to start run", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	h.logger.Info("manual run started", "run_id", runID)
	h.writeJSON(w, http.StatusAccepted, triggerResponse{Status: "started", RunID: runID.String()})
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.controller.Status(r.Context())
	if err != nil {
		h.logger.Error("failed to get status", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) cleanup(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.controller.Cleanup(r.Context())
	if err != nil {
		h.logger.Error("cleanup failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to write response", "error", err)
	}
}
