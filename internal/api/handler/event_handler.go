package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/nyxhub/content-sync/internal/domain"
	"github.com/nyxhub/content-sync/internal/service"
)

// EventHandler accepts content-change events from the host CMS and turns
// them into queued sync jobs.
type EventHandler struct {
	svc    *service.SyncService
	logger *zap.Logger
}

func NewEventHandler(svc *service.SyncService, logger *zap.Logger) *EventHandler {
	return &EventHandler{svc: svc, logger: logger}
}

// Create handles POST /api/v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload domain.JobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	job, err := h.svc.Enqueue(r.Context(), payload)
	if err != nil {
		mapError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, job)
}
