package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nyxhub/content-sync/internal/service"
)

// QueueHandler exposes the queue's operator-facing status.
type QueueHandler struct {
	svc       *service.SyncService
	asyncMode bool
	logger    *zap.Logger
}

func NewQueueHandler(svc *service.SyncService, asyncMode bool, logger *zap.Logger) *QueueHandler {
	return &QueueHandler{svc: svc, asyncMode: asyncMode, logger: logger}
}

// Status handles GET /api/v1/queue/status
func (h *QueueHandler) Status(w http.ResponseWriter, r *http.Request) {
	size, err := h.svc.QueueSize(r.Context())
	if err != nil {
		h.logger.Error("failed to read queue size", zap.Error(err))
		mapError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"pending":    size,
		"async_mode": h.asyncMode,
	})
}
