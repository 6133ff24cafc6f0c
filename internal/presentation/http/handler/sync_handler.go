package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tewankitchen/pos-api/internal/infrastructure/notifier"
	"github.com/tewankitchen/pos-api/internal/presentation/http/dto/response"
)

// SyncHandler exposes delivery problems of the recording sinks
type SyncHandler struct {
	dispatcher *notifier.Dispatcher
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(dispatcher *notifier.Dispatcher) *SyncHandler {
	return &SyncHandler{dispatcher: dispatcher}
}

// Warnings lists failed or dropped deliveries, oldest first
func (h *SyncHandler) Warnings(c *gin.Context) {
	response.OK(c, "Sync warnings retrieved successfully", gin.H{
		"sinks":    h.dispatcher.SinkNames(),
		"warnings": h.dispatcher.Warnings(),
	})
}

// ClearWarnings acknowledges every listed warning
func (h *SyncHandler) ClearWarnings(c *gin.Context) {
	h.dispatcher.ClearWarnings()
	response.OK(c, "Sync warnings cleared", nil)
}
