package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/quickdesk/concierge/internal/interfaces"
	"github.com/quickdesk/concierge/internal/models"
	"github.com/quickdesk/concierge/internal/services/inbound"
)

// InboundHandler handles simulated messaging channel webhooks
type InboundHandler struct {
	service interfaces.InboundService
	logger  arbor.ILogger
}

// NewInboundHandler creates a new inbound handler with dependencies
func NewInboundHandler(service interfaces.InboundService, logger arbor.ILogger) *InboundHandler {
	return &InboundHandler{
		service: service,
		logger:  logger,
	}
}

// WhatsAppHandler handles POST /api/channels/wa/inbound requests
func (h *InboundHandler) WhatsAppHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var msg models.InboundMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	reply, err := h.service.HandleInbound(r.Context(), &msg)
	if err != nil {
		switch {
		case errors.Is(err, inbound.ErrInvalidMessage):
			WriteError(w, http.StatusBadRequest, "Validation failed: tenantId, from and text are required")
		case errors.Is(err, interfaces.ErrNotFound):
			WriteError(w, http.StatusNotFound, "Tenant not found")
		default:
			h.logger.Error().Err(err).Str("tenant_id", msg.TenantID).Msg("Inbound handling failed")
			WriteError(w, http.StatusInternalServerError, "Failed to process inbound message")
		}
		return
	}

	WriteJSON(w, http.StatusOK, reply)
}
