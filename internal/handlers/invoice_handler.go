package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/quickdesk/concierge/internal/interfaces"
	"github.com/quickdesk/concierge/internal/models"
)

// InvoiceHandler handles invoice lifecycle transitions
type InvoiceHandler struct {
	storage interfaces.StorageManager
	logger  arbor.ILogger
}

// NewInvoiceHandler creates a new invoice handler with dependencies
func NewInvoiceHandler(storage interfaces.StorageManager, logger arbor.ILogger) *InvoiceHandler {
	return &InvoiceHandler{
		storage: storage,
		logger:  logger,
	}
}

// extractInvoiceID parses /api/invoices/{id}/<action> paths
func extractInvoiceID(path, action string) string {
	suffix := strings.TrimPrefix(path, "/api/invoices/")
	if suffix == path {
		return ""
	}
	return strings.TrimSuffix(suffix, "/"+action)
}

// SendHandler handles POST /api/invoices/{id}/send requests
func (h *InvoiceHandler) SendHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	id := extractInvoiceID(r.URL.Path, "send")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Invoice ID is required")
		return
	}

	invoice, err := h.storage.InvoiceStorage().UpdateInvoiceStatus(r.Context(), id, models.InvoiceStatusSent)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Invoice not found")
			return
		}
		h.logger.Error().Err(err).Str("invoice_id", id).Msg("Failed to mark invoice sent")
		WriteError(w, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	h.logger.Info().Str("invoice_id", id).Msg("Invoice marked sent")
	WriteJSON(w, http.StatusOK, invoice)
}

// MarkPaidHandler handles POST and GET /api/invoices/{id}/mark-paid requests.
// GET exists so the simulated pay link can complete a payment from a browser;
// an optional next query parameter redirects back to the portal afterwards.
func (h *InvoiceHandler) MarkPaidHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := extractInvoiceID(r.URL.Path, "mark-paid")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Invoice ID is required")
		return
	}

	invoice, err := h.storage.InvoiceStorage().UpdateInvoiceStatus(r.Context(), id, models.InvoiceStatusPaid)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Invoice not found")
			return
		}
		h.logger.Error().Err(err).Str("invoice_id", id).Msg("Failed to mark invoice paid")
		WriteError(w, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	h.logger.Info().Str("invoice_id", id).Msg("Invoice marked paid")

	if next := r.URL.Query().Get("next"); next != "" && strings.HasPrefix(next, "/") {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}

	WriteJSON(w, http.StatusOK, invoice)
}
