package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/quickdesk/concierge/internal/common"
	"github.com/quickdesk/concierge/internal/interfaces"
	"github.com/quickdesk/concierge/internal/services/kb"
)

// maxIngestBodyBytes caps inbound HTML payload size
const maxIngestBodyBytes = 4 << 20

// KBHandler handles knowledge-base ingestion and search requests
type KBHandler struct {
	knowledge interfaces.KnowledgeService
	config    *common.Config
	logger    arbor.ILogger
}

// NewKBHandler creates a new knowledge-base handler with dependencies
func NewKBHandler(knowledge interfaces.KnowledgeService, config *common.Config, logger arbor.ILogger) *KBHandler {
	return &KBHandler{
		knowledge: knowledge,
		config:    config,
		logger:    logger,
	}
}

// IngestHandler handles POST /api/kb/ingest?tenantId=... requests. The body
// carries raw HTML; an empty body falls back to the configured fixture file.
func (h *KBHandler) IngestHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	tenantID := r.URL.Query().Get("tenantId")
	if tenantID == "" {
		WriteError(w, http.StatusBadRequest, "tenantId query parameter is required")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxIngestBodyBytes))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	result, err := h.knowledge.Ingest(r.Context(), tenantID, string(body))
	if err != nil {
		switch {
		case errors.Is(err, kb.ErrTenantNotFound):
			WriteError(w, http.StatusNotFound, "Tenant not found")
		case errors.Is(err, kb.ErrFixtureUnavailable):
			WriteError(w, http.StatusNotFound, "No HTML supplied and fixture source is unavailable")
		case errors.Is(err, kb.ErrNoChunks):
			WriteError(w, http.StatusUnprocessableEntity, "Source yielded no usable text")
		default:
			h.logger.Error().Err(err).Str("tenant_id", tenantID).Msg("Ingestion failed")
			WriteError(w, http.StatusInternalServerError, "Ingestion failed")
		}
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// SearchHandler handles GET /api/kb/search?tenantId=...&q=...&topK=N requests
func (h *KBHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	tenantID := r.URL.Query().Get("tenantId")
	if tenantID == "" {
		WriteError(w, http.StatusBadRequest, "tenantId query parameter is required")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	topK := GetIntParam(r, "topK", h.config.Search.TopK)

	results, err := h.knowledge.Search(r.Context(), tenantID, query, topK)
	if err != nil {
		if errors.Is(err, kb.ErrTenantNotFound) {
			WriteError(w, http.StatusNotFound, "Tenant not found")
			return
		}
		h.logger.Error().Err(err).Str("tenant_id", tenantID).Msg("Search failed")
		WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}
