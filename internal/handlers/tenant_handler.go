package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/quickdesk/concierge/internal/common"
	"github.com/quickdesk/concierge/internal/interfaces"
	"github.com/quickdesk/concierge/internal/models"
)

// TenantHandler handles tenant onboarding and listing
type TenantHandler struct {
	storage   interfaces.StorageManager
	knowledge interfaces.KnowledgeService
	config    *common.Config
	validate  *validator.Validate
	logger    arbor.ILogger
}

// NewTenantHandler creates a new tenant handler with dependencies
func NewTenantHandler(storage interfaces.StorageManager, knowledge interfaces.KnowledgeService, config *common.Config, logger arbor.ILogger) *TenantHandler {
	return &TenantHandler{
		storage:   storage,
		knowledge: knowledge,
		config:    config,
		validate:  validator.New(),
		logger:    logger,
	}
}

// CreateHandler handles POST /api/tenants requests
func (h *TenantHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.TenantCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	ctx := r.Context()

	if existing, err := h.storage.TenantStorage().GetTenantByEmail(ctx, req.Email); err == nil && existing != nil {
		WriteError(w, http.StatusConflict, "A tenant with this email already exists")
		return
	} else if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		h.logger.Error().Err(err).Msg("Failed to check tenant email")
		WriteError(w, http.StatusInternalServerError, "Failed to create tenant")
		return
	}

	tenant := &models.Tenant{
		ID:      common.NewTenantID(),
		Name:    req.Name,
		Email:   req.Email,
		Website: req.Website,
	}

	if err := h.storage.TenantStorage().SaveTenant(ctx, tenant); err != nil {
		h.logger.Error().Err(err).Msg("Failed to save tenant")
		WriteError(w, http.StatusInternalServerError, "Failed to create tenant")
		return
	}

	h.logger.Info().
		Str("tenant_id", tenant.ID).
		Str("name", tenant.Name).
		Msg("Tenant created")

	if h.config.Tenants.AutoIngest {
		// Seed the knowledge base in the background so onboarding stays fast
		go func(tenantID string) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if _, err := h.knowledge.Ingest(ctx, tenantID, ""); err != nil {
				h.logger.Warn().Err(err).Str("tenant_id", tenantID).Msg("Background ingestion failed")
			}
		}(tenant.ID)
	}

	WriteJSON(w, http.StatusCreated, tenant)
}

// ListHandler handles GET /api/tenants requests
func (h *TenantHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	tenants, err := h.storage.TenantStorage().ListTenants(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list tenants")
		WriteError(w, http.StatusInternalServerError, "Failed to list tenants")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tenants": tenants,
		"count":   len(tenants),
	})
}
