package handlers

import (
	"net/http"
	"strings"
	"time"

	"licentra/internal/common"
	"licentra/internal/models"
	"licentra/internal/repositories"
	"licentra/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TenantHandlers handles tenant bootstrap and API key management. All routes here
// require the platform admin key.
type TenantHandlers struct {
	tenantRepo repositories.TenantRepository
	apiKeySvc  services.APIKeyService
	auditSvc   services.AuditService
}

func NewTenantHandlers(tenantRepo repositories.TenantRepository, apiKeySvc services.APIKeyService, auditSvc services.AuditService) *TenantHandlers {
	return &TenantHandlers{
		tenantRepo: tenantRepo,
		apiKeySvc:  apiKeySvc,
		auditSvc:   auditSvc,
	}
}

// CreateTenant handles POST /admin/tenants
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request format")
	}
	if strings.TrimSpace(req.Name) == "" {
		return common.RespondValidationError(c, "tenant name is required")
	}

	tenant := &models.Tenant{
		ID:     uuid.New(),
		Name:   req.Name,
		Status: "active",
	}
	if err := h.tenantRepo.Create(ctx, tenant); err != nil {
		return common.RespondError(c, err)
	}
	if err := h.auditSvc.Append(ctx, tenant.ID, models.ActionTenantCreated, "tenant", tenant.ID.String(), models.JSONB{
		"name": tenant.Name,
	}); err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusCreated, tenant)
}

// ListTenants handles GET /admin/tenants
func (h *TenantHandlers) ListTenants(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := parsePaging(c)
	tenants, err := h.tenantRepo.List(ctx, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, map[string]interface{}{
		"tenants": tenants,
		"limit":   limit,
		"offset":  offset,
	})
}

// CreateAPIKey handles POST /admin/tenants/:id/keys. The plaintext key appears in
// this response and nowhere else.
func (h *TenantHandlers) CreateAPIKey(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid tenant id")
	}

	var req struct {
		Name      string     `json:"name"`
		ExpiresAt *time.Time `json:"expiresAt"`
	}
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request format")
	}

	plaintext, key, err := h.apiKeySvc.Generate(ctx, tenantID, req.Name, req.ExpiresAt)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusCreated, map[string]interface{}{
		"key":       plaintext,
		"apiKey":    key,
		"important": "Store this key now. It cannot be shown again.",
	})
}

// ListAPIKeys handles GET /admin/tenants/:id/keys
func (h *TenantHandlers) ListAPIKeys(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid tenant id")
	}

	keys, err := h.apiKeySvc.List(ctx, tenantID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, map[string]interface{}{"keys": keys})
}

// RevokeAPIKey handles DELETE /admin/tenants/:id/keys/:keyId
func (h *TenantHandlers) RevokeAPIKey(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid tenant id")
	}
	keyID, err := parseUUIDParam(c, "keyId")
	if err != nil {
		return common.RespondValidationError(c, "invalid key id")
	}

	if err := h.apiKeySvc.Revoke(ctx, tenantID, keyID); err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, map[string]string{"message": "API key revoked"})
}
