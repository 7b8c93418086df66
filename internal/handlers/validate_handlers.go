package handlers

import (
	"net/http"

	"licentra/internal/common"
	"licentra/internal/models"
	"licentra/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ValidateHandlers serves the tenant-facing validation surface. These routes
// authenticate with a tenant API key rather than the admin key.
type ValidateHandlers struct {
	validationService services.ValidationService
	licenseService    services.LicenseService
}

func NewValidateHandlers(validationService services.ValidationService, licenseService services.LicenseService) *ValidateHandlers {
	return &ValidateHandlers{validationService: validationService, licenseService: licenseService}
}

type validateRequest struct {
	LicenseID  *uuid.UUID   `json:"licenseId"`
	LicenseKey string       `json:"licenseKey"`
	ExternalID string       `json:"externalId"`
	Email      *string      `json:"email"`
	Name       *string      `json:"name"`
	Metadata   models.JSONB `json:"metadata"`
}

// Validate handles POST /validate.
func (h *ValidateHandlers) Validate(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthorized)
	}

	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request body")
	}

	result, err := h.validationService.Validate(ctx, tenantID, &services.ValidateRequest{
		LicenseID:  req.LicenseID,
		LicenseKey: req.LicenseKey,
		ExternalID: req.ExternalID,
		Email:      req.Email,
		Name:       req.Name,
		Metadata:   req.Metadata,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, result)
}

// Introspect handles GET /licenses/:key for tenant API keys. Read-only: no user
// is recorded and no activation is created.
func (h *ValidateHandlers) Introspect(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthorized)
	}

	key := c.Param("key")
	if key == "" {
		return common.RespondValidationError(c, "license key is required")
	}

	license, err := h.licenseService.GetByKey(ctx, tenantID, key)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, license)
}
