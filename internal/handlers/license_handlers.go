package handlers

import (
	"net/http"
	"time"

	"licentra/internal/common"
	"licentra/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// LicenseHandlers handles HTTP requests for licenses
type LicenseHandlers struct {
	licenseService services.LicenseService
}

func NewLicenseHandlers(licenseService services.LicenseService) *LicenseHandlers {
	return &LicenseHandlers{licenseService: licenseService}
}

// CreateLicense handles POST /admin/licenses
func (h *LicenseHandlers) CreateLicense(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	var req struct {
		PlanID    string     `json:"planId"`
		MaxSeats  *int       `json:"maxSeats"`
		ExpiresAt *time.Time `json:"expiresAt"`
	}
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request format")
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return common.RespondValidationError(c, "invalid planId")
	}

	license, err := h.licenseService.Create(ctx, tenantID, &services.CreateLicenseRequest{
		PlanID:            planID,
		MaxSeatsOverride:  req.MaxSeats,
		ExpiresAtOverride: req.ExpiresAt,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusCreated, license)
}

// ListLicenses handles GET /admin/licenses
func (h *LicenseHandlers) ListLicenses(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	limit, offset := parsePaging(c)
	licenses, err := h.licenseService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, map[string]interface{}{
		"licenses": licenses,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetLicense handles GET /admin/licenses/:id
func (h *LicenseHandlers) GetLicense(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	licenseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid license id")
	}

	license, err := h.licenseService.GetByID(ctx, tenantID, licenseID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, license)
}

// AssignLicense handles POST /admin/licenses/:id/assign
func (h *LicenseHandlers) AssignLicense(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	licenseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid license id")
	}

	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request format")
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return common.RespondValidationError(c, "invalid userId")
	}

	license, err := h.licenseService.Assign(ctx, tenantID, licenseID, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, license)
}

// UpdateLicenseStatus handles PATCH /admin/licenses/:id/status
func (h *LicenseHandlers) UpdateLicenseStatus(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	licenseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid license id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request format")
	}

	license, err := h.licenseService.UpdateStatus(ctx, tenantID, licenseID, req.Status)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, license)
}

// GetLicenseUsage handles GET /admin/licenses/:id/usage
func (h *LicenseHandlers) GetLicenseUsage(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	licenseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid license id")
	}

	usage, err := h.licenseService.Usage(ctx, tenantID, licenseID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, usage)
}
