package handlers

import (
	"net/http"

	"licentra/internal/common"
	"licentra/internal/models"
	"licentra/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles HTTP requests for vendor end users
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// CreateUser handles POST /admin/users
func (h *UserHandlers) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	var req struct {
		ExternalID string       `json:"externalId"`
		Email      *string      `json:"email"`
		Name       *string      `json:"name"`
		Metadata   models.JSONB `json:"metadata"`
	}
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request format")
	}

	user, err := h.userService.Create(ctx, tenantID, &services.UserAttrs{
		ExternalID: req.ExternalID,
		Email:      req.Email,
		Name:       req.Name,
		Metadata:   req.Metadata,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusCreated, user)
}

// ListUsers handles GET /admin/users?externalId=
func (h *UserHandlers) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	if externalID := c.QueryParam("externalId"); externalID != "" {
		user, err := h.userService.GetByExternalID(ctx, tenantID, externalID)
		if err != nil {
			return common.RespondError(c, err)
		}
		return common.RespondOK(c, http.StatusOK, user)
	}

	limit, offset := parsePaging(c)
	users, err := h.userService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, map[string]interface{}{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}
