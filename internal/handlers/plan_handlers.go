package handlers

import (
	"net/http"

	"licentra/internal/common"
	"licentra/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PlanHandlers handles HTTP requests for plans
type PlanHandlers struct {
	planService services.PlanService
}

func NewPlanHandlers(planService services.PlanService) *PlanHandlers {
	return &PlanHandlers{planService: planService}
}

type planRequest struct {
	ProductID     string   `json:"productId"`
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	MaxSeats      *int     `json:"maxSeats"`
	ExpiresInDays *int     `json:"expiresInDays"`
	Features      []string `json:"features"`
}

// CreatePlan handles POST /admin/plans
func (h *PlanHandlers) CreatePlan(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	var req planRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request format")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return common.RespondValidationError(c, "invalid productId")
	}

	plan, err := h.planService.Create(ctx, tenantID, &services.CreatePlanRequest{
		ProductID:     productID,
		Name:          req.Name,
		Description:   req.Description,
		MaxSeats:      req.MaxSeats,
		ExpiresInDays: req.ExpiresInDays,
		Features:      req.Features,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusCreated, plan)
}

// ListPlans handles GET /admin/plans?productId=
func (h *PlanHandlers) ListPlans(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	var productID *uuid.UUID
	if productParam := c.QueryParam("productId"); productParam != "" {
		id, err := uuid.Parse(productParam)
		if err != nil {
			return common.RespondValidationError(c, "invalid productId")
		}
		productID = &id
	}

	limit, offset := parsePaging(c)
	plans, err := h.planService.List(ctx, tenantID, productID, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, map[string]interface{}{
		"plans":  plans,
		"limit":  limit,
		"offset": offset,
	})
}

// GetPlan handles GET /admin/plans/:id
func (h *PlanHandlers) GetPlan(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	planID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid plan id")
	}

	plan, err := h.planService.GetByID(ctx, tenantID, planID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, plan)
}

// UpdatePlan handles PUT /admin/plans/:id
func (h *PlanHandlers) UpdatePlan(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	planID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid plan id")
	}

	var req planRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request format")
	}

	plan, err := h.planService.Update(ctx, tenantID, planID, &services.UpdatePlanRequest{
		Name:          req.Name,
		Description:   req.Description,
		MaxSeats:      req.MaxSeats,
		ExpiresInDays: req.ExpiresInDays,
		Features:      req.Features,
	})
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, plan)
}

// DeletePlan handles DELETE /admin/plans/:id
func (h *PlanHandlers) DeletePlan(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	planID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid plan id")
	}

	if err := h.planService.Delete(ctx, tenantID, planID); err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, map[string]string{"message": "Plan deleted"})
}
