package handlers

import (
	"net/http"

	"licentra/internal/common"
	"licentra/internal/services"

	"github.com/labstack/echo/v4"
)

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

type productRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CreateProduct handles POST /admin/products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request format")
	}

	product, err := h.productService.Create(ctx, tenantID, req.Name, req.Description)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusCreated, product)
}

// ListProducts handles GET /admin/products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	limit, offset := parsePaging(c)
	products, err := h.productService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetProduct handles GET /admin/products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid product id")
	}

	product, err := h.productService.GetByID(ctx, tenantID, productID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, product)
}

// UpdateProduct handles PUT /admin/products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid product id")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondValidationError(c, "invalid request format")
	}

	product, err := h.productService.Update(ctx, tenantID, productID, req.Name, req.Description)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.RespondValidationError(c, "invalid product id")
	}

	if err := h.productService.Delete(ctx, tenantID, productID); err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, http.StatusOK, map[string]string{"message": "Product deleted"})
}
