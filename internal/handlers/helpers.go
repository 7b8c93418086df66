package handlers

import (
	"strconv"
	"strings"

	"licentra/internal/common"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// requireTenant returns the tenant a request is scoped to: the key's tenant for
// tenant-key requests, the X-Tenant-ID header for admin requests.
func requireTenant(c echo.Context) (uuid.UUID, bool) {
	tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
	return tenantID, ok
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Param(name))
	return uuid.Parse(idStr)
}

func parsePaging(c echo.Context) (limit, offset int) {
	limit = 20
	offset = 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}
