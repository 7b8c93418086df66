package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"licentra/internal/common"
	"licentra/internal/models"
	"licentra/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuditLogsHandlers exposes the audit trail read side.
type AuditLogsHandlers struct {
	auditService services.AuditService
}

func NewAuditLogsHandlers(auditService services.AuditService) *AuditLogsHandlers {
	return &AuditLogsHandlers{auditService: auditService}
}

// ListAuditLogs handles GET /admin/audit-logs?entityType=&entityId=&cursor=&limit=
// Cursor format: <RFC3339Nano created_at>,<id> taken from a previous response.
func (h *AuditLogsHandlers) ListAuditLogs(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := requireTenant(c)
	if !ok {
		return common.RespondValidationError(c, "X-Tenant-ID header is required")
	}

	filters := &models.AuditLogFilters{}
	if entityType := c.QueryParam("entityType"); entityType != "" {
		filters.EntityType = &entityType
	}
	if entityID := c.QueryParam("entityId"); entityID != "" {
		filters.EntityID = &entityID
	}
	if action := c.QueryParam("action"); action != "" {
		filters.Action = &action
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil {
			filters.Limit = l
		}
	}
	if cursor := c.QueryParam("cursor"); cursor != "" {
		parts := strings.SplitN(cursor, ",", 2)
		if len(parts) != 2 {
			return common.RespondValidationError(c, "invalid cursor")
		}
		cursorTime, err := time.Parse(time.RFC3339Nano, parts[0])
		if err != nil {
			return common.RespondValidationError(c, "invalid cursor")
		}
		cursorID, err := uuid.Parse(parts[1])
		if err != nil {
			return common.RespondValidationError(c, "invalid cursor")
		}
		filters.CursorTime = &cursorTime
		filters.CursorID = &cursorID
	}

	entries, next, err := h.auditService.Query(ctx, tenantID, filters)
	if err != nil {
		return common.RespondError(c, err)
	}

	resp := map[string]interface{}{
		"entries": entries,
	}
	if next != nil {
		resp["nextCursor"] = next.CursorTime.Format(time.RFC3339Nano) + "," + next.CursorID.String()
	}
	return common.RespondOK(c, http.StatusOK, resp)
}
