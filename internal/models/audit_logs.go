package models

import (
	"time"

	"github.com/google/uuid"
)

type JSONB map[string]interface{}

// AuditLog is an append-only record of a state-changing action. Entries are never
// edited or deleted by the engine.
type AuditLog struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TenantID   uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Action     string    `json:"action" db:"action"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   string    `json:"entity_id" db:"entity_id"`
	Metadata   JSONB     `json:"metadata" db:"metadata"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Audit actions (dotted taxonomy)
const (
	ActionProductCreated   = "product.created"
	ActionProductUpdated   = "product.updated"
	ActionProductDeleted   = "product.deleted"
	ActionPlanCreated      = "plan.created"
	ActionPlanUpdated      = "plan.updated"
	ActionPlanDeleted      = "plan.deleted"
	ActionLicenseCreated   = "license.created"
	ActionLicenseAssigned  = "license.assigned"
	ActionLicenseStatus    = "license.status_changed"
	ActionLicenseValidated = "license.validated"
	ActionUserCreated      = "user.created"
	ActionAPIKeyCreated    = "api_key.created"
	ActionAPIKeyRevoked    = "api_key.revoked"
	ActionTenantCreated    = "tenant.created"
)

// AuditLogFilters narrows an audit query. Cursor restarts pagination from the last
// row of the previous page.
type AuditLogFilters struct {
	EntityType *string    `json:"entity_type"`
	EntityID   *string    `json:"entity_id"`
	Action     *string    `json:"action"`
	Before     *time.Time `json:"before"`
	CursorTime *time.Time `json:"cursor_time"`
	CursorID   *uuid.UUID `json:"cursor_id"`
	Limit      int        `json:"limit"`
}
