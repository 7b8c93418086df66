package common

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	TenantIDKey contextKey = "tenant_id"
	APIKeyIDKey contextKey = "api_key_id"
	AdminKey    contextKey = "is_admin"
)

// GetTenantIDFromContext extracts the authenticated tenant from the request context.
func GetTenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}

// GetAPIKeyIDFromContext extracts the authenticating key id, when a tenant key was used.
func GetAPIKeyIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	keyID, ok := ctx.Value(APIKeyIDKey).(uuid.UUID)
	return keyID, ok
}

// IsAdminContext reports whether the request authenticated with the platform admin key.
func IsAdminContext(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(AdminKey).(bool)
	return ok && isAdmin
}
