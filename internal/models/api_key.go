package models

import (
	"time"

	"github.com/google/uuid"
)

// APIKey is a tenant credential. The plaintext secret exists only in the creation
// response; only the SHA-256 of the secret is stored. Keys are never deleted, only
// revoked, so the audit trail stays intact.
type APIKey struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	TenantID   uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	Name       string     `json:"name" db:"name"`
	Prefix     string     `json:"prefix" db:"prefix"`
	KeyHash    string     `json:"-" db:"key_hash"` // Never serialize in JSON
	ExpiresAt  *time.Time `json:"expires_at" db:"expires_at"`
	RevokedAt  *time.Time `json:"revoked_at" db:"revoked_at"`
	LastUsedAt *time.Time `json:"last_used_at" db:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

const (
	APIKeyPrefixLength = 8
	APIKeySecretLength = 32
	APIKeyFormat       = "lk_%s_%s" // lk_<prefix>_<secret>
)

// Active reports whether the key is usable at the given instant.
func (k *APIKey) Active(now time.Time) bool {
	if k.RevokedAt != nil {
		return false
	}
	if k.ExpiresAt != nil && k.ExpiresAt.Before(now) {
		return false
	}
	return true
}
