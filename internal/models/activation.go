package models

import (
	"time"

	"github.com/google/uuid"
)

// Activation records one user occupying a seat on a license. At most one row per
// (license, user) pair; repeat validations only advance LastCheckedAt.
type Activation struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TenantID      uuid.UUID `json:"tenant_id" db:"tenant_id"`
	LicenseID     uuid.UUID `json:"license_id" db:"license_id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	ActivatedAt   time.Time `json:"activated_at" db:"activated_at"`
	LastCheckedAt time.Time `json:"last_checked_at" db:"last_checked_at"`
}
