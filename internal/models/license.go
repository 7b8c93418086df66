package models

import (
	"time"

	"github.com/google/uuid"
)

// License statuses. Revoked and expired are terminal.
const (
	LicenseStatusActive    = "active"
	LicenseStatusSuspended = "suspended"
	LicenseStatusRevoked   = "revoked"
	LicenseStatusExpired   = "expired"
)

// License is an issued credential derived from a Plan snapshot. MaxSeats and
// ExpiresAt are copied from the plan at creation time and never re-read from it.
type License struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	TenantID       uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	PlanID         uuid.UUID  `json:"plan_id" db:"plan_id"`
	Key            string     `json:"key" db:"key"`
	Status         string     `json:"status" db:"status"`
	MaxSeats       *int       `json:"max_seats" db:"max_seats"`
	ExpiresAt      *time.Time `json:"expires_at" db:"expires_at"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id" db:"assigned_user_id"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// EffectiveStatus is the status a reader must act on. A license whose ExpiresAt has
// passed reads as expired regardless of the stored status; expiration is never an
// explicit write.
func (l *License) EffectiveStatus(now time.Time) string {
	if l.ExpiresAt != nil && l.ExpiresAt.Before(now) {
		return LicenseStatusExpired
	}
	return l.Status
}

// LicenseUsage is the admin view of a license's seat occupancy.
type LicenseUsage struct {
	License          *License      `json:"license"`
	Activations      []*Activation `json:"activations"`
	TotalActivations int           `json:"total_activations"`
	ActiveSeats      int           `json:"active_seats"`
}
