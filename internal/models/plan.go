package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a licensing tier template. MaxSeats nil means unlimited seats;
// ExpiresInDays nil means licenses issued from it never expire.
// Licenses snapshot these values at creation, so editing a plan never changes
// already-issued licenses.
type Plan struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TenantID      uuid.UUID `json:"tenant_id" db:"tenant_id"`
	ProductID     uuid.UUID `json:"product_id" db:"product_id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description" db:"description"`
	MaxSeats      *int      `json:"max_seats" db:"max_seats"`
	ExpiresInDays *int      `json:"expires_in_days" db:"expires_in_days"`
	Features      []string  `json:"features" db:"features"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
