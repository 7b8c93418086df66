package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an end user of a vendor's software, identified by the vendor's own
// external id (unique per tenant). Created implicitly on first validation or
// explicitly through the admin API.
type User struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TenantID   uuid.UUID `json:"tenant_id" db:"tenant_id"`
	ExternalID string    `json:"external_id" db:"external_id"`
	Email      *string   `json:"email" db:"email"`
	Name       *string   `json:"name" db:"name"`
	Metadata   JSONB     `json:"metadata" db:"metadata"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
