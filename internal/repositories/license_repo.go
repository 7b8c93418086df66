package repositories

import (
	"context"

	"licentra/internal/models"

	"github.com/google/uuid"
)

type LicenseRepository interface {
	Create(ctx context.Context, license *models.License) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.License, error)
	GetByKey(ctx context.Context, tenantID uuid.UUID, key string) (*models.License, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error
	UpdateAssignedUser(ctx context.Context, tenantID, id, userID uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.License, error)
}

type licenseRepo struct {
	db Database
}

func NewLicenseRepo(db Database) LicenseRepository {
	return &licenseRepo{db: db}
}

const licenseColumns = `id, tenant_id, plan_id, key, status, max_seats, expires_at, assigned_user_id, created_at, updated_at`

func (r *licenseRepo) Create(ctx context.Context, license *models.License) error {
	query := `
		INSERT INTO licenses (id, tenant_id, plan_id, key, status, max_seats, expires_at, assigned_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, license.ID, license.TenantID, license.PlanID, license.Key, license.Status, license.MaxSeats, license.ExpiresAt, license.AssignedUserID)
	return err
}

func (r *licenseRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.License, error) {
	license := &models.License{}
	query := `
		SELECT ` + licenseColumns + `
		FROM licenses
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&license.ID, &license.TenantID, &license.PlanID, &license.Key, &license.Status, &license.MaxSeats, &license.ExpiresAt, &license.AssignedUserID, &license.CreatedAt, &license.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return license, nil
}

func (r *licenseRepo) GetByKey(ctx context.Context, tenantID uuid.UUID, key string) (*models.License, error) {
	license := &models.License{}
	query := `
		SELECT ` + licenseColumns + `
		FROM licenses
		WHERE tenant_id = $1 AND key = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, key).Scan(&license.ID, &license.TenantID, &license.PlanID, &license.Key, &license.Status, &license.MaxSeats, &license.ExpiresAt, &license.AssignedUserID, &license.CreatedAt, &license.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return license, nil
}

func (r *licenseRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	query := `
		UPDATE licenses
		SET status = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, status, tenantID, id)
	return err
}

func (r *licenseRepo) UpdateAssignedUser(ctx context.Context, tenantID, id, userID uuid.UUID) error {
	query := `
		UPDATE licenses
		SET assigned_user_id = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, userID, tenantID, id)
	return err
}

func (r *licenseRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.License, error) {
	query := `
		SELECT ` + licenseColumns + `
		FROM licenses
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var licenses []*models.License
	for rows.Next() {
		license := &models.License{}
		if err := rows.Scan(&license.ID, &license.TenantID, &license.PlanID, &license.Key, &license.Status, &license.MaxSeats, &license.ExpiresAt, &license.AssignedUserID, &license.CreatedAt, &license.UpdatedAt); err != nil {
			return nil, err
		}
		licenses = append(licenses, license)
	}
	return licenses, nil
}
