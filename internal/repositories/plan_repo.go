package repositories

import (
	"context"

	"licentra/internal/models"

	"github.com/google/uuid"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *models.Plan) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Plan, error)
	Update(ctx context.Context, plan *models.Plan) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, productID *uuid.UUID, limit, offset int) ([]*models.Plan, error)
}

type planRepo struct {
	db Database
}

func NewPlanRepo(db Database) PlanRepository {
	return &planRepo{db: db}
}

func (r *planRepo) Create(ctx context.Context, plan *models.Plan) error {
	query := `
		INSERT INTO plans (id, tenant_id, product_id, name, description, max_seats, expires_in_days, features, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, plan.ID, plan.TenantID, plan.ProductID, plan.Name, plan.Description, plan.MaxSeats, plan.ExpiresInDays, plan.Features)
	return err
}

func (r *planRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Plan, error) {
	plan := &models.Plan{}
	query := `
		SELECT id, tenant_id, product_id, name, description, max_seats, expires_in_days, features, created_at, updated_at
		FROM plans
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&plan.ID, &plan.TenantID, &plan.ProductID, &plan.Name, &plan.Description, &plan.MaxSeats, &plan.ExpiresInDays, &plan.Features, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Update edits the template only. Licenses already issued from this plan keep their
// snapshotted max_seats and expires_at.
func (r *planRepo) Update(ctx context.Context, plan *models.Plan) error {
	query := `
		UPDATE plans
		SET name = $1, description = $2, max_seats = $3, expires_in_days = $4, features = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, plan.Name, plan.Description, plan.MaxSeats, plan.ExpiresInDays, plan.Features, plan.TenantID, plan.ID)
	return err
}

func (r *planRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM plans WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *planRepo) List(ctx context.Context, tenantID uuid.UUID, productID *uuid.UUID, limit, offset int) ([]*models.Plan, error) {
	var query string
	var args []interface{}

	if productID != nil {
		query = `
			SELECT id, tenant_id, product_id, name, description, max_seats, expires_in_days, features, created_at, updated_at
			FROM plans
			WHERE tenant_id = $1 AND product_id = $2
			ORDER BY created_at DESC
			LIMIT $3 OFFSET $4
		`
		args = []interface{}{tenantID, *productID, limit, offset}
	} else {
		query = `
			SELECT id, tenant_id, product_id, name, description, max_seats, expires_in_days, features, created_at, updated_at
			FROM plans
			WHERE tenant_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`
		args = []interface{}{tenantID, limit, offset}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		plan := &models.Plan{}
		if err := rows.Scan(&plan.ID, &plan.TenantID, &plan.ProductID, &plan.Name, &plan.Description, &plan.MaxSeats, &plan.ExpiresInDays, &plan.Features, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
