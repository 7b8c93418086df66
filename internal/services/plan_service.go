package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"licentra/internal/common"
	"licentra/internal/models"
	"licentra/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PlanService manages licensing tier templates. Edits never reach already-issued
// licenses; those carry their own snapshot.
type PlanService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req *CreatePlanRequest) (*models.Plan, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Plan, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req *UpdatePlanRequest) (*models.Plan, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, productID *uuid.UUID, limit, offset int) ([]*models.Plan, error)
}

type CreatePlanRequest struct {
	ProductID     uuid.UUID
	Name          string
	Description   *string
	MaxSeats      *int
	ExpiresInDays *int
	Features      []string
}

type UpdatePlanRequest struct {
	Name          string
	Description   *string
	MaxSeats      *int
	ExpiresInDays *int
	Features      []string
}

type planService struct {
	planRepo    repositories.PlanRepository
	productRepo repositories.ProductRepository
	auditSvc    AuditService
}

func NewPlanService(planRepo repositories.PlanRepository, productRepo repositories.ProductRepository, auditSvc AuditService) PlanService {
	return &planService{
		planRepo:    planRepo,
		productRepo: productRepo,
		auditSvc:    auditSvc,
	}
}

func (s *planService) Create(ctx context.Context, tenantID uuid.UUID, req *CreatePlanRequest) (*models.Plan, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: plan name is required", common.ErrValidation)
	}
	if req.MaxSeats != nil && *req.MaxSeats <= 0 {
		return nil, fmt.Errorf("%w: max_seats must be positive", common.ErrValidation)
	}
	if req.ExpiresInDays != nil && *req.ExpiresInDays <= 0 {
		return nil, fmt.Errorf("%w: expires_in_days must be positive", common.ErrValidation)
	}

	// The product must exist in the caller's tenant; a foreign product is NotFound.
	if _, err := s.productRepo.GetByID(ctx, tenantID, req.ProductID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	plan := &models.Plan{
		ID:            uuid.New(),
		TenantID:      tenantID,
		ProductID:     req.ProductID,
		Name:          req.Name,
		Description:   req.Description,
		MaxSeats:      req.MaxSeats,
		ExpiresInDays: req.ExpiresInDays,
		Features:      req.Features,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	if err := s.auditSvc.Append(ctx, tenantID, models.ActionPlanCreated, "plan", plan.ID.String(), models.JSONB{
		"name":       req.Name,
		"product_id": req.ProductID.String(),
	}); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) Update(ctx context.Context, tenantID, id uuid.UUID, req *UpdatePlanRequest) (*models.Plan, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: plan name is required", common.ErrValidation)
	}
	if req.MaxSeats != nil && *req.MaxSeats <= 0 {
		return nil, fmt.Errorf("%w: max_seats must be positive", common.ErrValidation)
	}

	plan, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	plan.Name = req.Name
	plan.Description = req.Description
	plan.MaxSeats = req.MaxSeats
	plan.ExpiresInDays = req.ExpiresInDays
	plan.Features = req.Features

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	if err := s.auditSvc.Append(ctx, tenantID, models.ActionPlanUpdated, "plan", id.String(), models.JSONB{
		"name": req.Name,
	}); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.planRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	return s.auditSvc.Append(ctx, tenantID, models.ActionPlanDeleted, "plan", id.String(), nil)
}

func (s *planService) List(ctx context.Context, tenantID uuid.UUID, productID *uuid.UUID, limit, offset int) ([]*models.Plan, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.planRepo.List(ctx, tenantID, productID, limit, offset)
}
