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

// ProductService handles the product side of the catalog. Products are grouping
// containers only; licensing rules live on plans.
type ProductService interface {
	Create(ctx context.Context, tenantID uuid.UUID, name string, description *string) (*models.Product, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, name string, description *string) (*models.Product, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	auditSvc    AuditService
}

func NewProductService(productRepo repositories.ProductRepository, auditSvc AuditService) ProductService {
	return &productService{
		productRepo: productRepo,
		auditSvc:    auditSvc,
	}
}

func (s *productService) Create(ctx context.Context, tenantID uuid.UUID, name string, description *string) (*models.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: product name is required", common.ErrValidation)
	}

	product := &models.Product{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        name,
		Description: description,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	if err := s.auditSvc.Append(ctx, tenantID, models.ActionProductCreated, "product", product.ID.String(), models.JSONB{
		"name": name,
	}); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, tenantID, id uuid.UUID, name string, description *string) (*models.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: product name is required", common.ErrValidation)
	}

	product, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	product.Name = name
	product.Description = description

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	if err := s.auditSvc.Append(ctx, tenantID, models.ActionProductUpdated, "product", id.String(), models.JSONB{
		"name": name,
	}); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	return s.auditSvc.Append(ctx, tenantID, models.ActionProductDeleted, "product", id.String(), nil)
}

func (s *productService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.productRepo.List(ctx, tenantID, limit, offset)
}
