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

// UserService manages vendor end users. FindOrCreate is the implicit-creation path
// used by validation; the created flag lets callers (and tests) see that creation
// happens exactly once per external id.
type UserService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req *UserAttrs) (*models.User, error)
	FindOrCreate(ctx context.Context, tenantID uuid.UUID, req *UserAttrs) (*models.User, bool, error)
	GetByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*models.User, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.User, error)
}

type UserAttrs struct {
	ExternalID string
	Email      *string
	Name       *string
	Metadata   models.JSONB
}

type userService struct {
	userRepo repositories.UserRepository
	auditSvc AuditService
}

func NewUserService(userRepo repositories.UserRepository, auditSvc AuditService) UserService {
	return &userService{
		userRepo: userRepo,
		auditSvc: auditSvc,
	}
}

func (s *userService) Create(ctx context.Context, tenantID uuid.UUID, req *UserAttrs) (*models.User, error) {
	if strings.TrimSpace(req.ExternalID) == "" {
		return nil, fmt.Errorf("%w: external_id is required", common.ErrValidation)
	}

	if _, err := s.userRepo.GetByExternalID(ctx, tenantID, req.ExternalID); err == nil {
		return nil, fmt.Errorf("%w: user with external_id %q already exists", common.ErrConflict, req.ExternalID)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	user := &models.User{
		ID:         uuid.New(),
		TenantID:   tenantID,
		ExternalID: req.ExternalID,
		Email:      req.Email,
		Name:       req.Name,
		Metadata:   req.Metadata,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.auditSvc.Append(ctx, tenantID, models.ActionUserCreated, "user", user.ID.String(), models.JSONB{
		"external_id": req.ExternalID,
	}); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) FindOrCreate(ctx context.Context, tenantID uuid.UUID, req *UserAttrs) (*models.User, bool, error) {
	if strings.TrimSpace(req.ExternalID) == "" {
		return nil, false, fmt.Errorf("%w: external_id is required", common.ErrValidation)
	}

	user, err := s.userRepo.GetByExternalID(ctx, tenantID, req.ExternalID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	created, err := s.Create(ctx, tenantID, req)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (s *userService) GetByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*models.User, error) {
	user, err := s.userRepo.GetByExternalID(ctx, tenantID, externalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.List(ctx, tenantID, limit, offset)
}
