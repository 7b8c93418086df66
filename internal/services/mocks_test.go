package services

import (
	"context"
	"time"

	"licentra/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories and collaborating services used across the service tests.

type MockLicenseRepository struct {
	mock.Mock
}

func (m *MockLicenseRepository) Create(ctx context.Context, license *models.License) error {
	args := m.Called(ctx, license)
	return args.Error(0)
}

func (m *MockLicenseRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.License, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.License), args.Error(1)
}

func (m *MockLicenseRepository) GetByKey(ctx context.Context, tenantID uuid.UUID, key string) (*models.License, error) {
	args := m.Called(ctx, tenantID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.License), args.Error(1)
}

func (m *MockLicenseRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

func (m *MockLicenseRepository) UpdateAssignedUser(ctx context.Context, tenantID, id, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, id, userID)
	return args.Error(0)
}

func (m *MockLicenseRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.License, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.License), args.Error(1)
}

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Plan, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *models.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPlanRepository) List(ctx context.Context, tenantID uuid.UUID, productID *uuid.UUID, limit, offset int) ([]*models.Plan, error) {
	args := m.Called(ctx, tenantID, productID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Plan), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*models.User, error) {
	args := m.Called(ctx, tenantID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockActivationRepository struct {
	mock.Mock
}

func (m *MockActivationRepository) GetByLicenseAndUser(ctx context.Context, tenantID, licenseID, userID uuid.UUID) (*models.Activation, error) {
	args := m.Called(ctx, tenantID, licenseID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Activation), args.Error(1)
}

func (m *MockActivationRepository) ListByLicense(ctx context.Context, tenantID, licenseID uuid.UUID) ([]*models.Activation, error) {
	args := m.Called(ctx, tenantID, licenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Activation), args.Error(1)
}

func (m *MockActivationRepository) CountByLicense(ctx context.Context, tenantID, licenseID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, licenseID)
	return args.Int(0), args.Error(1)
}

func (m *MockActivationRepository) Record(ctx context.Context, tenantID, licenseID, userID uuid.UUID, maxSeats *int) (*models.Activation, bool, error) {
	args := m.Called(ctx, tenantID, licenseID, userID, maxSeats)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Activation), args.Bool(1), args.Error(2)
}

type MockAPIKeyRepository struct {
	mock.Mock
}

func (m *MockAPIKeyRepository) Create(ctx context.Context, key *models.APIKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockAPIKeyRepository) GetByPrefix(ctx context.Context, prefix string) (*models.APIKey, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) Revoke(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockAPIKeyRepository) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAPIKeyRepository) RevokeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditLogsRepository struct {
	mock.Mock
}

func (m *MockAuditLogsRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogsRepository) List(ctx context.Context, tenantID uuid.UUID, filters *models.AuditLogFilters) ([]*models.AuditLog, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Append(ctx context.Context, tenantID uuid.UUID, action, entityType, entityID string, metadata models.JSONB) error {
	args := m.Called(ctx, tenantID, action, entityType, entityID, metadata)
	return args.Error(0)
}

func (m *MockAuditService) Query(ctx context.Context, tenantID uuid.UUID, filters *models.AuditLogFilters) ([]*models.AuditLog, *models.AuditLogFilters, error) {
	args := m.Called(ctx, tenantID, filters)
	var entries []*models.AuditLog
	if args.Get(0) != nil {
		entries = args.Get(0).([]*models.AuditLog)
	}
	var next *models.AuditLogFilters
	if args.Get(1) != nil {
		next = args.Get(1).(*models.AuditLogFilters)
	}
	return entries, next, args.Error(2)
}

type MockLicenseService struct {
	mock.Mock
}

func (m *MockLicenseService) Create(ctx context.Context, tenantID uuid.UUID, req *CreateLicenseRequest) (*models.License, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.License), args.Error(1)
}

func (m *MockLicenseService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.License, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.License), args.Error(1)
}

func (m *MockLicenseService) GetByKey(ctx context.Context, tenantID uuid.UUID, key string) (*models.License, error) {
	args := m.Called(ctx, tenantID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.License), args.Error(1)
}

func (m *MockLicenseService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.License, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.License), args.Error(1)
}

func (m *MockLicenseService) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, target string) (*models.License, error) {
	args := m.Called(ctx, tenantID, id, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.License), args.Error(1)
}

func (m *MockLicenseService) Assign(ctx context.Context, tenantID, id, userID uuid.UUID) (*models.License, error) {
	args := m.Called(ctx, tenantID, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.License), args.Error(1)
}

func (m *MockLicenseService) Usage(ctx context.Context, tenantID, id uuid.UUID) (*models.LicenseUsage, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LicenseUsage), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, tenantID uuid.UUID, req *UserAttrs) (*models.User, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindOrCreate(ctx context.Context, tenantID uuid.UUID, req *UserAttrs) (*models.User, bool, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockUserService) GetByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*models.User, error) {
	args := m.Called(ctx, tenantID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockActivationService struct {
	mock.Mock
}

func (m *MockActivationService) Record(ctx context.Context, license *models.License, user *models.User) (*models.Activation, bool, error) {
	args := m.Called(ctx, license, user)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Activation), args.Bool(1), args.Error(2)
}

func (m *MockActivationService) EvictIdleLocks(maxIdle time.Duration) int {
	args := m.Called(maxIdle)
	return args.Int(0)
}
