package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"licentra/internal/caching"
	"licentra/internal/common"
	"licentra/internal/models"
	"licentra/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LicenseService owns license issuance, assignment, and the status state machine.
// Expiration is never written: every read path surfaces the effective status, so
// a license whose expiresAt has passed reads as expired without any write.
type LicenseService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req *CreateLicenseRequest) (*models.License, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.License, error)
	GetByKey(ctx context.Context, tenantID uuid.UUID, key string) (*models.License, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.License, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, target string) (*models.License, error)
	Assign(ctx context.Context, tenantID, id, userID uuid.UUID) (*models.License, error)
	Usage(ctx context.Context, tenantID, id uuid.UUID) (*models.LicenseUsage, error)
}

type CreateLicenseRequest struct {
	PlanID            uuid.UUID
	MaxSeatsOverride  *int
	ExpiresAtOverride *time.Time
}

// validTransitions is the explicit state machine. Revoked and expired accept
// nothing; re-reading a time-expired license as expired is a no-op, not a
// transition.
var validTransitions = map[string]map[string]bool{
	models.LicenseStatusActive: {
		models.LicenseStatusSuspended: true,
		models.LicenseStatusRevoked:   true,
		models.LicenseStatusExpired:   true,
	},
	models.LicenseStatusSuspended: {
		models.LicenseStatusActive:  true,
		models.LicenseStatusRevoked: true,
		models.LicenseStatusExpired: true,
	},
	models.LicenseStatusRevoked: {},
	models.LicenseStatusExpired: {},
}

type licenseService struct {
	licenseRepo    repositories.LicenseRepository
	planRepo       repositories.PlanRepository
	userRepo       repositories.UserRepository
	activationRepo repositories.ActivationRepository
	auditSvc       AuditService
	cacheSvc       caching.CacheService
	now            func() time.Time
}

func NewLicenseService(
	licenseRepo repositories.LicenseRepository,
	planRepo repositories.PlanRepository,
	userRepo repositories.UserRepository,
	activationRepo repositories.ActivationRepository,
	auditSvc AuditService,
	cacheSvc caching.CacheService,
) LicenseService {
	return &licenseService{
		licenseRepo:    licenseRepo,
		planRepo:       planRepo,
		userRepo:       userRepo,
		activationRepo: activationRepo,
		auditSvc:       auditSvc,
		cacheSvc:       cacheSvc,
		now:            time.Now,
	}
}

// Create issues a license from a plan. MaxSeats and ExpiresAt are snapshotted here;
// later plan edits never reach this license.
func (s *licenseService) Create(ctx context.Context, tenantID uuid.UUID, req *CreateLicenseRequest) (*models.License, error) {
	plan, err := s.planRepo.GetByID(ctx, tenantID, req.PlanID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	maxSeats := plan.MaxSeats
	if req.MaxSeatsOverride != nil {
		if *req.MaxSeatsOverride <= 0 {
			return nil, fmt.Errorf("%w: max_seats must be positive", common.ErrValidation)
		}
		maxSeats = req.MaxSeatsOverride
	}

	var expiresAt *time.Time
	if req.ExpiresAtOverride != nil {
		expiresAt = req.ExpiresAtOverride
	} else if plan.ExpiresInDays != nil {
		t := s.now().AddDate(0, 0, *plan.ExpiresInDays)
		expiresAt = &t
	}

	key, err := generateLicenseKey()
	if err != nil {
		return nil, err
	}

	license := &models.License{
		ID:        uuid.New(),
		TenantID:  tenantID,
		PlanID:    plan.ID,
		Key:       key,
		Status:    models.LicenseStatusActive,
		MaxSeats:  maxSeats,
		ExpiresAt: expiresAt,
	}
	if err := s.licenseRepo.Create(ctx, license); err != nil {
		return nil, err
	}

	if err := s.auditSvc.Append(ctx, tenantID, models.ActionLicenseCreated, "license", license.ID.String(), models.JSONB{
		"plan_id": plan.ID.String(),
	}); err != nil {
		return nil, err
	}
	return license, nil
}

func (s *licenseService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.License, error) {
	license, err := s.licenseRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	license.Status = license.EffectiveStatus(s.now())
	return license, nil
}

// GetByKey is the hot-path lookup; it consults the cache first when one is wired.
func (s *licenseService) GetByKey(ctx context.Context, tenantID uuid.UUID, key string) (*models.License, error) {
	if s.cacheSvc != nil {
		if license, err := s.cacheSvc.GetLicense(ctx, tenantID, key); err == nil && license != nil {
			license.Status = license.EffectiveStatus(s.now())
			return license, nil
		}
	}

	license, err := s.licenseRepo.GetByKey(ctx, tenantID, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetLicense(ctx, tenantID, license, 30*time.Second); err != nil {
			log.Printf("Failed to cache license %s: %v", license.ID, err)
		}
	}
	license.Status = license.EffectiveStatus(s.now())
	return license, nil
}

func (s *licenseService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.License, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	licenses, err := s.licenseRepo.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for _, license := range licenses {
		license.Status = license.EffectiveStatus(now)
	}
	return licenses, nil
}

// UpdateStatus applies an explicit transition. The effective status gates the
// check, so a time-expired license cannot be reactivated even while its stored
// status still says active.
func (s *licenseService) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, target string) (*models.License, error) {
	if _, ok := validTransitions[target]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrValidation, target)
	}

	license, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	current := license.EffectiveStatus(s.now())
	if current == target {
		return license, nil
	}
	if !validTransitions[current][target] {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", common.ErrInvalidTransition, current, target)
	}

	if err := s.licenseRepo.UpdateStatus(ctx, tenantID, id, target); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, license)

	if err := s.auditSvc.Append(ctx, tenantID, models.ActionLicenseStatus, "license", id.String(), models.JSONB{
		"from": current,
		"to":   target,
	}); err != nil {
		return nil, err
	}
	license.Status = target
	return license, nil
}

// Assign sets the primary user. One license has at most one primary user; seat
// occupancy through activations is tracked separately.
func (s *licenseService) Assign(ctx context.Context, tenantID, id, userID uuid.UUID) (*models.License, error) {
	license, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if license.AssignedUserID != nil {
		if *license.AssignedUserID == userID {
			return license, nil
		}
		return nil, fmt.Errorf("%w: license is already assigned to another user", common.ErrConflict)
	}

	if _, err := s.userRepo.GetByID(ctx, tenantID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	if err := s.licenseRepo.UpdateAssignedUser(ctx, tenantID, id, userID); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, license)

	if err := s.auditSvc.Append(ctx, tenantID, models.ActionLicenseAssigned, "license", id.String(), models.JSONB{
		"user_id": userID.String(),
	}); err != nil {
		return nil, err
	}
	license.AssignedUserID = &userID
	return license, nil
}

func (s *licenseService) Usage(ctx context.Context, tenantID, id uuid.UUID) (*models.LicenseUsage, error) {
	license, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	activations, err := s.activationRepo.ListByLicense(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	seats, err := s.activationRepo.CountByLicense(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return &models.LicenseUsage{
		License:          license,
		Activations:      activations,
		TotalActivations: len(activations),
		ActiveSeats:      seats,
	}, nil
}

func (s *licenseService) invalidateCache(ctx context.Context, license *models.License) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeleteLicense(ctx, license.TenantID, license.Key); err != nil {
		log.Printf("Failed to invalidate license cache %s: %v", license.ID, err)
	}
}

const licenseKeyCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateLicenseKey returns a XXXX-XXXX-XXXX-XXXX key without ambiguous
// characters.
func generateLicenseKey() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate license key: %w", err)
	}
	out := make([]byte, 0, 19)
	for i, b := range buf {
		if i > 0 && i%4 == 0 {
			out = append(out, '-')
		}
		out = append(out, licenseKeyCharset[int(b)%len(licenseKeyCharset)])
	}
	return string(out), nil
}
