package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"licentra/internal/common"
	"licentra/internal/models"

	"github.com/google/uuid"
)

// ValidationService is the hot path a vendor's software calls to check a license
// and register usage. Business outcomes (expired, suspended, seat limit) are
// successful responses with valid:false; only transport problems (missing license,
// store failure) are errors.
type ValidationService interface {
	Validate(ctx context.Context, tenantID uuid.UUID, req *ValidateRequest) (*ValidationResult, error)
}

type ValidateRequest struct {
	LicenseID  *uuid.UUID
	LicenseKey string
	ExternalID string
	Email      *string
	Name       *string
	Metadata   models.JSONB
}

type ValidationResult struct {
	Valid      bool               `json:"valid"`
	Reason     string             `json:"reason,omitempty"`
	License    *models.License    `json:"license,omitempty"`
	User       *models.User       `json:"user,omitempty"`
	Activation *models.Activation `json:"activation,omitempty"`
}

const ReasonSeatLimitExceeded = "seat_limit_exceeded"

type validationService struct {
	licenseSvc    LicenseService
	userSvc       UserService
	activationSvc ActivationService
	auditSvc      AuditService
	now           func() time.Time
}

func NewValidationService(
	licenseSvc LicenseService,
	userSvc UserService,
	activationSvc ActivationService,
	auditSvc AuditService,
) ValidationService {
	return &validationService{
		licenseSvc:    licenseSvc,
		userSvc:       userSvc,
		activationSvc: activationSvc,
		auditSvc:      auditSvc,
		now:           time.Now,
	}
}

func (s *validationService) Validate(ctx context.Context, tenantID uuid.UUID, req *ValidateRequest) (*ValidationResult, error) {
	if req.ExternalID == "" {
		return nil, fmt.Errorf("%w: external_id is required", common.ErrValidation)
	}
	if req.LicenseID == nil && req.LicenseKey == "" {
		return nil, fmt.Errorf("%w: license_id or license_key is required", common.ErrValidation)
	}

	var license *models.License
	var err error
	if req.LicenseID != nil {
		license, err = s.licenseSvc.GetByID(ctx, tenantID, *req.LicenseID)
	} else {
		license, err = s.licenseSvc.GetByKey(ctx, tenantID, req.LicenseKey)
	}
	if err != nil {
		return nil, err
	}

	// A non-active license is a normal outcome for the caller to branch on, not an
	// error. The audit entry is written either way.
	status := license.EffectiveStatus(s.now())
	if status != models.LicenseStatusActive {
		result := &ValidationResult{Valid: false, Reason: status, License: license}
		if err := s.audit(ctx, tenantID, license, nil, result); err != nil {
			return nil, err
		}
		return result, nil
	}

	user, _, err := s.userSvc.FindOrCreate(ctx, tenantID, &UserAttrs{
		ExternalID: req.ExternalID,
		Email:      req.Email,
		Name:       req.Name,
		Metadata:   req.Metadata,
	})
	if err != nil {
		return nil, err
	}

	activation, _, err := s.activationSvc.Record(ctx, license, user)
	if err != nil {
		if errors.Is(err, common.ErrSeatLimitExceeded) {
			result := &ValidationResult{Valid: false, Reason: ReasonSeatLimitExceeded, License: license, User: user}
			if auditErr := s.audit(ctx, tenantID, license, user, result); auditErr != nil {
				return nil, auditErr
			}
			return result, nil
		}
		return nil, err
	}

	result := &ValidationResult{Valid: true, License: license, User: user, Activation: activation}
	if err := s.audit(ctx, tenantID, license, user, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *validationService) audit(ctx context.Context, tenantID uuid.UUID, license *models.License, user *models.User, result *ValidationResult) error {
	metadata := models.JSONB{
		"valid": result.Valid,
	}
	if result.Reason != "" {
		metadata["reason"] = result.Reason
	}
	if user != nil {
		metadata["user_id"] = user.ID.String()
	}
	return s.auditSvc.Append(ctx, tenantID, models.ActionLicenseValidated, "license", license.ID.String(), metadata)
}
