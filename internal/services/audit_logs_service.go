package services

import (
	"context"
	"errors"

	"licentra/internal/models"
	"licentra/internal/repositories"

	"github.com/google/uuid"
)

// AuditService appends immutable records of state-changing actions. Append runs
// synchronously: the triggering request does not return success until the entry is
// written, so a crash between write and response never loses the trail.
type AuditService interface {
	Append(ctx context.Context, tenantID uuid.UUID, action, entityType, entityID string, metadata models.JSONB) error
	Query(ctx context.Context, tenantID uuid.UUID, filters *models.AuditLogFilters) ([]*models.AuditLog, *models.AuditLogFilters, error)
}

type auditService struct {
	auditLogsRepo repositories.AuditLogsRepository
}

func NewAuditService(auditLogsRepo repositories.AuditLogsRepository) AuditService {
	return &auditService{auditLogsRepo: auditLogsRepo}
}

func (s *auditService) Append(ctx context.Context, tenantID uuid.UUID, action, entityType, entityID string, metadata models.JSONB) error {
	if action == "" {
		return errors.New("action is required")
	}
	if entityType == "" {
		return errors.New("entity_type is required")
	}

	entry := &models.AuditLog{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
	}
	return s.auditLogsRepo.Create(ctx, entry)
}

// Query returns one page newest-first plus the cursor for the next page, or a nil
// cursor when the page was short.
func (s *auditService) Query(ctx context.Context, tenantID uuid.UUID, filters *models.AuditLogFilters) ([]*models.AuditLog, *models.AuditLogFilters, error) {
	if filters == nil {
		filters = &models.AuditLogFilters{}
	}
	if filters.Limit <= 0 || filters.Limit > 500 {
		filters.Limit = 50
	}

	entries, err := s.auditLogsRepo.List(ctx, tenantID, filters)
	if err != nil {
		return nil, nil, err
	}

	var next *models.AuditLogFilters
	if len(entries) == filters.Limit {
		last := entries[len(entries)-1]
		next = &models.AuditLogFilters{
			EntityType: filters.EntityType,
			EntityID:   filters.EntityID,
			Action:     filters.Action,
			CursorTime: &last.CreatedAt,
			CursorID:   &last.ID,
			Limit:      filters.Limit,
		}
	}
	return entries, next, nil
}
