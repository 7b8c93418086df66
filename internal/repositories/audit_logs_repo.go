package repositories

import (
	"context"
	"fmt"

	"licentra/internal/models"

	"github.com/google/uuid"
)

type AuditLogsRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, tenantID uuid.UUID, filters *models.AuditLogFilters) ([]*models.AuditLog, error)
}

type auditLogsRepo struct {
	db Database
}

func NewAuditLogsRepo(db Database) AuditLogsRepository {
	return &auditLogsRepo{db: db}
}

func (r *auditLogsRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, tenant_id, action, entity_type, entity_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, entry.ID, entry.TenantID, entry.Action, entry.EntityType, entry.EntityID, entry.Metadata)
	return err
}

// List returns entries newest first. The (created_at, id) cursor makes pagination
// restartable even when rows share a timestamp.
func (r *auditLogsRepo) List(ctx context.Context, tenantID uuid.UUID, filters *models.AuditLogFilters) ([]*models.AuditLog, error) {
	queryBase := `
		SELECT id, tenant_id, action, entity_type, entity_id, metadata, created_at
		FROM audit_logs
		WHERE tenant_id = $1
	`
	args := []interface{}{tenantID}
	conditionCount := 1

	if filters.EntityType != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND entity_type = $%d`, conditionCount)
		args = append(args, *filters.EntityType)
	}
	if filters.EntityID != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND entity_id = $%d`, conditionCount)
		args = append(args, *filters.EntityID)
	}
	if filters.Action != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND action = $%d`, conditionCount)
		args = append(args, *filters.Action)
	}
	if filters.Before != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND created_at < $%d`, conditionCount)
		args = append(args, *filters.Before)
	}
	if filters.CursorTime != nil && filters.CursorID != nil {
		queryBase += fmt.Sprintf(` AND (created_at, id) < ($%d, $%d)`, conditionCount+1, conditionCount+2)
		conditionCount += 2
		args = append(args, *filters.CursorTime, *filters.CursorID)
	}

	conditionCount++
	queryBase += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d`, conditionCount)
	args = append(args, filters.Limit)

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		entry := &models.AuditLog{}
		if err := rows.Scan(&entry.ID, &entry.TenantID, &entry.Action, &entry.EntityType, &entry.EntityID, &entry.Metadata, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
