package repositories

import (
	"context"

	"licentra/internal/models"

	"github.com/google/uuid"
)

type APIKeyRepository interface {
	Create(ctx context.Context, key *models.APIKey) error
	GetByPrefix(ctx context.Context, prefix string) (*models.APIKey, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error)
	Revoke(ctx context.Context, tenantID, id uuid.UUID) error
	UpdateLastUsed(ctx context.Context, id uuid.UUID) error
	RevokeExpired(ctx context.Context) (int64, error)
}

type apiKeyRepo struct {
	db Database
}

func NewAPIKeyRepo(db Database) APIKeyRepository {
	return &apiKeyRepo{db: db}
}

func (r *apiKeyRepo) Create(ctx context.Context, key *models.APIKey) error {
	query := `
		INSERT INTO api_keys (id, tenant_id, name, prefix, key_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, key.ID, key.TenantID, key.Name, key.Prefix, key.KeyHash, key.ExpiresAt)
	return err
}

// GetByPrefix is the candidate lookup for authentication. The prefix is not a
// secret, so this is not tenant-scoped; the hash comparison happens in the service.
func (r *apiKeyRepo) GetByPrefix(ctx context.Context, prefix string) (*models.APIKey, error) {
	key := &models.APIKey{}
	query := `
		SELECT id, tenant_id, name, prefix, key_hash, expires_at, revoked_at, last_used_at, created_at
		FROM api_keys
		WHERE prefix = $1
	`
	err := r.db.QueryRow(ctx, query, prefix).Scan(&key.ID, &key.TenantID, &key.Name, &key.Prefix, &key.KeyHash, &key.ExpiresAt, &key.RevokedAt, &key.LastUsedAt, &key.CreatedAt)
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (r *apiKeyRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error) {
	query := `
		SELECT id, tenant_id, name, prefix, key_hash, expires_at, revoked_at, last_used_at, created_at
		FROM api_keys
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		key := &models.APIKey{}
		if err := rows.Scan(&key.ID, &key.TenantID, &key.Name, &key.Prefix, &key.KeyHash, &key.ExpiresAt, &key.RevokedAt, &key.LastUsedAt, &key.CreatedAt); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Revoke marks the key unusable. Rows are never deleted so audit history keeps a
// stable reference.
func (r *apiKeyRepo) Revoke(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE api_keys
		SET revoked_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND revoked_at IS NULL
	`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *apiKeyRepo) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE api_keys SET last_used_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// RevokeExpired is the background sweep: any key past its expires_at gets a
// revoked_at stamp so listings show it consistently.
func (r *apiKeyRepo) RevokeExpired(ctx context.Context) (int64, error) {
	query := `
		UPDATE api_keys
		SET revoked_at = NOW()
		WHERE revoked_at IS NULL AND expires_at IS NOT NULL AND expires_at < NOW()
	`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
