package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"licentra/internal/common"
	"licentra/internal/models"
	"licentra/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/gommon/random"
)

// APIKeyService issues and authenticates tenant API keys. Keys look like
// lk_<prefix>_<secret>; the prefix is stored for candidate lookup, the secret only
// as a SHA-256 hash.
type APIKeyService interface {
	Generate(ctx context.Context, tenantID uuid.UUID, name string, expiresAt *time.Time) (string, *models.APIKey, error)
	Authenticate(ctx context.Context, token string) (*models.APIKey, error)
	Revoke(ctx context.Context, tenantID, keyID uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error)
}

type apiKeyService struct {
	apiKeyRepo repositories.APIKeyRepository
	auditSvc   AuditService
	now        func() time.Time
}

func NewAPIKeyService(apiKeyRepo repositories.APIKeyRepository, auditSvc AuditService) APIKeyService {
	return &apiKeyService{
		apiKeyRepo: apiKeyRepo,
		auditSvc:   auditSvc,
		now:        time.Now,
	}
}

func (s *apiKeyService) Generate(ctx context.Context, tenantID uuid.UUID, name string, expiresAt *time.Time) (string, *models.APIKey, error) {
	if strings.TrimSpace(name) == "" {
		return "", nil, fmt.Errorf("%w: key name is required", common.ErrValidation)
	}

	prefix := random.String(models.APIKeyPrefixLength, random.Lowercase+random.Numeric)
	secret, err := generateSecret(models.APIKeySecretLength)
	if err != nil {
		return "", nil, err
	}

	key := &models.APIKey{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		Prefix:    prefix,
		KeyHash:   hashSecret(secret),
		ExpiresAt: expiresAt,
	}
	if err := s.apiKeyRepo.Create(ctx, key); err != nil {
		return "", nil, err
	}

	if err := s.auditSvc.Append(ctx, tenantID, models.ActionAPIKeyCreated, "api_key", key.ID.String(), models.JSONB{
		"name":   name,
		"prefix": prefix,
	}); err != nil {
		return "", nil, err
	}

	plaintext := fmt.Sprintf(models.APIKeyFormat, prefix, secret)
	return plaintext, key, nil
}

// Authenticate resolves a bearer token to exactly one tenant key or fails with
// ErrUnauthorized. The hash comparison is constant-time; a bad prefix, a revoked
// key, and a wrong secret are indistinguishable to the caller.
func (s *apiKeyService) Authenticate(ctx context.Context, token string) (*models.APIKey, error) {
	prefix, secret, ok := splitToken(token)
	if !ok {
		return nil, common.ErrUnauthorized
	}

	key, err := s.apiKeyRepo.GetByPrefix(ctx, prefix)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: api key lookup: %v", common.ErrInternal, err)
	}

	digest := hashSecret(secret)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(key.KeyHash)) != 1 {
		return nil, common.ErrUnauthorized
	}
	if !key.Active(s.now()) {
		return nil, common.ErrUnauthorized
	}

	// Fire and forget; last_used_at is advisory and must not block the request.
	go func(id uuid.UUID) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.apiKeyRepo.UpdateLastUsed(ctx, id); err != nil {
			log.Printf("Failed to update api key last_used_at: %v", err)
		}
	}(key.ID)

	return key, nil
}

func (s *apiKeyService) Revoke(ctx context.Context, tenantID, keyID uuid.UUID) error {
	if err := s.apiKeyRepo.Revoke(ctx, tenantID, keyID); err != nil {
		return err
	}
	return s.auditSvc.Append(ctx, tenantID, models.ActionAPIKeyRevoked, "api_key", keyID.String(), nil)
}

func (s *apiKeyService) List(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error) {
	return s.apiKeyRepo.ListByTenant(ctx, tenantID)
}

func splitToken(token string) (prefix, secret string, ok bool) {
	parts := strings.SplitN(token, "_", 3)
	if len(parts) != 3 || parts[0] != "lk" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

func generateSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
