package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"licentra/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService caches license lookups for the validate hot path. Entries carry a
// short TTL and are invalidated on any status change or assignment, so a stale
// read window stays bounded by the TTL.
type CacheService interface {
	GetLicense(ctx context.Context, tenantID uuid.UUID, key string) (*models.License, error)
	SetLicense(ctx context.Context, tenantID uuid.UUID, license *models.License, ttl time.Duration) error
	DeleteLicense(ctx context.Context, tenantID uuid.UUID, key string) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func licenseCacheKey(tenantID uuid.UUID, key string) string {
	return fmt.Sprintf("licentra:license:%s:%s", tenantID, key)
}

func (r *redisCacheService) GetLicense(ctx context.Context, tenantID uuid.UUID, key string) (*models.License, error) {
	data, err := r.client.Get(ctx, licenseCacheKey(tenantID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	license := &models.License{}
	if err := json.Unmarshal([]byte(data), license); err != nil {
		return nil, err
	}
	return license, nil
}

func (r *redisCacheService) SetLicense(ctx context.Context, tenantID uuid.UUID, license *models.License, ttl time.Duration) error {
	data, err := json.Marshal(license)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, licenseCacheKey(tenantID, license.Key), data, ttl).Err()
}

func (r *redisCacheService) DeleteLicense(ctx context.Context, tenantID uuid.UUID, key string) error {
	return r.client.Del(ctx, licenseCacheKey(tenantID, key)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
