package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"formguard/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

var settingsKey = GenerateKey("settings", "recaptcha", "current")

// Settings caching. The cached copy never holds verdicts, only configuration.
func (s *CacheService) CacheSettings(ctx context.Context, settings *models.Settings) error {
	if settings == nil {
		return errors.New("cannot cache nil settings")
	}
	return s.Set(ctx, settingsKey, settings)
}

// GetSettings returns nil, nil on a cache miss.
func (s *CacheService) GetSettings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	found, err := s.Get(ctx, settingsKey, &settings)
	if err != nil || !found {
		return nil, err
	}
	return &settings, nil
}

func (s *CacheService) InvalidateSettings(ctx context.Context) error {
	return s.Delete(ctx, settingsKey)
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
