package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetItinerary returns a cached computed plan or nil on a miss.
func (r *cacheRepository) GetItinerary(ctx context.Context, key string) (*domain.Itinerary, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var it domain.Itinerary
	if err := json.Unmarshal(data, &it); err != nil {
		r.logger.Warn("Failed to unmarshal cached itinerary", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	return &it, nil
}

// SetItinerary stores a computed plan.
func (r *cacheRepository) SetItinerary(ctx context.Context, key string, it *domain.Itinerary, ttl time.Duration) error {
	data, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	return r.Set(ctx, key, data, ttl)
}

// GetCandidates returns a warmed candidate list or nil on a miss.
func (r *cacheRepository) GetCandidates(ctx context.Context, key string) ([]*domain.POI, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var pois []*domain.POI
	if err := json.Unmarshal(data, &pois); err != nil {
		r.logger.Warn("Failed to unmarshal cached candidates", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	return pois, nil
}

// SetCandidates stores a candidate list.
func (r *cacheRepository) SetCandidates(ctx context.Context, key string, pois []*domain.POI, ttl time.Duration) error {
	data, err := json.Marshal(pois)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	return r.Set(ctx, key, data, ttl)
}
