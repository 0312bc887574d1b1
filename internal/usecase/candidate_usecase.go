package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/pkg/utils"
)

// CandidateUseCase assembles the per-request candidate pool from the
// tiered POI store: curated tier first, then the attractions tier with
// interest-based boosting, deduplicated by normalized name.
type CandidateUseCase struct {
	poiRepo   repository.POIRepository
	cacheRepo repository.CacheRepository
	poolTTL   time.Duration
	logger    *zap.Logger
}

func NewCandidateUseCase(
	poiRepo repository.POIRepository,
	cacheRepo repository.CacheRepository,
	poolTTL time.Duration,
	logger *zap.Logger,
) *CandidateUseCase {
	return &CandidateUseCase{
		poiRepo:   poiRepo,
		cacheRepo: cacheRepo,
		poolTTL:   poolTTL,
		logger:    logger,
	}
}

// FetchCandidates gathers up to maxCount candidates for a city. A store
// failure yields an empty pool, never an error: callers treat a small
// pool as a routine condition and fall back to the degraded plan.
func (uc *CandidateUseCase) FetchCandidates(ctx context.Context, city string, interests []string, maxCount int) *domain.CandidatePool {
	cityNorm := utils.NormalizeName(city)
	pool := domain.NewCandidatePool(maxCount)

	if cityNorm == "" || maxCount <= 0 {
		return pool
	}

	cacheKey := PoolCacheKey(cityNorm, interests, maxCount)
	if uc.cacheRepo != nil {
		if cached, err := uc.cacheRepo.GetCandidates(ctx, cacheKey); err == nil && cached != nil {
			for _, poi := range cached {
				pool.Add(poi)
			}
			return pool
		}
	}

	// Curated tier is always preferred.
	curated, err := uc.poiRepo.GetCurated(ctx, cityNorm, maxCount)
	if err != nil {
		uc.logger.Warn("Curated tier unavailable",
			zap.String("city", cityNorm), zap.Error(err))
	}
	for _, poi := range curated {
		if pool.Size() >= maxCount {
			break
		}
		pool.Add(poi)
	}

	// Backfill from the broad attractions tier.
	if pool.Size() < maxCount {
		boost := BoostCategories(interests)

		// Over-fetch so dedup collisions with the curated tier do not
		// leave the pool short.
		attractions, err := uc.poiRepo.GetAttractions(ctx, cityNorm, boost, maxCount+pool.Size())
		if err != nil {
			uc.logger.Warn("Attractions tier unavailable",
				zap.String("city", cityNorm), zap.Error(err))
		}
		for _, poi := range attractions {
			if pool.Size() >= maxCount {
				break
			}
			pool.Add(poi)
		}
	}

	uc.logger.Debug("Candidate pool assembled",
		zap.String("city", cityNorm),
		zap.Int("size", pool.Size()),
		zap.Int("max_count", maxCount))

	if uc.cacheRepo != nil && pool.Size() > 0 {
		if err := uc.cacheRepo.SetCandidates(ctx, cacheKey, pool.POIs(), uc.poolTTL); err != nil {
			uc.logger.Warn("Failed to cache candidate pool", zap.Error(err))
		}
	}

	return pool
}

// PoolCacheKey builds the cache key for a warmed candidate pool.
// Interests are sorted so tag order does not fragment the cache.
func PoolCacheKey(cityNorm string, interests []string, maxCount int) string {
	tags := make([]string, 0, len(interests))
	for _, t := range interests {
		if norm := utils.NormalizeName(t); norm != "" {
			tags = append(tags, norm)
		}
	}
	sort.Strings(tags)

	return fmt.Sprintf("pool:%s:%s:%d", cityNorm, strings.Join(tags, ","), maxCount)
}
