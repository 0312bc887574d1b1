package repository

import (
	"context"
	"time"

	"github.com/itinerary-microservice/internal/domain"
)

// CacheRepository defines the byte-payload cache used for computed
// plans and warmed candidate pools.
type CacheRepository interface {
	// Get returns the cached value or nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// GetItinerary returns a cached plan or nil on a miss.
	GetItinerary(ctx context.Context, key string) (*domain.Itinerary, error)

	// SetItinerary stores a computed plan.
	SetItinerary(ctx context.Context, key string, it *domain.Itinerary, ttl time.Duration) error

	// GetCandidates returns a cached candidate list or nil on a miss.
	GetCandidates(ctx context.Context, key string) ([]*domain.POI, error)

	// SetCandidates stores a candidate list.
	SetCandidates(ctx context.Context, key string, pois []*domain.POI, ttl time.Duration) error
}
