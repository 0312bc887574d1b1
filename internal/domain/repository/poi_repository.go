package repository

import (
	"context"

	"github.com/itinerary-microservice/internal/domain"
)

// POIRepository defines read access to the tiered POI store.
type POIRepository interface {
	// GetCurated returns curated-tier POIs for a city, ordered by
	// priority rank and then by access count descending.
	GetCurated(ctx context.Context, city string, limit int) ([]*domain.POI, error)

	// GetAttractions returns attraction-tier POIs for a city. Entries
	// matching one of boostCategories rank first, entries with an image
	// ahead of entries without one, remaining ties stable on ID.
	GetAttractions(ctx context.Context, city string, boostCategories []string, limit int) ([]*domain.POI, error)

	// GetKnownByCity returns every POI known for a city, used to match
	// free-text location names against cached entries.
	GetKnownByCity(ctx context.Context, city string) ([]*domain.POI, error)
}
