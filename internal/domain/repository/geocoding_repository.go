package repository

import (
	"context"

	"github.com/itinerary-microservice/internal/domain"
)

// GeocodingRepository defines the external geocoding collaborator.
// Callers bound the call with a context deadline; on failure they fall
// through to the next resolution step.
type GeocodingRepository interface {
	// Geocode resolves "{text}, {city}, {country}" to a coordinate.
	Geocode(ctx context.Context, text, city, country string) (*domain.Coordinates, error)
}
