package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/pkg/utils"
)

// ResolutionStep names the branch of the resolver chain that produced
// a coordinate.
type ResolutionStep string

const (
	StepPOIMatch   ResolutionStep = "poi_match"
	StepCityCenter ResolutionStep = "city_center"
	StepGeocoder   ResolutionStep = "geocoder"
	StepDefault    ResolutionStep = "default"
)

// ResolvedLocation is the outcome of resolving a free-text place name.
// POI is set only when the name matched a stored entry.
type ResolvedLocation struct {
	Coordinates domain.Coordinates
	Step        ResolutionStep
	POI         *domain.POI
}

// LocationUseCase resolves free-text location names to coordinates via
// a tiered chain: stored POIs, the city-center table, the geocoding
// collaborator, and finally a hard-coded default. It never fails; it
// degrades to a coarser coordinate instead.
type LocationUseCase struct {
	poiRepo        repository.POIRepository
	geocoder       repository.GeocodingRepository
	cities         *domain.CityIndex
	country        string
	geocodeTimeout time.Duration
	logger         *zap.Logger
}

func NewLocationUseCase(
	poiRepo repository.POIRepository,
	geocoder repository.GeocodingRepository,
	cities *domain.CityIndex,
	country string,
	geocodeTimeout time.Duration,
	logger *zap.Logger,
) *LocationUseCase {
	return &LocationUseCase{
		poiRepo:        poiRepo,
		geocoder:       geocoder,
		cities:         cities,
		country:        country,
		geocodeTimeout: geocodeTimeout,
		logger:         logger,
	}
}

// Resolve walks the chain; the first branch that yields a coordinate
// wins. Each failure is recovered locally, never surfaced.
func (uc *LocationUseCase) Resolve(ctx context.Context, locationText, city string) ResolvedLocation {
	queryNorm := utils.NormalizeName(locationText)
	cityNorm := utils.NormalizeName(city)

	// 1. Match against POIs already stored for the city.
	if poi := uc.matchKnownPOI(ctx, queryNorm, cityNorm); poi != nil {
		uc.logger.Debug("Location resolved from stored POI",
			zap.String("query", locationText),
			zap.String("poi_id", poi.ID))
		return ResolvedLocation{Coordinates: poi.Coordinates(), Step: StepPOIMatch, POI: poi}
	}

	// 2. City-center table. When the city is known this always succeeds
	// and the geocoder is not consulted.
	if cfg, ok := uc.cities.Lookup(cityNorm); ok {
		return ResolvedLocation{Coordinates: cfg.Center, Step: StepCityCenter}
	}

	// 3. Geocoding collaborator, bounded by its own timeout. Failure
	// falls through to the default.
	geocodeCtx, cancel := context.WithTimeout(ctx, uc.geocodeTimeout)
	defer cancel()

	coords, err := uc.geocoder.Geocode(geocodeCtx, locationText, city, uc.country)
	if err == nil && coords != nil {
		return ResolvedLocation{Coordinates: *coords, Step: StepGeocoder}
	}
	if err != nil {
		uc.logger.Warn("Geocoder failed, using default center",
			zap.String("query", locationText),
			zap.String("city", city),
			zap.Error(err))
	}

	// 4. Last resort.
	return ResolvedLocation{Coordinates: domain.DefaultCenter, Step: StepDefault}
}

// ResolveCityCenter returns the center for a city, falling back to the
// default coordinate for unknown cities. Used by the fallback plan.
func (uc *LocationUseCase) ResolveCityCenter(city string) domain.Coordinates {
	if cfg, ok := uc.cities.Lookup(utils.NormalizeName(city)); ok {
		return cfg.Center
	}
	return domain.DefaultCenter
}

// matchKnownPOI looks for a substring match (either direction) between
// the normalized query and stored normalized names. Among multiple
// matches the one whose name length is closest to the query wins; ties
// keep the first encountered.
func (uc *LocationUseCase) matchKnownPOI(ctx context.Context, queryNorm, cityNorm string) *domain.POI {
	if queryNorm == "" {
		return nil
	}

	known, err := uc.poiRepo.GetKnownByCity(ctx, cityNorm)
	if err != nil {
		uc.logger.Warn("Failed to load known POIs, skipping match step",
			zap.String("city", cityNorm), zap.Error(err))
		return nil
	}

	var best *domain.POI
	bestScore := -1
	for _, poi := range known {
		if !containsEither(poi.NormalizedName, queryNorm) {
			continue
		}
		score := abs(len(poi.NormalizedName) - len(queryNorm))
		if best == nil || score < bestScore {
			best = poi
			bestScore = score
		}
	}

	return best
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
