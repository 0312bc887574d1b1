package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/config"
	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/pkg/errors"
	"github.com/itinerary-microservice/internal/pkg/utils"
	"github.com/itinerary-microservice/internal/usecase/dto"
)

// PlannerUseCase is the route composer: it orders candidates into a
// geographically coherent walking route, allocates time windows and
// classifies each leg's transport mode.
type PlannerUseCase struct {
	locationUC  *LocationUseCase
	candidateUC *CandidateUseCase
	cacheRepo   repository.CacheRepository
	cfg         config.PlannerConfig
	planTTL     time.Duration
	logger      *zap.Logger
}

func NewPlannerUseCase(
	locationUC *LocationUseCase,
	candidateUC *CandidateUseCase,
	cacheRepo repository.CacheRepository,
	cfg config.PlannerConfig,
	planTTL time.Duration,
	logger *zap.Logger,
) *PlannerUseCase {
	return &PlannerUseCase{
		locationUC:  locationUC,
		candidateUC: candidateUC,
		cacheRepo:   cacheRepo,
		cfg:         cfg,
		planTTL:     planTTL,
		logger:      logger,
	}
}

// Plan handles one planning request end to end: contract validation,
// location resolution, candidate gathering, then composition or the
// degraded fallback. Only contract violations surface as errors; data
// problems degrade to a simpler but valid plan.
func (uc *PlannerUseCase) Plan(ctx context.Context, req dto.PlanRequest) (*domain.Itinerary, error) {
	if strings.TrimSpace(req.City) == "" {
		return nil, errors.ErrEmptyCity
	}
	class := domain.DurationClass(req.Duration)
	if !class.IsValid() {
		return nil, errors.ErrInvalidDuration
	}
	if strings.TrimSpace(req.Start) == "" || strings.TrimSpace(req.End) == "" {
		return nil, errors.ErrInvalidRequest
	}

	cacheKey := PlanCacheKey(req)
	if uc.cacheRepo != nil {
		if cached, err := uc.cacheRepo.GetItinerary(ctx, cacheKey); err == nil && cached != nil {
			return cached, nil
		}
	}

	startLoc := uc.locationUC.Resolve(ctx, req.Start, req.City)
	endLoc := uc.locationUC.Resolve(ctx, req.End, req.City)

	maxCount := uc.cfg.ActivityCount(class) + uc.cfg.CandidateHeadroom
	pool := uc.candidateUC.FetchCandidates(ctx, req.City, req.Interests, maxCount)

	var it *domain.Itinerary
	if pool.Size() < uc.cfg.MinViableStops {
		uc.logger.Info("Candidate pool below viable minimum, producing fallback plan",
			zap.String("city", req.City),
			zap.Int("pool_size", pool.Size()),
			zap.Int("min_viable", uc.cfg.MinViableStops))
		it = uc.GenerateFallback(req.Start, req.End, req.City, startLoc, endLoc, class)
	} else {
		var err error
		it, err = uc.Compose(startLoc, endLoc, req.Start, req.End, req.City, pool, class)
		if err != nil {
			return nil, err
		}
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetItinerary(ctx, cacheKey, it, uc.planTTL); err != nil {
			uc.logger.Warn("Failed to cache plan", zap.Error(err))
		}
	}

	return it, nil
}

// Compose builds the full itinerary from a viable candidate pool using
// greedy nearest-neighbor selection from the start point. Identical
// inputs always produce identical output.
func (uc *PlannerUseCase) Compose(
	start, end ResolvedLocation,
	startName, endName, city string,
	pool *domain.CandidatePool,
	class domain.DurationClass,
) (*domain.Itinerary, error) {
	if pool.Size() < uc.cfg.MinViableStops {
		return nil, errors.ErrTooFewCandidates
	}

	activityCount := uc.cfg.ActivityCount(class)
	visitMinutes := uc.cfg.VisitMinutes(class)

	selected := selectGreedy(start.Coordinates, pool.POIs(), activityCount)

	// The destination absorbs a selected candidate referring to the
	// same place instead of duplicating it as a bare pin. One POI never
	// appears twice in an itinerary.
	endNorm := utils.NormalizeName(endName)
	var absorbed *domain.POI
	kept := make([]*domain.POI, 0, len(selected))
	for _, poi := range selected {
		samePOI := poi.NormalizedName == endNorm ||
			(end.POI != nil && poi.ID == end.POI.ID)
		if absorbed == nil && samePOI {
			absorbed = poi
			continue
		}
		kept = append(kept, poi)
	}

	dayStart := uc.cfg.DayStartMinutes
	stops := make([]domain.ItineraryStop, 0, len(kept)+2)

	stops = append(stops, domain.ItineraryStop{
		Window: domain.TimeWindow{Start: dayStart, End: dayStart},
		Title:  startName,
		Lat:    start.Coordinates.Lat,
		Lon:    start.Coordinates.Lon,
		Kind:   domain.StopStart,
		Mode:   domain.TransportNone,
	})

	current := start.Coordinates
	now := dayStart
	for _, poi := range kept {
		legKm := utils.HaversineDistance(current.Lat, current.Lon, poi.Lat, poi.Lon)
		id := poi.ID

		stops = append(stops, domain.ItineraryStop{
			Window:      domain.TimeWindow{Start: now, End: now + visitMinutes},
			Title:       poi.Name,
			Description: poi.Description,
			Lat:         poi.Lat,
			Lon:         poi.Lon,
			Kind:        domain.StopActivity,
			Mode:        uc.transportMode(legKm),
			SourceID:    &id,
		})

		now += visitMinutes
		current = poi.Coordinates()
	}

	legKm := utils.HaversineDistance(current.Lat, current.Lon, end.Coordinates.Lat, end.Coordinates.Lon)
	destination := domain.ItineraryStop{
		Window: domain.TimeWindow{Start: now, End: now},
		Title:  endName,
		Lat:    end.Coordinates.Lat,
		Lon:    end.Coordinates.Lon,
		Kind:   domain.StopDestination,
		Mode:   uc.transportMode(legKm),
	}
	if absorbed != nil {
		id := absorbed.ID
		destination.Description = absorbed.Description
		destination.SourceID = &id
	}
	stops = append(stops, destination)

	return &domain.Itinerary{
		ID:        planID(city, string(class), startName, endName, kept),
		City:      city,
		Duration:  class,
		Stops:     stops,
		StopCount: len(stops),
	}, nil
}

// GenerateFallback produces the minimal 3-stop plan used when the pool
// is below the viable minimum. It relies only on the always-succeeding
// resolver paths and never fails.
func (uc *PlannerUseCase) GenerateFallback(
	startName, endName, city string,
	start, end ResolvedLocation,
	class domain.DurationClass,
) *domain.Itinerary {
	center := uc.locationUC.ResolveCityCenter(city)
	dayStart := uc.cfg.DayStartMinutes
	visit := uc.cfg.FallbackVisitMinutes

	toCenterKm := utils.HaversineDistance(start.Coordinates.Lat, start.Coordinates.Lon, center.Lat, center.Lon)
	toEndKm := utils.HaversineDistance(center.Lat, center.Lon, end.Coordinates.Lat, end.Coordinates.Lon)

	stops := []domain.ItineraryStop{
		{
			Window: domain.TimeWindow{Start: dayStart, End: dayStart},
			Title:  startName,
			Lat:    start.Coordinates.Lat,
			Lon:    start.Coordinates.Lon,
			Kind:   domain.StopStart,
			Mode:   domain.TransportNone,
		},
		{
			Window:      domain.TimeWindow{Start: dayStart, End: dayStart + visit},
			Title:       fmt.Sprintf("Historic centre of %s", city),
			Description: fmt.Sprintf("A free walk through the historic centre of %s.", city),
			Lat:         center.Lat,
			Lon:         center.Lon,
			Kind:        domain.StopActivity,
			Mode:        uc.transportMode(toCenterKm),
		},
		{
			Window: domain.TimeWindow{Start: dayStart + visit, End: dayStart + visit},
			Title:  endName,
			Lat:    end.Coordinates.Lat,
			Lon:    end.Coordinates.Lon,
			Kind:   domain.StopDestination,
			Mode:   uc.transportMode(toEndKm),
		},
	}

	return &domain.Itinerary{
		ID:        planID(city, "fallback:"+string(class), startName, endName, nil),
		City:      city,
		Duration:  class,
		Stops:     stops,
		StopCount: len(stops),
		Fallback:  true,
	}
}

// transportMode classifies a leg by great-circle distance.
func (uc *PlannerUseCase) transportMode(km float64) domain.TransportMode {
	switch {
	case km < uc.cfg.WalkingMaxKm:
		return domain.TransportWalking
	case km <= uc.cfg.TramMaxKm:
		return domain.TransportTram
	default:
		return domain.TransportBus
	}
}

// selectGreedy picks count candidates by repeatedly extending the path
// to the nearest unselected POI. Ties break on the lower identifier so
// selection is fully deterministic, including coincident coordinates.
func selectGreedy(start domain.Coordinates, candidates []*domain.POI, count int) []*domain.POI {
	remaining := make([]*domain.POI, len(candidates))
	copy(remaining, candidates)

	selected := make([]*domain.POI, 0, count)
	current := start

	for len(selected) < count && len(remaining) > 0 {
		bestIdx := -1
		var bestKm float64
		for i, cand := range remaining {
			km := utils.HaversineDistance(current.Lat, current.Lon, cand.Lat, cand.Lon)
			if bestIdx == -1 || km < bestKm || (km == bestKm && cand.ID < remaining[bestIdx].ID) {
				bestIdx = i
				bestKm = km
			}
		}

		best := remaining[bestIdx]
		selected = append(selected, best)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		current = best.Coordinates()
	}

	return selected
}

// PlanCacheKey builds the cache key for a computed plan. Interests are
// sorted so tag order does not fragment the cache.
func PlanCacheKey(req dto.PlanRequest) string {
	tags := make([]string, 0, len(req.Interests))
	for _, t := range req.Interests {
		if norm := utils.NormalizeName(t); norm != "" {
			tags = append(tags, norm)
		}
	}
	sort.Strings(tags)

	return fmt.Sprintf("plan:%s:%s:%s:%s:%s",
		utils.NormalizeName(req.City),
		req.Duration,
		utils.NormalizeName(req.Start),
		utils.NormalizeName(req.End),
		strings.Join(tags, ","),
	)
}

// planID derives a stable identifier from the plan inputs so repeated
// composition of the same request yields identical output.
func planID(city, class, startName, endName string, selected []*domain.POI) string {
	var sb strings.Builder
	sb.WriteString(city)
	sb.WriteByte('|')
	sb.WriteString(class)
	sb.WriteByte('|')
	sb.WriteString(startName)
	sb.WriteByte('|')
	sb.WriteString(endName)
	for _, poi := range selected {
		sb.WriteByte('|')
		sb.WriteString(poi.ID)
	}

	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(sb.String())).String()
}
