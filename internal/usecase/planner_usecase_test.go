package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/config"
	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/pkg/errors"
	"github.com/itinerary-microservice/internal/pkg/utils"
	"github.com/itinerary-microservice/internal/usecase"
	"github.com/itinerary-microservice/internal/usecase/dto"
)

func testPOI(id, name string, lat, lon float64) *domain.POI {
	return &domain.POI{
		ID:             id,
		Name:           name,
		NormalizedName: utils.NormalizeName(name),
		City:           "torino",
		Category:       "museum",
		Lat:            lat,
		Lon:            lon,
		Description:    "Description of " + name,
		Tier:           domain.TierCurated,
	}
}

// torinoPool builds twelve museum/monument candidates spread around the
// city center.
func torinoPool(t *testing.T) *domain.CandidatePool {
	t.Helper()

	pois := []*domain.POI{
		testPOI("poi-01", "Museo Egizio", 45.0684, 7.6845),
		testPOI("poi-02", "Mole Antonelliana", 45.0686, 7.6933),
		testPOI("poi-03", "Palazzo Madama", 45.0708, 7.6860),
		testPOI("poi-04", "Palazzo Reale", 45.0729, 7.6862),
		testPOI("poi-05", "Duomo di Torino", 45.0733, 7.6853),
		testPOI("poi-06", "Museo del Risorgimento", 45.0689, 7.6858),
		testPOI("poi-07", "Galleria Sabauda", 45.0725, 7.6866),
		testPOI("poi-08", "Porta Palatina", 45.0743, 7.6843),
		testPOI("poi-09", "Museo di Arte Orientale", 45.0734, 7.6818),
		testPOI("poi-10", "Santuario della Consolata", 45.0757, 7.6789),
		testPOI("poi-11", "Parco del Valentino", 45.0558, 7.6859),
		testPOI("poi-12", "Basilica di Superga", 45.0805, 7.7673),
	}

	pool := domain.NewCandidatePool(len(pois))
	for _, p := range pois {
		require.True(t, pool.Add(p))
	}
	return pool
}

func newTestPlanner() *usecase.PlannerUseCase {
	logger := zap.NewNop()
	cities := domain.NewCityIndex(domain.DefaultCities())
	locationUC := usecase.NewLocationUseCase(nil, nil, cities, "Italy", time.Second, logger)
	candidateUC := usecase.NewCandidateUseCase(nil, nil, time.Minute, logger)

	return usecase.NewPlannerUseCase(
		locationUC,
		candidateUC,
		nil,
		config.DefaultPlannerConfig(),
		time.Minute,
		logger,
	)
}

var (
	piazzaCastello = usecase.ResolvedLocation{
		Coordinates: domain.Coordinates{Lat: 45.0703, Lon: 7.6869},
		Step:        usecase.StepCityCenter,
	}
	portaNuova = usecase.ResolvedLocation{
		Coordinates: domain.Coordinates{Lat: 45.0625, Lon: 7.6782},
		Step:        usecase.StepCityCenter,
	}
)

func TestPlannerUseCase_Compose(t *testing.T) {
	uc := newTestPlanner()

	t.Run("half day itinerary from twelve candidates", func(t *testing.T) {
		it, err := uc.Compose(piazzaCastello, portaNuova, "Piazza Castello", "Porta Nuova", "Torino", torinoPool(t), domain.DurationHalfDay)
		require.NoError(t, err)
		require.NotNil(t, it)

		// 1 start + 5 activities + 1 destination
		require.Len(t, it.Stops, 7)
		assert.Equal(t, 7, it.StopCount)
		assert.False(t, it.Fallback)

		first := it.Stops[0]
		assert.Equal(t, domain.StopStart, first.Kind)
		assert.Equal(t, domain.TransportNone, first.Mode)
		assert.Equal(t, "09:00", first.Window.String())
		assert.Equal(t, "Piazza Castello", first.Title)

		last := it.Stops[len(it.Stops)-1]
		assert.Equal(t, domain.StopDestination, last.Kind)
		assert.Equal(t, "Porta Nuova", last.Title)

		// Activities run back to back, 75 minutes each
		titles := make(map[string]struct{})
		for i := 1; i <= 5; i++ {
			stop := it.Stops[i]
			assert.Equal(t, domain.StopActivity, stop.Kind)
			assert.Equal(t, 75, stop.Window.End-stop.Window.Start)
			assert.Equal(t, it.Stops[i-1].Window.End, stop.Window.Start)
			assert.NotEqual(t, domain.TransportNone, stop.Mode)
			require.NotNil(t, stop.SourceID)

			_, dup := titles[stop.Title]
			assert.False(t, dup, "duplicate activity title %q", stop.Title)
			titles[stop.Title] = struct{}{}
		}
	})

	t.Run("time windows are non-decreasing", func(t *testing.T) {
		it, err := uc.Compose(piazzaCastello, portaNuova, "Piazza Castello", "Porta Nuova", "Torino", torinoPool(t), domain.DurationFullDay)
		require.NoError(t, err)

		for i := 0; i < len(it.Stops)-1; i++ {
			assert.LessOrEqual(t, it.Stops[i].Window.End, it.Stops[i+1].Window.Start)
			assert.LessOrEqual(t, it.Stops[i].Window.Start, it.Stops[i].Window.End)
		}
	})

	t.Run("identical inputs produce identical output", func(t *testing.T) {
		first, err := uc.Compose(piazzaCastello, portaNuova, "Piazza Castello", "Porta Nuova", "Torino", torinoPool(t), domain.DurationHalfDay)
		require.NoError(t, err)
		second, err := uc.Compose(piazzaCastello, portaNuova, "Piazza Castello", "Porta Nuova", "Torino", torinoPool(t), domain.DurationHalfDay)
		require.NoError(t, err)

		assert.Equal(t, first, second)

		firstJSON, err := json.Marshal(first)
		require.NoError(t, err)
		secondJSON, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, firstJSON, secondJSON)
	})

	t.Run("each activity is the nearest remaining candidate", func(t *testing.T) {
		pool := torinoPool(t)
		it, err := uc.Compose(piazzaCastello, portaNuova, "Piazza Castello", "Porta Nuova", "Torino", pool, domain.DurationHalfDay)
		require.NoError(t, err)

		remaining := make(map[string]*domain.POI)
		for _, poi := range pool.POIs() {
			remaining[poi.ID] = poi
		}

		current := piazzaCastello.Coordinates
		for _, stop := range it.Stops {
			if stop.Kind != domain.StopActivity {
				continue
			}
			require.NotNil(t, stop.SourceID)
			chosen := remaining[*stop.SourceID]
			require.NotNil(t, chosen)

			chosenKm := utils.HaversineDistance(current.Lat, current.Lon, chosen.Lat, chosen.Lon)
			for _, other := range remaining {
				otherKm := utils.HaversineDistance(current.Lat, current.Lon, other.Lat, other.Lon)
				assert.LessOrEqual(t, chosenKm, otherKm,
					"stop %q is farther than remaining candidate %q", chosen.ID, other.ID)
			}

			delete(remaining, chosen.ID)
			current = chosen.Coordinates()
		}
	})

	t.Run("stop count bounded by duration class", func(t *testing.T) {
		quick, err := uc.Compose(piazzaCastello, portaNuova, "Piazza Castello", "Porta Nuova", "Torino", torinoPool(t), domain.DurationQuick)
		require.NoError(t, err)
		assert.Len(t, quick.Stops, 5)

		fullDay, err := uc.Compose(piazzaCastello, portaNuova, "Piazza Castello", "Porta Nuova", "Torino", torinoPool(t), domain.DurationFullDay)
		require.NoError(t, err)
		assert.Len(t, fullDay.Stops, 9)
	})

	t.Run("small pool yields fewer activities within the bound", func(t *testing.T) {
		pool := domain.NewCandidatePool(4)
		pool.Add(testPOI("poi-01", "Museo Egizio", 45.0684, 7.6845))
		pool.Add(testPOI("poi-02", "Mole Antonelliana", 45.0686, 7.6933))
		pool.Add(testPOI("poi-03", "Palazzo Madama", 45.0708, 7.6860))
		pool.Add(testPOI("poi-04", "Palazzo Reale", 45.0729, 7.6862))

		it, err := uc.Compose(piazzaCastello, portaNuova, "Piazza Castello", "Porta Nuova", "Torino", pool, domain.DurationHalfDay)
		require.NoError(t, err)
		assert.Len(t, it.Stops, 6) // start + 4 activities + destination
	})

	t.Run("pool below minimum is a contract violation", func(t *testing.T) {
		pool := domain.NewCandidatePool(2)
		pool.Add(testPOI("poi-01", "Museo Egizio", 45.0684, 7.6845))
		pool.Add(testPOI("poi-02", "Mole Antonelliana", 45.0686, 7.6933))

		it, err := uc.Compose(piazzaCastello, portaNuova, "Piazza Castello", "Porta Nuova", "Torino", pool, domain.DurationHalfDay)
		assert.Nil(t, it)
		assert.Equal(t, errors.ErrTooFewCandidates, err)
	})

	t.Run("destination absorbs the matching candidate", func(t *testing.T) {
		station := testPOI("poi-13", "Porta Nuova", 45.0625, 7.6782)

		pool := domain.NewCandidatePool(5)
		require.True(t, pool.Add(testPOI("poi-01", "Museo Egizio", 45.0684, 7.6845)))
		require.True(t, pool.Add(testPOI("poi-02", "Mole Antonelliana", 45.0686, 7.6933)))
		require.True(t, pool.Add(testPOI("poi-03", "Palazzo Madama", 45.0708, 7.6860)))
		require.True(t, pool.Add(testPOI("poi-04", "Palazzo Reale", 45.0729, 7.6862)))
		require.True(t, pool.Add(station))

		endLoc := usecase.ResolvedLocation{
			Coordinates: station.Coordinates(),
			Step:        usecase.StepPOIMatch,
			POI:         station,
		}

		// All five candidates are selected; the one matching the
		// destination folds into the destination stop instead of
		// appearing twice.
		it, err := uc.Compose(piazzaCastello, endLoc, "Piazza Castello", "Porta Nuova", "Torino", pool, domain.DurationHalfDay)
		require.NoError(t, err)
		require.Len(t, it.Stops, 6) // start + 4 activities + destination

		seen := make(map[string]int)
		for _, stop := range it.Stops {
			if stop.SourceID != nil {
				seen[*stop.SourceID]++
			}
			if stop.Kind == domain.StopActivity {
				assert.NotEqual(t, "Porta Nuova", stop.Title)
			}
		}
		for id, count := range seen {
			assert.Equal(t, 1, count, "POI %q appears more than once", id)
		}

		last := it.Stops[len(it.Stops)-1]
		assert.Equal(t, domain.StopDestination, last.Kind)
		if assert.NotNil(t, last.SourceID) {
			assert.Equal(t, "poi-13", *last.SourceID)
			assert.Equal(t, station.Description, last.Description)
		}
	})

	t.Run("coincident coordinates break ties on identifier", func(t *testing.T) {
		pool := domain.NewCandidatePool(3)
		pool.Add(testPOI("poi-b", "Museo Due", 45.0703, 7.6869))
		pool.Add(testPOI("poi-a", "Museo Uno", 45.0703, 7.6869))
		pool.Add(testPOI("poi-c", "Museo Tre", 45.0710, 7.6900))

		it, err := uc.Compose(piazzaCastello, portaNuova, "Piazza Castello", "Porta Nuova", "Torino", pool, domain.DurationQuick)
		require.NoError(t, err)

		require.Len(t, it.Stops, 5)
		require.NotNil(t, it.Stops[1].SourceID)
		require.NotNil(t, it.Stops[2].SourceID)
		assert.Equal(t, "poi-a", *it.Stops[1].SourceID)
		assert.Equal(t, "poi-b", *it.Stops[2].SourceID)
	})

	t.Run("legs classify as walking, tram and bus by distance", func(t *testing.T) {
		// Offsets in latitude: 0.0027 deg ~ 0.3 km, 0.0135 deg ~ 1.5 km,
		// 0.027 deg ~ 3 km.
		base := piazzaCastello.Coordinates
		pool := domain.NewCandidatePool(3)
		pool.Add(testPOI("leg-1", "Tappa Uno", base.Lat+0.0027, base.Lon))
		pool.Add(testPOI("leg-2", "Tappa Due", base.Lat+0.0027+0.0135, base.Lon))
		pool.Add(testPOI("leg-3", "Tappa Tre", base.Lat+0.0027+0.0135+0.027, base.Lon))

		end := usecase.ResolvedLocation{
			Coordinates: domain.Coordinates{Lat: base.Lat + 0.0027 + 0.0135 + 0.027, Lon: base.Lon},
		}

		it, err := uc.Compose(piazzaCastello, end, "Piazza Castello", "Stazione", "Torino", pool, domain.DurationQuick)
		require.NoError(t, err)
		require.Len(t, it.Stops, 5)

		assert.Equal(t, domain.TransportWalking, it.Stops[1].Mode)
		assert.Equal(t, domain.TransportTram, it.Stops[2].Mode)
		assert.Equal(t, domain.TransportBus, it.Stops[3].Mode)
		assert.Equal(t, domain.TransportWalking, it.Stops[4].Mode)
	})
}

func TestPlannerUseCase_GenerateFallback(t *testing.T) {
	uc := newTestPlanner()

	t.Run("three stops around the city center", func(t *testing.T) {
		it := uc.GenerateFallback("Piazza Castello", "Porta Nuova", "Torino", piazzaCastello, portaNuova, domain.DurationHalfDay)
		require.NotNil(t, it)

		require.Len(t, it.Stops, 3)
		assert.True(t, it.Fallback)
		assert.Equal(t, 3, it.StopCount)

		assert.Equal(t, domain.StopStart, it.Stops[0].Kind)
		assert.Equal(t, "09:00", it.Stops[0].Window.String())

		middle := it.Stops[1]
		assert.Equal(t, domain.StopActivity, middle.Kind)
		assert.Equal(t, "Historic centre of Torino", middle.Title)
		assert.Equal(t, "09:00 - 11:00", middle.Window.String())
		assert.Nil(t, middle.SourceID)

		last := it.Stops[2]
		assert.Equal(t, domain.StopDestination, last.Kind)
		assert.Equal(t, "11:00", last.Window.String())
	})

	t.Run("unknown city uses the default center", func(t *testing.T) {
		it := uc.GenerateFallback("somewhere", "elsewhere", "Atlantis", piazzaCastello, portaNuova, domain.DurationQuick)
		require.Len(t, it.Stops, 3)

		assert.Equal(t, domain.DefaultCenter.Lat, it.Stops[1].Lat)
		assert.Equal(t, domain.DefaultCenter.Lon, it.Stops[1].Lon)
		assert.Equal(t, "Historic centre of Atlantis", it.Stops[1].Title)
	})
}

func TestPlannerUseCase_Plan(t *testing.T) {
	logger := zap.NewNop()
	cities := domain.NewCityIndex(domain.DefaultCities())
	ctx := context.Background()

	newPlanUC := func(poiRepo *MockPOIRepository, geocoder *MockGeocodingRepository) *usecase.PlannerUseCase {
		locationUC := usecase.NewLocationUseCase(poiRepo, geocoder, cities, "Italy", time.Second, logger)
		candidateUC := usecase.NewCandidateUseCase(poiRepo, nil, time.Minute, logger)
		return usecase.NewPlannerUseCase(locationUC, candidateUC, nil, config.DefaultPlannerConfig(), time.Minute, logger)
	}

	t.Run("contract violations fail fast", func(t *testing.T) {
		uc := newPlanUC(&MockPOIRepository{}, &MockGeocodingRepository{})

		_, err := uc.Plan(ctx, dto.PlanRequest{Start: "a", End: "b", City: "", Duration: "half_day"})
		assert.Equal(t, errors.ErrEmptyCity, err)

		_, err = uc.Plan(ctx, dto.PlanRequest{Start: "a", End: "b", City: "Torino", Duration: "weekend"})
		assert.Equal(t, errors.ErrInvalidDuration, err)

		_, err = uc.Plan(ctx, dto.PlanRequest{Start: "", End: "b", City: "Torino", Duration: "half_day"})
		assert.Equal(t, errors.ErrInvalidRequest, err)
	})

	t.Run("undersized pool degrades to the fallback plan", func(t *testing.T) {
		poiRepo := &MockPOIRepository{}
		geocoder := &MockGeocodingRepository{}
		uc := newPlanUC(poiRepo, geocoder)

		poiRepo.On("GetKnownByCity", mock.Anything, "torino").Return([]*domain.POI{}, nil)
		poiRepo.On("GetCurated", mock.Anything, "torino", mock.Anything).
			Return([]*domain.POI{testPOI("poi-01", "Museo Egizio", 45.0684, 7.6845)}, nil)
		poiRepo.On("GetAttractions", mock.Anything, "torino", mock.Anything, mock.Anything).
			Return([]*domain.POI{}, nil)

		it, err := uc.Plan(ctx, dto.PlanRequest{
			Start:    "Piazza Castello",
			End:      "Porta Nuova",
			City:     "Torino",
			Duration: "half_day",
		})
		require.NoError(t, err)
		require.NotNil(t, it)

		assert.True(t, it.Fallback)
		require.Len(t, it.Stops, 3)
		assert.Equal(t, "Historic centre of Torino", it.Stops[1].Title)
		geocoder.AssertNotCalled(t, "Geocode")
	})

	t.Run("store failure still yields a valid plan", func(t *testing.T) {
		poiRepo := &MockPOIRepository{}
		geocoder := &MockGeocodingRepository{}
		uc := newPlanUC(poiRepo, geocoder)

		poiRepo.On("GetKnownByCity", mock.Anything, "torino").Return(nil, errors.ErrDatabaseError)
		poiRepo.On("GetCurated", mock.Anything, "torino", mock.Anything).Return(nil, errors.ErrDatabaseError)
		poiRepo.On("GetAttractions", mock.Anything, "torino", mock.Anything, mock.Anything).Return(nil, errors.ErrDatabaseError)

		it, err := uc.Plan(ctx, dto.PlanRequest{
			Start:    "Piazza Castello",
			End:      "Porta Nuova",
			City:     "Torino",
			Duration: "full_day",
		})
		require.NoError(t, err)
		require.NotNil(t, it)
		assert.True(t, it.Fallback)
		assert.Len(t, it.Stops, 3)
	})

	t.Run("viable pool composes the full itinerary", func(t *testing.T) {
		poiRepo := &MockPOIRepository{}
		geocoder := &MockGeocodingRepository{}
		uc := newPlanUC(poiRepo, geocoder)

		pool := torinoPool(t)
		poiRepo.On("GetKnownByCity", mock.Anything, "torino").Return([]*domain.POI{}, nil)
		poiRepo.On("GetCurated", mock.Anything, "torino", mock.Anything).Return(pool.POIs(), nil)
		poiRepo.On("GetAttractions", mock.Anything, "torino", mock.Anything, mock.Anything).Return([]*domain.POI{}, nil)

		it, err := uc.Plan(ctx, dto.PlanRequest{
			Start:     "Piazza Castello",
			End:       "Porta Nuova",
			City:      "Torino",
			Interests: []string{"culture"},
			Duration:  "half_day",
		})
		require.NoError(t, err)
		require.NotNil(t, it)

		assert.False(t, it.Fallback)
		assert.Len(t, it.Stops, 7)
		assert.Equal(t, "09:00", it.Stops[0].Window.String())
	})
}
