package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/pkg/errors"
)

const poiColumns = `
	id, name, normalized_name, city, category, lat, lon,
	description, image_url, wikidata, tier, priority_rank, access_count`

type poiRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPOIRepository(db *DB) repository.POIRepository {
	return &poiRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// GetCurated returns curated-tier POIs ordered by priority rank, then
// access count descending, then ID for a stable order.
func (r *poiRepository) GetCurated(ctx context.Context, city string, limit int) ([]*domain.POI, error) {
	query := `
		SELECT ` + poiColumns + `
		FROM pois
		WHERE city = $1
		  AND tier = $2
		  AND lat IS NOT NULL AND lon IS NOT NULL
		ORDER BY priority_rank ASC, access_count DESC, id ASC
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, city, domain.TierCurated, limit)
	if err != nil {
		r.logger.Error("Failed to query curated POIs",
			zap.String("city", city), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.scanPOIs(rows)
}

// GetAttractions returns attraction-tier POIs. Boosted categories rank
// first, entries with an image ahead of entries without one, remaining
// ties stable on ID.
func (r *poiRepository) GetAttractions(ctx context.Context, city string, boostCategories []string, limit int) ([]*domain.POI, error) {
	query := `
		SELECT ` + poiColumns + `
		FROM pois
		WHERE city = $1
		  AND tier = $2
		  AND lat IS NOT NULL AND lon IS NOT NULL
		ORDER BY
			CASE WHEN category = ANY($3) THEN 0 ELSE 1 END ASC,
			CASE WHEN image_url IS NOT NULL THEN 0 ELSE 1 END ASC,
			id ASC
		LIMIT $4
	`

	if boostCategories == nil {
		boostCategories = []string{}
	}

	rows, err := r.db.QueryContext(ctx, query, city, domain.TierAttractions, pq.Array(boostCategories), limit)
	if err != nil {
		r.logger.Error("Failed to query attraction POIs",
			zap.String("city", city), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.scanPOIs(rows)
}

// GetKnownByCity returns every POI stored for a city, for name matching.
func (r *poiRepository) GetKnownByCity(ctx context.Context, city string) ([]*domain.POI, error) {
	query := `
		SELECT ` + poiColumns + `
		FROM pois
		WHERE city = $1
		  AND lat IS NOT NULL AND lon IS NOT NULL
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, city)
	if err != nil {
		r.logger.Error("Failed to query known POIs",
			zap.String("city", city), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.scanPOIs(rows)
}

func (r *poiRepository) scanPOIs(rows *sql.Rows) ([]*domain.POI, error) {
	var pois []*domain.POI
	for rows.Next() {
		var p domain.POI
		var description sql.NullString

		err := rows.Scan(
			&p.ID, &p.Name, &p.NormalizedName, &p.City, &p.Category,
			&p.Lat, &p.Lon, &description, &p.ImageURL, &p.Wikidata,
			&p.Tier, &p.PriorityRank, &p.AccessCount,
		)
		if err != nil {
			r.logger.Error("Failed to scan POI", zap.Error(err))
			continue
		}
		if description.Valid {
			p.Description = description.String
		}

		pois = append(pois, &p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("POI rows iteration failed", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return pois, nil
}
