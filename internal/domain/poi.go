package domain

// SourceTier identifies which data tier produced a POI.
type SourceTier string

const (
	// TierCurated is the high-priority tier of manually verified entries.
	TierCurated SourceTier = "curated"

	// TierAttractions is the broad tier ingested from open-data sources.
	TierAttractions SourceTier = "attractions"
)

// POI represents a point of interest. Records are produced by the
// ingestion pipeline and are read-only for the planner.
type POI struct {
	ID             string  `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	NormalizedName string  `json:"normalized_name" db:"normalized_name"`
	City           string  `json:"city" db:"city"`
	Category       string  `json:"category" db:"category"`
	Lat            float64 `json:"lat" db:"lat"`
	Lon            float64 `json:"lon" db:"lon"`
	Description    string  `json:"description" db:"description"`
	ImageURL       *string `json:"image_url,omitempty" db:"image_url"`
	Wikidata       *string `json:"wikidata,omitempty" db:"wikidata"`

	Tier         SourceTier `json:"tier" db:"tier"`
	PriorityRank int        `json:"priority_rank" db:"priority_rank"`
	AccessCount  int64      `json:"access_count" db:"access_count"`
}

// Coordinates returns the POI position as a point.
func (p *POI) Coordinates() Coordinates {
	return Coordinates{Lat: p.Lat, Lon: p.Lon}
}

// HasCoordinates reports whether the POI carries a usable position.
// Entries without one are not valid route candidates.
func (p *POI) HasCoordinates() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180 &&
		!(p.Lat == 0 && p.Lon == 0)
}

// CandidatePool is the per-request set of POIs considered for one plan.
// Entries keep insertion order and are deduplicated by normalized name.
type CandidatePool struct {
	pois []*POI
	seen map[string]struct{}
}

// NewCandidatePool creates an empty pool with the given capacity hint.
func NewCandidatePool(capacity int) *CandidatePool {
	if capacity < 0 {
		capacity = 0
	}
	return &CandidatePool{
		pois: make([]*POI, 0, capacity),
		seen: make(map[string]struct{}, capacity),
	}
}

// Add inserts a POI unless its normalized name is already present or it
// has no coordinates. Returns true when the POI was added.
func (cp *CandidatePool) Add(poi *POI) bool {
	if poi == nil || !poi.HasCoordinates() || poi.NormalizedName == "" {
		return false
	}
	if _, ok := cp.seen[poi.NormalizedName]; ok {
		return false
	}
	cp.seen[poi.NormalizedName] = struct{}{}
	cp.pois = append(cp.pois, poi)
	return true
}

// Contains reports whether a normalized name is already in the pool.
func (cp *CandidatePool) Contains(normalizedName string) bool {
	_, ok := cp.seen[normalizedName]
	return ok
}

// Size returns the number of candidates in the pool.
func (cp *CandidatePool) Size() int {
	return len(cp.pois)
}

// POIs returns the candidates in insertion order. The returned slice
// must not be mutated by callers.
func (cp *CandidatePool) POIs() []*POI {
	return cp.pois
}
