package domain

import (
	"sort"
	"strings"
)

// CityConfig describes one city known to the planner: display name,
// country and a representative center coordinate (main square).
type CityConfig struct {
	Name    string      `json:"name"`
	Country string      `json:"country"`
	Center  Coordinates `json:"center"`
}

// CityIndex is the static city-center fallback table. It is built once
// at service start and read-only afterwards, so concurrent reads need
// no locking.
type CityIndex struct {
	cities map[string]CityConfig
}

// NewCityIndex builds an index keyed by the normalized city name.
// Callers are expected to pass names already folded by the name
// normalizer; keys are lowercased defensively.
func NewCityIndex(cities []CityConfig) *CityIndex {
	idx := &CityIndex{cities: make(map[string]CityConfig, len(cities))}
	for _, c := range cities {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		idx.cities[key] = c
	}
	return idx
}

// Lookup returns the configuration for a normalized city name.
func (ix *CityIndex) Lookup(normalizedName string) (CityConfig, bool) {
	c, ok := ix.cities[strings.ToLower(strings.TrimSpace(normalizedName))]
	return c, ok
}

// Cities returns all known cities sorted by name.
func (ix *CityIndex) Cities() []CityConfig {
	out := make([]CityConfig, 0, len(ix.cities))
	for _, c := range ix.cities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DefaultCenter is the last-resort coordinate used when a location can
// not be resolved at all (Piazza Castello, Torino).
var DefaultCenter = Coordinates{Lat: 45.0703, Lon: 7.6869}

// DefaultCities is the built-in city-center table. Centers point at the
// main square of each city.
func DefaultCities() []CityConfig {
	return []CityConfig{
		{Name: "torino", Country: "Italy", Center: Coordinates{Lat: 45.0703, Lon: 7.6869}},
		{Name: "milano", Country: "Italy", Center: Coordinates{Lat: 45.4642, Lon: 9.1900}},
		{Name: "roma", Country: "Italy", Center: Coordinates{Lat: 41.8959, Lon: 12.4823}},
		{Name: "firenze", Country: "Italy", Center: Coordinates{Lat: 43.7731, Lon: 11.2560}},
		{Name: "venezia", Country: "Italy", Center: Coordinates{Lat: 45.4341, Lon: 12.3388}},
		{Name: "bologna", Country: "Italy", Center: Coordinates{Lat: 44.4938, Lon: 11.3426}},
		{Name: "napoli", Country: "Italy", Center: Coordinates{Lat: 40.8359, Lon: 14.2488}},
		{Name: "genova", Country: "Italy", Center: Coordinates{Lat: 44.4072, Lon: 8.9340}},
	}
}
