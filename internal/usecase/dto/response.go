package dto

import "github.com/itinerary-microservice/internal/domain"

// PlanResponse is the outbound itinerary.
type PlanResponse struct {
	ID        string         `json:"id"`
	City      string         `json:"city"`
	Duration  string         `json:"duration"`
	Fallback  bool           `json:"fallback"`
	StopCount int            `json:"stop_count"`
	Stops     []StopResponse `json:"stops"`
}

// StopResponse is one itinerary stop. Time renders as "HH:MM" for
// instants and "HH:MM - HH:MM" for windows.
type StopResponse struct {
	Time          string  `json:"time"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	Kind          string  `json:"kind"`
	TransportMode string  `json:"transportMode"`
	SourceID      *string `json:"sourceId"`
}

// CityResponse describes one city known to the planner.
type CityResponse struct {
	Name    string             `json:"name"`
	Country string             `json:"country"`
	Center  domain.Coordinates `json:"center"`
}

// ConvertItinerary maps a domain itinerary to the response shape.
func ConvertItinerary(it *domain.Itinerary) *PlanResponse {
	stops := make([]StopResponse, 0, len(it.Stops))
	for _, s := range it.Stops {
		stops = append(stops, StopResponse{
			Time:          s.Window.String(),
			Title:         s.Title,
			Description:   s.Description,
			Lat:           s.Lat,
			Lng:           s.Lon,
			Kind:          string(s.Kind),
			TransportMode: string(s.Mode),
			SourceID:      s.SourceID,
		})
	}

	return &PlanResponse{
		ID:        it.ID,
		City:      it.City,
		Duration:  string(it.Duration),
		Fallback:  it.Fallback,
		StopCount: it.StopCount,
		Stops:     stops,
	}
}

// ConvertCities maps city configs to the response shape.
func ConvertCities(cities []domain.CityConfig) []CityResponse {
	out := make([]CityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, CityResponse{
			Name:    c.Name,
			Country: c.Country,
			Center:  c.Center,
		})
	}
	return out
}
