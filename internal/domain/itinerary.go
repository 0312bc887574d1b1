package domain

import "fmt"

// DurationClass is the coarse bucket controlling how many stops and how
// much per-stop time the itinerary allocates.
type DurationClass string

const (
	DurationQuick   DurationClass = "quick"
	DurationHalfDay DurationClass = "half_day"
	DurationFullDay DurationClass = "full_day"
)

// IsValid reports whether the duration class is one of the known buckets.
func (d DurationClass) IsValid() bool {
	switch d {
	case DurationQuick, DurationHalfDay, DurationFullDay:
		return true
	}
	return false
}

// StopKind classifies a stop within an itinerary.
type StopKind string

const (
	StopStart       StopKind = "start"
	StopActivity    StopKind = "activity"
	StopDestination StopKind = "destination"
)

// TransportMode describes how the incoming leg of a stop is covered.
type TransportMode string

const (
	TransportNone    TransportMode = "none"
	TransportWalking TransportMode = "walking"
	TransportTram    TransportMode = "tram"
	TransportBus     TransportMode = "bus"
)

// TimeWindow is a wall-clock interval within a single day, stored as
// minutes from midnight. Start == End denotes an instant.
type TimeWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// String renders the window as "HH:MM" for instants and
// "HH:MM - HH:MM" otherwise.
func (w TimeWindow) String() string {
	if w.Start == w.End {
		return clock(w.Start)
	}
	return fmt.Sprintf("%s - %s", clock(w.Start), clock(w.End))
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ItineraryStop is one entry of a computed itinerary.
type ItineraryStop struct {
	Window      TimeWindow    `json:"window"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Lat         float64       `json:"lat"`
	Lon         float64       `json:"lon"`
	Kind        StopKind      `json:"kind"`
	Mode        TransportMode `json:"transport_mode"`

	// SourceID references the POI behind the stop; synthetic stops
	// (start, plain destination pins, fallback activities) have none.
	SourceID *string `json:"source_id,omitempty"`
}

// Itinerary is an ordered sequence of stops for one planning request.
// Stops are append-only once returned; callers must not reorder them.
type Itinerary struct {
	ID        string          `json:"id"`
	City      string          `json:"city"`
	Duration  DurationClass   `json:"duration"`
	Stops     []ItineraryStop `json:"stops"`
	StopCount int             `json:"stop_count"`

	// Fallback marks the degraded 3-stop plan produced when the
	// candidate pool was below the viable minimum.
	Fallback bool `json:"fallback"`
}
