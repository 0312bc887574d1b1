package usecase

import "github.com/itinerary-microservice/internal/pkg/utils"

// interestBoosts maps a normalized interest tag to the POI categories
// it boosts in the attractions tier. Evaluated as a lookup table so
// every tag is an explicit, testable entry.
var interestBoosts = map[string][]string{
	"culture":    {"museum", "monument", "church", "palace"},
	"history":    {"museum", "monument", "church", "palace"},
	"art":        {"museum", "monument", "church", "palace"},
	"nature":     {"park", "garden"},
	"outdoors":   {"park", "garden"},
	"food":       {"restaurant", "cafe"},
	"gastronomy": {"restaurant", "cafe"},
}

// BoostCategories resolves interest tags to the deduplicated list of
// boosted categories, preserving first-seen order for determinism.
// Unknown tags contribute nothing.
func BoostCategories(interests []string) []string {
	var out []string
	seen := make(map[string]struct{})

	for _, tag := range interests {
		for _, cat := range interestBoosts[utils.NormalizeName(tag)] {
			if _, ok := seen[cat]; ok {
				continue
			}
			seen[cat] = struct{}{}
			out = append(out, cat)
		}
	}

	return out
}
