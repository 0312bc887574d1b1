package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itinerary-microservice/internal/usecase"
)

func TestBoostCategories(t *testing.T) {
	t.Run("culture expands to its category set", func(t *testing.T) {
		got := usecase.BoostCategories([]string{"culture"})
		assert.Equal(t, []string{"museum", "monument", "church", "palace"}, got)
	})

	t.Run("unknown tags contribute nothing", func(t *testing.T) {
		assert.Empty(t, usecase.BoostCategories([]string{"skydiving"}))
		assert.Empty(t, usecase.BoostCategories(nil))
	})

	t.Run("overlapping tags deduplicate in first-seen order", func(t *testing.T) {
		got := usecase.BoostCategories([]string{"nature", "culture", "history"})
		assert.Equal(t, []string{"park", "garden", "museum", "monument", "church", "palace"}, got)
	})

	t.Run("tags are matched case and accent insensitively", func(t *testing.T) {
		assert.Equal(t,
			usecase.BoostCategories([]string{"food"}),
			usecase.BoostCategories([]string{"  FOOD "}),
		)
	})

	t.Run("mixed known and unknown tags", func(t *testing.T) {
		got := usecase.BoostCategories([]string{"skydiving", "food"})
		assert.Equal(t, []string{"restaurant", "cafe"}, got)
	})
}
