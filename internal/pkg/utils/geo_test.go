package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Zero(t, HaversineDistance(45.0703, 7.6869, 45.0703, 7.6869))
	})

	t.Run("symmetry", func(t *testing.T) {
		forward := HaversineDistance(45.0703, 7.6869, 45.4642, 9.1900)
		backward := HaversineDistance(45.4642, 9.1900, 45.0703, 7.6869)
		assert.InDelta(t, forward, backward, 1e-9)
	})

	t.Run("Torino to Milano", func(t *testing.T) {
		km := HaversineDistance(45.0703, 7.6869, 45.4642, 9.1900)
		assert.InDelta(t, 125.0, km, 3.0)
	})

	t.Run("short city leg", func(t *testing.T) {
		// Piazza Castello to Museo Egizio, a couple hundred metres
		km := HaversineDistance(45.0703, 7.6869, 45.0684, 7.6845)
		assert.Greater(t, km, 0.1)
		assert.Less(t, km, 0.5)
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(45.0703, 7.6869))
	assert.True(t, ValidateCoordinates(-90, -180))
	assert.True(t, ValidateCoordinates(90, 180))
	assert.True(t, ValidateCoordinates(0, 0))

	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(-90.1, 0))
	assert.False(t, ValidateCoordinates(0, 180.1))
	assert.False(t, ValidateCoordinates(0, -180.1))
}
