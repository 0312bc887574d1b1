package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itinerary-microservice/internal/domain"
)

func TestDefaultPlannerConfig(t *testing.T) {
	cfg := DefaultPlannerConfig()

	assert.Equal(t, 540, cfg.DayStartMinutes)
	assert.Equal(t, 1.0, cfg.WalkingMaxKm)
	assert.Equal(t, 2.0, cfg.TramMaxKm)
	assert.Equal(t, 3, cfg.MinViableStops)
	assert.Equal(t, 120, cfg.FallbackVisitMinutes)
	assert.Equal(t, 5, cfg.CandidateHeadroom)
}

func TestPlannerConfig_ActivityCount(t *testing.T) {
	cfg := DefaultPlannerConfig()

	assert.Equal(t, 3, cfg.ActivityCount(domain.DurationQuick))
	assert.Equal(t, 5, cfg.ActivityCount(domain.DurationHalfDay))
	assert.Equal(t, 7, cfg.ActivityCount(domain.DurationFullDay))
}

func TestPlannerConfig_VisitMinutes(t *testing.T) {
	cfg := DefaultPlannerConfig()

	assert.Equal(t, 60, cfg.VisitMinutes(domain.DurationQuick))
	assert.Equal(t, 75, cfg.VisitMinutes(domain.DurationHalfDay))
	assert.Equal(t, 90, cfg.VisitMinutes(domain.DurationFullDay))
}

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList(""))
	assert.Equal(t, []string{"torino"}, parseList("torino"))
	assert.Equal(t, []string{"torino", "milano"}, parseList("torino, milano"))
	assert.Equal(t, []string{"torino", "milano"}, parseList(" torino ,, milano ,"))
}

func TestConfig_Addresses(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Redis:  RedisConfig{Host: "localhost", Port: 6379},
		Database: DatabaseConfig{
			Host: "localhost", Port: 5432,
			User: "app", Password: "secret", DBName: "itinerary", SSLMode: "disable",
		},
	}

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
	assert.Equal(t,
		"host=localhost port=5432 user=app password=secret dbname=itinerary sslmode=disable",
		cfg.GetDatabaseDSN())
}
