package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/itinerary-microservice/internal/domain"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Geocoder GeocoderConfig
	Planner  PlannerConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	PlanCacheTTL time.Duration
	PoolCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type GeocoderConfig struct {
	BaseURL        string
	UserAgent      string
	Country        string
	RequestTimeout time.Duration
}

// PlannerConfig carries the tunable constants of the route composer.
// Distances are kilometres, times minutes from midnight or plain minutes.
type PlannerConfig struct {
	DayStartMinutes int
	WalkingMaxKm    float64
	TramMaxKm       float64
	MinViableStops  int

	QuickActivities   int
	HalfDayActivities int
	FullDayActivities int

	QuickVisitMinutes   int
	HalfDayVisitMinutes int
	FullDayVisitMinutes int

	FallbackVisitMinutes int
	CandidateHeadroom    int
}

// ActivityCount returns how many activity stops a duration class allows.
func (p *PlannerConfig) ActivityCount(d domain.DurationClass) int {
	switch d {
	case domain.DurationQuick:
		return p.QuickActivities
	case domain.DurationFullDay:
		return p.FullDayActivities
	default:
		return p.HalfDayActivities
	}
}

// VisitMinutes returns the per-activity visit duration for a class.
func (p *PlannerConfig) VisitMinutes(d domain.DurationClass) int {
	switch d {
	case domain.DurationQuick:
		return p.QuickVisitMinutes
	case domain.DurationFullDay:
		return p.FullDayVisitMinutes
	default:
		return p.HalfDayVisitMinutes
	}
}

type WorkerConfig struct {
	Enabled        bool
	WarmupInterval time.Duration
	WarmupCities   []string
	WarmupPoolSize int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			PlanCacheTTL: time.Duration(viper.GetInt("PLAN_CACHE_TTL")) * time.Second,
			PoolCacheTTL: time.Duration(viper.GetInt("POOL_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:        viper.GetString("GEOCODER_BASE_URL"),
			UserAgent:      viper.GetString("GEOCODER_USER_AGENT"),
			Country:        viper.GetString("GEOCODER_COUNTRY"),
			RequestTimeout: time.Duration(viper.GetInt("GEOCODER_TIMEOUT")) * time.Second,
		},
		Planner: PlannerConfig{
			DayStartMinutes:      viper.GetInt("PLANNER_DAY_START_MINUTES"),
			WalkingMaxKm:         viper.GetFloat64("PLANNER_WALKING_MAX_KM"),
			TramMaxKm:            viper.GetFloat64("PLANNER_TRAM_MAX_KM"),
			MinViableStops:       viper.GetInt("PLANNER_MIN_VIABLE_STOPS"),
			QuickActivities:      viper.GetInt("PLANNER_QUICK_ACTIVITIES"),
			HalfDayActivities:    viper.GetInt("PLANNER_HALF_DAY_ACTIVITIES"),
			FullDayActivities:    viper.GetInt("PLANNER_FULL_DAY_ACTIVITIES"),
			QuickVisitMinutes:    viper.GetInt("PLANNER_QUICK_VISIT_MINUTES"),
			HalfDayVisitMinutes:  viper.GetInt("PLANNER_HALF_DAY_VISIT_MINUTES"),
			FullDayVisitMinutes:  viper.GetInt("PLANNER_FULL_DAY_VISIT_MINUTES"),
			FallbackVisitMinutes: viper.GetInt("PLANNER_FALLBACK_VISIT_MINUTES"),
			CandidateHeadroom:    viper.GetInt("PLANNER_CANDIDATE_HEADROOM"),
		},
		Worker: WorkerConfig{
			Enabled:        viper.GetBool("WORKER_ENABLED"),
			WarmupInterval: time.Duration(viper.GetInt("WORKER_WARMUP_INTERVAL")) * time.Second,
			WarmupCities:   parseList(viper.GetString("WORKER_WARMUP_CITIES")),
			WarmupPoolSize: viper.GetInt("WORKER_WARMUP_POOL_SIZE"),
		},
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills values not provided by the environment.
func applyDefaults(cfg *Config) {
	if cfg.Cache.PlanCacheTTL == 0 {
		cfg.Cache.PlanCacheTTL = 5 * time.Minute
	}
	if cfg.Cache.PoolCacheTTL == 0 {
		cfg.Cache.PoolCacheTTL = 30 * time.Minute
	}

	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocoder.UserAgent == "" {
		cfg.Geocoder.UserAgent = "itinerary-microservice/1.0"
	}
	if cfg.Geocoder.Country == "" {
		cfg.Geocoder.Country = "Italy"
	}
	if cfg.Geocoder.RequestTimeout == 0 {
		cfg.Geocoder.RequestTimeout = 10 * time.Second
	}

	p := &cfg.Planner
	if p.DayStartMinutes == 0 {
		p.DayStartMinutes = 9 * 60
	}
	if p.WalkingMaxKm == 0 {
		p.WalkingMaxKm = 1.0
	}
	if p.TramMaxKm == 0 {
		p.TramMaxKm = 2.0
	}
	if p.MinViableStops == 0 {
		p.MinViableStops = 3
	}
	if p.QuickActivities == 0 {
		p.QuickActivities = 3
	}
	if p.HalfDayActivities == 0 {
		p.HalfDayActivities = 5
	}
	if p.FullDayActivities == 0 {
		p.FullDayActivities = 7
	}
	if p.QuickVisitMinutes == 0 {
		p.QuickVisitMinutes = 60
	}
	if p.HalfDayVisitMinutes == 0 {
		p.HalfDayVisitMinutes = 75
	}
	if p.FullDayVisitMinutes == 0 {
		p.FullDayVisitMinutes = 90
	}
	if p.FallbackVisitMinutes == 0 {
		p.FallbackVisitMinutes = 120
	}
	if p.CandidateHeadroom == 0 {
		p.CandidateHeadroom = 5
	}

	if cfg.Worker.WarmupInterval == 0 {
		cfg.Worker.WarmupInterval = 15 * time.Minute
	}
	if cfg.Worker.WarmupPoolSize == 0 {
		cfg.Worker.WarmupPoolSize = 12
	}
}

// DefaultPlannerConfig returns the planner constants with defaults
// applied, used by tests and the warmup worker.
func DefaultPlannerConfig() PlannerConfig {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg.Planner
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
