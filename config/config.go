package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // exchange time zones without relying on the host zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POLYGON_API_KEY=xxxx
//	MARKET_TICKER=SPY
//	MARKET_TIMEZONE=America/New_York
//	MARKET_SESSION_START=09:30
//	MARKET_SESSION_END=16:00
//	MARKET_INTERVAL_MINUTES=30
//	MARKET_RETENTION_DAYS=90
//	MARKET_ROLLING_WINDOWS=5,10,20,30,40
//	CACHE_BACKEND=memory
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Polygon   PolygonConfig
	Market    MarketConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port           string        `validate:"required,numeric"`
	RequestTimeout time.Duration `validate:"gt=0"`
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level  string `validate:"omitempty,oneof=debug info warn warning error err"`
	Pretty bool
}

// PolygonConfig defines access to the market-data provider.
//
// Fields:
//   - APIKey: Polygon API key (required to fetch anything).
//   - BaseURL: API root, overridable for tests and proxies.
//   - Timeout: per-request HTTP timeout.
//   - LookbackDays: default calendar-day span of a query.
//   - DelayDays: how many days the default end date is pushed back, for
//     plans that only serve delayed history.
type PolygonConfig struct {
	APIKey       string
	BaseURL      string        `validate:"required,url"`
	Timeout      time.Duration `validate:"gt=0"`
	LookbackDays int           `validate:"gt=0"`
	DelayDays    int           `validate:"gte=0"`
}

// MarketConfig describes the exchange calendar and the table layout.
type MarketConfig struct {
	Ticker          string `validate:"required"`
	Timezone        string `validate:"required"`
	SessionStart    string `validate:"required,datetime=15:04"`
	SessionEnd      string `validate:"required"`
	IntervalMinutes int    `validate:"gt=0,lte=1440"`
	RetentionDays   int    `validate:"gt=0"`
	RollingWindows  []int  `validate:"dive,gt=0"`
}

// Location loads the exchange time zone.
func (m MarketConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", m.Timezone, err)
	}
	return loc, nil
}

// CacheConfig selects the bar cache backend.
type CacheConfig struct {
	Backend    string        `validate:"oneof=memory redis none"`
	TTL        time.Duration `validate:"gte=0"`
	MaxEntries int           `validate:"gte=0"`
	Redis      RedisConfig
}

// RedisConfig holds redis connection details, used when Backend is "redis".
type RedisConfig struct {
	Addr     string
	Password string
	DB       int `validate:"gte=0"`
}

// RateLimitConfig bounds requests per client IP.
type RateLimitConfig struct {
	Requests int           `validate:"gt=0"`
	Window   time.Duration `validate:"gt=0"`
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// ErrMissingAPIKey is returned by RequireAPIKey when no Polygon key is set.
var ErrMissingAPIKey = errors.New("POLYGON_API_KEY is required")

var validate = validator.New()

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// It returns an error naming every invalid field.
func LoadConfig() error {
	v := viper.New()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_REQUEST_TIMEOUT", "30s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	v.SetDefault("POLYGON_API_KEY", "")
	v.SetDefault("POLYGON_BASE_URL", "https://api.polygon.io")
	v.SetDefault("POLYGON_TIMEOUT", "30s")
	v.SetDefault("POLYGON_LOOKBACK_DAYS", 130)
	v.SetDefault("POLYGON_DELAY_DAYS", 15)

	v.SetDefault("MARKET_TICKER", "SPY")
	v.SetDefault("MARKET_TIMEZONE", "America/New_York")
	v.SetDefault("MARKET_SESSION_START", "09:30")
	v.SetDefault("MARKET_SESSION_END", "16:00")
	v.SetDefault("MARKET_INTERVAL_MINUTES", 30)
	v.SetDefault("MARKET_RETENTION_DAYS", 90)
	v.SetDefault("MARKET_ROLLING_WINDOWS", "5,10,20,30,40")

	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("CACHE_MAX_ENTRIES", 256)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("RATE_LIMIT_REQUESTS", 60)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")

	// Optionally read from .env if present (common in local dev)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()

	windows, err := parseInts(v.GetString("MARKET_ROLLING_WINDOWS"))
	if err != nil {
		return fmt.Errorf("MARKET_ROLLING_WINDOWS: %w", err)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			RequestTimeout: v.GetDuration("SERVER_REQUEST_TIMEOUT"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
		Polygon: PolygonConfig{
			APIKey:       v.GetString("POLYGON_API_KEY"),
			BaseURL:      v.GetString("POLYGON_BASE_URL"),
			Timeout:      v.GetDuration("POLYGON_TIMEOUT"),
			LookbackDays: v.GetInt("POLYGON_LOOKBACK_DAYS"),
			DelayDays:    v.GetInt("POLYGON_DELAY_DAYS"),
		},
		Market: MarketConfig{
			Ticker:          strings.ToUpper(strings.TrimSpace(v.GetString("MARKET_TICKER"))),
			Timezone:        v.GetString("MARKET_TIMEZONE"),
			SessionStart:    v.GetString("MARKET_SESSION_START"),
			SessionEnd:      v.GetString("MARKET_SESSION_END"),
			IntervalMinutes: v.GetInt("MARKET_INTERVAL_MINUTES"),
			RetentionDays:   v.GetInt("MARKET_RETENTION_DAYS"),
			RollingWindows:  windows,
		},
		Cache: CacheConfig{
			Backend:    strings.ToLower(v.GetString("CACHE_BACKEND")),
			TTL:        v.GetDuration("CACHE_TTL"),
			MaxEntries: v.GetInt("CACHE_MAX_ENTRIES"),
			Redis: RedisConfig{
				Addr:     v.GetString("REDIS_ADDR"),
				Password: v.GetString("REDIS_PASSWORD"),
				DB:       v.GetInt("REDIS_DB"),
			},
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   v.GetDuration("RATE_LIMIT_WINDOW"),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// validateConfig runs the struct tag rules and the cross-field checks the
// tags cannot express, reporting every failing field at once.
func validateConfig(cfg Config) error {
	var problems []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
		}
	}

	if _, err := cfg.Market.Location(); err != nil {
		problems = append(problems, "Config.Market.Timezone (timezone)")
	}
	if cfg.Market.SessionEnd != "24:00" {
		if _, err := time.Parse("15:04", cfg.Market.SessionEnd); err != nil {
			problems = append(problems, "Config.Market.SessionEnd (datetime)")
		}
	}
	if cfg.Cache.Backend == "redis" && cfg.Cache.Redis.Addr == "" {
		problems = append(problems, "Config.Cache.Redis.Addr (required)")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}

// RequireAPIKey fails when no Polygon API key is configured.
func (c Config) RequireAPIKey() error {
	if strings.TrimSpace(c.Polygon.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
