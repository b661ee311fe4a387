package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/volseason/config"
	"github.com/guttosm/volseason/internal/api"
	"github.com/guttosm/volseason/internal/cache"
	"github.com/guttosm/volseason/internal/logger"
	"github.com/guttosm/volseason/internal/metrics"
	"github.com/guttosm/volseason/internal/polygon"
	"github.com/guttosm/volseason/internal/service"
	"github.com/guttosm/volseason/internal/volume"
)

// Components are the wired building blocks shared by the HTTP server and
// the one-shot CLI report.
type Components struct {
	Location *time.Location
	Range    service.RangeDefaults
	Polygon  *polygon.Client
	Cache    cache.Store
	Metrics  *metrics.Recorder
	Service  service.VolumeService
}

// cacheOpener is an indirection for unit testing.
var cacheOpener = cache.New

// AggregatorOptions converts the market section of the configuration into
// aggregator options.
func AggregatorOptions(m config.MarketConfig) (volume.Options, error) {
	start, err := volume.ParseClock(m.SessionStart)
	if err != nil {
		return volume.Options{}, fmt.Errorf("session start: %w", err)
	}
	end, err := volume.ParseClock(m.SessionEnd)
	if err != nil {
		return volume.Options{}, fmt.Errorf("session end: %w", err)
	}
	opts := volume.DefaultOptions()
	opts.Session = volume.Session{StartMinute: start, EndMinute: end, IntervalMinutes: m.IntervalMinutes}
	opts.RetentionDays = m.RetentionDays
	if len(m.RollingWindows) > 0 {
		opts.Windows = append([]int(nil), m.RollingWindows...)
	}
	return opts, nil
}

// Build wires the market-data client, cache, metrics, aggregator and
// volume service from cfg. The returned cleanup releases the cache.
func Build(cfg config.Config) (*Components, func(), error) {
	loc, err := cfg.Market.Location()
	if err != nil {
		return nil, nil, err
	}

	opts, err := AggregatorOptions(cfg.Market)
	if err != nil {
		return nil, nil, err
	}
	agg, err := volume.NewAggregator(loc, opts)
	if err != nil {
		return nil, nil, err
	}

	store, err := cacheOpener(cache.Options{
		Backend:    cfg.Cache.Backend,
		MaxEntries: cfg.Cache.MaxEntries,
		Redis: cache.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	client := polygon.NewClient(cfg.Polygon.BaseURL, cfg.Polygon.APIKey, cfg.Polygon.Timeout)
	if !client.HasAPIKey() {
		logger.With("app").Warn().Msg("POLYGON_API_KEY is not set; market data requests will fail")
	}

	rec := metrics.New()
	svc := service.NewVolumeService(service.Deps{
		Market:     client,
		Aggregator: agg,
		Cache:      store,
		CacheTTL:   cfg.Cache.TTL,
		Metrics:    rec,
	})

	c := &Components{
		Location: loc,
		Range:    service.RangeDefaults{LookbackDays: cfg.Polygon.LookbackDays, DelayDays: cfg.Polygon.DelayDays},
		Polygon:  client,
		Cache:    store,
		Metrics:  rec,
		Service:  svc,
	}
	cleanup := func() {
		if store != nil {
			_ = store.Close()
		}
	}
	return c, cleanup, nil
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Wires the service layer through Build().
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes (readiness pings the cache).
//   - Provides a cleanup function to close resources (e.g., redis connection).
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	c, cleanup, err := Build(cfg)
	if err != nil {
		return nil, nil, err
	}

	if c.Cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := c.Cache.Ping(ctx); err != nil {
			logger.With("app").Warn().Err(err).Str("backend", cfg.Cache.Backend).Msg("cache not reachable at startup")
		}
		cancel()
	}

	handler := api.NewHandler(c.Service, api.HandlerConfig{
		DefaultTicker: cfg.Market.Ticker,
		Location:      c.Location,
		Range:         c.Range,
		RetentionDays: cfg.Market.RetentionDays,
		APIKeyPresent: c.Polygon.HasAPIKey(),
	})

	router := api.NewRouter(handler, api.RouterConfig{
		RequestTimeout:  cfg.Server.RequestTimeout,
		RateLimit:       cfg.RateLimit.Requests,
		RateLimitWindow: cfg.RateLimit.Window,
		MetricsHandler:  c.Metrics.Handler(),
	})

	var ping func(context.Context) error
	if c.Cache != nil {
		ping = c.Cache.Ping
	}
	api.NewHealthHandler(ping).Register(router)

	return router, cleanup, nil
}
