package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/guttosm/volseason/internal/cache"
	"github.com/guttosm/volseason/internal/domain/models"
	"github.com/guttosm/volseason/internal/logger"
	"github.com/guttosm/volseason/internal/metrics"
	"github.com/guttosm/volseason/internal/polygon"
	"github.com/guttosm/volseason/internal/volume"
)

// ErrInputUnavailable is returned when bars cannot be fetched. The
// aggregator is never run in that case.
var ErrInputUnavailable = polygon.ErrInputUnavailable

// ErrInvalidTicker rejects symbols the provider cannot serve.
var ErrInvalidTicker = errors.New("invalid ticker")

var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,11}$`)

// MarketData is the upstream collaborator supplying bars.
type MarketData interface {
	FetchBars(ctx context.Context, ticker string, from, to time.Time) ([]models.Bar, error)
	Aggregates(ctx context.Context, req polygon.AggregatesRequest) (*polygon.AggregatesResult, error)
}

// VolumeService exposes the volume distribution use cases to transports
// (HTTP handlers, CLI).
type VolumeService interface {
	// Distribution fetches bars for ticker in r and aggregates them.
	Distribution(ctx context.Context, ticker string, r DateRange) (*models.Table, error)
	// Bars returns the raw bars for ticker in r.
	Bars(ctx context.Context, ticker string, r DateRange) ([]models.Bar, error)
	// ProbeAccess checks which aggregate series the API key can read.
	ProbeAccess(ctx context.Context) []ProbeResult
	// Intervals lists the table columns.
	Intervals() []string
}

// Deps groups the collaborators of the volume service. Cache and Metrics
// are optional.
type Deps struct {
	Market     MarketData
	Aggregator *volume.Aggregator
	Cache      cache.Store
	CacheTTL   time.Duration
	Metrics    *metrics.Recorder
	Now        func() time.Time
}

type volumeService struct {
	md    MarketData
	agg   *volume.Aggregator
	store cache.Store
	ttl   time.Duration
	rec   *metrics.Recorder
	now   func() time.Time
}

func NewVolumeService(d Deps) VolumeService {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &volumeService{
		md:    d.Market,
		agg:   d.Aggregator,
		store: d.Cache,
		ttl:   d.CacheTTL,
		rec:   d.Metrics,
		now:   now,
	}
}

// NormalizeTicker upper-cases and validates a ticker symbol.
func NormalizeTicker(s string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if !tickerPattern.MatchString(t) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTicker, s)
	}
	return t, nil
}

func (s *volumeService) Intervals() []string { return s.agg.Intervals() }

func (s *volumeService) Distribution(ctx context.Context, ticker string, r DateRange) (*models.Table, error) {
	bars, err := s.Bars(ctx, ticker, r)
	if err != nil {
		return nil, err
	}

	start := s.now()
	table := s.agg.Aggregate(bars)
	days := len(table.DayRows())
	s.rec.Aggregated(len(bars), days)

	logger.With("service").Info().
		Str("ticker", ticker).
		Str("from", r.FromString()).
		Str("to", r.ToString()).
		Int("bars", len(bars)).
		Int("day_rows", days).
		Dur("elapsed", s.now().Sub(start)).
		Msg("distribution built")
	return &table, nil
}

func (s *volumeService) Bars(ctx context.Context, ticker string, r DateRange) ([]models.Bar, error) {
	key := fmt.Sprintf("bars:%s:%s:%s", ticker, r.FromString(), r.ToString())
	if bars, ok := s.cached(ctx, key); ok {
		return bars, nil
	}

	start := s.now()
	bars, err := s.md.FetchBars(ctx, ticker, r.From, r.To)
	s.rec.ObserveFetch("bars", s.now().Sub(start), err)
	if err != nil {
		logger.With("service").Warn().Err(err).Str("ticker", ticker).Msg("fetch bars failed")
		if !errors.Is(err, ErrInputUnavailable) {
			err = fmt.Errorf("%w: %v", ErrInputUnavailable, err)
		}
		return nil, err
	}

	s.remember(ctx, key, bars)
	return bars, nil
}

// cached looks key up; cache failures are logged and treated as misses.
func (s *volumeService) cached(ctx context.Context, key string) ([]models.Bar, bool) {
	if s.store == nil {
		return nil, false
	}
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		logger.With("service").Warn().Err(err).Str("key", key).Msg("cache get failed")
	}
	if err != nil || !ok {
		s.rec.CacheLookup(false)
		return nil, false
	}
	var bars []models.Bar
	if err := json.Unmarshal(raw, &bars); err != nil {
		logger.With("service").Warn().Err(err).Str("key", key).Msg("cache entry corrupt")
		s.rec.CacheLookup(false)
		return nil, false
	}
	s.rec.CacheLookup(true)
	return bars, true
}

func (s *volumeService) remember(ctx context.Context, key string, bars []models.Bar) {
	if s.store == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(bars)
	if err == nil {
		err = s.store.Set(ctx, key, raw, s.ttl)
	}
	if err != nil {
		logger.With("service").Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}
