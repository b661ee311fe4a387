package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/volseason/internal/logger"
	"github.com/guttosm/volseason/internal/polygon"
)

// probeTicker is a liquid symbol every plan can read.
const probeTicker = "SPY"

// ProbeResult is the outcome of one access probe.
type ProbeResult struct {
	Test         string `json:"test" example:"30-minute bars (5 days ago)"`
	Status       string `json:"status,omitempty" example:"OK"`
	ResultsCount int    `json:"resultsCount"`
	Error        string `json:"error,omitempty"`
}

type probe struct {
	name string
	req  polygon.AggregatesRequest
}

func (s *volumeService) probes() []probe {
	now := s.now().UTC()
	fiveDaysAgo := truncateToDate(now.AddDate(0, 0, -5))
	lastYear := now.Year() - 1
	return []probe{
		{
			name: "30-minute bars (5 days ago)",
			req:  polygon.AggregatesRequest{Ticker: probeTicker, Multiplier: 30, Timespan: "minute", From: fiveDaysAgo, To: fiveDaysAgo},
		},
		{
			name: "Daily bars",
			req: polygon.AggregatesRequest{
				Ticker: probeTicker, Multiplier: 1, Timespan: "day",
				From: time.Date(lastYear, 1, 1, 0, 0, 0, 0, time.UTC),
				To:   time.Date(lastYear, 12, 31, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "Hourly bars",
			req:  polygon.AggregatesRequest{Ticker: probeTicker, Multiplier: 1, Timespan: "hour", From: fiveDaysAgo, To: fiveDaysAgo},
		},
	}
}

// ProbeAccess runs every probe concurrently. A failing probe is reported
// in its result and does not stop the others.
func (s *volumeService) ProbeAccess(ctx context.Context) []ProbeResult {
	probes := s.probes()
	out := make([]ProbeResult, len(probes))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range probes {
		i, p := i, p
		g.Go(func() error {
			start := s.now()
			res, err := s.md.Aggregates(gctx, p.req)
			s.rec.ObserveFetch("probe", s.now().Sub(start), err)

			r := ProbeResult{Test: p.name}
			if err != nil {
				r.Error = err.Error()
			} else {
				r.Status = res.Status
				r.ResultsCount = len(res.Bars)
			}
			out[i] = r
			return nil
		})
	}
	_ = g.Wait()

	logger.With("service").Info().Int("probes", len(out)).Msg("access probes done")
	return out
}
