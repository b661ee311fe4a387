package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects service metrics on its own registry, so several
// recorders (one per test) can coexist.
type Recorder struct {
	registry     *prometheus.Registry
	fetchLatency *prometheus.HistogramVec
	fetchErrors  *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	barsTotal    prometheus.Counter
	dayRows      prometheus.Gauge
}

// New creates a Recorder with Go runtime and process collectors attached.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		fetchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "volseason_upstream_fetch_duration_seconds",
				Help:    "Duration of market-data fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		fetchErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volseason_upstream_fetch_errors_total",
				Help: "Total number of failed market-data fetches",
			},
			[]string{"kind"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volseason_cache_lookups_total",
				Help: "Bar cache lookups by result",
			},
			[]string{"result"},
		),
		barsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "volseason_bars_aggregated_total",
			Help: "Total number of bars fed to the aggregator",
		}),
		dayRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "volseason_last_table_day_rows",
			Help: "Number of day rows in the most recent table",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.fetchLatency, r.fetchErrors, r.cacheLookups, r.barsTotal, r.dayRows,
	)
	return r
}

// ObserveFetch records a market-data fetch of the given kind.
func (r *Recorder) ObserveFetch(kind string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.fetchLatency.WithLabelValues(kind).Observe(d.Seconds())
	if err != nil {
		r.fetchErrors.WithLabelValues(kind).Inc()
	}
}

// CacheLookup records a cache hit or miss.
func (r *Recorder) CacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// Aggregated records one aggregation run.
func (r *Recorder) Aggregated(bars, dayRows int) {
	if r == nil {
		return
	}
	r.barsTotal.Add(float64(bars))
	r.dayRows.Set(float64(dayRows))
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
