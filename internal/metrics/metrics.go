package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the ETL collectors. Each instance registers on its own
// registerer so tests can use a fresh registry.
type Metrics struct {
	RunsTotal      *prometheus.CounterVec
	RunDuration    prometheus.Histogram
	RunInProgress  prometheus.Gauge
	OffersTotal    *prometheus.CounterVec
	InvalidOffers  *prometheus.CounterVec
	FetchAttempts  *prometheus.CounterVec
	ScopeFailures  *prometheus.CounterVec
	ExpiredDeleted prometheus.Counter

	gatherer prometheus.Gatherer
}

func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_runs_total",
			Help: "ETL runs and rejected triggers by trigger type and status",
		}, []string{"trigger", "status"}),
		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "etl_run_duration_seconds",
			Help:    "Duration of completed ETL runs",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		}),
		RunInProgress: f.NewGauge(prometheus.GaugeOpts{
			Name: "etl_run_in_progress",
			Help: "1 while an ETL run is active",
		}),
		OffersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_offers_total",
			Help: "Processed offers by outcome",
		}, []string{"outcome"}),
		InvalidOffers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_invalid_offers_total",
			Help: "Offers skipped before upsert, by reason",
		}, []string{"reason"}),
		FetchAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_fetch_attempts_total",
			Help: "Catalog source requests by result",
		}, []string{"result"}),
		ScopeFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_scope_failures_total",
			Help: "Scopes that failed, by error kind",
		}, []string{"kind"}),
		ExpiredDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "etl_expired_deleted_total",
			Help: "Discount records removed by the expiry sweeper",
		}),
		gatherer: reg,
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
