package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the registry service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	CheckInsTotal        prometheus.CounterVec
	AssignmentsPlanned   prometheus.Counter
	DutiesUnfilled       prometheus.Counter
	MembersByStatus      prometheus.GaugeVec
	StatusSweepDuration  prometheus.Histogram
	StatusTransitions    prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ekklesia_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ekklesia_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ekklesia_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ekklesia_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ekklesia_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ekklesia_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ekklesia_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		CheckInsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ekklesia_check_ins_total",
				Help: "Total attendance check-ins, split home vs guest branch",
			},
			[]string{"kind"},
		),
		AssignmentsPlanned: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ekklesia_duty_assignments_planned_total",
				Help: "Total duty assignments produced by the planner",
			},
		),
		DutiesUnfilled: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ekklesia_duties_unfilled_total",
				Help: "Required duties the planner could not fill",
			},
		),
		MembersByStatus: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ekklesia_members_by_status",
				Help: "Current member count per lifecycle status",
			},
			[]string{"status"},
		),
		StatusSweepDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ekklesia_status_sweep_duration_seconds",
				Help:    "Duration of the scheduled member status recompute sweep",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
			},
		),
		StatusTransitions: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ekklesia_status_transitions_total",
				Help: "Derived status transitions applied, by from/to status",
			},
			[]string{"from", "to"},
		),
	}
}
