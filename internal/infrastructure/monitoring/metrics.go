// Package monitoring provides Prometheus metrics for the HTTP layer and the
// kitchen use cases
package monitoring

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "pantry"

// MetricsCollector handles Prometheus metrics collection. It satisfies
// outbound.KitchenMetrics.
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Kitchen metrics
	listsGenerated    prometheus.Counter
	listsEmpty        prometheus.Counter
	listLines         *prometheus.HistogramVec
	referencesSkipped *prometheus.CounterVec
	stockAdjustments  *prometheus.CounterVec
	lockWait          prometheus.Histogram

	// System metrics
	dbConnectionsOpen  prometheus.Gauge
	dbConnectionsInUse prometheus.Gauge
	dbConnectionsIdle  prometheus.Gauge
}

// NewRegistry returns a registry carrying the Go and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewMetricsCollector creates a collector registered on reg
func NewMetricsCollector(reg *prometheus.Registry, logger *zap.Logger) *MetricsCollector {
	factory := promauto.With(reg)

	return &MetricsCollector{
		logger:   logger,
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		listsGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "shopping_lists_generated_total",
				Help:      "Total number of shopping lists generated",
			},
		),
		listsEmpty: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "shopping_lists_empty_total",
				Help:      "Generations that found nothing to buy",
			},
		),
		listLines: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "shopping_list_lines",
				Help:      "Lines per generated shopping list",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
			},
			[]string{"kind"},
		),
		referencesSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "references_skipped_total",
				Help:      "Dangling recipe or item references skipped during generation",
			},
			[]string{"kind"},
		),
		stockAdjustments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stock_adjustments_total",
				Help:      "Pantry items whose quantity changed, by source",
			},
			[]string{"source"},
		),
		lockWait: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "owner_lock_wait_seconds",
				Help:      "Time spent waiting for the per-owner lock",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),

		dbConnectionsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_open",
				Help:      "Number of established database connections",
			},
		),
		dbConnectionsInUse: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_in_use",
				Help:      "Number of database connections in use",
			},
		),
		dbConnectionsIdle: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_idle",
				Help:      "Number of idle database connections",
			},
		),
	}
}

// HTTPMiddleware records request counts and latency by chi route pattern
func (m *MetricsCollector) HTTPMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			m.httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			m.httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// Kitchen metric methods

func (m *MetricsCollector) ListGenerated(mandatory, optional int) {
	m.listsGenerated.Inc()
	m.listLines.WithLabelValues("mandatory").Observe(float64(mandatory))
	m.listLines.WithLabelValues("optional").Observe(float64(optional))
}

func (m *MetricsCollector) ListEmpty() {
	m.listsEmpty.Inc()
}

func (m *MetricsCollector) ReferencesSkipped(kind string, n int) {
	if n <= 0 {
		return
	}
	m.referencesSkipped.WithLabelValues(kind).Add(float64(n))
}

func (m *MetricsCollector) StockAdjusted(source string, items int) {
	if items <= 0 {
		return
	}
	m.stockAdjustments.WithLabelValues(source).Add(float64(items))
}

func (m *MetricsCollector) LockWait(seconds float64) {
	m.lockWait.Observe(seconds)
}

// UpdateDBConnections copies pool statistics into the connection gauges
func (m *MetricsCollector) UpdateDBConnections(stats sql.DBStats) {
	m.dbConnectionsOpen.Set(float64(stats.OpenConnections))
	m.dbConnectionsInUse.Set(float64(stats.InUse))
	m.dbConnectionsIdle.Set(float64(stats.Idle))
}

// WatchDB samples pool statistics until ctx is cancelled
func (m *MetricsCollector) WatchDB(ctx context.Context, db *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.UpdateDBConnections(db.Stats())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.UpdateDBConnections(db.Stats())
		}
	}
}

// Handler returns the Prometheus metrics HTTP handler for this registry
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(m.logger),
	})
}
