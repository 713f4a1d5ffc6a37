// Package prometheus implements the observability hooks on top of Prometheus
// collectors.
//
// A single [Metrics] value satisfies every hook interface, so main registers
// the same instance for each category and serves the registry on /metrics:
//
//	reg := prom.NewRegistry()
//	m := prometheus.New(reg)
//	observability.SetSearchHooks(m)
//	observability.SetCacheHooks(m)
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// All collectors are safe for concurrent use.
package prometheus

import (
	"context"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/stopover/pkg/observability"
)

const namespace = "stopover"

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.SearchHooks   = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.StoreHooks    = (*Metrics)(nil)
)

// Metrics holds the collectors behind every hook.
type Metrics struct {
	RecordsLoaded   prom.Counter
	CatalogFlights  prom.Gauge
	GraphEdges      prom.Gauge
	GraphBuildTime  prom.Histogram
	WorkersActive   prom.Gauge
	PlansProcessed  *prom.GaugeVec // labels: worker
	Frontier        *prom.GaugeVec // labels: worker
	BestUniqueDests *prom.GaugeVec // labels: worker
	NewBestTotal    *prom.CounterVec
	WorkerDuration  *prom.HistogramVec // labels: status
	CacheRequests   *prom.CounterVec   // labels: backend, result
	CacheBytes      *prom.CounterVec   // labels: backend
	RunsSaved       *prom.CounterVec   // labels: backend, status
}

// New creates the collectors and registers them with reg. It panics on
// duplicate registration, like promauto.
func New(reg prom.Registerer) *Metrics {
	m := &Metrics{
		RecordsLoaded: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "records_loaded_total",
			Help: "Flight records read from the data source.",
		}),
		CatalogFlights: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "catalog_flights",
			Help: "Flights admitted by the search window.",
		}),
		GraphEdges: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "graph_edges",
			Help: "Legal flight-to-flight connections.",
		}),
		GraphBuildTime: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "graph_build_seconds",
			Help:    "Time spent computing legal connections.",
			Buckets: prom.ExponentialBuckets(0.01, 4, 8),
		}),
		WorkersActive: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace, Subsystem: "search", Name: "workers_active",
			Help: "Search workers currently running.",
		}),
		PlansProcessed: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace, Subsystem: "search", Name: "plans_processed",
			Help: "Plans popped from the worker's stack so far.",
		}, []string{"worker"}),
		Frontier: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace, Subsystem: "search", Name: "frontier_size",
			Help: "Plans waiting on the worker's stack.",
		}, []string{"worker"}),
		BestUniqueDests: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace, Subsystem: "search", Name: "best_unique_destinations",
			Help: "Unique destinations of the worker's best itinerary.",
		}, []string{"worker"}),
		NewBestTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace, Subsystem: "search", Name: "new_best_total",
			Help: "Times a worker replaced its best itinerary.",
		}, []string{"worker"}),
		WorkerDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace, Subsystem: "search", Name: "worker_duration_seconds",
			Help:    "Wall time of a worker by completion status.",
			Buckets: prom.ExponentialBuckets(1, 4, 8),
		}, []string{"status"}),
		CacheRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "requests_total",
			Help: "Result cache lookups by backend and result.",
		}, []string{"backend", "result"}),
		CacheBytes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "written_bytes_total",
			Help: "Bytes written to the result cache.",
		}, []string{"backend"}),
		RunsSaved: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace, Subsystem: "store", Name: "runs_saved_total",
			Help: "Run records written to history.",
		}, []string{"backend", "status"}),
	}
	reg.MustRegister(
		m.RecordsLoaded, m.CatalogFlights, m.GraphEdges, m.GraphBuildTime,
		m.WorkersActive, m.PlansProcessed, m.Frontier, m.BestUniqueDests,
		m.NewBestTotal, m.WorkerDuration, m.CacheRequests, m.CacheBytes,
		m.RunsSaved,
	)
	return m
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnLoadComplete(_ context.Context, _ string, records int, _ time.Duration, err error) {
	if err == nil {
		m.RecordsLoaded.Add(float64(records))
	}
}

func (m *Metrics) OnCatalogBuilt(_ context.Context, _, flights int) {
	m.CatalogFlights.Set(float64(flights))
}

func (m *Metrics) OnGraphBuilt(_ context.Context, _, edges int, d time.Duration) {
	m.GraphEdges.Set(float64(edges))
	m.GraphBuildTime.Observe(d.Seconds())
}

func (m *Metrics) OnWorkerStart(context.Context, int, int) {
	m.WorkersActive.Inc()
}

func (m *Metrics) OnProgress(_ context.Context, worker int, processed int64, frontier int) {
	w := strconv.Itoa(worker)
	m.PlansProcessed.WithLabelValues(w).Set(float64(processed))
	m.Frontier.WithLabelValues(w).Set(float64(frontier))
}

func (m *Metrics) OnNewBest(_ context.Context, worker, uniqueDests, _, _ int, _ time.Duration) {
	w := strconv.Itoa(worker)
	m.BestUniqueDests.WithLabelValues(w).Set(float64(uniqueDests))
	m.NewBestTotal.WithLabelValues(w).Inc()
}

func (m *Metrics) OnWorkerDone(_ context.Context, worker int, processed int64, elapsed time.Duration, err error) {
	m.WorkersActive.Dec()
	m.PlansProcessed.WithLabelValues(strconv.Itoa(worker)).Set(float64(processed))
	m.Frontier.WithLabelValues(strconv.Itoa(worker)).Set(0)
	m.WorkerDuration.WithLabelValues(status(err)).Observe(elapsed.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, backend string) {
	m.CacheRequests.WithLabelValues(backend, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, backend string) {
	m.CacheRequests.WithLabelValues(backend, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, backend string, size int) {
	m.CacheBytes.WithLabelValues(backend).Add(float64(size))
}

func (m *Metrics) OnRunSaved(_ context.Context, backend string, _ time.Duration, err error) {
	m.RunsSaved.WithLabelValues(backend, status(err)).Inc()
}
