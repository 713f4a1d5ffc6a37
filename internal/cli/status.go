package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/stopover/pkg/graph"
	"github.com/matzehuels/stopover/pkg/observability"
	obsprom "github.com/matzehuels/stopover/pkg/observability/prometheus"
	"github.com/matzehuels/stopover/pkg/report"
	"github.com/matzehuels/stopover/pkg/search"
)

// statusServer exposes a running search over HTTP:
//
//	GET /healthz        liveness
//	GET /progress       per-worker counters
//	GET /best           every worker's current best trip
//	GET /best/{worker}  one worker's current best trip
//	GET /metrics        Prometheus metrics
type statusServer struct {
	progress *search.Progress
	rules    graph.Rules
	cfg      search.Config
	gatherer prom.Gatherer
	started  time.Time
}

type workerStatusJSON struct {
	Worker    int           `json:"worker"`
	Starts    int64         `json:"starts"`
	Processed int64         `json:"processed"`
	Frontier  int64         `json:"frontier"`
	Done      bool          `json:"done"`
	Best      *report.Stats `json:"best,omitempty"`
}

type progressJSON struct {
	Elapsed   string             `json:"elapsed"`
	Processed int64              `json:"processed"`
	Done      bool               `json:"done"`
	Workers   []workerStatusJSON `json:"workers"`
}

type bestJSON struct {
	Worker int          `json:"worker"`
	Trip   *report.Trip `json:"trip"`
}

func (s *statusServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/progress", s.handleProgress)
	r.Get("/best", s.handleBest)
	r.Get("/best/{worker}", s.handleWorkerBest)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

func (s *statusServer) handleProgress(w http.ResponseWriter, _ *http.Request) {
	snap := s.progress.Snapshot()
	out := progressJSON{
		Elapsed: time.Since(s.started).Round(time.Millisecond).String(),
		Done:    s.progress.Done(),
		Workers: make([]workerStatusJSON, len(snap)),
	}
	for i, ws := range snap {
		out.Processed += ws.Processed
		out.Workers[i] = workerStatusJSON{
			Worker:    ws.Worker,
			Starts:    ws.Starts,
			Processed: ws.Processed,
			Frontier:  ws.Frontier,
			Done:      ws.Done,
		}
		if trip := report.NewTrip(ws.Best, s.rules, s.cfg); trip != nil {
			out.Workers[i].Best = &trip.Stats
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *statusServer) handleBest(w http.ResponseWriter, _ *http.Request) {
	out := []bestJSON{}
	for _, ws := range s.progress.Snapshot() {
		if trip := report.NewTrip(ws.Best, s.rules, s.cfg); trip != nil {
			out = append(out, bestJSON{Worker: ws.Worker, Trip: trip})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *statusServer) handleWorkerBest(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "worker"))
	if err != nil || i < 0 || i >= s.progress.Len() {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown worker"})
		return
	}
	ws := s.progress.Snapshot()[i]
	trip := report.NewTrip(ws.Best, s.rules, s.cfg)
	if trip == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no itinerary yet"})
		return
	}
	writeJSON(w, http.StatusOK, bestJSON{Worker: i, Trip: trip})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// registerMetrics installs Prometheus hooks for every category and returns
// the registry to serve. The caller must call observability.Reset when done.
func registerMetrics() *prom.Registry {
	reg := prom.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := obsprom.New(reg)
	observability.SetPipelineHooks(m)
	observability.SetSearchHooks(m)
	observability.SetCacheHooks(m)
	observability.SetStoreHooks(m)
	return reg
}

// serveStatus listens on addr and serves s until the returned stop func is
// called.
func serveStatus(addr string, s *statusServer, logger *log.Logger) (stop func(), err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("status server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("status server stopped", "err", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("status server shutdown", "err", err)
		}
	}, nil
}
