package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stopover/pkg/cache"
	"github.com/matzehuels/stopover/pkg/errors"
	"github.com/matzehuels/stopover/pkg/report"
	"github.com/matzehuels/stopover/pkg/search"
	"github.com/matzehuels/stopover/pkg/store"
)

// Runner executes searches with result caching and run history.
//
// A Runner holds no per-search state; one Runner may serve several
// searches, including concurrent ones.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means [cache.DefaultKeyer], a nil
// cache disables caching, a nil store disables history, and a nil logger
// discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, s store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if s == nil {
		s = store.NullStore{}
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Cache: c, Keyer: keyer, Store: s, Logger: logger}
}

// Execute answers a search from cache when possible, and otherwise loads the
// schedule and runs it. Every execution is recorded.
//
// When ctx is cancelled mid-search the returned Result is still populated:
// its report marks the interrupted workers, it is recorded but not cached,
// and the error has code INTERRUPTED.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	cfg := opts.Config
	workers := opts.ResolvedWorkers()

	dataHash, err := hashData(cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ResultKey(dataHash, cfg.Fingerprint())

	run := store.NewRun()
	run.DataPath = cfg.Data.Path
	run.DataHash = dataHash
	run.ConfigHash = cache.Hash(cfg.Fingerprint())
	run.Workers = workers

	if !opts.Refresh {
		if rep, ok := r.cached(ctx, key); ok {
			r.Logger.Info("using cached result", "key", key[:min(len(key), 24)])
			run.CacheHit = true
			run.Report = rep
			r.record(ctx, run)
			return &Result{Report: rep, Run: run, CacheHit: true, Stats: Stats{Workers: workers}}, nil
		}
	}

	ds, err := load(ctx, cfg, dataHash, r.Logger)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	res := &Result{
		Run:     run,
		Dataset: ds,
		Stats: Stats{
			Records:   len(ds.Records),
			Airports:  len(ds.Catalog.Airports()),
			Flights:   ds.Catalog.FlightCount(),
			Edges:     ds.Graph.EdgeCount(),
			Workers:   workers,
			LoadTime:  ds.LoadTime,
			GraphTime: ds.GraphTime,
		},
	}

	starts := ds.Starts(cfg)
	res.Stats.Starts = len(starts)
	if len(starts) == 0 {
		return nil, errors.New(errors.ErrCodeNoStarts, "no flights leave %s inside the search window", cfg.Search.Home)
	}

	sc := cfg.SearchConfig()
	engine := search.NewEngine(sc, ds.Catalog, ds.Graph)
	progress := opts.Progress
	if progress == nil {
		progress = search.NewProgress(workers)
	}

	r.Logger.Info("searching", "starts", len(starts), "workers", workers)
	began := time.Now()
	results, searchErr := search.Run(ctx, engine, starts, workers, progress)
	res.Stats.SearchTime = time.Since(began)

	res.Report = report.New(results, cfg.Rules(), engine.Config(), res.Stats.SearchTime)
	run.Report = res.Report
	r.record(ctx, run)

	if searchErr != nil {
		return res, errors.Wrap(errors.ErrCodeInterrupted, searchErr, "search stopped after %s", res.Stats.SearchTime.Round(time.Millisecond))
	}
	r.Logger.Info("search complete", "processed", res.Report.Processed, "duration", res.Stats.SearchTime)

	r.save(ctx, key, res.Report, cfg.Cache.TTL.Std())
	return res, nil
}

// cached returns the report under key. Backend and decoding failures are
// logged and treated as misses.
func (r *Runner) cached(ctx context.Context, key string) (*report.Report, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "err", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		r.Logger.Warn("discarding unreadable cache entry", "err", err)
		return nil, false
	}
	return &rep, true
}

func (r *Runner) save(ctx context.Context, key string, rep *report.Report, ttl time.Duration) {
	data, err := json.Marshal(rep)
	if err != nil {
		r.Logger.Warn("encode result for cache", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	}
}

// record saves run, using a fresh context so that an interrupted search is
// still written.
func (r *Runner) record(ctx context.Context, run *store.Run) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := r.Store.Save(ctx, run); err != nil {
		r.Logger.Warn("could not record run", "id", run.ID, "err", err)
		return
	}
	r.Logger.Debug("recorded run", "id", run.ID)
}

// Close releases the cache and the store.
func (r *Runner) Close() error {
	var errs []error
	if r.Cache != nil {
		errs = append(errs, r.Cache.Close())
	}
	if r.Store != nil {
		errs = append(errs, r.Store.Close())
	}
	return stderrors.Join(errs...)
}
