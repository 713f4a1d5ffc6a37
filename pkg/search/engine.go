package search

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/matzehuels/stopover/pkg/flight"
	"github.com/matzehuels/stopover/pkg/graph"
	"github.com/matzehuels/stopover/pkg/observability"
	"github.com/matzehuels/stopover/pkg/plan"
)

// Engine holds everything a walk reads: limits, the flight graph and the home
// departures used to splice new trips. It has no mutable state, so one
// Engine serves every worker.
type Engine struct {
	cfg   Config
	graph *graph.Graph
	home  []*flight.Flight // departures from cfg.Home, ascending
}

// NewEngine prepares an engine over a frozen catalog and graph.
func NewEngine(cfg Config, c *flight.Catalog, g *graph.Graph) *Engine {
	home := slices.Clone(c.Departures(cfg.Home))
	slices.SortStableFunc(home, func(a, b *flight.Flight) int {
		return a.Departure.Compare(b.Departure)
	})
	return &Engine{cfg: cfg.WithDefaults(), graph: g, home: home}
}

// Config returns the limits the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Result is one worker's outcome.
type Result struct {
	Best      *plan.Itinerary // nil when no plan met the minimum
	Processed int64
	Elapsed   time.Duration
}

// Search walks every plan reachable from starts and returns the best
// itinerary found. Worker identifies the caller in hooks and progress; wp
// may be nil. If ctx is cancelled the walk stops and only the error is
// returned.
func (e *Engine) Search(ctx context.Context, worker int, starts []*flight.Flight, wp *WorkerProgress) (Result, error) {
	hooks := observability.Search()
	began := time.Now()
	hooks.OnWorkerStart(ctx, worker, len(starts))
	wp.begin(len(starts))

	w := &walk{Engine: e, ctx: ctx, worker: worker, hooks: hooks, progress: wp}
	err := w.run(starts)
	elapsed := time.Since(began)

	wp.finish(w.processed)
	hooks.OnWorkerDone(ctx, worker, w.processed, elapsed, err)
	if err != nil {
		return Result{Processed: w.processed, Elapsed: elapsed}, err
	}
	return Result{Best: w.best, Processed: w.processed, Elapsed: elapsed}, nil
}

// walk is the per-worker state of one search.
type walk struct {
	*Engine
	ctx      context.Context
	worker   int
	hooks    observability.SearchHooks
	progress *WorkerProgress

	stack     []*plan.Plan
	best      *plan.Itinerary
	processed int64
}

func (w *walk) run(starts []*flight.Flight) error {
	w.stack = make([]*plan.Plan, 0, len(starts))
	for _, f := range starts {
		w.stack = append(w.stack, plan.NewRoot(f))
	}

	for len(w.stack) > 0 {
		p := w.pop()
		w.processed++
		if w.processed%cancelCheckInterval == 0 {
			if err := w.ctx.Err(); err != nil {
				return err
			}
		}
		if w.processed%w.cfg.ProgressInterval == 0 {
			w.progress.report(w.processed, len(w.stack))
			w.hooks.OnProgress(w.ctx, w.worker, w.processed, len(w.stack))
		}
		w.step(p)
	}
	return nil
}

func (w *walk) pop() *plan.Plan {
	n := len(w.stack) - 1
	p := w.stack[n]
	w.stack[n] = nil
	w.stack = w.stack[:n]
	return p
}

// step handles one popped plan.
func (w *walk) step(p *plan.Plan) {
	if w.pruned(p) {
		return
	}

	term := p.Flight()
	if w.cfg.IsEndpoint(term.Destination) {
		if p.UniqueDestinations() >= w.cfg.MinDests && p.IsBetter(w.best) {
			w.record(p)
		}
		if p.UniqueDestinations() < w.cfg.DestCap {
			for _, next := range w.HomeDepartures(term) {
				w.stack = append(w.stack, p.Extend(next, w.cfg.Home))
			}
		}
	}

	early := p.Flights() < w.cfg.DestCap/2
	for _, next := range w.graph.Successors(term) {
		if early && next.Destination == term.Origin {
			continue
		}
		if early && next.Origin == w.cfg.Home {
			continue
		}
		w.stack = append(w.stack, p.Extend(next, w.cfg.Home))
	}
}

func (w *walk) pruned(p *plan.Plan) bool {
	return p.Duration() > w.cfg.MaxTripDuration ||
		p.Flights() > p.UniqueDestinations()+w.cfg.MaxDupDests
}

func (w *walk) record(p *plan.Plan) {
	w.best = p.Snapshot()
	w.progress.setBest(w.best)
	s := w.best.Stats
	w.hooks.OnNewBest(w.ctx, w.worker, s.UniqueDestinations, s.Days, s.Flights, s.Duration)
}

// HomeDepartures returns the flights leaving home whose departure falls in
// [term.Departure+MinHomeLayover, term.Departure+MaxHomeLayover], ascending.
// The window is anchored on the terminal flight's departure, not its arrival.
func (e *Engine) HomeDepartures(term *flight.Flight) []*flight.Flight {
	lo := term.Departure.Add(e.cfg.MinHomeLayover)
	hi := term.Departure.Add(e.cfg.MaxHomeLayover)
	i := sort.Search(len(e.home), func(i int) bool { return !e.home[i].Departure.Before(lo) })
	j := sort.Search(len(e.home), func(i int) bool { return e.home[i].Departure.After(hi) })
	if i >= j {
		return nil
	}
	return e.home[i:j:j]
}

