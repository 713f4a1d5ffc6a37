package search

import (
	"sync/atomic"

	"github.com/matzehuels/stopover/pkg/plan"
)

// Progress exposes per-worker counters to readers outside the search, such
// as the terminal UI and the status server. Every field is updated
// atomically by its owning worker and may be read at any time.
type Progress struct {
	workers []WorkerProgress
}

// WorkerProgress holds one worker's counters.
type WorkerProgress struct {
	starts    atomic.Int64
	processed atomic.Int64
	frontier  atomic.Int64
	best      atomic.Pointer[plan.Itinerary]
	done      atomic.Bool
}

// WorkerStatus is a point-in-time copy of a worker's counters.
type WorkerStatus struct {
	Worker    int
	Starts    int64
	Processed int64
	Frontier  int64
	Best      *plan.Itinerary
	Done      bool
}

// NewProgress allocates counters for n workers.
func NewProgress(n int) *Progress {
	return &Progress{workers: make([]WorkerProgress, n)}
}

// Worker returns worker i's counters, or nil when p is nil or i is out of
// range. The engine treats a nil WorkerProgress as "do not report".
func (p *Progress) Worker(i int) *WorkerProgress {
	if p == nil || i < 0 || i >= len(p.workers) {
		return nil
	}
	return &p.workers[i]
}

// Len returns the number of tracked workers.
func (p *Progress) Len() int {
	if p == nil {
		return 0
	}
	return len(p.workers)
}

// Snapshot copies every worker's counters.
func (p *Progress) Snapshot() []WorkerStatus {
	if p == nil {
		return nil
	}
	out := make([]WorkerStatus, len(p.workers))
	for i := range p.workers {
		w := &p.workers[i]
		out[i] = WorkerStatus{
			Worker:    i,
			Starts:    w.starts.Load(),
			Processed: w.processed.Load(),
			Frontier:  w.frontier.Load(),
			Best:      w.best.Load(),
			Done:      w.done.Load(),
		}
	}
	return out
}

// Processed sums the processed counters of all workers.
func (p *Progress) Processed() int64 {
	var n int64
	for _, s := range p.Snapshot() {
		n += s.Processed
	}
	return n
}

// Done reports whether every worker has finished.
func (p *Progress) Done() bool {
	for _, s := range p.Snapshot() {
		if !s.Done {
			return false
		}
	}
	return p.Len() > 0
}

func (w *WorkerProgress) begin(starts int) {
	if w != nil {
		w.starts.Store(int64(starts))
	}
}

func (w *WorkerProgress) report(processed int64, frontier int) {
	if w != nil {
		w.processed.Store(processed)
		w.frontier.Store(int64(frontier))
	}
}

func (w *WorkerProgress) setBest(it *plan.Itinerary) {
	if w != nil {
		w.best.Store(it)
	}
}

func (w *WorkerProgress) finish(processed int64) {
	if w != nil {
		w.processed.Store(processed)
		w.frontier.Store(0)
		w.done.Store(true)
	}
}
