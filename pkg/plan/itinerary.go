package plan

import (
	"slices"
	"time"

	"github.com/matzehuels/stopover/pkg/flight"
)

// Itinerary is a value snapshot of a finished [Plan]: the full ordered flight
// list plus its statistics. Workers keep one as their best result.
type Itinerary struct {
	Stats
	Segments []*flight.Flight
}

// Snapshot walks the predecessor chain once and returns the flights in
// travel order together with the plan's statistics.
func (p *Plan) Snapshot() *Itinerary {
	fs := make([]*flight.Flight, 0, p.flights)
	for c := p; c != nil; c = c.prev {
		fs = append(fs, c.flight)
	}
	slices.Reverse(fs)
	return &Itinerary{Stats: p.Stats(), Segments: fs}
}

// Airports returns the distinct destinations in the order first reached.
func (it *Itinerary) Airports() []string {
	seen := make(map[string]bool, len(it.Segments))
	var out []string
	for _, f := range it.Segments {
		if !seen[f.Destination] {
			seen[f.Destination] = true
			out = append(out, f.Destination)
		}
	}
	return out
}

// Elapsed returns wall time from the first departure to the last arrival.
func (it *Itinerary) Elapsed() time.Duration {
	if len(it.Segments) == 0 {
		return 0
	}
	return it.Segments[len(it.Segments)-1].Arrival.Sub(it.Segments[0].Departure)
}

// Layover is the gap between two consecutive flights of an itinerary.
type Layover struct {
	Airport  string
	Duration time.Duration
}

// Layovers returns the gaps between consecutive flights; element i follows
// Segments[i].
func (it *Itinerary) Layovers() []Layover {
	if len(it.Segments) < 2 {
		return nil
	}
	out := make([]Layover, 0, len(it.Segments)-1)
	for i := 0; i < len(it.Segments)-1; i++ {
		cur, next := it.Segments[i], it.Segments[i+1]
		out = append(out, Layover{Airport: cur.Destination, Duration: next.Departure.Sub(cur.Arrival)})
	}
	return out
}
