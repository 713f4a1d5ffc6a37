// Package report holds the serialisable outcome of a search.
//
// Search results reference [flight.Flight] values that carry *time.Location
// pointers and predecessor chains; neither survives JSON or BSON. A [Report]
// is a flat copy that the result cache, the run store, the renderers and the
// status server all share.
package report

import (
	"time"

	"github.com/matzehuels/stopover/pkg/graph"
	"github.com/matzehuels/stopover/pkg/plan"
	"github.com/matzehuels/stopover/pkg/search"
)

// Report is the outcome of one search. Each worker keeps the best trip of
// its own shard; the trips are not merged or re-ranked.
type Report struct {
	Home        string        `json:"home" bson:"home"`
	Workers     []Worker      `json:"workers" bson:"workers"`
	Starts      int           `json:"starts" bson:"starts"`
	Processed   int64         `json:"processed" bson:"processed"`
	Elapsed     time.Duration `json:"elapsed_ns" bson:"elapsed_ns"`
	Interrupted bool          `json:"interrupted,omitempty" bson:"interrupted,omitempty"`
}

// Worker summarises one worker's shard. Best is nil when the worker was
// interrupted or no plan reached the minimum destination count.
type Worker struct {
	Worker      int           `json:"worker" bson:"worker"`
	Starts      int           `json:"starts" bson:"starts"`
	Processed   int64         `json:"processed" bson:"processed"`
	Elapsed     time.Duration `json:"elapsed_ns" bson:"elapsed_ns"`
	Interrupted bool          `json:"interrupted,omitempty" bson:"interrupted,omitempty"`
	Best        *Trip         `json:"best,omitempty" bson:"best,omitempty"`
}

// Found returns the workers that produced a trip, in worker order.
func (r *Report) Found() []Worker {
	var out []Worker
	for _, w := range r.Workers {
		if w.Best != nil {
			out = append(out, w)
		}
	}
	return out
}

// Stats mirrors [plan.Stats] with wire names.
type Stats struct {
	Flights            int           `json:"flights" bson:"flights"`
	UniqueDestinations int           `json:"unique_destinations" bson:"unique_destinations"`
	Days               int           `json:"days" bson:"days"`
	Duration           time.Duration `json:"duration_ns" bson:"duration_ns"`
}

func statsOf(s plan.Stats) Stats {
	return Stats{
		Flights:            s.Flights,
		UniqueDestinations: s.UniqueDestinations,
		Days:               s.Days,
		Duration:           s.Duration,
	}
}

// Trip is a flattened itinerary.
type Trip struct {
	Stats    `bson:",inline"`
	Airports []string `json:"airports" bson:"airports"`
	Legs     []Leg    `json:"legs" bson:"legs"`
}

// Leg is one flight of a trip plus the connection that follows it.
type Leg struct {
	Origin        string    `json:"origin" bson:"origin"`
	Destination   string    `json:"destination" bson:"destination"`
	Number        int       `json:"number" bson:"number"`
	Departure     time.Time `json:"departure" bson:"departure"`
	Arrival       time.Time `json:"arrival" bson:"arrival"`
	DepartureZone string    `json:"departure_zone" bson:"departure_zone"`
	ArrivalZone   string    `json:"arrival_zone" bson:"arrival_zone"`

	// Layover is the wait before the next leg; zero on the last leg.
	Layover time.Duration `json:"layover_ns,omitempty" bson:"layover_ns,omitempty"`
	// Overnight marks a layover that straddles the overnight check hour.
	Overnight bool `json:"overnight,omitempty" bson:"overnight,omitempty"`
	// HomeRest marks the break at home between two spliced trips.
	HomeRest bool `json:"home_rest,omitempty" bson:"home_rest,omitempty"`
}

// LocalDeparture returns Departure in the origin's zone.
func (l Leg) LocalDeparture() time.Time { return inZone(l.Departure, l.DepartureZone) }

// LocalArrival returns Arrival in the destination's zone.
func (l Leg) LocalArrival() time.Time { return inZone(l.Arrival, l.ArrivalZone) }

func inZone(t time.Time, name string) time.Time {
	if name == "" {
		return t
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return t.In(loc)
	}
	return t
}

// NewTrip flattens it. Layover flags are computed with rules; a connection
// counts as a home rest when it lands on an endpoint of cfg and the next
// flight leaves from home.
func NewTrip(it *plan.Itinerary, rules graph.Rules, cfg search.Config) *Trip {
	if it == nil {
		return nil
	}
	t := &Trip{
		Stats:    statsOf(it.Stats),
		Airports: it.Airports(),
		Legs:     make([]Leg, len(it.Segments)),
	}
	for i, f := range it.Segments {
		l := Leg{
			Origin:        f.Origin,
			Destination:   f.Destination,
			Number:        f.Number,
			Departure:     f.LocalDeparture(),
			Arrival:       f.LocalArrival(),
			DepartureZone: f.DepartureZone.String(),
			ArrivalZone:   f.ArrivalZone.String(),
		}
		if i+1 < len(it.Segments) {
			next := it.Segments[i+1]
			l.Layover = next.Departure.Sub(f.Arrival)
			l.HomeRest = cfg.IsEndpoint(f.Destination) && next.Origin == cfg.Home
			l.Overnight = !l.HomeRest && graph.IsOvernight(f, next, rules)
		}
		t.Legs[i] = l
	}
	return t
}

// New builds a report from the per-worker results of [search.Run].
func New(results []search.WorkerResult, rules graph.Rules, cfg search.Config, elapsed time.Duration) *Report {
	r := &Report{Home: cfg.Home, Elapsed: elapsed, Workers: make([]Worker, len(results))}
	for i, res := range results {
		w := Worker{
			Worker:      res.Worker,
			Starts:      res.Starts,
			Processed:   res.Processed,
			Elapsed:     res.Elapsed,
			Interrupted: res.Interrupted,
		}
		w.Best = NewTrip(res.Best, rules, cfg)
		r.Workers[i] = w
		r.Starts += res.Starts
		r.Processed += res.Processed
		r.Interrupted = r.Interrupted || res.Interrupted
	}
	return r
}
