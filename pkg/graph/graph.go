package graph

import (
	"cmp"
	"slices"

	"github.com/matzehuels/stopover/pkg/flight"
)

// LegalSuccessors returns the flights departing in.Destination that may
// legally follow in, sorted by departure ascending. Ties keep catalog order.
func LegalSuccessors(in *flight.Flight, c *flight.Catalog, r Rules) []*flight.Flight {
	var out []*flight.Flight
	for _, cand := range c.Departures(in.Destination) {
		if r.Accepts(in, cand) {
			out = append(out, cand)
		}
	}
	sortByDeparture(out)
	return out
}

func sortByDeparture(fs []*flight.Flight) {
	slices.SortStableFunc(fs, func(a, b *flight.Flight) int {
		return a.Departure.Compare(b.Departure)
	})
}

// Graph is the static adjacency mapping from a flight to its legal
// successors. It is read-only after [Build] and safe for concurrent use.
type Graph struct {
	adj   map[*flight.Flight][]*flight.Flight
	edges int
}

// Build applies [LegalSuccessors] to every flight in the catalog exactly once.
func Build(c *flight.Catalog, r Rules) *Graph {
	g := &Graph{adj: make(map[*flight.Flight][]*flight.Flight, c.FlightCount())}
	c.All(func(f *flight.Flight) {
		next := LegalSuccessors(f, c, r)
		g.adj[f] = next
		g.edges += len(next)
	})
	return g
}

// Successors returns the legal successors of f, soonest departure first.
// The returned slice is shared and must not be modified.
func (g *Graph) Successors(f *flight.Flight) []*flight.Flight {
	return g.adj[f]
}

// FlightCount returns the number of flights (nodes) in the graph.
func (g *Graph) FlightCount() int { return len(g.adj) }

// EdgeCount returns the number of legal connections.
func (g *Graph) EdgeCount() int { return g.edges }

// AirportLink aggregates the flights on one route and their onward
// connections. It is the airport-level view of the graph.
type AirportLink struct {
	From        string
	To          string
	Flights     int // flights on the From → To route
	Connections int // legal onward connections out of those flights
}

// AirportLinks collapses the flight graph to one entry per route, sorted by
// origin then destination.
func (g *Graph) AirportLinks() []AirportLink {
	type route struct{ from, to string }
	byRoute := make(map[route]*AirportLink)
	for f, next := range g.adj {
		k := route{f.Origin, f.Destination}
		l, ok := byRoute[k]
		if !ok {
			l = &AirportLink{From: f.Origin, To: f.Destination}
			byRoute[k] = l
		}
		l.Flights++
		l.Connections += len(next)
	}

	links := make([]AirportLink, 0, len(byRoute))
	for _, l := range byRoute {
		links = append(links, *l)
	}
	slices.SortFunc(links, func(a, b AirportLink) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})
	return links
}
