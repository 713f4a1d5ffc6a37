// Package plan implements the persistent path nodes the search builds and
// the ranking used to keep the best one.
//
// A [Plan] is one candidate itinerary prefix ending in a specific flight. It
// links to its predecessor instead of copying the flight list, so the many
// candidates branching off a common prefix share it. Plans are immutable:
// [Plan.Extend] allocates a new node and never touches the receiver. A Plan
// stays alive for as long as a frontier entry, a descendant, or an
// [Itinerary] snapshot references it and is reclaimed by the garbage
// collector afterwards.
package plan

import (
	"fmt"
	"time"

	"github.com/matzehuels/stopover/pkg/flight"
)

// Plan is an immutable node of the persistent path structure.
type Plan struct {
	prev   *Plan
	flight *flight.Flight

	flights    int           // total flights so far
	uniqueDest int           // distinct destination airports so far
	days       int           // whole calendar days consumed
	dur        time.Duration // flight time plus chargeable layovers
}

// NewRoot starts a trip with its first flight. A root always counts one day,
// even when the flight lands after midnight.
func NewRoot(f *flight.Flight) *Plan {
	return &Plan{
		flight:     f,
		flights:    1,
		uniqueDest: 1,
		days:       1,
		dur:        f.Duration,
	}
}

// Extend returns a new Plan that appends next to p. Layovers are charged to
// the effective duration unless next departs the home airport, which is how
// the rest between spliced trips is left out.
func (p *Plan) Extend(next *flight.Flight, home string) *Plan {
	term := p.flight
	np := &Plan{
		prev:       p,
		flight:     next,
		flights:    p.flights + 1,
		uniqueDest: p.uniqueDest,
		days:       p.days,
		dur:        p.dur + next.Duration,
	}

	if !p.visited(next.Destination) {
		np.uniqueDest++
	}
	if next.DepartureDay != term.ArrivalDay {
		np.days++
	}
	if next.CrossesMidnight() {
		np.days++
	}
	if next.Origin != home {
		np.dur += next.Departure.Sub(term.Arrival)
	}

	if np.prev == np {
		panic(fmt.Sprintf("plan: node for flight %d became its own predecessor", next.Number))
	}
	return np
}

// visited reports whether any flight in the chain ending at p lands at code.
func (p *Plan) visited(code string) bool {
	for n := p; n != nil; n = n.prev {
		if n.flight.Destination == code {
			return true
		}
	}
	return false
}

// Prev returns the predecessor, or nil for the first flight of a trip.
func (p *Plan) Prev() *Plan { return p.prev }

// Flight returns the terminal flight.
func (p *Plan) Flight() *flight.Flight { return p.flight }

// Flights returns the number of flights taken so far.
func (p *Plan) Flights() int { return p.flights }

// UniqueDestinations returns the number of distinct destination airports.
func (p *Plan) UniqueDestinations() int { return p.uniqueDest }

// Days returns the whole calendar days consumed so far.
func (p *Plan) Days() int { return p.days }

// Duration returns the effective duration: flight time plus chargeable
// layovers.
func (p *Plan) Duration() time.Duration { return p.dur }

// Len walks the chain and returns its length.
func (p *Plan) Len() int {
	n := 0
	for c := p; c != nil; c = c.prev {
		n++
	}
	return n
}

// Validate checks the chain for cycles and for statistics that contradict
// it. It is meant for tests and debugging; the search never calls it.
func (p *Plan) Validate() error {
	// Floyd's tortoise and hare.
	slow, fast := p, p
	for fast != nil && fast.prev != nil {
		slow, fast = slow.prev, fast.prev.prev
		if slow == fast {
			return fmt.Errorf("plan: cycle in predecessor chain")
		}
	}

	seen := make(map[string]bool)
	n := 0
	for c := p; c != nil; c = c.prev {
		seen[c.flight.Destination] = true
		n++
	}
	if p.flights != n {
		return fmt.Errorf("plan: flight count %d, chain length %d", p.flights, n)
	}
	if p.uniqueDest != len(seen) {
		return fmt.Errorf("plan: unique destinations %d, chain has %d", p.uniqueDest, len(seen))
	}
	return nil
}

// String summarises the plan's statistics.
func (p *Plan) String() string {
	return fmt.Sprintf("Plan: %d flights, %d destinations, %d days taken, %s effective duration",
		p.flights, p.uniqueDest, p.days, p.dur)
}
