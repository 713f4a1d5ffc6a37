package plan

import "time"

// Stats are the four ranking criteria shared by [Plan] and [Itinerary].
type Stats struct {
	Flights            int
	UniqueDestinations int
	Days               int
	Duration           time.Duration
}

// better compares lexicographically: more unique destinations, then fewer
// days, then fewer flights, then shorter effective duration.
func better(a, b Stats) bool {
	if a.UniqueDestinations != b.UniqueDestinations {
		return a.UniqueDestinations > b.UniqueDestinations
	}
	if a.Days != b.Days {
		return a.Days < b.Days
	}
	if a.Flights != b.Flights {
		return a.Flights < b.Flights
	}
	return a.Duration < b.Duration
}

// Stats returns the plan's ranking criteria.
func (p *Plan) Stats() Stats {
	return Stats{
		Flights:            p.flights,
		UniqueDestinations: p.uniqueDest,
		Days:               p.days,
		Duration:           p.dur,
	}
}

// IsBetter reports whether p ranks strictly above the itinerary best.
// Every plan beats a nil best.
func (p *Plan) IsBetter(best *Itinerary) bool {
	if best == nil {
		return true
	}
	return better(p.Stats(), best.Stats)
}

// IsBetter reports whether it ranks strictly above other.
// Every itinerary beats a nil other.
func (it *Itinerary) IsBetter(other *Itinerary) bool {
	if other == nil {
		return true
	}
	return better(it.Stats, other.Stats)
}
