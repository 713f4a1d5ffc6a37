package graph

import (
	"time"

	"github.com/matzehuels/stopover/pkg/flight"
)

// Rules are the layover constraints applied to every connection.
type Rules struct {
	MinDayLayover   time.Duration
	MaxDayLayover   time.Duration
	MinNightLayover time.Duration
	MaxNightLayover time.Duration

	// OvernightThreshold is the layover length a connection must exceed
	// before it can be classified as overnight.
	OvernightThreshold time.Duration
	// OvernightCheckHour is the local hour (0-23) a layover must straddle on
	// the inbound arrival day to count as overnight.
	OvernightCheckHour int
	// OvernightAirports lists the airports where overnight layovers are
	// allowed.
	OvernightAirports map[string]bool
}

// AllowsOvernightAt reports whether code is on the overnight allow-list.
func (r Rules) AllowsOvernightAt(code string) bool {
	return r.OvernightAirports[code]
}

// IsOvernight reports whether the connection in → out is an overnight
// layover: longer than the threshold, with in landing at or before the check
// hour on its arrival day (in its arrival zone) and out leaving at or after
// that same instant.
func IsOvernight(in, out *flight.Flight, r Rules) bool {
	layover := out.Departure.Sub(in.Arrival)
	if layover <= r.OvernightThreshold {
		return false
	}
	d := in.ArrivalDay
	checkpoint := time.Date(d.Year, d.Month, d.Day, r.OvernightCheckHour, 0, 0, 0, in.ArrivalZone)
	return !in.Arrival.After(checkpoint) && !out.Departure.Before(checkpoint)
}

// Accepts reports whether out may legally follow in. Exactly one pair of
// bounds decides: night bounds plus the allow-list when the layover is
// overnight, day bounds otherwise.
func (r Rules) Accepts(in, out *flight.Flight) bool {
	if out.Departure.Before(in.Arrival) {
		return false
	}
	layover := out.Departure.Sub(in.Arrival)
	if IsOvernight(in, out, r) {
		return layover >= r.MinNightLayover &&
			layover <= r.MaxNightLayover &&
			r.AllowsOvernightAt(out.Origin)
	}
	return layover >= r.MinDayLayover && layover <= r.MaxDayLayover
}
