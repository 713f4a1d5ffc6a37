// Package graph builds the flight-connectivity graph the search walks.
//
// # Overview
//
// Nodes are individual flights (by pointer identity, see package flight) and
// a directed edge A → B means B may legally follow A: B departs the airport A
// lands at, after A lands, with a layover inside the configured bounds.
//
// The per-edge legality test is [LegalSuccessors]. It classifies every
// candidate connection as either a day layover or an overnight layover with
// [IsOvernight], and then applies exactly one pair of bounds:
//
//   - Overnight: [Rules.MinNightLayover] ≤ layover ≤ [Rules.MaxNightLayover],
//     and the connecting airport must be in [Rules.OvernightAirports].
//   - Day: [Rules.MinDayLayover] ≤ layover ≤ [Rules.MaxDayLayover].
//
// A layover is overnight when it is longer than [Rules.OvernightThreshold]
// and straddles [Rules.OvernightCheckHour] local time on the inbound
// flight's arrival day at the connecting airport.
//
// # Building
//
// [Build] applies [LegalSuccessors] to every flight in a catalog once. The
// result is immutable and safe for concurrent reads; search workers share a
// single [Graph] without locking.
//
//	g := graph.Build(catalog, rules)
//	for _, next := range g.Successors(f) {
//	    // next departs f.Destination, soonest first
//	}
package graph
