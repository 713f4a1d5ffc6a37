// Package search runs the exhaustive pruned itinerary search.
//
// # Overview
//
// An [Engine] walks the flight graph depth-first with an explicit stack of
// [plan.Plan] values, one stack per worker. Each popped plan is either
// pruned, recorded as the worker's new best when it ends at a valid trip
// endpoint, extended with a new home-based trip, extended in place along its
// legal successors, or some combination of the last three.
//
// [Run] splits the starting flights across workers with [Partition] and runs
// one engine walk per shard on its own goroutine. Workers share nothing
// mutable except their [Progress] counters; the catalog and graph are
// read-only by the time a search starts.
//
// # Results
//
// Each worker reports its own best itinerary. No merge happens: the output of
// a run is W independent local optima, one per shard. Callers that want a
// single answer pick among them with [plan.Itinerary.IsBetter].
//
// # Cancellation
//
// Workers poll their context every few thousand pops. An interrupted worker
// returns the context's error and reports no itinerary.
package search
