// Package flight holds the immutable flight facts the search operates on and
// the catalog that owns them.
//
// # Overview
//
// A [Record] is what an ingestion adapter produces: origin, destination,
// flight number and the two scheduled instants, each already expressed in the
// local zone of its airport. [BuildCatalog] turns records into [Flight]
// values, computes durations and civil days, filters them to a search
// [Window], and indexes them by origin airport.
//
// # Ownership
//
// The [Catalog] owns every [Flight]. Everything downstream (the flight graph,
// plans, itineraries) holds *Flight pointers into it, so flight identity is
// pointer identity. Nothing mutates a Flight after the catalog is built.
//
// # Concurrency
//
// A Catalog is read-only once [BuildCatalog] returns and is safe for
// concurrent reads by any number of search workers.
package flight
