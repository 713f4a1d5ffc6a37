package flight

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Record is a single scheduled flight as supplied by an ingestion adapter.
// Departure and Arrival must carry the local zone of their airports; the
// catalog derives civil days from those zones.
type Record struct {
	Origin      string
	Destination string
	Number      int
	Departure   time.Time
	Arrival     time.Time
}

// Flight is an immutable scheduled flight. Flights are created by
// [BuildCatalog] and referenced by pointer everywhere else.
type Flight struct {
	Origin      string
	Destination string
	Number      int

	Departure time.Time
	Arrival   time.Time
	Duration  time.Duration // Arrival - Departure

	DepartureDay  civil.Date // civil day of Departure in DepartureZone
	ArrivalDay    civil.Date // civil day of Arrival in ArrivalZone
	DepartureZone *time.Location
	ArrivalZone   *time.Location
}

// New builds a Flight from a record, computing the duration and the civil
// days in each airport's own zone.
func New(r Record) *Flight {
	depZone := r.Departure.Location()
	arrZone := r.Arrival.Location()
	return &Flight{
		Origin:        r.Origin,
		Destination:   r.Destination,
		Number:        r.Number,
		Departure:     r.Departure,
		Arrival:       r.Arrival,
		Duration:      r.Arrival.Sub(r.Departure),
		DepartureDay:  civil.DateOf(r.Departure.In(depZone)),
		ArrivalDay:    civil.DateOf(r.Arrival.In(arrZone)),
		DepartureZone: depZone,
		ArrivalZone:   arrZone,
	}
}

// LocalDeparture returns the departure instant in the origin's zone.
func (f *Flight) LocalDeparture() time.Time { return f.Departure.In(f.DepartureZone) }

// LocalArrival returns the arrival instant in the destination's zone.
func (f *Flight) LocalArrival() time.Time { return f.Arrival.In(f.ArrivalZone) }

// CrossesMidnight reports whether the flight lands on a later civil day than
// it leaves.
func (f *Flight) CrossesMidnight() bool { return f.ArrivalDay != f.DepartureDay }

// String renders the flight as "1234: BOS -> PVD, <dep> -> <arr>, 1h5m0s".
func (f *Flight) String() string {
	const layout = "2006-01-02 15:04 MST"
	return fmt.Sprintf("%4d: %s -> %s, %s -> %s, %s",
		f.Number, f.Origin, f.Destination,
		f.LocalDeparture().Format(layout),
		f.LocalArrival().Format(layout),
		f.Duration)
}
