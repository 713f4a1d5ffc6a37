package flight

import (
	"slices"
	"time"
)

// Window is the global search window. A flight is admissible when it departs
// strictly after Start and arrives strictly before End.
type Window struct {
	Start time.Time
	End   time.Time
}

// Admits reports whether f lies strictly inside the window.
func (w Window) Admits(f *Flight) bool {
	return f.Departure.After(w.Start) && f.Arrival.Before(w.End)
}

// Catalog maps airport codes to the flights departing them, in record order.
// It owns the canonical Flight storage; the zero value is empty and unusable,
// use [BuildCatalog].
type Catalog struct {
	byOrigin map[string][]*Flight
	airports []string // first-seen order
	count    int
}

// BuildCatalog builds the catalog from records, keeping only flights the
// window admits. Every airport that appears in any record, as origin or
// destination, gets an entry, even when none of its departures survive, so
// lookups never have to special-case missing keys.
func BuildCatalog(records []Record, w Window) *Catalog {
	c := &Catalog{byOrigin: make(map[string][]*Flight)}
	for _, r := range records {
		c.touch(r.Origin)
		c.touch(r.Destination)

		f := New(r)
		if !w.Admits(f) {
			continue
		}
		c.byOrigin[f.Origin] = append(c.byOrigin[f.Origin], f)
		c.count++
	}
	return c
}

func (c *Catalog) touch(code string) {
	if _, ok := c.byOrigin[code]; ok {
		return
	}
	c.byOrigin[code] = []*Flight{}
	c.airports = append(c.airports, code)
}

// Departures returns the flights departing code in insertion order.
// The returned slice is shared and must not be modified.
func (c *Catalog) Departures(code string) []*Flight {
	return c.byOrigin[code]
}

// Has reports whether code has a catalog entry.
func (c *Catalog) Has(code string) bool {
	_, ok := c.byOrigin[code]
	return ok
}

// Airports returns every known airport code in first-seen order.
func (c *Catalog) Airports() []string {
	return slices.Clone(c.airports)
}

// FlightCount returns the number of admitted flights.
func (c *Catalog) FlightCount() int { return c.count }

// All calls fn for every admitted flight, airport by airport in first-seen
// order.
func (c *Catalog) All(fn func(*Flight)) {
	for _, code := range c.airports {
		for _, f := range c.byOrigin[code] {
			fn(f)
		}
	}
}

// StartingFlights returns the departures from home whose departure instant
// lies in [from, until]. A zero until means no upper bound.
func (c *Catalog) StartingFlights(home string, from, until time.Time) []*Flight {
	var out []*Flight
	for _, f := range c.byOrigin[home] {
		if f.Departure.Before(from) {
			continue
		}
		if !until.IsZero() && f.Departure.After(until) {
			continue
		}
		out = append(out, f)
	}
	return out
}
