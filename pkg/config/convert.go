package config

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/stopover/pkg/flight"
	"github.com/matzehuels/stopover/pkg/graph"
	"github.com/matzehuels/stopover/pkg/search"
	"github.com/matzehuels/stopover/pkg/tz"
)

func set(codes []string) map[string]bool {
	m := make(map[string]bool, len(codes))
	for _, c := range codes {
		m[c] = true
	}
	return m
}

// Rules returns the connection rules for the flight graph.
func (c *Config) Rules() graph.Rules {
	l := c.Layover
	return graph.Rules{
		MinDayLayover:      l.MinDay.Std(),
		MaxDayLayover:      l.MaxDay.Std(),
		MinNightLayover:    l.MinNight.Std(),
		MaxNightLayover:    l.MaxNight.Std(),
		OvernightThreshold: l.OvernightThreshold.Std(),
		OvernightCheckHour: l.OvernightCheckHour,
		OvernightAirports:  set(l.OvernightAirports),
	}
}

// SearchConfig returns the search limits.
func (c *Config) SearchConfig() search.Config {
	s := c.Search
	return search.Config{
		Home:             s.Home,
		RegionalEnd:      set(s.RegionalEnd),
		DestCap:          s.DestCap,
		MinDests:         s.MinDests,
		MaxDupDests:      s.MaxDupDests,
		MaxTripDuration:  s.MaxTripDuration.Std(),
		MinHomeLayover:   s.MinHomeLayover.Std(),
		MaxHomeLayover:   s.MaxHomeLayover.Std(),
		ProgressInterval: s.ProgressInterval,
	}
}

// Resolver loads every configured time zone.
func (c *Config) Resolver() (*tz.Resolver, error) {
	return tz.New(c.Zones.Default, c.Zones.Airports)
}

// Window returns the catalog window: midnight UTC on the start and end dates.
func (c *Config) Window() flight.Window {
	return flight.Window{Start: c.Search.WindowStart.UTC(), End: c.Search.WindowEnd.UTC()}
}

// StartRange returns the departure bounds for starting flights: the window,
// with its end pulled in to the end of LatestStart when that is set.
func (c *Config) StartRange() (from, until time.Time) {
	w := c.Window()
	until = w.End
	if ls := c.Search.LatestStart; !ls.IsZero() {
		if end := ls.AddDays(1).In(time.UTC).Add(-time.Nanosecond); end.Before(until) {
			until = end
		}
	}
	return w.Start, until
}

// Fingerprint serialises every setting that affects search results. Two
// configurations with equal fingerprints produce identical results on the
// same data. Fields tagged json:"-" (workers, backends) are excluded.
func (c *Config) Fingerprint() []byte {
	b, _ := json.Marshal(struct {
		Zones   Zones   `json:"zones"`
		Search  Search  `json:"search"`
		Layover Layover `json:"layover"`
	}{c.Zones, c.Search, c.Layover})
	return b
}
