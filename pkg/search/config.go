package search

import (
	"fmt"
	"time"
)

// DefaultProgressInterval is the number of pops between progress reports.
const DefaultProgressInterval = 1_000_000

// cancelCheckInterval is the number of pops between context checks.
const cancelCheckInterval = 4096

// Config holds the search limits. Layover rules for in-trip connections live
// in [graph.Rules] and are already applied to the graph.
type Config struct {
	// Home is the airport every trip starts from.
	Home string
	// RegionalEnd lists airports besides Home where a trip may end.
	RegionalEnd map[string]bool

	// DestCap stops splicing new trips once this many unique destinations
	// are reached. Half of it bounds the early-phase pruning heuristics.
	DestCap int
	// MinDests is the unique-destination count a plan needs to be recorded.
	MinDests int
	// MaxDupDests is how many flights may land somewhere already visited.
	MaxDupDests int

	// MaxTripDuration caps the effective duration of a plan.
	MaxTripDuration time.Duration
	// MinHomeLayover and MaxHomeLayover bound the rest at home before a
	// spliced trip departs.
	MinHomeLayover time.Duration
	MaxHomeLayover time.Duration

	// ProgressInterval is the number of pops between progress reports.
	// Zero means DefaultProgressInterval.
	ProgressInterval int64
}

// WithDefaults returns a copy with zero-valued optional fields filled in.
func (c Config) WithDefaults() Config {
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = DefaultProgressInterval
	}
	return c
}

// Validate reports the first limit that cannot produce a meaningful search.
func (c Config) Validate() error {
	switch {
	case c.Home == "":
		return fmt.Errorf("search: home airport is required")
	case c.DestCap < 1:
		return fmt.Errorf("search: destination cap must be positive, got %d", c.DestCap)
	case c.MinDests < 0:
		return fmt.Errorf("search: minimum destinations must not be negative, got %d", c.MinDests)
	case c.MaxDupDests < 0:
		return fmt.Errorf("search: duplicate destinations must not be negative, got %d", c.MaxDupDests)
	case c.MaxTripDuration <= 0:
		return fmt.Errorf("search: max trip duration must be positive, got %s", c.MaxTripDuration)
	case c.MinHomeLayover > c.MaxHomeLayover:
		return fmt.Errorf("search: home layover bounds inverted: %s > %s", c.MinHomeLayover, c.MaxHomeLayover)
	}
	return nil
}

// IsEndpoint reports whether a trip may end at code: the home airport or one
// of the regional end airports.
func (c Config) IsEndpoint(code string) bool {
	return code == c.Home || c.RegionalEnd[code]
}
