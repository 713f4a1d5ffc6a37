package config

import (
	"slices"

	"github.com/matzehuels/stopover/pkg/errors"
)

// Validate reports the first setting that cannot work. All errors carry
// ErrCodeInvalidConfig unless a more specific code applies.
func (c *Config) Validate() error {
	if err := c.validateAirports(); err != nil {
		return err
	}
	if err := errors.ValidateZoneName(c.Zones.Default); err != nil {
		return err
	}

	s := c.Search
	switch {
	case s.DestCap < 1:
		return invalid("search.dest_cap must be positive, got %d", s.DestCap)
	case s.MinDests < 0:
		return invalid("search.min_dests must not be negative, got %d", s.MinDests)
	case s.MaxDupDests < 0:
		return invalid("search.max_dup_dests must not be negative, got %d", s.MaxDupDests)
	case s.MaxTripDuration <= 0:
		return invalid("search.max_trip_duration must be positive")
	case s.MinHomeLayover < 0 || s.MinHomeLayover > s.MaxHomeLayover:
		return invalid("search home layover bounds %s..%s are inverted or negative", s.MinHomeLayover, s.MaxHomeLayover)
	case s.WindowStart.IsZero() || s.WindowEnd.IsZero():
		return invalid("search.window_start and search.window_end are required")
	case !s.WindowStart.Before(s.WindowEnd.Date):
		return invalid("search window %s..%s is empty", s.WindowStart, s.WindowEnd)
	case !s.LatestStart.IsZero() && s.LatestStart.Before(s.WindowStart.Date):
		return invalid("search.latest_start %s precedes the window", s.LatestStart)
	case s.Workers < 0:
		return invalid("search.workers must not be negative, got %d", s.Workers)
	}

	l := c.Layover
	switch {
	case l.MinDay < 0 || l.MinDay > l.MaxDay:
		return invalid("layover day bounds %s..%s are inverted or negative", l.MinDay, l.MaxDay)
	case l.MinNight < 0 || l.MinNight > l.MaxNight:
		return invalid("layover night bounds %s..%s are inverted or negative", l.MinNight, l.MaxNight)
	case l.OvernightThreshold < 0:
		return invalid("layover.overnight_threshold must not be negative")
	case l.OvernightCheckHour < 0 || l.OvernightCheckHour > 23:
		return invalid("layover.overnight_check_hour must be 0-23, got %d", l.OvernightCheckHour)
	}

	if !slices.Contains([]string{BackendNone, BackendFile, BackendRedis}, c.Cache.Backend) {
		return invalid("cache.backend %q (want none, file or redis)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return invalid("cache.ttl must not be negative")
	}
	if !slices.Contains([]string{BackendNone, BackendFile, BackendMongo}, c.Store.Backend) {
		return invalid("store.backend %q (want none, file or mongo)", c.Store.Backend)
	}
	return nil
}

func (c *Config) validateAirports() error {
	codes := []string{c.Search.Home}
	codes = append(codes, c.Search.RegionalEnd...)
	codes = append(codes, c.Layover.OvernightAirports...)
	for _, code := range codes {
		if err := errors.ValidateAirportCode(code); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "airport list")
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
