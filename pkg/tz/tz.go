// Package tz maps airport codes to time zones.
//
// The search core never looks zones up itself; ingestion resolves every
// record's local times through a [Resolver] built from configuration.
package tz

import (
	"maps"
	"slices"
	"time"

	"github.com/matzehuels/stopover/pkg/errors"
)

// Resolver answers zone lookups for airport codes. Codes without an explicit
// mapping fall back to the default zone. A Resolver is read-only after New
// and safe for concurrent use.
type Resolver struct {
	def   *time.Location
	zones map[string]*time.Location
}

// New loads defaultZone and every zone named in airports (code → IANA name).
// Each distinct zone is loaded once.
func New(defaultZone string, airports map[string]string) (*Resolver, error) {
	loaded := make(map[string]*time.Location)
	load := func(name string) (*time.Location, error) {
		if loc, ok := loaded[name]; ok {
			return loc, nil
		}
		if err := errors.ValidateZoneName(name); err != nil {
			return nil, err
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidZone, err, "load zone %q", name)
		}
		loaded[name] = loc
		return loc, nil
	}

	def, err := load(defaultZone)
	if err != nil {
		return nil, err
	}

	r := &Resolver{def: def, zones: make(map[string]*time.Location, len(airports))}
	for _, code := range slices.Sorted(maps.Keys(airports)) {
		if err := errors.ValidateAirportCode(code); err != nil {
			return nil, err
		}
		loc, err := load(airports[code])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidZone, err, "airport %s", code)
		}
		r.zones[code] = loc
	}
	return r, nil
}

// Lookup returns code's zone, or the default zone if code is not mapped.
func (r *Resolver) Lookup(code string) *time.Location {
	if loc, ok := r.zones[code]; ok {
		return loc
	}
	return r.def
}

// Default returns the fallback zone.
func (r *Resolver) Default() *time.Location { return r.def }

// ParseLocal parses value with layout as a wall-clock time at airport code.
func (r *Resolver) ParseLocal(layout, value, code string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, r.Lookup(code))
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "time %q at %s", value, code)
	}
	return t, nil
}
