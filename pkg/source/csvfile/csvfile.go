// Package csvfile reads flight schedules from CSV.
//
// The expected header (any column order, extra columns ignored) is:
//
//	departure_airport,arrival_airport,flight_number,departure_time,arrival_time
//
// Times use the layout "2006-01-02 15:04:05" and are wall-clock times at the
// respective airport; a [tz.Resolver] turns them into instants.
package csvfile

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/stopover/pkg/errors"
	"github.com/matzehuels/stopover/pkg/flight"
	"github.com/matzehuels/stopover/pkg/tz"
)

// TimeLayout is the layout of departure_time and arrival_time.
const TimeLayout = "2006-01-02 15:04:05"

// Column names.
const (
	ColOrigin      = "departure_airport"
	ColDestination = "arrival_airport"
	ColNumber      = "flight_number"
	ColDeparture   = "departure_time"
	ColArrival     = "arrival_time"
)

var required = []string{ColOrigin, ColDestination, ColNumber, ColDeparture, ColArrival}

// Options control how malformed rows are handled.
type Options struct {
	// SkipInvalid drops malformed rows instead of failing the whole read.
	SkipInvalid bool
	// OnSkip, if set, is called for every dropped row.
	OnSkip func(line int, err error)
}

// Reader parses flight records.
type Reader struct {
	zones *tz.Resolver
	opts  Options
}

// NewReader returns a Reader that resolves local times with zones.
func NewReader(zones *tz.Resolver, opts Options) *Reader {
	return &Reader{zones: zones, opts: opts}
}

// ReadFile opens path and reads it.
func (r *Reader) ReadFile(ctx context.Context, path string) ([]flight.Record, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "flight data %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return r.Read(ctx, f)
}

// Read parses every row of src. Rows whose arrival precedes their departure,
// whose airport codes are malformed, or whose fields do not parse are errors
// with code INVALID_RECORD, or are skipped when Options.SkipInvalid is set.
func (r *Reader) Read(ctx context.Context, src io.Reader) ([]flight.Record, error) {
	cr := csv.NewReader(src)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty flight data")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read header")
	}
	cols, err := columns(header)
	if err != nil {
		return nil, err
	}
	cr.FieldsPerRecord = len(header)

	var out []flight.Record
	for n := 1; ; n++ {
		if n%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}

		var line int
		if err != nil {
			var pe *csv.ParseError
			if !stderrors.As(err, &pe) {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read flight data")
			}
			line = pe.Line
		} else {
			line, _ = cr.FieldPos(0)
			var rec flight.Record
			if rec, err = r.parse(row, cols); err == nil {
				out = append(out, rec)
				continue
			}
		}

		err = errors.Wrap(errors.ErrCodeInvalidRecord, err, "line %d", line)
		if !r.opts.SkipInvalid {
			return nil, err
		}
		if r.opts.OnSkip != nil {
			r.opts.OnSkip(line, err)
		}
	}
	return out, nil
}

type colIndex map[string]int

func columns(header []string) (colIndex, error) {
	idx := make(colIndex, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range required {
		if _, ok := idx[c]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "missing column %q", c)
		}
	}
	return idx, nil
}

func (r *Reader) parse(row []string, cols colIndex) (flight.Record, error) {
	get := func(c string) string { return strings.TrimSpace(row[cols[c]]) }

	origin, dest := get(ColOrigin), get(ColDestination)
	if err := errors.ValidateAirportCode(origin); err != nil {
		return flight.Record{}, err
	}
	if err := errors.ValidateAirportCode(dest); err != nil {
		return flight.Record{}, err
	}

	num, err := strconv.Atoi(get(ColNumber))
	if err != nil {
		return flight.Record{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "flight number")
	}

	dep, err := r.zones.ParseLocal(TimeLayout, get(ColDeparture), origin)
	if err != nil {
		return flight.Record{}, err
	}
	arr, err := r.zones.ParseLocal(TimeLayout, get(ColArrival), dest)
	if err != nil {
		return flight.Record{}, err
	}
	if arr.Before(dep) {
		return flight.Record{}, errors.New(errors.ErrCodeInvalidRecord,
			"flight %d %s→%s arrives %s before it departs %s", num, origin, dest, arr, dep)
	}

	return flight.Record{Origin: origin, Destination: dest, Number: num, Departure: dep, Arrival: arr}, nil
}
