package graph

import (
	"testing"
	"time"

	"github.com/matzehuels/stopover/pkg/flight"
)

var eastern = time.FixedZone("EST", -5*3600)

func at(day, hour, min int) time.Time {
	return time.Date(2025, time.October, day, hour, min, 0, 0, eastern)
}

func testRules() Rules {
	return Rules{
		MinDayLayover:      50 * time.Minute,
		MaxDayLayover:      18 * time.Hour,
		MinNightLayover:    8 * time.Hour,
		MaxNightLayover:    18 * time.Hour,
		OvernightThreshold: 3 * time.Hour,
		OvernightCheckHour: 3,
		OvernightAirports:  map[string]bool{"RDU": true},
	}
}

func fl(from, to string, num int, dep, arr time.Time) flight.Record {
	return flight.Record{Origin: from, Destination: to, Number: num, Departure: dep, Arrival: arr}
}

func catalogOf(records ...flight.Record) *flight.Catalog {
	return flight.BuildCatalog(records, flight.Window{Start: at(1, 0, 0), End: at(28, 0, 0)})
}

func numbers(fs []*flight.Flight) []int {
	out := make([]int, len(fs))
	for i, f := range fs {
		out[i] = f.Number
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestIsOvernight(t *testing.T) {
	r := testRules()
	tests := []struct {
		name string
		in   flight.Record
		out  flight.Record
		want bool
	}{
		{
			name: "straddles check hour",
			in:   fl("BOS", "RDU", 1, at(2, 23, 0), at(3, 1, 0)),
			out:  fl("RDU", "BOS", 2, at(3, 10, 0), at(3, 12, 0)),
			want: true,
		},
		{
			name: "too short to count",
			in:   fl("BOS", "RDU", 1, at(2, 23, 0), at(3, 2, 0)),
			out:  fl("RDU", "BOS", 2, at(3, 4, 30), at(3, 6, 0)),
			want: false,
		},
		{
			name: "exactly the threshold",
			in:   fl("BOS", "RDU", 1, at(2, 23, 0), at(3, 1, 0)),
			out:  fl("RDU", "BOS", 2, at(3, 4, 0), at(3, 6, 0)),
			want: false,
		},
		{
			name: "lands after check hour on arrival day",
			in:   fl("BOS", "RDU", 1, at(2, 20, 0), at(2, 22, 0)),
			out:  fl("RDU", "BOS", 2, at(3, 7, 0), at(3, 9, 0)),
			want: false,
		},
		{
			name: "departs before check hour",
			in:   fl("BOS", "RDU", 1, at(2, 21, 0), at(2, 23, 30)),
			out:  fl("RDU", "BOS", 2, at(3, 2, 45), at(3, 5, 0)),
			want: false,
		},
		{
			name: "lands exactly at check hour",
			in:   fl("BOS", "RDU", 1, at(3, 1, 0), at(3, 3, 0)),
			out:  fl("RDU", "BOS", 2, at(3, 11, 0), at(3, 13, 0)),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := flight.New(tt.in), flight.New(tt.out)
			if got := IsOvernight(in, out, r); got != tt.want {
				t.Errorf("IsOvernight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLegalSuccessors(t *testing.T) {
	tests := []struct {
		name    string
		inbound flight.Record
		cands   []flight.Record
		want    []int
	}{
		{
			name:    "rejects departures before arrival",
			inbound: fl("BOS", "CLT", 1, at(2, 8, 0), at(2, 10, 0)),
			cands:   []flight.Record{fl("CLT", "MIA", 10, at(2, 9, 0), at(2, 11, 0))},
			want:    nil,
		},
		{
			name:    "rejects zero layover",
			inbound: fl("BOS", "CLT", 1, at(2, 8, 0), at(2, 10, 0)),
			cands:   []flight.Record{fl("CLT", "MIA", 10, at(2, 10, 0), at(2, 12, 0))},
			want:    nil,
		},
		{
			name:    "day layover bounds are inclusive",
			inbound: fl("BOS", "CLT", 1, at(2, 8, 0), at(2, 10, 0)),
			cands: []flight.Record{
				fl("CLT", "MIA", 10, at(2, 10, 50), at(2, 12, 0)),
				fl("CLT", "MIA", 11, at(2, 10, 49), at(2, 12, 0)),
			},
			want: []int{10},
		},
		{
			name:    "overnight at allowed airport",
			inbound: fl("BOS", "RDU", 1, at(2, 23, 0), at(3, 1, 0)),
			cands:   []flight.Record{fl("RDU", "MIA", 10, at(3, 10, 0), at(3, 12, 0))},
			want:    []int{10},
		},
		{
			name:    "overnight at airport off the allow-list",
			inbound: fl("BOS", "CLT", 1, at(2, 23, 0), at(3, 1, 0)),
			cands:   []flight.Record{fl("CLT", "MIA", 10, at(3, 10, 0), at(3, 12, 0))},
			want:    nil,
		},
		{
			// 5h would pass the day bounds, but the overnight predicate
			// selects the night bounds and 5h is below MinNightLayover.
			name:    "overnight uses only night bounds",
			inbound: fl("BOS", "RDU", 1, at(2, 23, 0), at(3, 1, 0)),
			cands:   []flight.Record{fl("RDU", "MIA", 10, at(3, 6, 0), at(3, 8, 0))},
			want:    nil,
		},
		{
			name:    "overnight above max night layover",
			inbound: fl("BOS", "RDU", 1, at(2, 23, 0), at(3, 1, 0)),
			cands:   []flight.Record{fl("RDU", "MIA", 10, at(3, 19, 30), at(3, 21, 0))},
			want:    nil,
		},
		{
			name:    "day layover above max",
			inbound: fl("BOS", "CLT", 1, at(2, 6, 0), at(2, 8, 0)),
			cands:   []flight.Record{fl("CLT", "MIA", 10, at(3, 2, 30), at(3, 4, 0))},
			want:    nil,
		},
		{
			name:    "sorted by departure",
			inbound: fl("BOS", "CLT", 1, at(2, 6, 0), at(2, 8, 0)),
			cands: []flight.Record{
				fl("CLT", "MIA", 10, at(2, 15, 0), at(2, 17, 0)),
				fl("CLT", "ATL", 11, at(2, 9, 0), at(2, 10, 0)),
				fl("CLT", "DFW", 12, at(2, 12, 0), at(2, 14, 0)),
			},
			want: []int{11, 12, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := catalogOf(append([]flight.Record{tt.inbound}, tt.cands...)...)
			in := c.Departures(tt.inbound.Origin)[0]

			got := LegalSuccessors(in, c, testRules())
			if !equalInts(numbers(got), tt.want) {
				t.Errorf("LegalSuccessors() = %v, want %v", numbers(got), tt.want)
			}
			for _, f := range got {
				if f.Departure.Before(in.Arrival) {
					t.Errorf("flight %d departs before the inbound arrival", f.Number)
				}
			}
		})
	}
}

func TestBuild(t *testing.T) {
	c := catalogOf(
		fl("BOS", "CLT", 1, at(2, 6, 0), at(2, 8, 0)),
		fl("CLT", "MIA", 2, at(2, 10, 0), at(2, 12, 0)),
		fl("CLT", "BOS", 3, at(2, 13, 0), at(2, 15, 0)),
		fl("MIA", "BOS", 4, at(2, 14, 0), at(2, 17, 0)),
	)
	g := Build(c, testRules())

	if got := g.FlightCount(); got != 4 {
		t.Errorf("FlightCount() = %d, want 4", got)
	}
	if got := g.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}

	first := c.Departures("BOS")[0]
	succ := g.Successors(first)
	if !equalInts(numbers(succ), []int{2, 3}) {
		t.Errorf("Successors(1) = %v, want [2 3]", numbers(succ))
	}
	if succ[0] != c.Departures("CLT")[0] {
		t.Error("Successors must reference catalog flights by identity")
	}

	links := g.AirportLinks()
	if len(links) != 4 {
		t.Fatalf("AirportLinks() returned %d routes, want 4", len(links))
	}
	if links[0].From != "BOS" || links[0].To != "CLT" || links[0].Connections != 2 {
		t.Errorf("AirportLinks()[0] = %+v, want BOS->CLT with 2 connections", links[0])
	}
}
