package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matzehuels/stopover/pkg/flight"
	"github.com/matzehuels/stopover/pkg/graph"
	"github.com/matzehuels/stopover/pkg/plan"
	"github.com/matzehuels/stopover/pkg/search"
)

var eastern = time.FixedZone("UTC-5", -5*3600)

func at(day, hour, min int) time.Time {
	return time.Date(2025, time.October, day, hour, min, 0, 0, eastern)
}

func fl(from, to string, num int, dep, arr time.Time) *flight.Flight {
	return flight.New(flight.Record{Origin: from, Destination: to, Number: num, Departure: dep, Arrival: arr})
}

func testRules() graph.Rules {
	return graph.Rules{
		MinDayLayover:      50 * time.Minute,
		MaxDayLayover:      18 * time.Hour,
		MinNightLayover:    8 * time.Hour,
		MaxNightLayover:    18 * time.Hour,
		OvernightThreshold: 3 * time.Hour,
		OvernightCheckHour: 3,
		OvernightAirports:  map[string]bool{"CLT": true},
	}
}

func testConfig() search.Config {
	return search.Config{Home: "BOS", RegionalEnd: map[string]bool{"PVD": true}}
}

func testItinerary() *plan.Itinerary {
	return &plan.Itinerary{
		Stats: plan.Stats{Flights: 4, UniqueDestinations: 4, Days: 3, Duration: 50 * time.Hour},
		Segments: []*flight.Flight{
			fl("BOS", "CLT", 1, at(1, 21, 0), at(2, 0, 30)),
			fl("CLT", "MIA", 2, at(2, 9, 0), at(2, 11, 0)),
			fl("MIA", "BOS", 3, at(2, 13, 0), at(2, 16, 0)),
			fl("BOS", "ATL", 4, at(6, 8, 0), at(6, 10, 0)),
		},
	}
}

func TestNewTrip(t *testing.T) {
	trip := NewTrip(testItinerary(), testRules(), testConfig())

	if trip.UniqueDestinations != 4 || trip.Flights != 4 || trip.Days != 3 {
		t.Errorf("stats = %+v", trip.Stats)
	}
	if got := len(trip.Legs); got != 4 {
		t.Fatalf("len(Legs) = %d, want 4", got)
	}

	tests := []struct {
		leg       int
		layover   time.Duration
		overnight bool
		homeRest  bool
	}{
		{0, 8*time.Hour + 30*time.Minute, true, false},
		{1, 2 * time.Hour, false, false},
		{2, 88 * time.Hour, false, true},
		{3, 0, false, false},
	}
	for _, tt := range tests {
		l := trip.Legs[tt.leg]
		if l.Layover != tt.layover || l.Overnight != tt.overnight || l.HomeRest != tt.homeRest {
			t.Errorf("leg %d: layover=%v overnight=%v homeRest=%v, want %v %v %v",
				tt.leg, l.Layover, l.Overnight, l.HomeRest, tt.layover, tt.overnight, tt.homeRest)
		}
	}

	if got := trip.Legs[0].LocalDeparture().Hour(); got != 21 {
		t.Errorf("LocalDeparture hour = %d, want 21", got)
	}
	if NewTrip(nil, testRules(), testConfig()) != nil {
		t.Error("NewTrip(nil) should be nil")
	}
}

func TestNew(t *testing.T) {
	it := testItinerary()
	weaker := &plan.Itinerary{Stats: plan.Stats{Flights: 1, UniqueDestinations: 1, Days: 1}}
	results := []search.WorkerResult{
		{Worker: 0, Starts: 3, Result: search.Result{Best: weaker, Processed: 10}},
		{Worker: 1, Starts: 2, Result: search.Result{Best: it, Processed: 20}},
		{Worker: 2, Starts: 1, Result: search.Result{Processed: 5}, Interrupted: true},
	}
	r := New(results, testRules(), testConfig(), time.Second)

	if r.Starts != 6 || r.Processed != 35 || !r.Interrupted {
		t.Errorf("totals = starts %d processed %d interrupted %v", r.Starts, r.Processed, r.Interrupted)
	}
	// Each worker keeps its own best, even when another worker did better.
	if b := r.Workers[0].Best; b == nil || b.UniqueDestinations != 1 {
		t.Errorf("worker 0 best = %+v, want its own 1-destination trip", b)
	}
	if b := r.Workers[1].Best; b == nil || b.UniqueDestinations != 4 {
		t.Errorf("worker 1 best = %+v, want the 4-destination trip", b)
	}
	if r.Workers[2].Best != nil {
		t.Error("interrupted worker should report no best")
	}
	if got := len(r.Found()); got != 2 {
		t.Errorf("len(Found()) = %d, want 2", got)
	}
}

func TestReportJSON(t *testing.T) {
	r := New([]search.WorkerResult{{Result: search.Result{Best: testItinerary()}}}, testRules(), testConfig(), time.Second)
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	var got Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	leg := got.Workers[0].Best.Legs[0]
	if leg.Origin != "BOS" || !leg.Overnight {
		t.Errorf("decoded leg = %+v", leg)
	}
	if got := leg.LocalDeparture().Format("15:04"); got != "21:00" {
		t.Errorf("decoded local departure = %s, want 21:00", got)
	}
}
