package plan

import (
	"testing"
	"time"
)

func TestBetterOrder(t *testing.T) {
	base := Stats{Flights: 5, UniqueDestinations: 4, Days: 3, Duration: 10 * time.Hour}

	tests := []struct {
		name string
		a    Stats
		want bool
	}{
		{"more destinations wins", Stats{Flights: 9, UniqueDestinations: 5, Days: 9, Duration: 99 * time.Hour}, true},
		{"fewer destinations loses", Stats{Flights: 1, UniqueDestinations: 3, Days: 1, Duration: time.Hour}, false},
		{"fewer days wins", Stats{Flights: 9, UniqueDestinations: 4, Days: 2, Duration: 99 * time.Hour}, true},
		{"more days loses", Stats{Flights: 1, UniqueDestinations: 4, Days: 4, Duration: time.Hour}, false},
		{"fewer flights wins", Stats{Flights: 4, UniqueDestinations: 4, Days: 3, Duration: 99 * time.Hour}, true},
		{"more flights loses", Stats{Flights: 6, UniqueDestinations: 4, Days: 3, Duration: time.Hour}, false},
		{"shorter wins", Stats{Flights: 5, UniqueDestinations: 4, Days: 3, Duration: 9 * time.Hour}, true},
		{"equal is not better", base, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := better(tt.a, base); got != tt.want {
				t.Errorf("better(%+v, base) = %v, want %v", tt.a, got, tt.want)
			}
		})
	}
}

func TestBetterIsStrictWeakOrdering(t *testing.T) {
	var all []Stats
	for u := 1; u <= 3; u++ {
		for d := 1; d <= 3; d++ {
			for f := 1; f <= 3; f++ {
				for h := 1; h <= 2; h++ {
					all = append(all, Stats{Flights: f, UniqueDestinations: u, Days: d, Duration: time.Duration(h) * time.Hour})
				}
			}
		}
	}

	for _, a := range all {
		if better(a, a) {
			t.Fatalf("irreflexivity violated for %+v", a)
		}
		for _, b := range all {
			if better(a, b) && better(b, a) {
				t.Fatalf("asymmetry violated for %+v, %+v", a, b)
			}
			for _, c := range all {
				if better(a, b) && better(b, c) && !better(a, c) {
					t.Fatalf("transitivity violated for %+v, %+v, %+v", a, b, c)
				}
			}
		}
	}
}

func TestIsBetterNil(t *testing.T) {
	p := NewRoot(mk("BOS", "PVD", 1, at(2, 9, 0), at(2, 10, 0)))
	if !p.IsBetter(nil) {
		t.Error("a plan must beat a nil best")
	}
	it := p.Snapshot()
	if !it.IsBetter(nil) {
		t.Error("an itinerary must beat nil")
	}
	if p.IsBetter(it) || it.IsBetter(it) {
		t.Error("equal plans must not beat each other")
	}
}
