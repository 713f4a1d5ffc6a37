package nodelink

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/stopover/pkg/graph"
	"github.com/matzehuels/stopover/pkg/report"
)

func testTrip() *report.Trip {
	dep := time.Date(2025, time.October, 1, 9, 0, 0, 0, time.UTC)
	return &report.Trip{
		Legs: []report.Leg{
			{Origin: "BOS", Destination: "CLT", Number: 101, Departure: dep, Overnight: true},
			{Origin: "CLT", Destination: "BOS", Number: 202, Departure: dep.Add(20 * time.Hour)},
		},
	}
}

func TestItineraryDOT(t *testing.T) {
	dot := ItineraryDOT(testTrip(), Options{Home: "BOS", Detailed: true})
	for _, want := range []string{
		"digraph G {",
		`"BOS" [fillcolor=`,
		`"BOS" -> "CLT" [label="1: 101\nOct 1 09:00"];`,
		`"CLT" -> "BOS" [label="2: 202\nOct 2 05:00", style=dashed, penwidth=2];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestNetworkDOT(t *testing.T) {
	links := []graph.AirportLink{
		{From: "BOS", To: "CLT", Flights: 3, Connections: 9},
		{From: "CLT", To: "BOS", Flights: 1, Connections: 0},
	}
	dot := NetworkDOT(links, Options{})
	if !strings.Contains(dot, `"BOS" -> "CLT" [label="3", penwidth=2.00];`) {
		t.Errorf("missing weighted edge:\n%s", dot)
	}
	if !strings.Contains(dot, `"CLT" -> "BOS" [label="1", penwidth=1.00];`) {
		t.Errorf("missing unweighted edge:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ItineraryDOT(testTrip(), Options{Home: "BOS"}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("viewBox not normalised: %.200s", s)
	}
	if !strings.Contains(s, "CLT") {
		t.Error("SVG missing airport label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("tag without viewBox changed: %s", got)
	}
}
