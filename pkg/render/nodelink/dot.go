package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stopover/pkg/graph"
	"github.com/matzehuels/stopover/pkg/report"
)

// Options configures diagram generation.
type Options struct {
	// Home is highlighted as the trip origin.
	Home string
	// Detailed adds local departure times to itinerary edge labels.
	Detailed bool
}

func header(buf *bytes.Buffer, rankdir string) {
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")
}

func homeNode(buf *bytes.Buffer, home string) {
	if home != "" {
		fmt.Fprintf(buf, "  %q [fillcolor=\"#cde8e5\", penwidth=2];\n", home)
	}
}

// ItineraryDOT draws t. Airports appear once however often they are
// visited; edges are numbered in travel order.
func ItineraryDOT(t *report.Trip, opts Options) string {
	var buf bytes.Buffer
	header(&buf, "LR")
	homeNode(&buf, opts.Home)

	for i, l := range t.Legs {
		label := fmt.Sprintf("%d: %d", i+1, l.Number)
		if opts.Detailed {
			label += "\n" + l.LocalDeparture().Format("Jan 2 15:04")
		}
		attrs := fmt.Sprintf("label=%q", label)
		if i > 0 && t.Legs[i-1].Overnight {
			attrs += ", style=dashed"
		}
		if l.Destination == opts.Home {
			attrs += ", penwidth=2"
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.Origin, l.Destination, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// NetworkDOT draws the route-level view of the flight graph.
func NetworkDOT(links []graph.AirportLink, opts Options) string {
	var buf bytes.Buffer
	header(&buf, "TB")
	homeNode(&buf, opts.Home)

	for _, l := range links {
		width := 1 + math.Log10(1+float64(l.Connections))
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, penwidth=%.2f];\n",
			l.From, l.To, strconv.Itoa(l.Flights), width)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized <svg> tag with one whose
// viewBox starts at the origin, so the image scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
