// Package nodelink draws itineraries and the airport network as Graphviz
// node-link diagrams.
//
// # Usage
//
// Build DOT source, then render it in-process to SVG:
//
//	dot := nodelink.ItineraryDOT(trip, nodelink.Options{Home: "BOS"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ItineraryDOT] draws one node per airport and one numbered edge per leg,
// dashed for an overnight connection and bold for the legs that return
// home. [NetworkDOT] collapses the flight graph to routes, with edge width
// growing with the number of legal onward connections.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly; no system install is needed.
package nodelink
