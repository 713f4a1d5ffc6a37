// Package render turns search reports into something a person can read.
//
// # Formats
//
//   - [Text]: one styled table per worker, with local departure and arrival
//     times and an annotation on every layover (length, "night" for an
//     overnight connection, "home" for the rest between spliced trips)
//   - [JSON]: the [report.Report] as indented JSON
//   - DOT and SVG: Graphviz diagrams of an itinerary or of the airport
//     network, in the [nodelink] subpackage
//
// Every worker's itinerary is rendered separately; workers are never ranked
// against each other.
//
// [nodelink]: github.com/matzehuels/stopover/pkg/render/nodelink
package render
