// Package pkg provides the libraries behind stopover, a search for flight
// itineraries that visit as many airports as possible.
//
// # Overview
//
// Stopover reads a flight schedule, builds a graph of legal connections and
// searches it depth-first from every flight leaving the home airport. The
// work is split across parallel workers; each reports its own best trip.
//
// # Architecture
//
// The data flow through stopover:
//
//	CSV schedule
//	     ↓
//	[source/csvfile] read records, localise times with [tz]
//	     ↓
//	[flight] catalog: flights by airport, sorted by departure
//	     ↓
//	[graph] legal connections under the layover rules
//	     ↓
//	[search] parallel depth-first search over [plan] states
//	     ↓
//	[report] per-worker results → [render] text, JSON, DOT, SVG
//
// [pipeline] ties the stages together, with [cache] answering repeated
// searches and [store] keeping run history. [config] loads settings,
// [errors] carries error codes and [observability] exposes hooks for
// metrics.
//
// # Quick Start
//
//	cfg, err := config.Load("stopover.toml")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(nil, nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Config: cfg})
//	if err != nil {
//	    return err
//	}
//	render.Text(os.Stdout, res.Report)
package pkg
