// Package pipeline runs a stopover search end to end.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Load: read the CSV schedule, build the [flight.Catalog] and the
//     [graph.Graph] of legal connections
//  2. Search: partition the starting flights and run one search engine per
//     worker
//  3. Render: turn the [report.Report] into text, JSON, DOT or SVG
//
// The result of stage 2 is cached under the hash of the schedule file and
// the fingerprint of the configuration, so repeating an identical search
// skips stages 1 and 2. Every run is recorded in a [store.Store].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, s, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Config: cfg})
//	if err != nil {
//	    return err
//	}
//	artifacts, err := pipeline.Render(ctx, res.Report, []string{"text"})
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/stopover/pkg/config"
	"github.com/matzehuels/stopover/pkg/report"
	"github.com/matzehuels/stopover/pkg/search"
	"github.com/matzehuels/stopover/pkg/store"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: text, json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options configures one search.
type Options struct {
	// Config is the validated configuration. Required.
	Config *config.Config

	// Workers overrides Config.Search.Workers when positive.
	Workers int

	// Refresh ignores any cached result and overwrites it.
	Refresh bool

	// Progress receives live counters. When set, it must track exactly
	// Workers workers. When nil, the runner allocates one.
	Progress *search.Progress
}

// ResolvedWorkers returns the worker count the search will use.
func (o Options) ResolvedWorkers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return search.ResolveWorkers(o.Config.Search.Workers)
}

func (o Options) validate() error {
	if o.Config == nil {
		return fmt.Errorf("config is required")
	}
	if o.Progress != nil && o.Progress.Len() != o.ResolvedWorkers() {
		return fmt.Errorf("progress tracks %d workers, search uses %d", o.Progress.Len(), o.ResolvedWorkers())
	}
	return nil
}

// Result is the outcome of [Runner.Execute].
type Result struct {
	Report *report.Report

	// Run is the recorded history entry.
	Run *store.Run

	// Dataset is nil when the report came from cache.
	Dataset *Dataset

	Stats    Stats
	CacheHit bool
}

// Stats contains timings and sizes.
type Stats struct {
	Records    int
	Airports   int
	Flights    int
	Edges      int
	Starts     int
	Workers    int
	LoadTime   time.Duration
	GraphTime  time.Duration
	SearchTime time.Duration
}
