package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stopover/pkg/cache"
	"github.com/matzehuels/stopover/pkg/config"
	"github.com/matzehuels/stopover/pkg/errors"
	"github.com/matzehuels/stopover/pkg/flight"
	"github.com/matzehuels/stopover/pkg/graph"
	"github.com/matzehuels/stopover/pkg/observability"
	"github.com/matzehuels/stopover/pkg/source/csvfile"
)

// Dataset is a loaded schedule with its connection graph.
type Dataset struct {
	// Hash is the SHA-256 of the schedule file.
	Hash    string
	Records []flight.Record
	Catalog *flight.Catalog
	Graph   *graph.Graph

	LoadTime  time.Duration
	GraphTime time.Duration
}

// Load reads cfg.Data.Path and builds the catalog and graph. Rows dropped by
// data.skip_invalid are logged as warnings. A nil logger discards output.
func Load(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Dataset, error) {
	hash, err := hashData(cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	return load(ctx, cfg, hash, logger)
}

// load builds the dataset for a schedule whose hash the caller already holds.
func load(ctx context.Context, cfg *config.Config, hash string, logger *log.Logger) (*Dataset, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	hooks := observability.Pipeline()
	path := cfg.Data.Path

	zones, err := cfg.Resolver()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	reader := csvfile.NewReader(zones, csvfile.Options{
		SkipInvalid: cfg.Data.SkipInvalid,
		OnSkip: func(line int, err error) {
			logger.Warn("skipped flight record", "line", line, "err", err)
		},
	})
	records, err := reader.ReadFile(ctx, path)
	loadTime := time.Since(start)
	hooks.OnLoadComplete(ctx, path, len(records), loadTime, err)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded flights", "path", path, "records", len(records), "duration", loadTime)

	catalog := flight.BuildCatalog(records, cfg.Window())
	hooks.OnCatalogBuilt(ctx, len(catalog.Airports()), catalog.FlightCount())
	logger.Debug("built catalog", "airports", len(catalog.Airports()), "flights", catalog.FlightCount())

	start = time.Now()
	g := graph.Build(catalog, cfg.Rules())
	graphTime := time.Since(start)
	hooks.OnGraphBuilt(ctx, g.FlightCount(), g.EdgeCount(), graphTime)
	logger.Info("built flight graph", "flights", g.FlightCount(), "edges", g.EdgeCount(), "duration", graphTime)

	return &Dataset{
		Hash:      hash,
		Records:   records,
		Catalog:   catalog,
		Graph:     g,
		LoadTime:  loadTime,
		GraphTime: graphTime,
	}, nil
}

func hashData(path string) (string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return "", err
	}
	h, err := cache.HashFile(path)
	if os.IsNotExist(err) {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "flight data %s", path)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash %s", path)
	}
	return h, nil
}

// Starts returns the flights that may begin a trip under cfg.
func (d *Dataset) Starts(cfg *config.Config) []*flight.Flight {
	from, until := cfg.StartRange()
	return d.Catalog.StartingFlights(cfg.Search.Home, from, until)
}

// Hub is an airport ranked by how many legal onward connections leave it.
type Hub struct {
	Airport     string
	Routes      int
	Flights     int
	Connections int
}

// Hubs returns the n busiest airports by outgoing connections; n <= 0
// returns all of them.
func (d *Dataset) Hubs(n int) []Hub {
	byAirport := make(map[string]*Hub)
	for _, l := range d.Graph.AirportLinks() {
		h, ok := byAirport[l.From]
		if !ok {
			h = &Hub{Airport: l.From}
			byAirport[l.From] = h
		}
		h.Routes++
		h.Flights += l.Flights
		h.Connections += l.Connections
	}

	hubs := make([]Hub, 0, len(byAirport))
	for _, h := range byAirport {
		hubs = append(hubs, *h)
	}
	slices.SortFunc(hubs, func(a, b Hub) int {
		return cmp.Or(cmp.Compare(b.Connections, a.Connections), cmp.Compare(a.Airport, b.Airport))
	})
	if n > 0 && len(hubs) > n {
		hubs = hubs[:n]
	}
	return hubs
}

// String summarises the dataset for logs.
func (d *Dataset) String() string {
	return fmt.Sprintf("%d records, %d airports, %d flights, %d connections",
		len(d.Records), len(d.Catalog.Airports()), d.Graph.FlightCount(), d.Graph.EdgeCount())
}
