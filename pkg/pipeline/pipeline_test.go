package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/matzehuels/stopover/pkg/cache"
	"github.com/matzehuels/stopover/pkg/config"
	"github.com/matzehuels/stopover/pkg/errors"
	"github.com/matzehuels/stopover/pkg/search"
	"github.com/matzehuels/stopover/pkg/store"
)

const header = "departure_airport,arrival_airport,flight_number,departure_time,arrival_time\n"

const roundTrip = header +
	"BOS,PVD,1,2025-10-02 09:00:00,2025-10-02 11:00:00\n" +
	"PVD,BOS,2,2025-10-02 14:00:00,2025-10-02 16:00:00\n"

func writeData(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flights.csv")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(path string) *config.Config {
	cfg := config.Default()
	cfg.Data.Path = path
	cfg.Search.DestCap = 2
	cfg.Search.MinDests = 1
	cfg.Search.WindowStart = config.NewDate(2025, time.October, 1)
	cfg.Search.WindowEnd = config.NewDate(2025, time.October, 31)
	cfg.Search.Workers = 1
	return cfg
}

func newTestRunner(t *testing.T) (*Runner, *store.FileStore) {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, s, nil)
	t.Cleanup(func() { r.Close() })
	return r, s
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"TEXT", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"text", "json"}); err != nil {
		t.Errorf("ValidateFormats() error = %v", err)
	}
	if err := ValidateFormats([]string{"text", "pdf"}); err == nil {
		t.Error("ValidateFormats() should reject pdf")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("ValidateFormats(nil) error = %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	cfg := testConfig("flights.csv")
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"ok", Options{Config: cfg}, false},
		{"no config", Options{}, true},
		{"progress matches", Options{Config: cfg, Workers: 3, Progress: search.NewProgress(3)}, false},
		{"progress mismatch", Options{Config: cfg, Workers: 3, Progress: search.NewProgress(2)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.validate(); (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolvedWorkers(t *testing.T) {
	cfg := testConfig("flights.csv")
	cfg.Search.Workers = 4
	if got := (Options{Config: cfg}).ResolvedWorkers(); got != 4 {
		t.Errorf("ResolvedWorkers() = %d, want 4 from config", got)
	}
	if got := (Options{Config: cfg, Workers: 2}).ResolvedWorkers(); got != 2 {
		t.Errorf("ResolvedWorkers() = %d, want override 2", got)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	runner, runs := newTestRunner(t)
	cfg := testConfig(writeData(t, roundTrip))

	res, err := runner.Execute(ctx, Options{Config: cfg})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.CacheHit {
		t.Error("first run should not hit the cache")
	}
	if res.Dataset == nil || res.Stats.Records != 2 || res.Stats.Starts != 1 {
		t.Fatalf("Stats = %+v", res.Stats)
	}
	if res.Dataset.Hash != res.Run.DataHash {
		t.Errorf("Dataset.Hash = %q, run recorded %q", res.Dataset.Hash, res.Run.DataHash)
	}
	found := res.Report.Found()
	if len(found) != 1 {
		t.Fatalf("Found() = %d workers, want 1", len(found))
	}
	if trip := found[0].Best; trip.Flights != 2 || strings.Join(trip.Airports, " ") != "PVD BOS" {
		t.Errorf("trip = %+v", trip)
	}

	again, err := runner.Execute(ctx, Options{Config: cfg})
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !again.CacheHit || again.Dataset != nil {
		t.Errorf("second run: CacheHit = %v, Dataset = %v", again.CacheHit, again.Dataset)
	}
	if got := again.Report.Found(); len(got) != 1 || got[0].Best.Flights != 2 {
		t.Errorf("cached report lost the trip: %+v", got)
	}

	fresh, err := runner.Execute(ctx, Options{Config: cfg, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if fresh.CacheHit {
		t.Error("Refresh should bypass the cache")
	}

	history, err := runs.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("store holds %d runs, want 3", len(history))
	}
	hits := 0
	for _, run := range history {
		if run.CacheHit {
			hits++
		}
		if run.DataHash != res.Run.DataHash || run.Report == nil {
			t.Errorf("run %s = %+v", run.ID, run)
		}
	}
	if hits != 1 {
		t.Errorf("%d runs marked as cache hits, want 1", hits)
	}
}

func TestExecuteCacheKeyFollowsConfig(t *testing.T) {
	ctx := context.Background()
	runner, _ := newTestRunner(t)
	cfg := testConfig(writeData(t, roundTrip))

	if _, err := runner.Execute(ctx, Options{Config: cfg}); err != nil {
		t.Fatal(err)
	}

	// Operational settings do not change results.
	cfg.Search.Workers = 2
	res, err := runner.Execute(ctx, Options{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheHit {
		t.Error("changing the worker count should still hit the cache")
	}

	cfg.Search.MaxDupDests = 1
	res, err = runner.Execute(ctx, Options{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("changing a search limit must miss the cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(t *testing.T) *config.Config
		code errors.Code
	}{
		{
			name: "missing data",
			cfg: func(t *testing.T) *config.Config {
				return testConfig(filepath.Join(t.TempDir(), "missing.csv"))
			},
			code: errors.ErrCodeFileNotFound,
		},
		{
			name: "no starting flights",
			cfg: func(t *testing.T) *config.Config {
				cfg := testConfig(writeData(t, roundTrip))
				cfg.Search.Home = "ORH"
				return cfg
			},
			code: errors.ErrCodeNoStarts,
		},
		{
			name: "bad record",
			cfg: func(t *testing.T) *config.Config {
				return testConfig(writeData(t, header+"BOS,PVD,x,2025-10-02 09:00:00,2025-10-02 11:00:00\n"))
			},
			code: errors.ErrCodeInvalidRecord,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, _ := newTestRunner(t)
			_, err := runner.Execute(context.Background(), Options{Config: tt.cfg(t)})
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteInterrupted(t *testing.T) {
	// Enough starts that the walk reaches a cancellation check.
	var b strings.Builder
	b.WriteString(header)
	dep := time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC)
	for i := range 5000 {
		d := dep.Add(time.Duration(i) * time.Minute)
		fmt.Fprintf(&b, "BOS,ORD,%d,%s,%s\n", i+1,
			d.Format(time.DateTime), d.Add(2*time.Hour).Format(time.DateTime))
	}

	runner, runs := newTestRunner(t)
	cfg := testConfig(writeData(t, b.String()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := runner.Execute(ctx, Options{Config: cfg})
	if !errors.Is(err, errors.ErrCodeInterrupted) {
		t.Fatalf("Execute() error = %v, want INTERRUPTED", err)
	}
	if res == nil || !res.Report.Interrupted {
		t.Fatalf("result should carry an interrupted report, got %+v", res)
	}

	history, err := runs.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || !history[0].Report.Interrupted {
		t.Errorf("interrupted run should be recorded, got %d runs", len(history))
	}

	res, err = runner.Execute(context.Background(), Options{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("an interrupted result must not be cached")
	}
}

func TestRender(t *testing.T) {
	runner, _ := newTestRunner(t)
	res, err := runner.Execute(context.Background(), Options{Config: testConfig(writeData(t, roundTrip))})
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := Render(context.Background(), res.Report, []string{FormatText, FormatJSON, FormatDOT})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	worker := res.Report.Found()[0].Worker
	want := []string{"itinerary.txt", "report.json", fmt.Sprintf("worker-%d.dot", worker)}
	if len(artifacts) != len(want) {
		t.Fatalf("Render() returned %d artifacts, want %d", len(artifacts), len(want))
	}
	for i, a := range artifacts {
		if a.Name != want[i] {
			t.Errorf("artifact %d = %s, want %s", i, a.Name, want[i])
		}
		if len(a.Data) == 0 {
			t.Errorf("artifact %s is empty", a.Name)
		}
	}
	if !strings.Contains(string(artifacts[2].Data), "digraph") {
		t.Error("dot artifact is not a graph")
	}

	if _, err := Render(context.Background(), res.Report, []string{"png"}); err == nil {
		t.Error("Render() should reject unknown formats")
	}
}

func TestLoadAndHubs(t *testing.T) {
	cfg := testConfig(writeData(t, roundTrip))
	ds, err := Load(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Hash == "" || len(ds.Records) != 2 {
		t.Errorf("Load() = %s, hash %q", ds, ds.Hash)
	}
	if got := len(ds.Starts(cfg)); got != 1 {
		t.Errorf("Starts() = %d, want 1", got)
	}

	// A caller that already hashed the schedule keeps its hash.
	given, err := load(context.Background(), cfg, ds.Hash[:8], nil)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if given.Hash != ds.Hash[:8] {
		t.Errorf("load() Hash = %q, want the caller's %q", given.Hash, ds.Hash[:8])
	}

	hubs := ds.Hubs(1)
	if len(hubs) != 1 {
		t.Fatalf("Hubs(1) = %d entries", len(hubs))
	}
	if h := hubs[0]; h.Airport != "BOS" || h.Connections != 1 || h.Routes != 1 {
		t.Errorf("top hub = %+v, want BOS with one connection", h)
	}
}
