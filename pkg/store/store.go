// Package store keeps a history of search runs.
//
// Every `stopover search` records a [Run]: which schedule and settings were
// used, whether the result came from cache, and the full [report.Report].
// Backends:
//   - [FileStore]: one JSON file per run under the user config directory
//   - [MongoStore]: a "runs" collection in MongoDB
//   - [NullStore]: discards everything (store.backend = "none")
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stopover/pkg/report"
)

// Run is one recorded search.
type Run struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	DataPath   string `json:"data_path" bson:"data_path"`
	DataHash   string `json:"data_hash" bson:"data_hash"`
	ConfigHash string `json:"config_hash" bson:"config_hash"`
	Workers    int    `json:"workers" bson:"workers"`
	CacheHit   bool   `json:"cache_hit,omitempty" bson:"cache_hit,omitempty"`

	Report *report.Report `json:"report" bson:"report"`
}

// NewRun returns a run with a fresh ID stamped now.
func NewRun() *Run {
	return &Run{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
}

// Store persists runs.
type Store interface {
	// Save inserts or replaces run by ID.
	Save(ctx context.Context, run *Run) error

	// Get returns the run with id, or an error with code RUN_NOT_FOUND.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns up to limit runs, newest first. A limit of zero or less
	// returns every run.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Delete removes the run with id. Deleting a missing run is not an
	// error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// NullStore records nothing.
type NullStore struct{}

func (NullStore) Save(context.Context, *Run) error { return nil }
func (NullStore) Get(_ context.Context, id string) (*Run, error) {
	return nil, notFound(id)
}
func (NullStore) List(context.Context, int) ([]*Run, error) { return nil, nil }
func (NullStore) Delete(context.Context, string) error      { return nil }
func (NullStore) Close() error                              { return nil }

var _ Store = NullStore{}
