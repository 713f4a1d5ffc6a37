package store

import (
	"context"
	"time"

	"github.com/matzehuels/stopover/pkg/observability"
)

// Instrument reports every Save to the registered store hooks.
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

type instrumented struct {
	Store
	backend string
}

func (i *instrumented) Save(ctx context.Context, run *Run) error {
	start := time.Now()
	err := i.Store.Save(ctx, run)
	observability.Store().OnRunSaved(ctx, i.backend, time.Since(start), err)
	return err
}
