package cache

import (
	"context"
	"time"

	"github.com/matzehuels/stopover/pkg/observability"
)

// Instrument wraps c so that every Get and Set is reported to the
// registered cache hooks under the given backend name.
func Instrument(c Cache, backend string) Cache {
	return &instrumented{Cache: c, backend: backend}
}

type instrumented struct {
	Cache
	backend string
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := i.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, i.backend)
		} else {
			observability.Cache().OnCacheMiss(ctx, i.backend)
		}
	}
	return data, ok, err
}

func (i *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := i.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, i.backend, len(data))
	}
	return err
}

// Clear forwards to the wrapped backend when it supports clearing.
func (i *instrumented) Clear(ctx context.Context) error {
	if cl, ok := i.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}
