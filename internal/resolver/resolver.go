// Package resolver deduplicates foreign-reference lookups while a view
// is being assembled: however many entities point at the same id, the
// backing store is asked once. A cache lives for one assembly pass and
// is then discarded; there is no cross-request lifetime.
package resolver

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// concurrency bounds ResolveMany's fan-out to the store.
const concurrency = 4

// FetchFunc loads one record. found=false is a cacheable miss, not an
// error; an error degrades to a miss so one bad reference never aborts
// the whole assembly.
type FetchFunc[T any] func(ctx context.Context, id string) (value T, found bool, err error)

type entry[T any] struct {
	value T
	found bool
}

type Cache[T any] struct {
	mu      sync.Mutex
	fetch   FetchFunc[T]
	entries map[string]entry[T]
}

func New[T any](fetch FetchFunc[T]) *Cache[T] {
	return &Cache[T]{
		fetch:   fetch,
		entries: make(map[string]entry[T]),
	}
}

// Resolve returns the record for id, fetching at most once per distinct
// id for the cache's lifetime. Misses (including fetch errors) are
// cached as a zero-value sentinel so repeated misses cost one lookup.
func (c *Cache[T]) Resolve(ctx context.Context, id string) (T, bool) {
	c.mu.Lock()
	if e, ok := c.entries[id]; ok {
		c.mu.Unlock()
		return e.value, e.found
	}
	c.mu.Unlock()

	value, found, err := c.fetch(ctx, id)
	if err != nil {
		var zero T
		value, found = zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// A concurrent ResolveMany may have raced us here; first write wins
	// so every consumer sees the same resolved value.
	if e, ok := c.entries[id]; ok {
		return e.value, e.found
	}
	c.entries[id] = entry[T]{value: value, found: found}
	return value, found
}

// ResolveMany pre-warms the cache for a batch of ids, dispatching the
// uncached ones concurrently. Results are merged under the cache lock
// before it returns, so subsequent Resolve calls are pure map hits.
func (c *Cache[T]) ResolveMany(ctx context.Context, ids []string) {
	var pending []string
	seen := make(map[string]struct{})

	c.mu.Lock()
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := c.entries[id]; !ok {
			pending = append(pending, id)
		}
	}
	c.mu.Unlock()

	if len(pending) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, id := range pending {
		id := id
		g.Go(func() error {
			c.Resolve(gctx, id)
			return nil
		})
	}
	_ = g.Wait() // fetch errors are already degraded to cached misses
}

// Len reports how many distinct ids have been resolved so far.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
