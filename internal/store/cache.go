package store

import (
	"context"
	"sync"

	"example.com/deliveries/internal/domain"
)

// Cached memoises reads from the wrapped store for the duration of a session
// so repeated renders don't hit the remote backend. The cache must be
// invalidated before any read that has to observe a write made by another
// session; the explicit refresh command does exactly that. A successful
// Write refreshes the cached copy with the rows just written.
type Cached struct {
	inner Store

	mu    sync.Mutex
	rows  []domain.Row
	valid bool
}

// NewCached wraps a store with session-scoped read caching.
func NewCached(inner Store) *Cached {
	return &Cached{inner: inner}
}

// Read returns the cached rows when present, otherwise reads through.
func (c *Cached) Read(ctx context.Context) ([]domain.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid {
		return copyRows(c.rows), nil
	}

	rows, err := c.inner.Read(ctx)
	if err != nil {
		return nil, err
	}
	c.rows = copyRows(rows)
	c.valid = true
	return rows, nil
}

// Write replaces the backing table and, on success, the cached copy.
func (c *Cached) Write(ctx context.Context, rows []domain.Row) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.inner.Write(ctx, rows); err != nil {
		return err
	}
	c.rows = copyRows(rows)
	c.valid = true
	return nil
}

// Invalidate drops the cached copy; the next Read hits the backing store.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = nil
	c.valid = false
}

func copyRows(rows []domain.Row) []domain.Row {
	out := make([]domain.Row, len(rows))
	copy(out, rows)
	return out
}
