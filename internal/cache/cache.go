// Package cache keeps the current user's snapshot of the remote to-do
// collection. The snapshot is only ever replaced by a reload; nothing
// patches cached items in place.
package cache

import (
	"context"
	"sync"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/remote"
)

// Stats summarizes the snapshot.
type Stats struct {
	Total int
	Done  int
}

// Pending is the number of items not yet done.
func (s Stats) Pending() int { return s.Total - s.Done }

// Cache holds the filtered snapshot.
type Cache struct {
	store remote.TodoStore

	mu    sync.RWMutex
	items []model.TodoItem
}

// New returns an empty cache over store.
func New(store remote.TodoStore) *Cache {
	return &Cache{store: store}
}

// Reload fetches the whole collection, keeps the items owned by owner and
// replaces the snapshot. On error the previous snapshot is kept.
func (c *Cache) Reload(ctx context.Context, owner string) ([]model.TodoItem, error) {
	all, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]model.TodoItem, 0, len(all))
	seen := make(map[string]struct{}, len(all))
	for _, it := range all {
		if it.Owner != owner {
			continue
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		mine = append(mine, it)
	}

	c.mu.Lock()
	c.items = mine
	c.mu.Unlock()
	return clone(mine), nil
}

// Items returns a copy of the snapshot.
func (c *Cache) Items() []model.TodoItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.items)
}

// Len is the number of cached items.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get looks up a cached item by id.
func (c *Cache) Get(id string) (model.TodoItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.TodoItem{}, false
}

// Stats counts total and done items.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Count(c.items)
}

// Count computes Stats for any item list.
func Count(items []model.TodoItem) Stats {
	s := Stats{Total: len(items)}
	for _, it := range items {
		if it.Done {
			s.Done++
		}
	}
	return s
}

func clone(items []model.TodoItem) []model.TodoItem {
	return append([]model.TodoItem(nil), items...)
}
