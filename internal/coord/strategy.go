package coord

import (
	"context"

	"github.com/Makepad-fr/tada/internal/cache"
)

// Refresher brings the snapshot up to date after a confirmed mutation.
type Refresher interface {
	Refresh(ctx context.Context, c *cache.Cache, owner string) error
}

// FullReload re-fetches the whole collection and rebuilds the snapshot.
type FullReload struct{}

func (FullReload) Refresh(ctx context.Context, c *cache.Cache, owner string) error {
	_, err := c.Reload(ctx, owner)
	return err
}

// RefreshFunc adapts a function to Refresher.
type RefreshFunc func(ctx context.Context, c *cache.Cache, owner string) error

func (f RefreshFunc) Refresh(ctx context.Context, c *cache.Cache, owner string) error {
	return f(ctx, c, owner)
}
