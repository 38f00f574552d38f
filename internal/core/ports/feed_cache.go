package ports

import (
	"context"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

// FeedCache is the short-lived read-side cache for the community feed.
// Misses and cache errors are never fatal; callers fall through to the store.
type FeedCache interface {
	Get(ctx context.Context) ([]*domain.Grievance, bool)
	Set(ctx context.Context, feed []*domain.Grievance)
	Invalidate(ctx context.Context)
}
