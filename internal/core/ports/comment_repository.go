package ports

import (
	"context"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

// CommentRepository persists append-only comment records.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	// ListByGrievance returns comments ordered by creation time ascending.
	ListByGrievance(ctx context.Context, grievanceID string) ([]*domain.Comment, error)
}
