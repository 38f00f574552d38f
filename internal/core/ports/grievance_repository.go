package ports

import (
	"context"
	"time"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

// ListGrievancesFilter carries the query parameters for the read-side views.
// All filters are optional; results are always ordered by created_at descending.
type ListGrievancesFilter struct {
	Department  string // non-empty = department view (array membership)
	SubmittedBy string // non-empty = per-user view
	Status      string // optional: filter by status
	Priority    string // optional: filter by priority
	Limit       int    // max rows (capped at 200 by service)
}

// GrievanceUpdate describes a status/priority change applied by the
// transition engine. Nil fields are left untouched.
type GrievanceUpdate struct {
	Status     *domain.Status
	Priority   *domain.Priority
	ResolvedAt *time.Time // set exactly when Status transitions into resolved
	UpdatedAt  time.Time
}

// SummaryCounts is the admin aggregate view over the grievance collection.
type SummaryCounts struct {
	Total        int64
	ByStatus     map[string]int64
	ByPriority   map[string]int64
	ByDepartment map[string]int64
}

// GrievanceRepository defines persistence operations for grievances.
type GrievanceRepository interface {
	Create(ctx context.Context, g *domain.Grievance) error
	FindByID(ctx context.Context, id string) (*domain.Grievance, error)
	List(ctx context.Context, filter ListGrievancesFilter) ([]*domain.Grievance, error)
	// ApplyUpdate sets the fields described by update on the grievance document.
	ApplyUpdate(ctx context.Context, id string, update GrievanceUpdate) error
	Summary(ctx context.Context) (*SummaryCounts, error)
}
