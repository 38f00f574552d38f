package ports

import (
	"context"
	"time"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

// ImageUpload is one attached photo as received from the transport layer.
// Name is the original filename, used when deriving the storage path.
type ImageUpload struct {
	Name string
	Data []byte
}

// SubmitGrievanceInput carries all data needed to file a new grievance.
type SubmitGrievanceInput struct {
	Title        string
	Description  string
	Departments  []string
	Location     string
	ContactPhone string
	Images       []ImageUpload
}

// SubmitGrievanceResult is returned by the service after a submission.
type SubmitGrievanceResult struct {
	ID        string
	Status    string
	Priority  string
	ImageURLs []string
	CreatedAt time.Time
}

// SubmissionService orchestrates the grievance submission pipeline:
// image normalization, parallel classification and upload, persistence,
// and the best-effort notification fan-out.
type SubmissionService interface {
	Submit(ctx context.Context, actor Actor, input SubmitGrievanceInput) (*SubmitGrievanceResult, error)
}

// UpdateGrievanceInput describes a status and/or priority change request.
// At least one of Status/Priority must be set.
type UpdateGrievanceInput struct {
	GrievanceID string
	Status      *domain.Status
	Priority    *domain.Priority
}

// AddCommentInput carries a plain (non-system) comment.
type AddCommentInput struct {
	GrievanceID string
	Text        string
}

// GrievanceService defines the transition engine, comments, and the
// pull-based read-side views.
type GrievanceService interface {
	Get(ctx context.Context, id string) (*domain.Grievance, error)
	Update(ctx context.Context, actor Actor, input UpdateGrievanceInput) (*domain.Grievance, error)
	AddComment(ctx context.Context, actor Actor, input AddCommentInput) (*domain.Comment, error)
	Comments(ctx context.Context, grievanceID string) ([]*domain.Comment, error)

	CommunityFeed(ctx context.Context, limit int) ([]*domain.Grievance, error)
	DepartmentView(ctx context.Context, actor Actor, department string, limit int) ([]*domain.Grievance, error)
	MyGrievances(ctx context.Context, actor Actor, limit int) ([]*domain.Grievance, error)
	Summary(ctx context.Context, actor Actor) (*SummaryCounts, error)
}
