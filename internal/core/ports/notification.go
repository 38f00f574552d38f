package ports

import (
	"context"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

// NotificationRepository persists notification records. CreateBatch is the
// explicit "pending set of writes that commits atomically" used by the
// fan-out: either every recipient's record is written or none is.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	CreateBatch(ctx context.Context, ns []*domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// NotificationEventKind discriminates the fan-out triggers dispatched after a
// successful submission.
type NotificationEventKind string

const (
	// EventSubmissionConfirmed sends the direct success confirmation to the submitter.
	EventSubmissionConfirmed NotificationEventKind = "submission_confirmed"
	// EventSubmissionBroadcast notifies all admins and matching department officials.
	EventSubmissionBroadcast NotificationEventKind = "submission_broadcast"
)

// NotificationEvent is the DTO carried through the dispatcher to the
// notification service.
type NotificationEvent struct {
	Kind           NotificationEventKind
	GrievanceID    string
	GrievanceTitle string
	Departments    []string
	SubmitterID    string
	SubmitterName  string
}

// NotificationService computes recipient sets and writes notification records.
type NotificationService interface {
	// Handle routes a dispatched event to the matching fan-out.
	Handle(ctx context.Context, event NotificationEvent) error
	// ConfirmSubmission writes the submitter's success confirmation.
	ConfirmSubmission(ctx context.Context, event NotificationEvent) error
	// BroadcastSubmission writes one record per admin and matching official as
	// a single atomic batch.
	BroadcastSubmission(ctx context.Context, event NotificationEvent) error
	// NotifyStatusUpdate writes the submitter's status/priority change
	// notification. Intended to run inside the transition engine's transaction.
	NotifyStatusUpdate(ctx context.Context, g *domain.Grievance, newStatus *domain.Status, newPriority *domain.Priority) error
}

// NotificationDispatcher enqueues fan-out events for asynchronous,
// best-effort delivery.
type NotificationDispatcher interface {
	Enqueue(event NotificationEvent)
}
