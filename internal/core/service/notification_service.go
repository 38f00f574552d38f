package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/villageconnect/grievance-system/internal/api/metrics"
	"github.com/villageconnect/grievance-system/internal/core/domain"
	"github.com/villageconnect/grievance-system/internal/core/ports"
)

type notificationService struct {
	users         ports.UserRepository
	notifications ports.NotificationRepository
	log           zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(
	users ports.UserRepository,
	notifications ports.NotificationRepository,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{
		users:         users,
		notifications: notifications,
		log:           log,
	}
}

// Handle routes a dispatched fan-out event.
func (s *notificationService) Handle(ctx context.Context, event ports.NotificationEvent) error {
	switch event.Kind {
	case ports.EventSubmissionConfirmed:
		return s.ConfirmSubmission(ctx, event)
	case ports.EventSubmissionBroadcast:
		return s.BroadcastSubmission(ctx, event)
	default:
		return fmt.Errorf("notification: unknown event kind %q", event.Kind)
	}
}

// ConfirmSubmission sends the direct success confirmation to the submitter.
func (s *notificationService) ConfirmSubmission(ctx context.Context, event ports.NotificationEvent) error {
	n := &domain.Notification{
		UserID:         event.SubmitterID,
		Title:          "Grievance Submitted",
		Message:        fmt.Sprintf("Your grievance %q has been successfully submitted.", event.GrievanceTitle),
		Type:           domain.NotificationSuccess,
		GrievanceID:    event.GrievanceID,
		GrievanceTitle: event.GrievanceTitle,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("confirm submission: %w", err)
	}
	metrics.NotificationsCreatedTotal.WithLabelValues("submission_confirmed").Inc()
	return nil
}

// BroadcastSubmission computes the recipient set for a new grievance — every
// admin plus every official of an affected department — and writes one record
// per recipient in a single atomic batch.
func (s *notificationService) BroadcastSubmission(ctx context.Context, event ports.NotificationEvent) error {
	admins, err := s.users.FindAdmins(ctx)
	if err != nil {
		return fmt.Errorf("broadcast submission: find admins: %w", err)
	}

	var officials []*domain.User
	if len(event.Departments) > 0 {
		officials, err = s.users.FindOfficials(ctx, event.Departments)
		if err != nil {
			return fmt.Errorf("broadcast submission: find officials: %w", err)
		}
	}

	message := fmt.Sprintf("New Grievance submitted by %s: %q", event.SubmitterName, event.GrievanceTitle)
	now := time.Now().UTC()

	batch := make([]*domain.Notification, 0, len(admins)+len(officials))
	for _, admin := range admins {
		batch = append(batch, &domain.Notification{
			UserID:         admin.ID,
			Title:          "New Grievance Alert",
			Message:        message,
			Type:           domain.NotificationInfo,
			GrievanceID:    event.GrievanceID,
			GrievanceTitle: event.GrievanceTitle,
			CreatedAt:      now,
		})
	}
	for _, official := range officials {
		batch = append(batch, &domain.Notification{
			UserID:         official.ID,
			Title:          "New Departmental Grievance",
			Message:        message,
			Type:           domain.NotificationWarning,
			GrievanceID:    event.GrievanceID,
			GrievanceTitle: event.GrievanceTitle,
			CreatedAt:      now,
		})
	}

	metrics.FanoutRecipients.Observe(float64(len(batch)))
	if len(batch) == 0 {
		s.log.Debug().Str("grievance_id", event.GrievanceID).Msg("no broadcast recipients")
		return nil
	}

	if err := s.notifications.CreateBatch(ctx, batch); err != nil {
		return fmt.Errorf("broadcast submission: %w", err)
	}
	metrics.NotificationsCreatedTotal.WithLabelValues("submission_broadcast").Add(float64(len(batch)))

	s.log.Info().
		Str("grievance_id", event.GrievanceID).
		Int("recipients", len(batch)).
		Msg("submission broadcast delivered")

	return nil
}

// NotifyStatusUpdate sends the submitter one notification describing
// whichever of status/priority changed. Repeated identical updates produce
// fresh records; there is deliberately no dedup.
func (s *notificationService) NotifyStatusUpdate(
	ctx context.Context,
	g *domain.Grievance,
	newStatus *domain.Status,
	newPriority *domain.Priority,
) error {
	var parts []string
	if newStatus != nil {
		parts = append(parts, "Status changed to "+newStatus.Label())
	}
	if newPriority != nil {
		parts = append(parts, "Priority changed to "+newPriority.Label())
	}
	if len(parts) == 0 {
		return nil
	}

	typ := domain.NotificationInfo
	if newStatus != nil && *newStatus == domain.StatusResolved {
		typ = domain.NotificationSuccess
	}

	n := &domain.Notification{
		UserID:         g.SubmittedBy,
		Title:          "Grievance Update",
		Message:        fmt.Sprintf("Update on %q: %s.", g.Title, strings.Join(parts, " and ")),
		Type:           typ,
		GrievanceID:    g.ID,
		GrievanceTitle: g.Title,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("notify status update: %w", err)
	}
	metrics.NotificationsCreatedTotal.WithLabelValues("status_update").Inc()
	return nil
}
