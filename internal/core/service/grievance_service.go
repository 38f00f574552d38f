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

const defaultFeedLimit = 100
const maxFeedLimit = 200

type grievanceService struct {
	grievances ports.GrievanceRepository
	comments   ports.CommentRepository
	notifier   ports.NotificationService
	tx         ports.TxRunner
	cache      ports.FeedCache
	log        zerolog.Logger
}

// NewGrievanceService returns the transition engine and read-side views.
func NewGrievanceService(
	grievances ports.GrievanceRepository,
	comments ports.CommentRepository,
	notifier ports.NotificationService,
	tx ports.TxRunner,
	cache ports.FeedCache,
	log zerolog.Logger,
) ports.GrievanceService {
	return &grievanceService{
		grievances: grievances,
		comments:   comments,
		notifier:   notifier,
		tx:         tx,
		cache:      cache,
		log:        log,
	}
}

func (s *grievanceService) Get(ctx context.Context, id string) (*domain.Grievance, error) {
	return s.grievances.FindByID(ctx, id)
}

// canModerate reports whether actor may change status/priority on g:
// admins always, department officials only for their own department.
// Citizens, including the submitter, never may.
func canModerate(actor ports.Actor, g *domain.Grievance) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	if actor.Role != domain.RoleDepartment {
		return false
	}
	for _, dept := range g.Departments {
		if dept == actor.Department {
			return true
		}
	}
	return false
}

// Update applies a status and/or priority change. The document update, the
// system audit comment, and the submitter notification commit as one
// transaction.
func (s *grievanceService) Update(ctx context.Context, actor ports.Actor, input ports.UpdateGrievanceInput) (*domain.Grievance, error) {
	if input.Status == nil && input.Priority == nil {
		return nil, domain.ErrNoChanges
	}

	g, err := s.grievances.FindByID(ctx, input.GrievanceID)
	if err != nil {
		return nil, fmt.Errorf("update grievance: %w", err)
	}

	if !canModerate(actor, g) {
		return nil, fmt.Errorf("update grievance: %w", domain.ErrForbidden)
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("update grievance: %w: unknown status %q", domain.ErrInvalidTransition, *input.Status)
		}
		if !g.Status.CanTransitionTo(*input.Status) {
			return nil, fmt.Errorf("update grievance: %w (from %s to %s)", domain.ErrInvalidTransition, g.Status, *input.Status)
		}
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, fmt.Errorf("update grievance: %w: unknown priority %q", domain.ErrInvalidTransition, *input.Priority)
		}
		if input.Status == nil && g.Status.Terminal() {
			return nil, fmt.Errorf("update grievance: %w (grievance is %s)", domain.ErrInvalidTransition, g.Status)
		}
	}

	now := time.Now().UTC()
	update := ports.GrievanceUpdate{
		Status:    input.Status,
		Priority:  input.Priority,
		UpdatedAt: now,
	}
	if input.Status != nil && *input.Status == domain.StatusResolved {
		update.ResolvedAt = &now
	}

	comment := &domain.Comment{
		GrievanceID:    g.ID,
		UserID:         actor.ID,
		UserName:       actor.Name,
		UserRole:       actor.Role,
		Text:           changeText(input.Status, input.Priority),
		IsStatusUpdate: true,
		CreatedAt:      now,
	}
	if input.Status != nil {
		comment.NewStatus = *input.Status
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.grievances.ApplyUpdate(txCtx, g.ID, update); err != nil {
			return err
		}
		if err := s.comments.Create(txCtx, comment); err != nil {
			return err
		}
		return s.notifier.NotifyStatusUpdate(txCtx, g, input.Status, input.Priority)
	})
	if err != nil {
		s.log.Error().Err(err).Str("grievance_id", g.ID).Msg("failed to apply grievance update")
		return nil, fmt.Errorf("update grievance: %w", err)
	}

	s.cache.Invalidate(ctx)

	if input.Status != nil {
		metrics.StatusTransitionsTotal.WithLabelValues(string(g.Status), string(*input.Status)).Inc()
		g.Status = *input.Status
	}
	if input.Priority != nil {
		g.Priority = *input.Priority
	}
	g.UpdatedAt = now
	if update.ResolvedAt != nil {
		g.ResolvedAt = update.ResolvedAt
	}

	s.log.Info().
		Str("grievance_id", g.ID).
		Str("actor", actor.ID).
		Str("status", string(g.Status)).
		Str("priority", string(g.Priority)).
		Msg("grievance updated")

	return g, nil
}

// changeText composes the human-readable audit comment for a change.
func changeText(newStatus *domain.Status, newPriority *domain.Priority) string {
	switch {
	case newStatus != nil && newPriority != nil:
		return fmt.Sprintf("Status updated to %s and Priority updated to %s", newStatus.Label(), newPriority.Label())
	case newStatus != nil:
		return fmt.Sprintf("Status updated to %s", newStatus.Label())
	default:
		return fmt.Sprintf("Priority updated to %s", newPriority.Label())
	}
}

// AddComment appends a plain human comment. Any authenticated participant may
// comment; there are no side effects beyond persistence.
func (s *grievanceService) AddComment(ctx context.Context, actor ports.Actor, input ports.AddCommentInput) (*domain.Comment, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, domain.ErrEmptyComment
	}

	if _, err := s.grievances.FindByID(ctx, input.GrievanceID); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	comment := &domain.Comment{
		GrievanceID:    input.GrievanceID,
		UserID:         actor.ID,
		UserName:       actor.Name,
		UserRole:       actor.Role,
		Text:           text,
		IsStatusUpdate: false,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}

func (s *grievanceService) Comments(ctx context.Context, grievanceID string) ([]*domain.Comment, error) {
	return s.comments.ListByGrievance(ctx, grievanceID)
}

// CommunityFeed returns the newest grievances across all departments,
// served from the cache when fresh.
func (s *grievanceService) CommunityFeed(ctx context.Context, limit int) ([]*domain.Grievance, error) {
	limit = clampLimit(limit)
	if feed, ok := s.cache.Get(ctx); ok {
		if len(feed) > limit {
			feed = feed[:limit]
		}
		return feed, nil
	}

	feed, err := s.grievances.List(ctx, ports.ListGrievancesFilter{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("community feed: %w", err)
	}
	s.cache.Set(ctx, feed)
	return feed, nil
}

// DepartmentView returns grievances targeting a department. Officials may
// only view their own department; admins may view any.
func (s *grievanceService) DepartmentView(ctx context.Context, actor ports.Actor, department string, limit int) ([]*domain.Grievance, error) {
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleDepartment:
		if department == "" {
			department = actor.Department
		}
		if department != actor.Department {
			return nil, fmt.Errorf("department view: %w", domain.ErrForbidden)
		}
	default:
		return nil, fmt.Errorf("department view: %w", domain.ErrForbidden)
	}
	if department == "" {
		return nil, fmt.Errorf("department view: %w", domain.ErrUnknownDepartment)
	}

	return s.grievances.List(ctx, ports.ListGrievancesFilter{
		Department: department,
		Limit:      clampLimit(limit),
	})
}

func (s *grievanceService) MyGrievances(ctx context.Context, actor ports.Actor, limit int) ([]*domain.Grievance, error) {
	return s.grievances.List(ctx, ports.ListGrievancesFilter{
		SubmittedBy: actor.ID,
		Limit:       clampLimit(limit),
	})
}

// Summary is the admin aggregate view.
func (s *grievanceService) Summary(ctx context.Context, actor ports.Actor) (*ports.SummaryCounts, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("summary: %w", domain.ErrForbidden)
	}
	return s.grievances.Summary(ctx)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultFeedLimit
	}
	if limit > maxFeedLimit {
		return maxFeedLimit
	}
	return limit
}
