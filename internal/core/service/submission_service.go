package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/villageconnect/grievance-system/internal/api/metrics"
	"github.com/villageconnect/grievance-system/internal/core/domain"
	"github.com/villageconnect/grievance-system/internal/core/ports"
	"github.com/villageconnect/grievance-system/internal/pkg/imaging"
)

const defaultClassifyTimeout = 8 * time.Second

type submissionService struct {
	grievances      ports.GrievanceRepository
	classifier      ports.PriorityClassifier
	blobs           ports.BlobStore
	dispatcher      ports.NotificationDispatcher
	cache           ports.FeedCache
	log             zerolog.Logger
	classifyTimeout time.Duration
}

// NewSubmissionService returns the submission pipeline. A classifyTimeout of
// zero or less falls back to the default 8-second budget.
func NewSubmissionService(
	grievances ports.GrievanceRepository,
	classifier ports.PriorityClassifier,
	blobs ports.BlobStore,
	dispatcher ports.NotificationDispatcher,
	cache ports.FeedCache,
	log zerolog.Logger,
	classifyTimeout time.Duration,
) ports.SubmissionService {
	if classifyTimeout <= 0 {
		classifyTimeout = defaultClassifyTimeout
	}
	return &submissionService{
		grievances:      grievances,
		classifier:      classifier,
		blobs:           blobs,
		dispatcher:      dispatcher,
		cache:           cache,
		log:             log,
		classifyTimeout: classifyTimeout,
	}
}

// Submit runs the full pipeline: normalize images, race classification
// against the timeout while uploading in parallel, persist the grievance
// exactly once after both branches settle, then fan out notifications.
func (s *submissionService) Submit(ctx context.Context, actor ports.Actor, input ports.SubmitGrievanceInput) (*ports.SubmitGrievanceResult, error) {
	if len(input.Departments) == 0 {
		return nil, domain.ErrNoDepartments
	}
	for _, dept := range input.Departments {
		if !domain.KnownDepartment(dept) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDepartment, dept)
		}
	}
	if len(input.Images) > domain.MaxImages {
		return nil, domain.ErrTooManyImages
	}

	normalized, err := s.normalizeImages(ctx, input.Images)
	if err != nil {
		return nil, fmt.Errorf("submit grievance: normalize images: %w", err)
	}

	// Branch A resolves a priority and never fails; branch B uploads every
	// image and aborts the submission on any failure. Nothing is persisted
	// until both have settled.
	var priority domain.Priority
	urls := make([]string, len(input.Images))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		priority = s.classifyWithFallback(gctx, input.Title, input.Description, normalized)
		return nil
	})
	g.Go(func() error {
		return s.uploadImages(gctx, actor.ID, input.Images, normalized, urls)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("submit grievance: %w", err)
	}

	now := time.Now().UTC()
	grievance := &domain.Grievance{
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		Departments:     input.Departments,
		Status:          domain.StatusSubmitted,
		Priority:        priority,
		Location:        strings.TrimSpace(input.Location),
		ImageURLs:       urls,
		SubmittedBy:     actor.ID,
		SubmittedByName: actor.Name,
		ContactPhone:    input.ContactPhone,
		ContactEmail:    actor.Email,
		AssignedTo:      []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.grievances.Create(ctx, grievance); err != nil {
		s.log.Error().Err(err).Str("submitted_by", actor.ID).Msg("failed to persist grievance")
		return nil, fmt.Errorf("submit grievance: %w", err)
	}

	s.cache.Invalidate(ctx)
	metrics.SubmissionsTotal.WithLabelValues(string(priority)).Inc()

	// Best-effort fan-out: the grievance is committed regardless of what
	// happens to these events.
	event := ports.NotificationEvent{
		GrievanceID:    grievance.ID,
		GrievanceTitle: grievance.Title,
		Departments:    grievance.Departments,
		SubmitterID:    actor.ID,
		SubmitterName:  actor.Name,
	}
	confirm := event
	confirm.Kind = ports.EventSubmissionConfirmed
	broadcast := event
	broadcast.Kind = ports.EventSubmissionBroadcast
	s.dispatcher.Enqueue(confirm)
	s.dispatcher.Enqueue(broadcast)

	s.log.Info().
		Str("grievance_id", grievance.ID).
		Str("priority", string(priority)).
		Int("images", len(urls)).
		Str("submitted_by", actor.ID).
		Msg("grievance submitted")

	return &ports.SubmitGrievanceResult{
		ID:        grievance.ID,
		Status:    string(grievance.Status),
		Priority:  string(grievance.Priority),
		ImageURLs: urls,
		CreatedAt: now,
	}, nil
}

// normalizeImages downscales each image independently, preserving the
// index alignment with the original file list.
func (s *submissionService) normalizeImages(ctx context.Context, images []ports.ImageUpload) ([][]byte, error) {
	normalized := make([][]byte, len(images))
	g, _ := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			data, err := imaging.Normalize(img.Data)
			if err != nil {
				return fmt.Errorf("image %q: %w", img.Name, err)
			}
			normalized[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return normalized, nil
}

type classifyResult struct {
	priority domain.Priority
	err      error
}

// classifyWithFallback races the classifier against the configured budget.
// Every failure path — error, timeout, unrecognised label — resolves to
// medium so a stalled classifier can never block a submission.
func (s *submissionService) classifyWithFallback(ctx context.Context, title, description string, images [][]byte) domain.Priority {
	cctx, cancel := context.WithTimeout(ctx, s.classifyTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.ClassificationDuration.Observe(time.Since(start).Seconds())
	}()

	resCh := make(chan classifyResult, 1)
	go func() {
		p, err := s.classifier.Classify(cctx, title, description, images)
		resCh <- classifyResult{priority: p, err: err}
	}()

	select {
	case <-cctx.Done():
		metrics.ClassifierResultsTotal.WithLabelValues("fallback_timeout").Inc()
		s.log.Warn().Str("title", title).Msg("priority classification timed out, using medium")
		return domain.PriorityMedium
	case res := <-resCh:
		if res.err != nil {
			metrics.ClassifierResultsTotal.WithLabelValues("fallback_error").Inc()
			s.log.Warn().Err(res.err).Str("title", title).Msg("priority classification failed, using medium")
			return domain.PriorityMedium
		}
		if !res.priority.Valid() {
			metrics.ClassifierResultsTotal.WithLabelValues("fallback_invalid").Inc()
			s.log.Warn().Str("label", string(res.priority)).Msg("classifier returned unknown label, using medium")
			return domain.PriorityMedium
		}
		metrics.ClassifierResultsTotal.WithLabelValues("classified").Inc()
		return res.priority
	}
}

// uploadImages stores each normalized image under a path keyed by the
// submitter and a timestamp-qualified filename, filling urls index-aligned
// to the input files.
func (s *submissionService) uploadImages(ctx context.Context, ownerID string, images []ports.ImageUpload, normalized [][]byte, urls []string) error {
	ts := time.Now().UnixMilli()
	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			path := fmt.Sprintf("grievances/%s/%d_%s", ownerID, ts, img.Name)
			url, err := s.blobs.Put(gctx, path, normalized[i], "image/jpeg")
			if err != nil {
				return fmt.Errorf("upload %q: %w", img.Name, err)
			}
			urls[i] = url
			return nil
		})
	}
	return g.Wait()
}
