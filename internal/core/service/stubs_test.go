package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/villageconnect/grievance-system/internal/core/domain"
	"github.com/villageconnect/grievance-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs shared across the service tests
// ---------------------------------------------------------------------------

type stubGrievanceRepo struct {
	createErr  error
	created    []*domain.Grievance
	byID       map[string]*domain.Grievance
	updates    []ports.GrievanceUpdate
	updateErr  error
	listCalls  []ports.ListGrievancesFilter
	listResult []*domain.Grievance
	summary    *ports.SummaryCounts
}

func newStubGrievanceRepo() *stubGrievanceRepo {
	return &stubGrievanceRepo{byID: make(map[string]*domain.Grievance)}
}

func (r *stubGrievanceRepo) Create(_ context.Context, g *domain.Grievance) error {
	if r.createErr != nil {
		return r.createErr
	}
	if g.ID == "" {
		g.ID = fmt.Sprintf("g%d", len(r.created)+1)
	}
	r.created = append(r.created, g)
	r.byID[g.ID] = g
	return nil
}

func (r *stubGrievanceRepo) FindByID(_ context.Context, id string) (*domain.Grievance, error) {
	g, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrGrievanceNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *stubGrievanceRepo) List(_ context.Context, filter ports.ListGrievancesFilter) ([]*domain.Grievance, error) {
	r.listCalls = append(r.listCalls, filter)
	return r.listResult, nil
}

func (r *stubGrievanceRepo) ApplyUpdate(_ context.Context, id string, update ports.GrievanceUpdate) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrGrievanceNotFound
	}
	r.updates = append(r.updates, update)
	return nil
}

func (r *stubGrievanceRepo) Summary(_ context.Context) (*ports.SummaryCounts, error) {
	return r.summary, nil
}

type stubCommentRepo struct {
	createErr error
	created   []*domain.Comment
	byGriev   map[string][]*domain.Comment
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{byGriev: make(map[string][]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, c)
	r.byGriev[c.GrievanceID] = append(r.byGriev[c.GrievanceID], c)
	return nil
}

func (r *stubCommentRepo) ListByGrievance(_ context.Context, grievanceID string) ([]*domain.Comment, error) {
	return r.byGriev[grievanceID], nil
}

type stubNotificationRepo struct {
	createErr error
	batchErr  error
	created   []*domain.Notification
	batches   [][]*domain.Notification
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, n)
	return nil
}

func (r *stubNotificationRepo) CreateBatch(_ context.Context, ns []*domain.Notification) error {
	if r.batchErr != nil {
		return r.batchErr
	}
	r.batches = append(r.batches, ns)
	r.created = append(r.created, ns...)
	return nil
}

func (r *stubNotificationRepo) ListByUser(_ context.Context, userID string, _ int) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id string) (*domain.Notification, error) {
	for _, n := range r.created {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id string) error {
	for _, n := range r.created {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

type stubUserRepo struct {
	users []*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	user.ID = fmt.Sprintf("u%d", len(r.users)+1)
	r.users = append(r.users, user)
	return user, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAdmins(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == domain.RoleAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindOfficials(_ context.Context, departments []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role != domain.RoleDepartment {
			continue
		}
		for _, d := range departments {
			if u.Department == d {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

type stubClassifier struct {
	priority domain.Priority
	err      error
	block    bool // wait for ctx cancellation instead of answering
	calls    int
}

func (c *stubClassifier) Classify(ctx context.Context, _, _ string, _ [][]byte) (domain.Priority, error) {
	c.calls++
	if c.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return c.priority, c.err
}

type stubBlobStore struct {
	err error
	mu  sync.Mutex
	put []string // paths in Put order
}

func (s *stubBlobStore) Put(_ context.Context, path string, _ []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	s.put = append(s.put, path)
	s.mu.Unlock()
	return "https://cdn.test/" + path, nil
}

type stubDispatcher struct {
	events []ports.NotificationEvent
}

func (d *stubDispatcher) Enqueue(event ports.NotificationEvent) {
	d.events = append(d.events, event)
}

type stubFeedCache struct {
	feed        []*domain.Grievance
	has         bool
	sets        [][]*domain.Grievance
	invalidated int
}

func (c *stubFeedCache) Get(_ context.Context) ([]*domain.Grievance, bool) {
	return c.feed, c.has
}

func (c *stubFeedCache) Set(_ context.Context, feed []*domain.Grievance) {
	c.sets = append(c.sets, feed)
}

func (c *stubFeedCache) Invalidate(_ context.Context) {
	c.invalidated++
}

type stubTxRunner struct {
	err   error
	calls int
}

func (t *stubTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.err != nil {
		return t.err
	}
	t.calls++
	return fn(ctx)
}

// stubNotifier records NotifyStatusUpdate calls for transition engine tests.
type stubNotifier struct {
	err     error
	updates []string // "<status>/<priority>" per call, "-" for nil
}

func (n *stubNotifier) Handle(context.Context, ports.NotificationEvent) error { return nil }

func (n *stubNotifier) ConfirmSubmission(context.Context, ports.NotificationEvent) error {
	return nil
}

func (n *stubNotifier) BroadcastSubmission(context.Context, ports.NotificationEvent) error {
	return nil
}

func (n *stubNotifier) NotifyStatusUpdate(_ context.Context, _ *domain.Grievance, newStatus *domain.Status, newPriority *domain.Priority) error {
	if n.err != nil {
		return n.err
	}
	parts := []string{"-", "-"}
	if newStatus != nil {
		parts[0] = string(*newStatus)
	}
	if newPriority != nil {
		parts[1] = string(*newPriority)
	}
	n.updates = append(n.updates, strings.Join(parts, "/"))
	return nil
}
