package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/villageconnect/grievance-system/internal/core/domain"
	"github.com/villageconnect/grievance-system/internal/core/ports"
)

func fanoutUsers() *stubUserRepo {
	return &stubUserRepo{users: []*domain.User{
		{ID: "a1", Role: domain.RoleAdmin, DisplayName: "Admin"},
		{ID: "w1", Role: domain.RoleDepartment, Department: "Water Department"},
		{ID: "r1", Role: domain.RoleDepartment, Department: "Roads & Infrastructure"},
		{ID: "c1", Role: domain.RoleCitizen},
	}}
}

func submissionEvent(kind ports.NotificationEventKind) ports.NotificationEvent {
	return ports.NotificationEvent{
		Kind:           kind,
		GrievanceID:    "g1",
		GrievanceTitle: "Burst water pipe",
		Departments:    []string{"Water Department"},
		SubmitterID:    "c1",
		SubmitterName:  "Ravi Kumar",
	}
}

func TestConfirmSubmission_NotifiesSubmitter(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(fanoutUsers(), repo, zerolog.Nop())

	if err := svc.ConfirmSubmission(context.Background(), submissionEvent(ports.EventSubmissionConfirmed)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one notification, got %d", len(repo.created))
	}
	n := repo.created[0]
	if n.UserID != "c1" {
		t.Errorf("confirmation must target the submitter, got %s", n.UserID)
	}
	if n.Type != domain.NotificationSuccess {
		t.Errorf("confirmation is a success notification, got %s", n.Type)
	}
	if n.Title != "Grievance Submitted" {
		t.Errorf("unexpected title: %q", n.Title)
	}
	if n.Message != `Your grievance "Burst water pipe" has been successfully submitted.` {
		t.Errorf("unexpected message: %q", n.Message)
	}
}

func TestBroadcastSubmission_AdminsAndMatchingOfficialsOnly(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(fanoutUsers(), repo, zerolog.Nop())

	if err := svc.BroadcastSubmission(context.Background(), submissionEvent(ports.EventSubmissionBroadcast)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// One admin + the Water Department official. The roads official and the
	// citizen get nothing.
	if len(repo.batches) != 1 {
		t.Fatalf("recipients must be written as one atomic batch, got %d batches", len(repo.batches))
	}
	batch := repo.batches[0]
	if len(batch) != 2 {
		t.Fatalf("expected 2 recipients, got %d", len(batch))
	}

	byUser := map[string]*domain.Notification{}
	for _, n := range batch {
		byUser[n.UserID] = n
	}
	adminNote, ok := byUser["a1"]
	if !ok {
		t.Fatalf("admin missing from broadcast")
	}
	if adminNote.Type != domain.NotificationInfo || adminNote.Title != "New Grievance Alert" {
		t.Errorf("admin notification malformed: %+v", adminNote)
	}
	officialNote, ok := byUser["w1"]
	if !ok {
		t.Fatalf("water official missing from broadcast")
	}
	if officialNote.Type != domain.NotificationWarning || officialNote.Title != "New Departmental Grievance" {
		t.Errorf("official notification malformed: %+v", officialNote)
	}

	want := `New Grievance submitted by Ravi Kumar: "Burst water pipe"`
	if adminNote.Message != want || officialNote.Message != want {
		t.Errorf("unexpected broadcast message: %q / %q", adminNote.Message, officialNote.Message)
	}
}

func TestHandle_RoutesByKind(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(fanoutUsers(), repo, zerolog.Nop())

	if err := svc.Handle(context.Background(), submissionEvent(ports.EventSubmissionConfirmed)); err != nil {
		t.Fatalf("confirm route failed: %v", err)
	}
	if err := svc.Handle(context.Background(), submissionEvent(ports.EventSubmissionBroadcast)); err != nil {
		t.Fatalf("broadcast route failed: %v", err)
	}
	if err := svc.Handle(context.Background(), ports.NotificationEvent{Kind: "mystery"}); err == nil {
		t.Fatalf("unknown kind must error")
	}

	if len(repo.created) != 3 { // 1 confirmation + 2 broadcast recipients
		t.Errorf("expected 3 notifications, got %d", len(repo.created))
	}
}

func TestNotifyStatusUpdate_Messages(t *testing.T) {
	g := &domain.Grievance{
		ID:          "g1",
		Title:       "Burst water pipe",
		SubmittedBy: "c1",
		CreatedAt:   time.Now().UTC(),
	}

	resolved := domain.StatusResolved
	assigned := domain.StatusAssigned
	high := domain.PriorityHigh

	cases := []struct {
		name     string
		status   *domain.Status
		priority *domain.Priority
		wantMsg  string
		wantType domain.NotificationType
	}{
		{
			name:     "status only",
			status:   &assigned,
			wantMsg:  `Update on "Burst water pipe": Status changed to Assigned.`,
			wantType: domain.NotificationInfo,
		},
		{
			name:     "priority only",
			priority: &high,
			wantMsg:  `Update on "Burst water pipe": Priority changed to High.`,
			wantType: domain.NotificationInfo,
		},
		{
			name:     "both, resolved",
			status:   &resolved,
			priority: &high,
			wantMsg:  `Update on "Burst water pipe": Status changed to Resolved and Priority changed to High.`,
			wantType: domain.NotificationSuccess,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubNotificationRepo{}
			svc := NewNotificationService(fanoutUsers(), repo, zerolog.Nop())

			if err := svc.NotifyStatusUpdate(context.Background(), g, tc.status, tc.priority); err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if len(repo.created) != 1 {
				t.Fatalf("expected one notification")
			}
			n := repo.created[0]
			if n.UserID != "c1" {
				t.Errorf("update must target the submitter")
			}
			if n.Title != "Grievance Update" {
				t.Errorf("unexpected title: %q", n.Title)
			}
			if n.Message != tc.wantMsg {
				t.Errorf("message = %q, want %q", n.Message, tc.wantMsg)
			}
			if n.Type != tc.wantType {
				t.Errorf("type = %s, want %s", n.Type, tc.wantType)
			}
		})
	}
}

func TestNotifyStatusUpdate_NoChangesWritesNothing(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(fanoutUsers(), repo, zerolog.Nop())

	g := &domain.Grievance{ID: "g1", Title: "x", SubmittedBy: "c1"}
	if err := svc.NotifyStatusUpdate(context.Background(), g, nil, nil); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("nothing should be written")
	}
}
