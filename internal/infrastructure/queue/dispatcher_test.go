package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/villageconnect/grievance-system/internal/core/domain"
	"github.com/villageconnect/grievance-system/internal/core/ports"
)

// recordingService captures handled events and signals when the expected
// number has arrived.
type recordingService struct {
	mu      sync.Mutex
	events  []ports.NotificationEvent
	expect  int
	arrived chan struct{}
}

func newRecordingService(expect int) *recordingService {
	return &recordingService{expect: expect, arrived: make(chan struct{})}
}

func (s *recordingService) Handle(_ context.Context, event ports.NotificationEvent) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	if len(s.events) == s.expect {
		close(s.arrived)
	}
	s.mu.Unlock()
	return nil
}

func (s *recordingService) ConfirmSubmission(context.Context, ports.NotificationEvent) error {
	return nil
}

func (s *recordingService) BroadcastSubmission(context.Context, ports.NotificationEvent) error {
	return nil
}

func (s *recordingService) NotifyStatusUpdate(context.Context, *domain.Grievance, *domain.Status, *domain.Priority) error {
	return nil
}

func TestDispatcher_DeliversAllEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newRecordingService(4)
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	for _, id := range []string{"g1", "g2", "g3", "g4"} {
		d.Enqueue(ports.NotificationEvent{Kind: ports.EventSubmissionBroadcast, GrievanceID: id})
	}

	select {
	case <-svc.arrived:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not delivered in time")
	}
}

func TestDispatcher_PreservesPerGrievanceOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newRecordingService(6)
	// A single worker makes ordering observable regardless of the shard hash.
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start(ctx)

	kinds := []ports.NotificationEventKind{
		ports.EventSubmissionConfirmed,
		ports.EventSubmissionBroadcast,
	}
	for i := 0; i < 3; i++ {
		for _, k := range kinds {
			d.Enqueue(ports.NotificationEvent{Kind: k, GrievanceID: "g1"})
		}
	}

	select {
	case <-svc.arrived:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not delivered in time")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i, e := range svc.events {
		want := kinds[i%2]
		if e.Kind != want {
			t.Fatalf("event %d = %s, want %s (ordering broken)", i, e.Kind, want)
		}
	}
}
