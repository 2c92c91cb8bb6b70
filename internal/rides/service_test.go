package rides

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"carpool-service/internal/apperrors"
	"carpool-service/pkg/kafka"
)

type publishedEvent struct {
	topic string
	key   string
}

type fakePublisher struct {
	published []publishedEvent
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, topic, key string, _ any) error {
	f.published = append(f.published, publishedEvent{topic: topic, key: key})
	return f.err
}

type fakeStore struct {
	rides map[string]*Ride
}

func (f *fakeStore) ByID(_ context.Context, id string) (*Ride, error) {
	r, ok := f.rides[id]
	if !ok {
		return nil, apperrors.ErrRideNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) Start(_ context.Context, id string, at time.Time) (*Ride, error) {
	r, ok := f.rides[id]
	if !ok {
		return nil, apperrors.ErrRideNotFound
	}
	r.Status = StatusInProgress
	r.StartTime = &at
	cp := *r
	return &cp, nil
}

func (f *fakeStore) Complete(_ context.Context, id string, at time.Time) (*Ride, error) {
	r, ok := f.rides[id]
	if !ok {
		return nil, apperrors.ErrRideNotFound
	}
	r.Status = StatusCompleted
	r.EndTime = &at
	cp := *r
	return &cp, nil
}

func newTestService(store *fakeStore) (*Service, *fakePublisher) {
	pub := &fakePublisher{}
	return NewService(store, pub, zap.NewNop().Sugar()), pub
}

func inProgressRide() *Ride {
	return &Ride{
		ID: "ride1", DriverID: "d1", Origin: "A", Destination: "B",
		DepartureTime: time.Now(), AvailableSeats: 2, Status: StatusInProgress,
	}
}

func TestEndRide(t *testing.T) {
	store := &fakeStore{rides: map[string]*Ride{"ride1": inProgressRide()}}
	svc, pub := newTestService(store)

	updated, err := svc.End(context.Background(), "ride1", "d1")
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if updated.Status != StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", updated.Status)
	}
	if updated.EndTime == nil {
		t.Error("expected end_time to be stamped")
	}
	if len(pub.published) != 1 || pub.published[0].topic != kafka.TopicRideEnded {
		t.Errorf("expected exactly one ride.ended event, got %v", pub.published)
	}
}

func TestEndRideSucceedsWhenPublishFails(t *testing.T) {
	store := &fakeStore{rides: map[string]*Ride{"ride1": inProgressRide()}}
	pub := &fakePublisher{err: errors.New("broker unavailable")}
	svc := NewService(store, pub, zap.NewNop().Sugar())

	updated, err := svc.End(context.Background(), "ride1", "d1")
	if err != nil {
		t.Fatalf("publish failure must not fail the ride end: %v", err)
	}
	if updated.Status != StatusCompleted || updated.EndTime == nil {
		t.Errorf("expected the completed ride, got %+v", updated)
	}
}

func TestEndRideNotOwner(t *testing.T) {
	store := &fakeStore{rides: map[string]*Ride{"ride1": inProgressRide()}}
	svc, pub := newTestService(store)

	_, err := svc.End(context.Background(), "ride1", "someone-else")
	if !errors.Is(err, apperrors.ErrNotRideOwner) {
		t.Fatalf("expected ErrNotRideOwner, got %v", err)
	}
	if store.rides["ride1"].Status != StatusInProgress {
		t.Error("ride must be left unmodified")
	}
	if len(pub.published) != 0 {
		t.Errorf("expected no events, got %d", len(pub.published))
	}
}

func TestEndRideNotInProgress(t *testing.T) {
	for _, status := range []string{StatusScheduled, StatusCompleted, StatusCancelled} {
		ride := inProgressRide()
		ride.Status = status
		store := &fakeStore{rides: map[string]*Ride{"ride1": ride}}
		svc, pub := newTestService(store)

		_, err := svc.End(context.Background(), "ride1", "d1")
		if !errors.Is(err, apperrors.ErrRideNotInProgress) {
			t.Errorf("status %s: expected ErrRideNotInProgress, got %v", status, err)
		}
		if store.rides["ride1"].Status != status || store.rides["ride1"].EndTime != nil {
			t.Errorf("status %s: ride must be left unmodified", status)
		}
		if len(pub.published) != 0 {
			t.Errorf("status %s: expected no events, got %d", status, len(pub.published))
		}
	}
}

func TestEndRideNotFound(t *testing.T) {
	svc, _ := newTestService(&fakeStore{rides: map[string]*Ride{}})

	_, err := svc.End(context.Background(), "missing", "d1")
	if !errors.Is(err, apperrors.ErrRideNotFound) {
		t.Fatalf("expected ErrRideNotFound, got %v", err)
	}
}

func TestStartRide(t *testing.T) {
	ride := inProgressRide()
	ride.Status = StatusScheduled
	store := &fakeStore{rides: map[string]*Ride{"ride1": ride}}
	svc, pub := newTestService(store)

	updated, err := svc.Start(context.Background(), "ride1", "d1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if updated.Status != StatusInProgress || updated.StartTime == nil {
		t.Errorf("expected IN_PROGRESS with start_time, got %+v", updated)
	}
	if len(pub.published) != 1 || pub.published[0].topic != kafka.TopicRideStarted {
		t.Errorf("expected one ride.started event, got %v", pub.published)
	}
}

func TestStartRideAlreadyInProgress(t *testing.T) {
	store := &fakeStore{rides: map[string]*Ride{"ride1": inProgressRide()}}
	svc, _ := newTestService(store)

	_, err := svc.Start(context.Background(), "ride1", "d1")
	if !errors.Is(err, apperrors.ErrRideNotScheduled) {
		t.Fatalf("expected ErrRideNotScheduled, got %v", err)
	}
}
