package rides

import (
	"context"
	"time"

	"go.uber.org/zap"

	"carpool-service/internal/apperrors"
	"carpool-service/internal/events"
	"carpool-service/pkg/kafka"
)

// Store is the persistence port for rides.
type Store interface {
	ByID(ctx context.Context, id string) (*Ride, error)
	Start(ctx context.Context, id string, at time.Time) (*Ride, error)
	Complete(ctx context.Context, id string, at time.Time) (*Ride, error)
}

// Service contains ride lifecycle business logic.
type Service struct {
	store  Store
	events events.Publisher
	log    *zap.SugaredLogger
}

// NewService creates a ride service.
func NewService(store Store, publisher events.Publisher, log *zap.SugaredLogger) *Service {
	return &Service{store: store, events: publisher, log: log}
}

// GetByID fetches a ride.
func (s *Service) GetByID(ctx context.Context, id string) (*Ride, error) {
	return s.store.ByID(ctx, id)
}

// Start transitions a scheduled ride to IN_PROGRESS. Only the ride's driver
// may start it.
func (s *Service) Start(ctx context.Context, rideID, driverID string) (*Ride, error) {
	ride, err := s.store.ByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID != driverID {
		return nil, apperrors.ErrNotRideOwner
	}
	if ride.Status != StatusScheduled {
		return nil, apperrors.ErrRideNotScheduled
	}

	updated, err := s.store.Start(ctx, rideID, time.Now())
	if err != nil {
		return nil, err
	}

	s.emit(kafka.TopicRideStarted, updated.ID, events.RideStartedEvent{
		RideID:    updated.ID,
		DriverID:  updated.DriverID,
		StartedAt: updated.StartTime.Format(time.RFC3339),
	})
	return updated, nil
}

// End completes an in-progress ride, stamping its end time. Only the ride's
// driver may end it, and only from IN_PROGRESS; a rejected call leaves the
// ride untouched and publishes nothing.
func (s *Service) End(ctx context.Context, rideID, driverID string) (*Ride, error) {
	ride, err := s.store.ByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID != driverID {
		return nil, apperrors.ErrNotRideOwner
	}
	if ride.Status != StatusInProgress {
		return nil, apperrors.ErrRideNotInProgress
	}

	updated, err := s.store.Complete(ctx, rideID, time.Now())
	if err != nil {
		return nil, err
	}

	s.emit(kafka.TopicRideEnded, updated.ID, events.RideEndedEvent{
		RideID:   updated.ID,
		DriverID: updated.DriverID,
		Status:   updated.Status,
		EndedAt:  updated.EndTime.Format(time.RFC3339),
	})
	return updated, nil
}

func (s *Service) emit(topic, key string, payload any) {
	if err := s.events.Publish(context.Background(), topic, key, payload); err != nil {
		s.log.Warnw("failed to publish event", "topic", topic, "error", err)
	}
}
