package reservations

import (
	"context"
	"time"

	"go.uber.org/zap"

	"carpool-service/internal/apperrors"
	"carpool-service/internal/events"
	"carpool-service/pkg/kafka"
)

// Store is the persistence port for reservations and the adjacent user and
// ride reads the cancellation flow needs.
type Store interface {
	UserExists(ctx context.Context, id string) error
	ByID(ctx context.Context, id string) (*Reservation, error)
	SetStatus(ctx context.Context, id, status string) (*Reservation, error)
	Ride(ctx context.Context, rideID string) (*RideInfo, error)
	SetRideSeats(ctx context.Context, rideID string, seats int) error
}

// Service contains reservation business logic.
type Service struct {
	store  Store
	events events.Publisher
	log    *zap.SugaredLogger
}

// NewService creates a reservation service.
func NewService(store Store, publisher events.Publisher, log *zap.SugaredLogger) *Service {
	return &Service{store: store, events: publisher, log: log}
}

// GetByID fetches a reservation for its passenger or the ride's driver.
func (s *Service) GetByID(ctx context.Context, reservationID, callerID string) (*Reservation, error) {
	res, err := s.store.ByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.PassengerID == callerID {
		return res, nil
	}
	ride, err := s.store.Ride(ctx, res.RideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID != callerID {
		return nil, apperrors.ErrNotRideParty
	}
	return res, nil
}

// Cancel marks the reservation CANCELLED and frees its seat on the ride.
// The reservation update and the seat update are two independent writes; a
// fault between them can leave the seat count stale, which is accepted and
// not compensated here.
func (s *Service) Cancel(ctx context.Context, reservationID, passengerID string) (*Reservation, error) {
	if passengerID == "" {
		return nil, apperrors.ErrNotLoggedIn
	}
	if err := s.store.UserExists(ctx, passengerID); err != nil {
		return nil, err
	}

	res, err := s.store.ByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !res.Cancellable() {
		return nil, apperrors.ErrReservationNotCancellable
	}
	if res.PassengerID != passengerID {
		return nil, apperrors.ErrNotReservationOwner
	}

	updated, err := s.store.SetStatus(ctx, reservationID, StatusCancelled)
	if err != nil {
		return nil, err
	}

	ride, err := s.store.Ride(ctx, res.RideID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetRideSeats(ctx, ride.ID, ride.AvailableSeats+1); err != nil {
		return nil, err
	}

	s.emit(kafka.TopicReservationCancelled, updated.ID, events.ReservationCancelledEvent{
		ReservationID: updated.ID,
		PassengerID:   updated.PassengerID,
		RideID:        updated.RideID,
		Status:        updated.Status,
		CancelledAt:   time.Now().Format(time.RFC3339),
	})
	return updated, nil
}

func (s *Service) emit(topic, key string, payload any) {
	if err := s.events.Publish(context.Background(), topic, key, payload); err != nil {
		s.log.Warnw("failed to publish event", "topic", topic, "error", err)
	}
}
