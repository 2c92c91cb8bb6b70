// Package events defines the payloads published to the event sink and the
// Publisher port the services emit through. Emission is fire-and-forget:
// publish errors are logged by the caller and never fail a request.
package events

import "context"

// Publisher is the outbound event sink.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// AccountReactivatedEvent is published to account.reactivated when a dormant
// account logs in.
type AccountReactivatedEvent struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	ReactivatedAt string `json:"reactivated_at"`
}

// PasswordResetRequestedEvent is published to password.reset_requested; the
// mailer service consumes it to deliver the code.
type PasswordResetRequestedEvent struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	ResetCode string `json:"reset_code"`
	ExpiresAt string `json:"expires_at"`
}

// PasswordChangedEvent is published to password.changed.
type PasswordChangedEvent struct {
	Email     string `json:"email"`
	ChangedAt string `json:"changed_at"`
}

// ReservationCancelledEvent is published to reservation.cancelled with the
// updated reservation.
type ReservationCancelledEvent struct {
	ReservationID string `json:"reservation_id"`
	PassengerID   string `json:"passenger_id"`
	RideID        string `json:"ride_id"`
	Status        string `json:"status"`
	CancelledAt   string `json:"cancelled_at"`
}

// RideStartedEvent is published to ride.started.
type RideStartedEvent struct {
	RideID    string `json:"ride_id"`
	DriverID  string `json:"driver_id"`
	StartedAt string `json:"started_at"`
}

// RideEndedEvent is published to ride.ended with the updated ride.
type RideEndedEvent struct {
	RideID   string `json:"ride_id"`
	DriverID string `json:"driver_id"`
	Status   string `json:"status"`
	EndedAt  string `json:"ended_at"`
}
