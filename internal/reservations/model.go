package reservations

import "time"

// ReservationStatus enumerates the lifecycle states. Cancellation is a
// one-way transition; CANCELLED and COMPLETED are terminal.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// Reservation represents a passenger's seat on a ride.
type Reservation struct {
	ID          string    `json:"id"`
	PassengerID string    `json:"passenger_id"`
	RideID      string    `json:"ride_id"`
	Seats       int       `json:"seats"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Cancellable reports whether the reservation is still in a state the
// passenger may cancel.
func (r *Reservation) Cancellable() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// RideInfo is the slice of the ride a reservation operation needs.
type RideInfo struct {
	ID             string
	DriverID       string
	AvailableSeats int
}
