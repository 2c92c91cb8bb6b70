package rides

import "time"

// RideStatus enumerates the lifecycle states. Transitions are one-way:
// SCHEDULED → IN_PROGRESS → COMPLETED, with CANCELLED terminal.
const (
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Ride represents a published carpool ride.
type Ride struct {
	ID             string     `json:"id"`
	DriverID       string     `json:"driver_id"`
	Origin         string     `json:"origin"`
	Destination    string     `json:"destination"`
	DepartureTime  time.Time  `json:"departure_time"`
	PricePerSeat   float64    `json:"price_per_seat"`
	AvailableSeats int        `json:"available_seats"`
	Status         string     `json:"status"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
