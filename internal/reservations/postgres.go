package reservations

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool-service/internal/apperrors"
)

// Postgres implements Store against the reservations, rides and users
// tables.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a reservation store backed by the given pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) UserExists(ctx context.Context, id string) error {
	var exists bool
	err := p.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (p *Postgres) ByID(ctx context.Context, id string) (*Reservation, error) {
	var r Reservation
	err := p.pool.QueryRow(ctx,
		`SELECT id,passenger_id,ride_id,seats,status,created_at
		 FROM reservations WHERE id=$1`, id).
		Scan(&r.ID, &r.PassengerID, &r.RideID, &r.Seats, &r.Status, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *Postgres) SetStatus(ctx context.Context, id, status string) (*Reservation, error) {
	var r Reservation
	err := p.pool.QueryRow(ctx,
		`UPDATE reservations SET status=$1 WHERE id=$2
		 RETURNING id,passenger_id,ride_id,seats,status,created_at`, status, id).
		Scan(&r.ID, &r.PassengerID, &r.RideID, &r.Seats, &r.Status, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *Postgres) Ride(ctx context.Context, rideID string) (*RideInfo, error) {
	var ri RideInfo
	err := p.pool.QueryRow(ctx,
		`SELECT id,driver_id,available_seats FROM rides WHERE id=$1`, rideID).
		Scan(&ri.ID, &ri.DriverID, &ri.AvailableSeats)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrRideNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ri, nil
}

func (p *Postgres) SetRideSeats(ctx context.Context, rideID string, seats int) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE rides SET available_seats=$1 WHERE id=$2`, seats, rideID)
	return err
}
