package rides

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool-service/internal/apperrors"
)

const rideColumns = `id,driver_id,origin,destination,departure_time,price_per_seat,
	available_seats,status,start_time,end_time,created_at`

// Postgres implements Store against the rides table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a ride store backed by the given pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) ByID(ctx context.Context, id string) (*Ride, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+rideColumns+` FROM rides WHERE id=$1`, id)
	return scanRide(row)
}

func (p *Postgres) Start(ctx context.Context, id string, at time.Time) (*Ride, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE rides SET status=$1, start_time=$2 WHERE id=$3 RETURNING `+rideColumns,
		StatusInProgress, at, id)
	return scanRide(row)
}

func (p *Postgres) Complete(ctx context.Context, id string, at time.Time) (*Ride, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE rides SET status=$1, end_time=$2 WHERE id=$3 RETURNING `+rideColumns,
		StatusCompleted, at, id)
	return scanRide(row)
}

func scanRide(row pgx.Row) (*Ride, error) {
	var r Ride
	err := row.Scan(&r.ID, &r.DriverID, &r.Origin, &r.Destination, &r.DepartureTime,
		&r.PricePerSeat, &r.AvailableSeats, &r.Status, &r.StartTime, &r.EndTime, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrRideNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
