package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool-service/internal/apperrors"
)

// Postgres implements Store against the users table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a user store backed by the given pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) ByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := p.pool.QueryRow(ctx,
		`SELECT id,email,name,last_name,active,profile_picture,created_at
		 FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.LastName, &u.Active, &u.ProfilePicture, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (p *Postgres) ProfilePicture(ctx context.Context, id string) (string, error) {
	var key *string
	err := p.pool.QueryRow(ctx,
		`SELECT profile_picture FROM users WHERE id=$1`, id).Scan(&key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	if key == nil {
		return "", nil
	}
	return *key, nil
}

func (p *Postgres) SetProfilePicture(ctx context.Context, id, key string) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE users SET profile_picture=$1 WHERE id=$2`, key, id)
	return err
}
