package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool-service/internal/apperrors"
	"carpool-service/internal/users"
)

// Postgres implements Store against the users and password_reset_tokens
// tables.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates an auth store backed by the given pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (*users.User, error) {
	var u users.User
	err := p.pool.QueryRow(ctx,
		`SELECT id,email,name,last_name,password_hash,active,profile_picture,created_at
		 FROM users WHERE email=$1`, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.LastName, &u.PasswordHash, &u.Active, &u.ProfilePicture, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (p *Postgres) SetUserActive(ctx context.Context, id string, active bool) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE users SET active=$1 WHERE id=$2`, active, id)
	return err
}

func (p *Postgres) SetPassword(ctx context.Context, email, hash string) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE users SET password_hash=$1 WHERE email=$2`, hash, email)
	return err
}

func (p *Postgres) ResetToken(ctx context.Context, email string) (*ResetToken, error) {
	var t ResetToken
	err := p.pool.QueryRow(ctx,
		`SELECT email,reset_code,expires_at FROM password_reset_tokens WHERE email=$1`, email).
		Scan(&t.Email, &t.Code, &t.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// a missing token is indistinguishable from a wrong code
		return nil, apperrors.ErrInvalidResetCode
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveResetToken upserts the token; at most one live token exists per email.
func (p *Postgres) SaveResetToken(ctx context.Context, t *ResetToken) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO password_reset_tokens (email,reset_code,expires_at)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (email) DO UPDATE SET reset_code=$2, expires_at=$3`,
		t.Email, t.Code, t.ExpiresAt)
	return err
}

func (p *Postgres) DeleteResetToken(ctx context.Context, email string) error {
	_, err := p.pool.Exec(ctx,
		`DELETE FROM password_reset_tokens WHERE email=$1`, email)
	return err
}
