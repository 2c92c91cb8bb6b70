package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"carpool-service/internal/apperrors"
	"carpool-service/internal/events"
	"carpool-service/internal/users"
	"carpool-service/pkg/jwt"
	"carpool-service/pkg/kafka"
	"carpool-service/pkg/validation"
)

const (
	resetCodeLength    = 6
	resetCodeTTL       = 15 * time.Minute
	resetRequestLimit  = 3
	resetRequestWindow = 15 * time.Minute
)

// Store is the persistence port for credentials and reset tokens.
type Store interface {
	UserByEmail(ctx context.Context, email string) (*users.User, error)
	SetUserActive(ctx context.Context, id string, active bool) error
	SetPassword(ctx context.Context, email, hash string) error
	ResetToken(ctx context.Context, email string) (*ResetToken, error)
	SaveResetToken(ctx context.Context, t *ResetToken) error
	DeleteResetToken(ctx context.Context, email string) error
}

// RateLimiter throttles reset-code issuance per email.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Service contains authentication business logic.
type Service struct {
	store   Store
	events  events.Publisher
	limiter RateLimiter
	log     *zap.SugaredLogger
}

// NewService creates an auth service.
func NewService(store Store, publisher events.Publisher, limiter RateLimiter, log *zap.SugaredLogger) *Service {
	return &Service{store: store, events: publisher, limiter: limiter, log: log}
}

// Login validates credentials and issues a session token. A dormant account
// is reactivated as soon as the email lookup succeeds, before the password
// is checked; the reactivation sticks even if the password turns out wrong.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	u, err := s.store.UserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if !u.Active {
		if err := s.store.SetUserActive(ctx, u.ID, true); err != nil {
			return nil, err
		}
		u.Active = true
		s.emit(kafka.TopicAccountReactivated, u.ID, events.AccountReactivatedEvent{
			UserID:        u.ID,
			Email:         u.Email,
			ReactivatedAt: time.Now().Format(time.RFC3339),
		})
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.ErrIncorrectPassword
	}

	token, err := jwt.Generate(u.ID, u.Email, u.Name, u.LastName)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token}, nil
}

// RequestPasswordReset issues a fresh reset code for the email and publishes
// it for delivery. Unknown emails succeed silently so the endpoint cannot be
// used to enumerate accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if !validation.ValidateEmail(email) {
		return apperrors.ErrInvalidEmail
	}

	ok, err := s.limiter.Allow(ctx, "password-reset:"+email, resetRequestLimit, resetRequestWindow)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrTooManyResetRequests
	}

	u, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil
		}
		return err
	}

	code, err := randomCode(resetCodeLength)
	if err != nil {
		return err
	}

	t := &ResetToken{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}
	if err := s.store.SaveResetToken(ctx, t); err != nil {
		return err
	}

	s.emit(kafka.TopicPasswordResetRequested, u.ID, events.PasswordResetRequestedEvent{
		UserID:    u.ID,
		Email:     email,
		ResetCode: code,
		ExpiresAt: t.ExpiresAt.Format(time.RFC3339),
	})
	return nil
}

// ResetPassword consumes a reset code and sets the new password. The
// password write strictly precedes the token deletion so a failed update
// never leaves a consumed-but-usable token behind.
func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if !validation.ValidatePassword(req.NewPassword) {
		return apperrors.ErrWeakPassword
	}

	t, err := s.store.ResetToken(ctx, req.Email)
	if err != nil {
		return err
	}
	if t.Code != req.ResetCode {
		return apperrors.ErrInvalidResetCode
	}
	if t.Expired(time.Now()) {
		return apperrors.ErrExpiredResetCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.store.SetPassword(ctx, req.Email, string(hash)); err != nil {
		return err
	}
	if err := s.store.DeleteResetToken(ctx, req.Email); err != nil {
		return err
	}

	s.emit(kafka.TopicPasswordChanged, req.Email, events.PasswordChangedEvent{
		Email:     req.Email,
		ChangedAt: time.Now().Format(time.RFC3339),
	})
	return nil
}

func (s *Service) emit(topic, key string, payload any) {
	if err := s.events.Publish(context.Background(), topic, key, payload); err != nil {
		s.log.Warnw("failed to publish event", "topic", topic, "error", err)
	}
}

func randomCode(n int) (string, error) {
	code := make([]byte, n)
	for i := range code {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate reset code: %w", err)
		}
		code[i] = byte('0' + d.Int64())
	}
	return string(code), nil
}
