package auth

import "time"

// LoginRequest is the body for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned on a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// ForgotPasswordRequest is the body for POST /forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body for POST /reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	ResetCode   string `json:"resetCode"`
	NewPassword string `json:"newPassword"`
}

// ResetToken is the single live password-reset code for an email.
type ResetToken struct {
	Email     string    `json:"email"`
	Code      string    `json:"reset_code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token is past its expiry.
func (t *ResetToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
