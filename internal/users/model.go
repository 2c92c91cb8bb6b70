package users

import "time"

// User represents a rider or driver account.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	LastName       string    `json:"last_name"`
	Active         bool      `json:"active"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
