package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an account in the system. Admin rights are derived from
// the email domain rather than a stored role: accounts whose address ends
// with the configured admin domain may administer events.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user's email carries the given admin domain
// suffix, e.g. "@eventbroker.com". Comparison is case-insensitive.
func (u *User) IsAdmin(adminDomain string) bool {
	if adminDomain == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Email), strings.ToLower(adminDomain))
}

// Session represents a server-side login session referenced by an opaque
// token stored in the client's cookie.
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// UserCreateRequest represents the data needed to register a user.
type UserCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates registration data
func (req *UserCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !bookingEmailRegex.MatchString(req.Email) {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	return nil
}
