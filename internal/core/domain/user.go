package domain

import (
	"errors"
	"time"
)

const (
	RoleUser    = "user"
	RoleManager = "manager"
)

// ValidRole reports whether role is one of the known role labels.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleManager
}

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password"
	// so login failures never reveal which half of the pair was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrMissingToken = errors.New("missing token")
	// ErrInvalidToken covers bad signatures and malformed tokens alike.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	// ErrUnknownUser means a verified token names a subject with no live
	// active record (deleted or deactivated after issuance).
	ErrUnknownUser = errors.New("unknown user")

	ErrForbidden = errors.New("access forbidden")
)

// User is the stored credential record.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the resolved per-request principal. It is built from the live
// user record by the auth middleware and is immutable for the request.
type Identity struct {
	ID       int64
	Username string
	Role     string
}

// TokenClaims is what a verified token asserts about its bearer. The role here
// reflects the record at issuance time; callers needing the current role must
// re-fetch the user.
type TokenClaims struct {
	Subject string
	Role    string
}
