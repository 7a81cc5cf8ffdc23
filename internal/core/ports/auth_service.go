package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	Role        string
	PhoneNumber string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed bearer token. Unknown usernames and wrong
	// passwords both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}
