package ports

import "github.com/taskify/taskify-api/internal/core/domain"

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService interface {
	// Issue signs a token asserting subject and role, expiring after the
	// service's configured TTL.
	Issue(subject, role string) (string, error)
	// Verify validates signature and expiry. It returns
	// domain.ErrTokenExpired for expired tokens and domain.ErrInvalidToken
	// for everything else (bad MAC and malformed are indistinguishable).
	Verify(token string) (*domain.TokenClaims, error)
}
