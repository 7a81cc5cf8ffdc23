package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskify/taskify-api/internal/core/domain"
)

const defaultTokenTTL = 30 * time.Minute

// tokenClaims is the wire shape of an access token: sub, role, exp.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenService issues and verifies HMAC-SHA256 signed bearer tokens.
// The secret is read-only after construction.
type JWTTokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTTokenService(secret string, ttl time.Duration) *JWTTokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTTokenService{secret: []byte(secret), ttl: ttl}
}

func (s *JWTTokenService) Issue(subject, role string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify validates signature and expiry. Expired tokens surface as
// domain.ErrTokenExpired; every other failure (bad MAC, wrong algorithm,
// garbage input) collapses into domain.ErrInvalidToken so callers cannot
// probe which check rejected them.
func (s *JWTTokenService) Verify(token string) (*domain.TokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.TokenClaims{Subject: claims.Subject, Role: claims.Role}, nil
}
