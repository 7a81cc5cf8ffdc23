package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/metrics"
	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// IdentityKey is the context key under which Auth stores the resolved
// domain.Identity.
const IdentityKey = "identity"

// Auth verifies the bearer token and resolves the live identity. Failures are
// returned as domain sentinels; the central error handler maps them to 401 and
// keeps the messages generic.
//
// The role in the token is deliberately not trusted: the user record is
// re-fetched by the token's subject on every request, which both catches
// deleted/deactivated accounts and picks up role changes without re-login.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrMissingToken
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrMissingToken
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
				} else {
					metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				}
				return err
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil || !user.IsActive {
				metrics.TokenVerificationsTotal.WithLabelValues("unknown_user").Inc()
				return domain.ErrUnknownUser
			}

			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()
			c.Set(IdentityKey, domain.Identity{
				ID:       user.ID,
				Username: user.Username,
				Role:     user.Role,
			})

			return next(c)
		}
	}
}
