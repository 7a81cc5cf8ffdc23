package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/middleware"
	"github.com/taskify/taskify-api/internal/core/domain"
)

// ctxIdentity extracts the identity resolved by the Auth middleware and
// fast-fails before any service call. Presence of the typed value proves the
// middleware ran; handlers never read individual claim keys.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return id, nil
}
