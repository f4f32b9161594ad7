package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rmarques/game-deal-tracker/internal/identity"
)

const userIDHeader = "X-User-ID"

// UserContext returns Echo middleware that lifts the authenticated user id
// from the X-User-ID header into the request context. Session verification
// happens upstream (gateway or reverse proxy); this service only trusts the
// header it is handed.
func UserContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(userIDHeader)
			if raw == "" {
				return next(c)
			}

			id, err := uuid.Parse(raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{
					"error": "invalid " + userIDHeader + " header",
				})
			}

			ctx := identity.WithUserID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireUser returns Echo middleware that rejects requests lacking an
// authenticated user. Must run after UserContext.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := identity.UserIDFromContext(c.Request().Context()); !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "authentication required",
				})
			}
			return next(c)
		}
	}
}
