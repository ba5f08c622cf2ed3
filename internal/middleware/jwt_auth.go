package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/korvo-dev/echofeed/backend/internal/auth"
	"github.com/korvo-dev/echofeed/backend/internal/models"
)

const userContextKey = "user"

// JWTAuthMiddleware checks for a valid bearer token and attaches the verified
// identity to the request context. Failures short-circuit with 401 before the
// downstream handler runs.
func JWTAuthMiddleware(codec *auth.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			// Store user claims in context
			c.Set(userContextKey, claims)

			return next(c)
		}
	}
}

// CurrentUser returns the verified user id attached by JWTAuthMiddleware.
// Handlers must treat absence as unauthorized themselves; the gate is not the
// only checkpoint.
func CurrentUser(c echo.Context) (uuid.UUID, bool) {
	claims, ok := c.Get(userContextKey).(*models.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
