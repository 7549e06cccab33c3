package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smilecare/clinic-api/internal/core/ports"
)

// Context keys under which verified claims are stashed for handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxName   = "name"
)

// Auth extracts the bearer token, verifies it and injects the claims into
// context. It is the sole checkpoint in front of role-sensitive routes.
func Auth(signer ports.TokenSigner) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := signer.Verify(parts[1])
			if err != nil {
				if errors.Is(err, ports.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxName, claims.Name)

			return next(c)
		}
	}
}
