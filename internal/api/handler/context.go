package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smilecare/clinic-api/internal/api/middleware"
)

// ctxIdentity extracts the claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty user id
// proves the middleware ran. Handlers never read the Authorization header
// themselves.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get(middleware.CtxRole).(string)
	return userID, role, nil
}
