package middleware

import (
	"net/http"
	"strings"

	"chama-backend/internal/domain/access"

	"github.com/labstack/echo/v4"
)

const callerKey = "ledger.caller"

// Identity extracts the caller identity placed in headers by the upstream
// identity provider. The engine trusts these values; authenticating them is
// the gateway's job.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := strings.TrimSpace(c.Request().Header.Get("X-User-Id"))
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing X-User-Id"})
			}
			if !reHex32.MatchString(userID) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid X-User-Id"})
			}
			role := access.RoleMember
			if strings.EqualFold(c.Request().Header.Get("X-User-Role"), string(access.RoleAdmin)) {
				role = access.RoleAdmin
			}
			c.Set(callerKey, access.Caller{UserID: userID, Role: role})
			return next(c)
		}
	}
}

// CallerFrom returns the identity stored by Identity; zero value when the
// middleware did not run (e.g. in handler unit tests).
func CallerFrom(c echo.Context) access.Caller {
	if v, ok := c.Get(callerKey).(access.Caller); ok {
		return v
	}
	return access.Caller{}
}
