package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/fashion_api/internal/logging"
)

const MsgInsufficientRole = "insufficient role"

// RequireRole admits only identities whose role equals role exactly.
// It must run after BearerAuth.
func RequireRole(role string) Interceptor {
	return InterceptorFunc(func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		if !ok || id.Role != role {
			logging.FromContext(c.Request().Context()).Warn("auth_rejected",
				"interceptor", "require_role",
				"status", http.StatusForbidden,
				"reason", "role mismatch",
				"required", role,
			)
			return echo.NewHTTPError(http.StatusForbidden, MsgInsufficientRole)
		}
		return nil
	})
}
