package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/fashion_api/internal/logging"
	"github.com/Skotchmaster/fashion_api/internal/tokens"
)

const (
	MsgTokenNotFound = "token not found"
	MsgInvalidToken  = "invalid or expired token"
)

type TokenParser interface {
	Parse(raw string) (*tokens.Identity, error)
}

type bearerAuth struct {
	parser TokenParser
}

// BearerAuth verifies "Authorization: Bearer <token>" and attaches the
// decoded identity to the request.
func BearerAuth(parser TokenParser) Interceptor {
	return &bearerAuth{parser: parser}
}

func (b *bearerAuth) Intercept(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("interceptor", "bearer_auth")

	raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		l.Warn("auth_rejected", "status", http.StatusUnauthorized, "reason", "missing bearer token")
		return echo.NewHTTPError(http.StatusUnauthorized, MsgTokenNotFound)
	}

	id, err := b.parser.Parse(raw)
	if err != nil {
		l.Warn("auth_rejected", "status", http.StatusForbidden, "reason", "token verification failed", "error", err)
		return echo.NewHTTPError(http.StatusForbidden, MsgInvalidToken)
	}

	setIdentity(c, id)
	return nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
