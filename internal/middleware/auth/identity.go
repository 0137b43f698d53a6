package auth

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/fashion_api/internal/tokens"
)

const identityKey = "identity"

type ctxKey struct{}

func setIdentity(c echo.Context, id *tokens.Identity) {
	c.Set(identityKey, id)
	req := c.Request()
	c.SetRequest(req.WithContext(context.WithValue(req.Context(), ctxKey{}, id)))
}

func IdentityFrom(c echo.Context) (*tokens.Identity, bool) {
	id, ok := c.Get(identityKey).(*tokens.Identity)
	return id, ok && id != nil
}

func IdentityFromContext(ctx context.Context) (*tokens.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*tokens.Identity)
	return id, ok && id != nil
}
