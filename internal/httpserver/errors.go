package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/fashion_api/internal/logging"
	"github.com/Skotchmaster/fashion_api/internal/transport"
)

const (
	msgRouteNotFound  = "route not found"
	msgInternalServer = "internal server error"
)

// ErrorHandler renders every error as {"error": "..."}. Only messages set
// on an *echo.HTTPError below 500 reach the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := msgInternalServer

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch {
		case he == echo.ErrNotFound || he == echo.ErrMethodNotAllowed:
			code, msg = http.StatusNotFound, msgRouteNotFound
		case code >= http.StatusInternalServerError:
			msg = msgInternalServer
		default:
			msg = publicMessage(he)
		}
	}

	if code >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", code, "error", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, transport.ErrorResponse{Error: msg})
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("error_response_failed", "error", werr)
	}
}

func publicMessage(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}
