package auth

import "github.com/labstack/echo/v4"

// Interceptor inspects a request before the handler runs. A nil result lets
// the request through; an error short-circuits the chain and is returned
// to echo as the response.
type Interceptor interface {
	Intercept(c echo.Context) error
}

type InterceptorFunc func(c echo.Context) error

func (f InterceptorFunc) Intercept(c echo.Context) error { return f(c) }

// Chain composes interceptors into a single middleware. They run in order;
// the first error stops evaluation.
func Chain(interceptors ...Interceptor) echo.MiddlewareFunc {
	chain := make([]Interceptor, len(interceptors))
	copy(chain, interceptors)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, i := range chain {
				if err := i.Intercept(c); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}
