package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/fashion_api/internal/metrics"
	authmw "github.com/Skotchmaster/fashion_api/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/fashion_api/internal/middleware/logging"
	"github.com/Skotchmaster/fashion_api/internal/models"
	"github.com/Skotchmaster/fashion_api/internal/transport"
)

const banner = "API Fashion is running. See /fashion for product data."

type Deps struct {
	ServiceName    string
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	CORSOrigins    []string
	Tokens         authmw.TokenParser
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	// Ready reports whether the backing store is reachable.
	Ready func(ctx context.Context) error
}

// New builds the echo instance with middleware and every route installed.
func New(d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}
	e.Use(loggingmw.RequestLogger(d.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins(d.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, banner) })
	e.GET("/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, transport.StatusResponse{OK: true, Service: d.ServiceName})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/register-admin", d.AuthHandler.RegisterAdmin)
	auth.POST("/login", d.AuthHandler.Login)

	adminOnly := authmw.Chain(authmw.BearerAuth(d.Tokens), authmw.RequireRole(models.RoleAdmin))

	fashion := e.Group("/fashion")
	fashion.GET("", d.CatalogHandler.GetProducts)
	fashion.GET("/:sku", d.CatalogHandler.GetProduct)
	fashion.POST("", d.CatalogHandler.CreateProduct, adminOnly)
	fashion.PUT("/:sku", d.CatalogHandler.UpdateProduct, adminOnly)
	fashion.DELETE("/:sku", d.CatalogHandler.DeleteProduct, adminOnly)
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
