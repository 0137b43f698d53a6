package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/fashion_api/internal/logging"
	"github.com/Skotchmaster/fashion_api/internal/middleware/auth"
	"github.com/Skotchmaster/fashion_api/internal/models"
	"github.com/Skotchmaster/fashion_api/internal/repo"
	"github.com/Skotchmaster/fashion_api/internal/service"
	"github.com/Skotchmaster/fashion_api/internal/transport"
)

const (
	msgProductNotFound = "product not found"
	msgSKUTaken        = "product sku already taken"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	prod, err := h.Svc.Get(ctx, c.Param("sku"))
	if err != nil {
		return h.fail(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")
	if id, ok := auth.IdentityFrom(c); ok {
		l = l.With("admin", id.Username)
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "validation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
	}

	created, err := h.Svc.Create(ctx, models.Product{
		SKU:         *req.SKU,
		ProductName: *req.ProductName,
		Price:       *req.Price,
		IsAvailable: *req.IsAvailable,
	})
	if err != nil {
		return h.fail(l, "product_create_error", err)
	}

	l.Info("product_created", "sku", created.SKU)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	updated, err := h.Svc.Update(ctx, c.Param("sku"), repo.ProductPatch{
		ProductName: req.ProductName,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return h.fail(l, "product_update_error", err)
	}

	l.Info("product_updated", "sku", updated.SKU)
	return c.JSON(http.StatusOK, updated)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	deleted, err := h.Svc.Delete(ctx, c.Param("sku"))
	if err != nil {
		return h.fail(l, "product_delete_error", err)
	}

	l.Info("product_deleted", "sku", deleted.SKU)
	return c.JSON(http.StatusOK, deleted)
}

func (h *CatalogHTTP) fail(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", "validation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, serviceMessage(err))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", msgProductNotFound)
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 409, "reason", msgSKUTaken)
		return echo.NewHTTPError(http.StatusConflict, msgSKUTaken)
	default:
		l.Error(event, "status", 500, "error", err)
		return err
	}
}
