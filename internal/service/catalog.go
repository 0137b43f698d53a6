package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/fashion_api/internal/logging"
	"github.com/Skotchmaster/fashion_api/internal/models"
	"github.com/Skotchmaster/fashion_api/internal/mykafka"
	"github.com/Skotchmaster/fashion_api/internal/repo"
)

type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, sku string) (*models.Product, error)
	CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, sku string, patch repo.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, sku string) (*models.Product, error)
}

type CatalogService struct {
	Repo   ProductStore
	Events mykafka.Publisher
}

// NormalizeSKU returns the canonical, upper-cased form of a sku.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) Get(ctx context.Context, sku string) (*models.Product, error) {
	sku = NormalizeSKU(sku)
	if sku == "" {
		return nil, fmt.Errorf("%w: sku is required", ErrValidation)
	}
	prod, err := s.Repo.GetProduct(ctx, sku)
	if err != nil {
		return nil, translate(err, sku)
	}
	return prod, nil
}

func (s *CatalogService) Create(ctx context.Context, prod models.Product) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	prod.SKU = NormalizeSKU(prod.SKU)
	if prod.SKU == "" {
		return nil, fmt.Errorf("%w: sku is required", ErrValidation)
	}
	if err := validateName(prod.ProductName); err != nil {
		return nil, err
	}
	if err := validatePrice(prod.Price); err != nil {
		return nil, err
	}

	created, err := s.Repo.CreateProduct(ctx, &prod)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			l.Warn("product_create_error", "status", 409, "reason", "sku already exists", "sku", prod.SKU)
		}
		return nil, translate(err, prod.SKU)
	}

	publish(ctx, s.Events, created.SKU, mykafka.NewEvent(mykafka.EventProductCreated, created))
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, sku string, patch repo.ProductPatch) (*models.Product, error) {
	sku = NormalizeSKU(sku)
	if sku == "" {
		return nil, fmt.Errorf("%w: sku is required", ErrValidation)
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: at least one of productName, price, isAvailable is required", ErrValidation)
	}
	if patch.ProductName != nil {
		if err := validateName(*patch.ProductName); err != nil {
			return nil, err
		}
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return nil, err
		}
	}

	updated, err := s.Repo.UpdateProduct(ctx, sku, patch)
	if err != nil {
		return nil, translate(err, sku)
	}

	publish(ctx, s.Events, updated.SKU, mykafka.NewEvent(mykafka.EventProductUpdated, updated))
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, sku string) (*models.Product, error) {
	sku = NormalizeSKU(sku)
	if sku == "" {
		return nil, fmt.Errorf("%w: sku is required", ErrValidation)
	}

	deleted, err := s.Repo.DeleteProduct(ctx, sku)
	if err != nil {
		return nil, translate(err, sku)
	}

	publish(ctx, s.Events, deleted.SKU, mykafka.NewEvent(mykafka.EventProductDeleted, deleted))
	return deleted, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: productName must be a non-empty string", ErrValidation)
	}
	return nil
}

func validatePrice(price int64) error {
	if price < 0 {
		return fmt.Errorf("%w: price must be a non-negative integer", ErrValidation)
	}
	return nil
}

func translate(err error, sku string) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return fmt.Errorf("product %q: %w", sku, ErrNotFound)
	case errors.Is(err, repo.ErrDuplicate):
		return fmt.Errorf("product %q: %w", sku, ErrConflict)
	case errors.Is(err, repo.ErrEmptyPatch):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	default:
		return err
	}
}
