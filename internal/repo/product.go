package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/fashion_api/internal/models"
)

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("sku ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if items == nil {
		items = []models.Product{}
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Where("sku = ?", sku).First(&prod).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &prod, nil
}

// CreateProduct relies on the primary key to reject an existing sku.
func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("product %q: %w", prod.SKU, ErrDuplicate)
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return prod, nil
}

func (r *GormRepo) UpdateProduct(ctx context.Context, sku string, patch ProductPatch) (*models.Product, error) {
	stmt, err := BuildUpdate(sku, patch)
	if err != nil {
		return nil, err
	}
	return r.returningOne(ctx, stmt)
}

func (r *GormRepo) DeleteProduct(ctx context.Context, sku string) (*models.Product, error) {
	return r.returningOne(ctx, Statement{
		SQL:  "DELETE FROM fashion WHERE sku = $1 RETURNING " + productColumns,
		Args: []any{sku},
	})
}

func (r *GormRepo) returningOne(ctx context.Context, stmt Statement) (*models.Product, error) {
	var rows []models.Product
	if err := r.DB.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("exec %q: %w", stmt.SQL, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
