package repo

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyPatch = errors.New("no fields to update")

const productColumns = "sku, product_name, price, is_available"

// ProductPatch holds the fields of a partial update. Nil means absent.
type ProductPatch struct {
	ProductName *string
	Price       *int64
	IsAvailable *bool
}

func (p ProductPatch) Empty() bool {
	return p.ProductName == nil && p.Price == nil && p.IsAvailable == nil
}

type Statement struct {
	SQL  string
	Args []any
}

// BuildUpdate renders an UPDATE on the fashion table that sets only the
// present fields of p, in the order product_name, price, is_available.
// Placeholder $i always binds Args[i-1]; the sku is the last argument.
// Column names are fixed; every value is a bound parameter.
func BuildUpdate(sku string, p ProductPatch) (Statement, error) {
	if p.Empty() {
		return Statement{}, ErrEmptyPatch
	}

	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.ProductName != nil {
		add("product_name", *p.ProductName)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.IsAvailable != nil {
		add("is_available", *p.IsAvailable)
	}

	args = append(args, sku)
	sql := fmt.Sprintf(
		"UPDATE fashion SET %s WHERE sku = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), productColumns,
	)
	return Statement{SQL: sql, Args: args}, nil
}
