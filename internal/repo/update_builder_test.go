package repo

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestBuildUpdate_Empty(t *testing.T) {
	_, err := BuildUpdate("SHOE01", ProductPatch{})
	require.ErrorIs(t, err, ErrEmptyPatch)
}

func TestBuildUpdate_AllSubsets(t *testing.T) {
	name, price, avail := "Runner", int64(150), false

	tests := []struct {
		patch    ProductPatch
		wantSQL  string
		wantArgs []any
	}{
		{
			patch:    ProductPatch{ProductName: &name},
			wantSQL:  "UPDATE fashion SET product_name = $1 WHERE sku = $2 RETURNING sku, product_name, price, is_available",
			wantArgs: []any{"Runner", "SHOE01"},
		},
		{
			patch:    ProductPatch{Price: &price},
			wantSQL:  "UPDATE fashion SET price = $1 WHERE sku = $2 RETURNING sku, product_name, price, is_available",
			wantArgs: []any{int64(150), "SHOE01"},
		},
		{
			patch:    ProductPatch{IsAvailable: &avail},
			wantSQL:  "UPDATE fashion SET is_available = $1 WHERE sku = $2 RETURNING sku, product_name, price, is_available",
			wantArgs: []any{false, "SHOE01"},
		},
		{
			patch:    ProductPatch{ProductName: &name, Price: &price},
			wantSQL:  "UPDATE fashion SET product_name = $1, price = $2 WHERE sku = $3 RETURNING sku, product_name, price, is_available",
			wantArgs: []any{"Runner", int64(150), "SHOE01"},
		},
		{
			patch:    ProductPatch{ProductName: &name, IsAvailable: &avail},
			wantSQL:  "UPDATE fashion SET product_name = $1, is_available = $2 WHERE sku = $3 RETURNING sku, product_name, price, is_available",
			wantArgs: []any{"Runner", false, "SHOE01"},
		},
		{
			patch:    ProductPatch{Price: &price, IsAvailable: &avail},
			wantSQL:  "UPDATE fashion SET price = $1, is_available = $2 WHERE sku = $3 RETURNING sku, product_name, price, is_available",
			wantArgs: []any{int64(150), false, "SHOE01"},
		},
		{
			patch:    ProductPatch{ProductName: &name, Price: &price, IsAvailable: &avail},
			wantSQL:  "UPDATE fashion SET product_name = $1, price = $2, is_available = $3 WHERE sku = $4 RETURNING sku, product_name, price, is_available",
			wantArgs: []any{"Runner", int64(150), false, "SHOE01"},
		},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("subset_%d", i), func(t *testing.T) {
			stmt, err := BuildUpdate("SHOE01", tt.patch)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, stmt.SQL)
			assert.Equal(t, tt.wantArgs, stmt.Args)
		})
	}
}

func TestBuildUpdate_PlaceholdersMatchArgs(t *testing.T) {
	placeholder := regexp.MustCompile(`(\w+) = \$(\d+)`)

	stmt, err := BuildUpdate("HAT9", ProductPatch{Price: ptr(int64(0)), IsAvailable: ptr(true)})
	require.NoError(t, err)

	matches := placeholder.FindAllStringSubmatch(stmt.SQL, -1)
	require.Len(t, matches, len(stmt.Args))

	want := map[string]any{"price": int64(0), "is_available": true, "sku": "HAT9"}
	for _, m := range matches {
		n, err := strconv.Atoi(m[2])
		require.NoError(t, err)
		assert.Equal(t, want[m[1]], stmt.Args[n-1], "column %s", m[1])
	}
	assert.Equal(t, "HAT9", stmt.Args[len(stmt.Args)-1])
}

func TestBuildUpdate_ValuesNeverInlined(t *testing.T) {
	evil := "x'; DROP TABLE fashion; --"
	stmt, err := BuildUpdate(evil, ProductPatch{ProductName: &evil})
	require.NoError(t, err)
	assert.NotContains(t, stmt.SQL, "DROP")
	assert.Equal(t, []any{evil, evil}, stmt.Args)
}
