package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/ecommerce_ledger/internal/domain"
)

func TestProductRepository_SaveAndGet(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()

	err := repo.Save(ctx, &domain.Product{ID: "P1", Name: "Widget", UnitPrice: 10})
	require.NoError(t, err)

	product, err := repo.GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, 10.0, product.UnitPrice)
	assert.Equal(t, 0, product.Balance)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo := NewProductRepository()

	product, err := repo.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, product)
}

func TestProductRepository_Save_RequiresID(t *testing.T) {
	repo := NewProductRepository()

	err := repo.Save(context.Background(), &domain.Product{Name: "Nameless"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductRepository_ReturnsCopies(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &domain.Product{ID: "P1", Name: "Widget"}))

	product, err := repo.GetByID(ctx, "P1")
	require.NoError(t, err)
	product.Balance = 99

	stored, err := repo.GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Balance)
}

func TestProductRepository_List_KeepsRegistrationOrder(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()

	for _, id := range []string{"10", "2", "B", "A"} {
		require.NoError(t, repo.Save(ctx, &domain.Product{ID: id, Name: "name-" + id}))
	}
	// Replacing an existing product must not move it to the end
	require.NoError(t, repo.Save(ctx, &domain.Product{ID: "2", Name: "replaced"}))

	products, err := repo.List(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"10", "2", "B", "A"}, ids)
	assert.Equal(t, "replaced", products[1].Name)
}
