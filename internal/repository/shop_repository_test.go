package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameShop(t *testing.T) {
	db := newTestDB(t)
	repo := NewShopRepository(db)
	ctx := context.Background()

	dhaba := insertShop(t, db, "South Dhaba")
	insertShop(t, db, "Frankie Rolls")

	shop, err := repo.RenameShop(ctx, dhaba, "North Dhaba")
	require.NoError(t, err)
	assert.Equal(t, "North Dhaba", shop.Name)

	_, err = repo.RenameShop(ctx, dhaba, "Frankie Rolls")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = repo.RenameShop(ctx, 999, "Ghost Shop")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListShopsAndCategories(t *testing.T) {
	db := newTestDB(t)
	repo := NewShopRepository(db)
	ctx := context.Background()

	shops, err := repo.ListShops(ctx)
	require.NoError(t, err)
	assert.Empty(t, shops)

	insertShop(t, db, "South Dhaba")
	insertShop(t, db, "Frankie Rolls")
	_, err = db.Exec(`INSERT INTO categories (name) VALUES ('Beverages')`)
	require.NoError(t, err)

	shops, err = repo.ListShops(ctx)
	require.NoError(t, err)
	require.Len(t, shops, 2)
	assert.Equal(t, "South Dhaba", shops[0].Name)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Beverages", categories[0].Name)
}
