package repository

import (
	"context"
	"database/sql"
	"fmt"

	"canteen-service/internal/entity"
)

type ShopRepository struct {
	db *sql.DB
}

func NewShopRepository(db *sql.DB) *ShopRepository {
	return &ShopRepository{db}
}

func (r *ShopRepository) ListShops(ctx context.Context) ([]entity.Shop, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM shops ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := []entity.Shop{}
	for rows.Next() {
		var shop entity.Shop
		if err := rows.Scan(&shop.ID, &shop.Name); err != nil {
			return nil, err
		}
		shops = append(shops, shop)
	}
	return shops, rows.Err()
}

// RenameShop updates a shop's display name. A taken name returns
// ErrConflict, an unknown shop ErrNotFound.
func (r *ShopRepository) RenameShop(ctx context.Context, id int, name string) (*entity.Shop, error) {
	var existing int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(id) FROM shops WHERE id = ?`, id).Scan(&existing)
	if err != nil {
		return nil, err
	}
	if existing == 0 {
		return nil, fmt.Errorf("shop %d: %w", id, ErrNotFound)
	}

	var taken int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(id) FROM shops WHERE name = ? AND id <> ?`, name, id).Scan(&taken)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, fmt.Errorf("shop name %q: %w", name, ErrConflict)
	}

	_, err = r.db.ExecContext(ctx, `UPDATE shops SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return nil, err
	}

	return &entity.Shop{ID: id, Name: name}, nil
}

func (r *ShopRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []entity.Category{}
	for rows.Next() {
		var category entity.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
