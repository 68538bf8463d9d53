package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"canteen-service/internal/entity"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	product := &entity.Product{}
	var description, image sql.NullString

	query := `SELECT id, name, price, description, image_url, category_id, shop_id FROM products WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Price, &description, &image, &product.CategoryID, &product.ShopID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	product.Description = description.String
	product.ImageURL = image.String

	return product, nil
}

// ListProducts returns the catalog, optionally filtered by shop and/or
// category.
func (r *ProductRepository) ListProducts(ctx context.Context, shopID, categoryID *int) ([]entity.Product, error) {
	query := `SELECT id, name, price, description, image_url, category_id, shop_id FROM products`
	var conditions []string
	var args []interface{}
	if shopID != nil {
		conditions = append(conditions, "shop_id = ?")
		args = append(args, *shopID)
	}
	if categoryID != nil {
		conditions = append(conditions, "category_id = ?")
		args = append(args, *categoryID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []entity.Product{}
	for rows.Next() {
		var product entity.Product
		var description, image sql.NullString
		err := rows.Scan(&product.ID, &product.Name, &product.Price, &description, &image, &product.CategoryID, &product.ShopID)
		if err != nil {
			return nil, err
		}
		product.Description = description.String
		product.ImageURL = image.String
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `INSERT INTO products (name, price, description, image_url, category_id, shop_id) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, product.Name, product.Price, product.Description, product.ImageURL, product.CategoryID, product.ShopID)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	product.ID = int(id)
	return product, nil
}

// UpdateProduct applies the non-nil fields of update to a product and
// returns the fresh row.
func (r *ProductRepository) UpdateProduct(ctx context.Context, id int, update *entity.ProductUpdate) (*entity.Product, error) {
	var clauses []string
	var args []interface{}
	if update.Name != nil {
		clauses = append(clauses, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Price != nil {
		clauses = append(clauses, "price = ?")
		args = append(args, *update.Price)
	}
	if update.Description != nil {
		clauses = append(clauses, "description = ?")
		args = append(args, *update.Description)
	}
	if update.ImageURL != nil {
		clauses = append(clauses, "image_url = ?")
		args = append(args, *update.ImageURL)
	}
	if update.CategoryID != nil {
		clauses = append(clauses, "category_id = ?")
		args = append(args, *update.CategoryID)
	}
	if len(clauses) == 0 {
		return r.GetProductByID(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = ?`, strings.Join(clauses, ", "))
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}

	return r.GetProductByID(ctx, id)
}
