package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"canteen-service/internal/entity"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db}
}

// CreateOrder inserts an order header and all of its items in one
// transaction. The per-item price is snapshotted from the product
// catalog inside the same transaction, and the order total is the sum
// of those snapshots. Any failure rolls the whole order back.
func (r *OrderRepository) CreateOrder(ctx context.Context, userID, shopID int, items []entity.OrderItemRequest) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	// Snapshot current catalog prices
	priceQuery := `SELECT price FROM products WHERE id = ?`
	orderItems := make([]entity.OrderItem, 0, len(items))
	total := 0.0
	for _, item := range items {
		var price float64
		err := tx.QueryRowContext(ctx, priceQuery, item.ProductID).Scan(&price)
		if err != nil {
			tx.Rollback()
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("product %d: %w", item.ProductID, ErrNotFound)
			}
			return nil, err
		}
		orderItems = append(orderItems, entity.OrderItem{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PricePerItem: price,
		})
		total += price * float64(item.Quantity)
	}

	orderDate := time.Now().UTC()
	orderQuery := `INSERT INTO orders (user_id, shop_id, total_price, status, order_date) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, orderQuery, userID, shopID, total, entity.StatusPending, orderDate)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Insert order items with batch
	itemQuery := `INSERT INTO order_items (order_id, product_id, quantity, price_per_item) VALUES `

	var values []interface{}
	for _, item := range orderItems {
		itemQuery += "(?, ?, ?, ?),"
		values = append(values, orderID, item.ProductID, item.Quantity, item.PricePerItem)
	}

	// Remove the trailing comma
	itemQuery = itemQuery[:len(itemQuery)-1]

	_, err = tx.ExecContext(ctx, itemQuery, values...)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	for i := range orderItems {
		orderItems[i].OrderID = int(orderID)
	}

	return &entity.Order{
		ID:         int(orderID),
		UserID:     userID,
		ShopID:     shopID,
		TotalPrice: total,
		Status:     entity.StatusPending,
		OrderDate:  orderDate,
		Items:      orderItems,
	}, nil
}

// GetOrderStatus returns the current status of an order.
func (r *OrderRepository) GetOrderStatus(ctx context.Context, id int) (entity.Status, error) {
	var status entity.Status
	query := `SELECT status FROM orders WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return "", err
	}
	return status, nil
}

// UpdateOrderStatus applies a status value to an order.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id int, status entity.Status) error {
	query := `UPDATE orders SET status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListUserOrders returns a student's order history, newest first, with
// items attached.
func (r *OrderRepository) ListUserOrders(ctx context.Context, userID int) ([]entity.UserOrderView, error) {
	query := `
		SELECT o.id, o.total_price, o.status, o.order_date, s.name
		FROM orders o JOIN shops s ON o.shop_id = s.id
		WHERE o.user_id = ? ORDER BY o.order_date DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []entity.UserOrderView{}
	ids := []int{}
	for rows.Next() {
		var o entity.UserOrderView
		err := rows.Scan(&o.OrderID, &o.TotalPrice, &o.Status, &o.OrderDate, &o.ShopName)
		if err != nil {
			return nil, err
		}
		o.Items = []entity.OrderItemView{}
		orders = append(orders, o)
		ids = append(ids, o.OrderID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.itemViews(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if items, ok := itemsByOrder[orders[i].OrderID]; ok {
			orders[i].Items = items
		}
	}
	return orders, nil
}

// ListShopOrders returns every order of a shop joined with the
// customer name, newest first, with items attached.
func (r *OrderRepository) ListShopOrders(ctx context.Context, shopID int) ([]entity.ShopOrderView, error) {
	query := `
		SELECT o.id, o.total_price, o.status, o.order_date, u.first_name, u.last_name
		FROM orders o JOIN users u ON o.user_id = u.id
		WHERE o.shop_id = ? ORDER BY o.order_date DESC`
	return r.shopOrderViews(ctx, query, shopID)
}

// RecentShopOrders returns the newest orders of a shop, capped at
// limit, with items attached.
func (r *OrderRepository) RecentShopOrders(ctx context.Context, shopID, limit int) ([]entity.ShopOrderView, error) {
	query := `
		SELECT o.id, o.total_price, o.status, o.order_date, u.first_name, u.last_name
		FROM orders o JOIN users u ON o.user_id = u.id
		WHERE o.shop_id = ? ORDER BY o.order_date DESC LIMIT ?`
	return r.shopOrderViews(ctx, query, shopID, limit)
}

func (r *OrderRepository) shopOrderViews(ctx context.Context, query string, args ...interface{}) ([]entity.ShopOrderView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []entity.ShopOrderView{}
	ids := []int{}
	for rows.Next() {
		var o entity.ShopOrderView
		var first, last sql.NullString
		err := rows.Scan(&o.OrderID, &o.TotalPrice, &o.Status, &o.OrderDate, &first, &last)
		if err != nil {
			return nil, err
		}
		o.FirstName = first.String
		o.LastName = last.String
		o.Items = []entity.OrderItemView{}
		orders = append(orders, o)
		ids = append(ids, o.OrderID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.itemViews(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if items, ok := itemsByOrder[orders[i].OrderID]; ok {
			orders[i].Items = items
		}
	}
	return orders, nil
}

// itemViews fetches the items of all given orders in one batched query
// and groups them by order id. Items keep insertion order (ascending
// row id). Callers must not pass an empty id list.
func (r *OrderRepository) itemViews(ctx context.Context, orderIDs []int) (map[int][]entity.OrderItemView, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(orderIDs)), ",")
	query := fmt.Sprintf(`
		SELECT oi.order_id, oi.quantity, oi.price_per_item, p.name, p.image_url
		FROM order_items oi JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id IN (%s) ORDER BY oi.id`, placeholders)

	args := make([]interface{}, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	itemsByOrder := make(map[int][]entity.OrderItemView)
	for rows.Next() {
		var item entity.OrderItemView
		var image sql.NullString
		err := rows.Scan(&item.OrderID, &item.Quantity, &item.PricePerItem, &item.ProductName, &image)
		if err != nil {
			return nil, err
		}
		item.ImageURL = image.String
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	return itemsByOrder, rows.Err()
}

// DailyStats counts orders and sums revenue for a shop within the
// half-open window [from, to).
func (r *OrderRepository) DailyStats(ctx context.Context, shopID int, from, to time.Time) (int, float64, error) {
	var count int
	var revenue float64
	query := `
		SELECT COUNT(id), COALESCE(SUM(total_price), 0)
		FROM orders WHERE shop_id = ? AND order_date >= ? AND order_date < ?`
	err := r.db.QueryRowContext(ctx, query, shopID, from, to).Scan(&count, &revenue)
	if err != nil {
		return 0, 0, err
	}
	return count, revenue, nil
}

// OrderTotals returns the date and total of every order of a shop
// within the half-open window [from, to).
func (r *OrderRepository) OrderTotals(ctx context.Context, shopID int, from, to time.Time) ([]entity.OrderTotal, error) {
	query := `SELECT order_date, total_price FROM orders WHERE shop_id = ? AND order_date >= ? AND order_date < ?`
	rows, err := r.db.QueryContext(ctx, query, shopID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := []entity.OrderTotal{}
	for rows.Next() {
		var t entity.OrderTotal
		err := rows.Scan(&t.OrderDate, &t.TotalPrice)
		if err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
