package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"canteen-service/internal/entity"
	"canteen-service/migrations"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.AutoMigrate("sqlite", 0, db))
	return db
}

func insertShop(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	res, err := db.Exec(`INSERT INTO shops (name) VALUES (?)`, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func insertUser(t *testing.T, db *sql.DB, email, first, last string) int {
	t.Helper()
	res, err := db.Exec(
		`INSERT INTO users (email, password, role, first_name, last_name) VALUES (?, ?, 'student', ?, ?)`,
		email, "x", first, last)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func insertProduct(t *testing.T, db *sql.DB, shopID int, name string, price float64) int {
	t.Helper()
	res, err := db.Exec(
		`INSERT INTO products (name, price, description, image_url, category_id, shop_id) VALUES (?, ?, '', '/images/x.jpg', 1, ?)`,
		name, price, shopID)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func insertOrder(t *testing.T, db *sql.DB, userID, shopID int, total float64, status entity.Status, date time.Time) int {
	t.Helper()
	res, err := db.Exec(
		`INSERT INTO orders (user_id, shop_id, total_price, status, order_date) VALUES (?, ?, ?, ?, ?)`,
		userID, shopID, total, status, date)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func insertOrderItem(t *testing.T, db *sql.DB, orderID, productID, quantity int, price float64) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO order_items (order_id, product_id, quantity, price_per_item) VALUES (?, ?, ?, ?)`,
		orderID, productID, quantity, price)
	require.NoError(t, err)
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(id) FROM `+table).Scan(&n))
	return n
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	shopID := insertShop(t, db, "South Dhaba")
	userID := insertUser(t, db, "student@example.com", "Janny", "Doe")
	dosaID := insertProduct(t, db, shopID, "Masala Dosa", 5.50)
	idliID := insertProduct(t, db, shopID, "Idli Sambar", 8.00)

	order, err := repo.CreateOrder(ctx, userID, shopID, []entity.OrderItemRequest{
		{ProductID: dosaID, Quantity: 2},
		{ProductID: idliID, Quantity: 1},
	})
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	assert.Equal(t, entity.StatusPending, order.Status)
	assert.InDelta(t, 19.00, order.TotalPrice, 1e-9)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 5.50, order.Items[0].PricePerItem, 1e-9)
	assert.InDelta(t, 8.00, order.Items[1].PricePerItem, 1e-9)

	// Raising the catalog price must not touch the stored snapshot.
	_, err = db.Exec(`UPDATE products SET price = 7.00 WHERE id = ?`, dosaID)
	require.NoError(t, err)

	orders, err := repo.ListUserOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 2)
	assert.InDelta(t, 5.50, orders[0].Items[0].PricePerItem, 1e-9)
	assert.InDelta(t, 19.00, orders[0].TotalPrice, 1e-9)
}

func TestCreateOrderUnknownProductRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	shopID := insertShop(t, db, "Frankie Rolls")
	userID := insertUser(t, db, "student@example.com", "Janny", "Doe")
	rollID := insertProduct(t, db, shopID, "Paneer Tikka Roll", 7.25)

	_, err := repo.CreateOrder(ctx, userID, shopID, []entity.OrderItemRequest{
		{ProductID: rollID, Quantity: 1},
		{ProductID: 999, Quantity: 1},
	})
	require.ErrorIs(t, err, ErrNotFound)

	// No half-created order may be visible.
	assert.Equal(t, 0, countRows(t, db, "orders"))
	assert.Equal(t, 0, countRows(t, db, "order_items"))
}

func TestUpdateOrderStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	shopID := insertShop(t, db, "Gossip and Sip")
	userID := insertUser(t, db, "student@example.com", "Janny", "Doe")
	orderID := insertOrder(t, db, userID, shopID, 2.50, entity.StatusPending, time.Now().UTC())

	require.NoError(t, repo.UpdateOrderStatus(ctx, orderID, entity.StatusReady))

	status, err := repo.GetOrderStatus(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, status)

	err = repo.UpdateOrderStatus(ctx, 999, entity.StatusReady)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetOrderStatus(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUserOrdersEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	orders, err := repo.ListUserOrders(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NotNil(t, orders)
}

func TestListUserOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	shopID := insertShop(t, db, "South Dhaba")
	userID := insertUser(t, db, "student@example.com", "Janny", "Doe")
	dosaID := insertProduct(t, db, shopID, "Masala Dosa", 5.50)

	base := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	oldID := insertOrder(t, db, userID, shopID, 5.50, entity.StatusCompleted, base)
	newID := insertOrder(t, db, userID, shopID, 11.00, entity.StatusPending, base.Add(2*time.Hour))
	insertOrderItem(t, db, oldID, dosaID, 1, 5.50)
	insertOrderItem(t, db, newID, dosaID, 2, 5.50)

	orders, err := repo.ListUserOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, newID, orders[0].OrderID)
	assert.Equal(t, oldID, orders[1].OrderID)
	assert.Equal(t, "South Dhaba", orders[0].ShopName)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Masala Dosa", orders[0].Items[0].ProductName)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
}

func TestListShopOrdersJoinsCustomer(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	shopID := insertShop(t, db, "Frankie Rolls")
	userID := insertUser(t, db, "student@example.com", "Janny", "Doe")
	rollID := insertProduct(t, db, shopID, "Paneer Tikka Roll", 7.25)
	orderID := insertOrder(t, db, userID, shopID, 7.25, entity.StatusPending, time.Now().UTC())
	insertOrderItem(t, db, orderID, rollID, 1, 7.25)

	orders, err := repo.ListShopOrders(ctx, shopID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Janny", orders[0].FirstName)
	assert.Equal(t, "Doe", orders[0].LastName)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Paneer Tikka Roll", orders[0].Items[0].ProductName)
}

func TestRecentShopOrdersLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	shopID := insertShop(t, db, "Gossip and Sip")
	userID := insertUser(t, db, "student@example.com", "Janny", "Doe")

	base := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	var ids []int
	for i := 0; i < 5; i++ {
		ids = append(ids, insertOrder(t, db, userID, shopID, 2.50, entity.StatusPending, base.Add(time.Duration(i)*time.Hour)))
	}

	recent, err := repo.RecentShopOrders(ctx, shopID, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, ids[4], recent[0].OrderID)
	assert.Equal(t, ids[2], recent[2].OrderID)
}

func TestDailyStatsWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	shopID := insertShop(t, db, "South Dhaba")
	userID := insertUser(t, db, "student@example.com", "Janny", "Doe")

	day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	insertOrder(t, db, userID, shopID, 5.50, entity.StatusPending, day.Add(10*time.Hour))
	insertOrder(t, db, userID, shopID, 8.00, entity.StatusReady, day.Add(13*time.Hour))
	insertOrder(t, db, userID, shopID, 99.0, entity.StatusPending, day.AddDate(0, 0, -1).Add(23*time.Hour))

	count, revenue, err := repo.DailyStats(ctx, shopID, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 13.50, revenue, 1e-9)
}

func TestDailyStatsEmptyDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	count, revenue, err := repo.DailyStats(context.Background(), 1, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Zero(t, revenue)
}

func TestOrderTotalsWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	shopID := insertShop(t, db, "Frankie Rolls")
	userID := insertUser(t, db, "student@example.com", "Janny", "Doe")

	from := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // a Monday
	insertOrder(t, db, userID, shopID, 6.00, entity.StatusCompleted, from.Add(8*time.Hour))
	insertOrder(t, db, userID, shopID, 9.50, entity.StatusCompleted, from.AddDate(0, 0, 3))
	insertOrder(t, db, userID, shopID, 50.0, entity.StatusCompleted, from.AddDate(0, 0, 7)) // next week

	totals, err := repo.OrderTotals(ctx, shopID, from, from.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, totals, 2)

	sum := 0.0
	for _, tt := range totals {
		sum += tt.TotalPrice
	}
	assert.InDelta(t, 15.50, sum, 1e-9)
}
