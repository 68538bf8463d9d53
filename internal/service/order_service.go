package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"canteen-service/internal/entity"
	"canteen-service/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// ErrValidation is returned for structurally bad requests, e.g. an
// empty item list or a non-positive quantity.
var ErrValidation = errors.New("invalid request")

var weekDays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// OrderService owns the order lifecycle: creation, status transitions,
// the aggregated order views and the revenue summaries.
type OrderService struct {
	orderRepo   repository.OrderRepository
	kafkaWriter *kafka.Writer
	rdb         *redis.Client
}

// NewOrderService creates a new instance of OrderService. kafkaWriter
// and rdb may be nil; event publishing and idempotency checks are
// skipped then.
func NewOrderService(orderRepo repository.OrderRepository, kafkaWriter *kafka.Writer, rdb *redis.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		kafkaWriter: kafkaWriter,
		rdb:         rdb,
	}
}

// CreateOrder validates a checkout request and writes the order with
// all of its items atomically. The stored total is derived from the
// captured item prices; the client-supplied total is ignored.
func (s *OrderService) CreateOrder(ctx context.Context, req *entity.OrderRequest) (*entity.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrValidation)
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1 for product %d", ErrValidation, item.ProductID)
		}
	}

	if req.IdempotentKey != "" {
		fresh, err := s.claimIdempotentKey(ctx, req.IdempotentKey)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, fmt.Errorf("%w: idempotent key already used", ErrValidation)
		}
	}

	order, err := s.orderRepo.CreateOrder(ctx, req.UserID, req.ShopID, req.Items)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, err
	}

	if err := s.publishOrderEvent(ctx, order, "created"); err != nil {
		logger.Error().Err(err).Msgf("Error publishing created event for order %d", order.ID)
	}

	return order, nil
}

// UpdateOrderStatus parses and applies a status transition.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID int, rawStatus string) (entity.Status, error) {
	next, err := entity.ParseStatus(rawStatus)
	if err != nil {
		return "", err
	}

	current, err := s.orderRepo.GetOrderStatus(ctx, orderID)
	if err != nil {
		return "", err
	}
	if !current.CanTransitionTo(next) {
		return "", fmt.Errorf("%w: %s -> %s", entity.ErrInvalidStatus, current, next)
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, next); err != nil {
		logger.Error().Err(err).Msgf("Error updating status for order %d", orderID)
		return "", err
	}

	order := &entity.Order{ID: orderID, Status: next}
	if err := s.publishOrderEvent(ctx, order, "status"); err != nil {
		logger.Error().Err(err).Msgf("Error publishing status event for order %d", orderID)
	}

	return next, nil
}

// UserOrders returns a student's order history, newest first.
func (s *OrderService) UserOrders(ctx context.Context, userID int) ([]entity.UserOrderView, error) {
	return s.orderRepo.ListUserOrders(ctx, userID)
}

// ShopOrderSummary partitions a shop's orders into the pending, ready
// and completed buckets of the owner queue. Buckets keep the newest-
// first order of the underlying query.
func (s *OrderService) ShopOrderSummary(ctx context.Context, shopID int) (*entity.OrderSummary, error) {
	orders, err := s.orderRepo.ListShopOrders(ctx, shopID)
	if err != nil {
		return nil, err
	}

	summary := &entity.OrderSummary{
		Pending:   []entity.ShopOrderView{},
		Ready:     []entity.ShopOrderView{},
		Completed: []entity.ShopOrderView{},
	}
	for _, order := range orders {
		switch {
		case order.Status == entity.StatusPending:
			summary.Pending = append(summary.Pending, order)
		case order.Status == entity.StatusReady:
			summary.Ready = append(summary.Ready, order)
		default:
			summary.Completed = append(summary.Completed, order)
		}
	}
	return summary, nil
}

// DashboardStats returns today's order count and revenue plus the
// three most recent orders of a shop.
func (s *OrderService) DashboardStats(ctx context.Context, shopID int, now time.Time) (*entity.DashboardStats, error) {
	dayStart := startOfDay(now.UTC())
	count, revenue, err := s.orderRepo.DailyStats(ctx, shopID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	recent, err := s.orderRepo.RecentShopOrders(ctx, shopID, 3)
	if err != nil {
		return nil, err
	}

	return &entity.DashboardStats{
		TotalOrdersToday:  count,
		TotalRevenueToday: revenue,
		RecentOrders:      recent,
	}, nil
}

// WeeklySummary returns one revenue entry per day of the Mon..Sun week
// containing asOf. Days without orders report 0.0; exactly one entry
// carries is_today.
func (s *OrderService) WeeklySummary(ctx context.Context, shopID int, asOf time.Time) ([]entity.DaySummary, error) {
	today := startOfDay(asOf.UTC())
	weekStart := startOfWeek(today)

	totals, err := s.orderRepo.OrderTotals(ctx, shopID, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	earnings := make(map[string]float64)
	for _, t := range totals {
		day := startOfDay(t.OrderDate.UTC()).Format("2006-01-02")
		earnings[day] += t.TotalPrice
	}

	summary := make([]entity.DaySummary, 0, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		summary = append(summary, entity.DaySummary{
			Day:      weekDays[i],
			Earnings: earnings[day.Format("2006-01-02")],
			IsToday:  day.Equal(today),
		})
	}
	return summary, nil
}

func (s *OrderService) publishOrderEvent(ctx context.Context, order *entity.Order, key string) error {
	if s.kafkaWriter == nil {
		return nil
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return err
	}

	// order-created-1 or order-status-1
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%d", key, order.ID)),
		Value: orderJSON,
	}

	return s.kafkaWriter.WriteMessages(ctx, msg)
}

// claimIdempotentKey records a checkout key in redis for 24h and
// reports whether it was unseen before.
func (s *OrderService) claimIdempotentKey(ctx context.Context, key string) (bool, error) {
	if s.rdb == nil {
		return true, nil
	}

	redisKey := fmt.Sprintf("idempotent-key:%s", key)
	claimed, err := s.rdb.SetNX(ctx, redisKey, "exists", 24*time.Hour).Result()
	if err != nil {
		return false, err
	}
	return claimed, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// startOfWeek returns the Monday of the week containing day.
func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
