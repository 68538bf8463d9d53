package entity

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidStatus is returned for unknown status values and for
// transitions the state machine does not allow.
var ErrInvalidStatus = errors.New("invalid order status")

// Status is the closed set of order states. The stored value is the
// display string, e.g. "Pending".
type Status string

const (
	StatusPending   Status = "Pending"
	StatusReady     Status = "Ready"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// transitions maps a status to the states reachable from it. Every
// status may also be re-set to itself.
var transitions = map[Status][]Status{
	StatusPending:   {StatusReady, StatusCompleted, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ParseStatus validates a raw status string against the closed set.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := transitions[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Re-setting the current status is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether s ends the order lifecycle. Terminal orders
// show up in the history/completed bucket of the shop summary.
func (s Status) Terminal() bool {
	return s != StatusPending && s != StatusReady
}

type Order struct {
	ID         int         `json:"id"`
	UserID     int         `json:"user_id"`
	ShopID     int         `json:"shop_id"`
	TotalPrice float64     `json:"total_price"`
	Status     Status      `json:"status"`
	OrderDate  time.Time   `json:"order_date"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderItem carries the price snapshot taken when the order was
// created; later catalog price changes never touch it.
type OrderItem struct {
	ID           int     `json:"id"`
	OrderID      int     `json:"order_id"`
	ProductID    int     `json:"product_id"`
	Quantity     int     `json:"quantity"`
	PricePerItem float64 `json:"price_per_item"`
}

// OrderRequest is the checkout payload. TotalPrice is accepted for
// compatibility with older clients but the server derives the stored
// total from the captured item prices.
type OrderRequest struct {
	UserID     int                `json:"user_id"`
	ShopID     int                `json:"shop_id"`
	TotalPrice float64            `json:"total_price"`
	Items      []OrderItemRequest `json:"items"`

	IdempotentKey string `json:"-"`
}

type OrderItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// OrderItemView is one line of an aggregated order, joined to the
// product catalog for display fields.
type OrderItemView struct {
	OrderID      int     `json:"order_id"`
	ProductName  string  `json:"product_name"`
	ImageURL     string  `json:"image_url"`
	Quantity     int     `json:"quantity"`
	PricePerItem float64 `json:"price_per_item"`
}

// UserOrderView is an order as shown in a student's history.
type UserOrderView struct {
	OrderID    int             `json:"order_id"`
	TotalPrice float64         `json:"total_price"`
	Status     Status          `json:"status"`
	OrderDate  time.Time       `json:"order_date"`
	ShopName   string          `json:"shop_name"`
	Items      []OrderItemView `json:"items"`
}

// ShopOrderView is an order as shown to the shop owner, with the
// customer's name joined in.
type ShopOrderView struct {
	OrderID    int             `json:"order_id"`
	TotalPrice float64         `json:"total_price"`
	Status     Status          `json:"status"`
	OrderDate  time.Time       `json:"order_date"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Items      []OrderItemView `json:"items"`
}

// OrderSummary partitions a shop's orders into the owner's live queue
// buckets. Every order lands in exactly one bucket.
type OrderSummary struct {
	Pending   []ShopOrderView `json:"pending"`
	Ready     []ShopOrderView `json:"ready"`
	Completed []ShopOrderView `json:"completed"`
}

type DashboardStats struct {
	TotalOrdersToday  int             `json:"total_orders_today"`
	TotalRevenueToday float64         `json:"total_revenue_today"`
	RecentOrders      []ShopOrderView `json:"recent_orders"`
}

// DaySummary is one Mon..Sun entry of the weekly revenue grid.
type DaySummary struct {
	Day      string  `json:"day"`
	Earnings float64 `json:"earnings"`
	IsToday  bool    `json:"is_today"`
}

// OrderTotal is a header projection used by the revenue rollups.
type OrderTotal struct {
	OrderDate  time.Time
	TotalPrice float64
}
