package api

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"canteen-service/internal/entity"
	"canteen-service/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder places a new order --> POST /orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	req := entity.OrderRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	req.IdempotentKey = c.Request().Header.Get("Idempotent-Key")

	order, err := h.orderService.CreateOrder(ctx, &req)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(201, map[string]interface{}{
		"message":  "Order created successfully",
		"order_id": order.ID,
	})
}

// GetUserOrders returns a student's history --> GET /orders/user/:user_id
func (h *OrderHandler) GetUserOrders(c echo.Context) error {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid user ID"})
	}

	orders, err := h.orderService.UserOrders(c.Request().Context(), userID)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, orders)
}

// GetShopOrderSummary returns the owner queue --> GET /orders/shop/:shop_id/summary
func (h *OrderHandler) GetShopOrderSummary(c echo.Context) error {
	shopID, err := strconv.Atoi(c.Param("shop_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid shop ID"})
	}

	summary, err := h.orderService.ShopOrderSummary(c.Request().Context(), shopID)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, summary)
}

// UpdateOrderStatus progresses an order --> PUT /orders/:order_id/status
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid order ID"})
	}

	body := struct {
		Status string `json:"status"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	status, err := h.orderService.UpdateOrderStatus(c.Request().Context(), orderID, body.Status)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]string{
		"message":    "Order status updated",
		"new_status": string(status),
	})
}

// GetDashboardStats returns today's figures --> GET /dashboard/shop/:shop_id
func (h *OrderHandler) GetDashboardStats(c echo.Context) error {
	shopID, err := strconv.Atoi(c.Param("shop_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid shop ID"})
	}

	stats, err := h.orderService.DashboardStats(c.Request().Context(), shopID, time.Now())
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, stats)
}

// GetWeeklySummary returns the Mon..Sun revenue grid --> GET /dashboard/shop/:shop_id/weekly-summary
func (h *OrderHandler) GetWeeklySummary(c echo.Context) error {
	shopID, err := strconv.Atoi(c.Param("shop_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid shop ID"})
	}

	summary, err := h.orderService.WeeklySummary(c.Request().Context(), shopID, time.Now())
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, summary)
}
