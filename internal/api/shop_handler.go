package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"canteen-service/internal/service"
)

type ShopHandler struct {
	shopService service.ShopService
}

func NewShopHandler(shopService service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// ListShops --> GET /shops
func (h *ShopHandler) ListShops(c echo.Context) error {
	shops, err := h.shopService.ListShops(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, shops)
}

// RenameShop --> PUT /shops/:id
func (h *ShopHandler) RenameShop(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid shop ID"})
	}

	body := struct {
		Name string `json:"name"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	shop, err := h.shopService.RenameShop(c.Request().Context(), id, body.Name)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, shop)
}

// ListCategories --> GET /categories
func (h *ShopHandler) ListCategories(c echo.Context) error {
	categories, err := h.shopService.ListCategories(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, categories)
}
