package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"canteen-service/internal/entity"
	"canteen-service/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts returns the catalog --> GET /products?shop_id=&category_id=
func (h *ProductHandler) ListProducts(c echo.Context) error {
	var shopID, categoryID *int
	if raw := c.QueryParam("shop_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(400, map[string]string{"error": "Invalid shop ID"})
		}
		shopID = &id
	}
	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(400, map[string]string{"error": "Invalid category ID"})
		}
		categoryID = &id
	}

	products, err := h.productService.ListProducts(c.Request().Context(), shopID, categoryID)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, products)
}

// ListShopProducts returns one shop's menu --> GET /products/shop/:shop_id
func (h *ProductHandler) ListShopProducts(c echo.Context) error {
	shopID, err := strconv.Atoi(c.Param("shop_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid shop ID"})
	}

	products, err := h.productService.ListProducts(c.Request().Context(), &shopID, nil)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, products)
}

// GetProduct returns one product --> GET /products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	product, err := h.productService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, product)
}

// CreateProduct adds a product --> POST /products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	product := entity.Product{}
	if err := c.Bind(&product); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.productService.CreateProduct(c.Request().Context(), &product)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(201, created)
}

// UpdateProduct applies a partial update --> PUT /products/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	update := entity.ProductUpdate{}
	if err := c.Bind(&update); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	updated, err := h.productService.UpdateProduct(c.Request().Context(), id, &update)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, updated)
}
