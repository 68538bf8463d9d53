package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"canteen-service/internal/entity"
	"canteen-service/internal/repository"
	"canteen-service/internal/service"
)

// jsonError maps service/repository errors to HTTP responses:
// unknown rows are 404, bad input 400, everything else 500.
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(404, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, entity.ErrInvalidStatus),
		errors.Is(err, repository.ErrConflict):
		return c.JSON(400, map[string]string{"error": err.Error()})
	}
	return c.JSON(500, map[string]string{"error": err.Error()})
}
