package api

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"canteen-service/internal/entity"
	"canteen-service/internal/repository"
	"canteen-service/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Login authenticates students and shop owners --> POST /login
func (h *UserHandler) Login(c echo.Context) error {
	login := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&login); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	user, token, err := h.userService.Login(c.Request().Context(), login.Email, login.Password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(401, map[string]string{"error": "Invalid email or password"})
		}
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Signup registers a student account --> POST /signup
func (h *UserHandler) Signup(c echo.Context) error {
	signup := entity.UserSignup{}
	if err := c.Bind(&signup); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	_, err := h.userService.Signup(c.Request().Context(), &signup)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(201, map[string]string{"message": "Account created successfully! Please log in."})
}

// UpdateUser applies a partial profile update --> PUT /users/:id
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid user ID"})
	}

	update := entity.UserUpdate{}
	if err := c.Bind(&update); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), id, &update)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, user)
}
