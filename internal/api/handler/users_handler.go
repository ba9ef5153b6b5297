package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siher/webpage-publisher/internal/core/ports"
)

type UsersHandler struct {
	service ports.UsersService
}

func NewUsersHandler(service ports.UsersService) *UsersHandler {
	return &UsersHandler{service: service}
}

// List returns the public directory of published users.
//
// GET /users
func (h *UsersHandler) List(c echo.Context) error {
	users, err := h.service.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Subscribe adds an email to the newsletter list.
//
// GET /users/subscribe?email=
func (h *UsersHandler) Subscribe(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	sub, err := h.service.Subscribe(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{
		Message: "Email subscribed successfully",
		Email:   sub.Email,
	})
}
