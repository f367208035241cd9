package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mental-wellness-api/internal/service"
)

// Registrar creates users and hands out their API keys.
type Registrar interface {
	Register(ctx context.Context, username string) (service.Registration, error)
}

// AuthHandler serves the registration endpoint.
type AuthHandler struct {
	Users Registrar
}

func NewAuthHandler(u Registrar) *AuthHandler {
	return &AuthHandler{Users: u}
}

type registerReq struct {
	Username string `json:"username" validate:"notblank"`
}

// Register: create a user and return the API key once.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	reg, err := h.Users.Register(c.Request().Context(), req.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, reg)
}
