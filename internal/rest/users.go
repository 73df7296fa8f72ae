package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"myMovieLab/business/engine"
	"myMovieLab/pkg/logger"
	"myMovieLab/pkg/metrics"
)

// EngineProvider hands out the current immutable engine bundle and can
// rebuild it on demand.
type EngineProvider interface {
	Current() *engine.Bundle
	Rebuild(ctx context.Context) (*engine.Bundle, error)
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type UsersHandler struct {
	provider EngineProvider
}

func NewUsersHandler(provider EngineProvider) *UsersHandler {
	return &UsersHandler{provider: provider}
}

// GET /api/users
func (h *UsersHandler) ListUsers(c echo.Context) error {
	metrics.RequestsTotal.WithLabelValues("users").Inc()

	bundle := h.provider.Current()
	if bundle == nil {
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "engine not ready"})
	}

	users, err := bundle.Catalog.ListUsers(c.Request().Context())
	if err != nil {
		logger.Error("Failed to list users", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, users)
}
