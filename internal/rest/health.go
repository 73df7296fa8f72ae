package rest

import (
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	provider EngineProvider
}

func NewHealthHandler(provider EngineProvider) *HealthHandler {
	return &HealthHandler{provider: provider}
}

// GET /api/health
func (h *HealthHandler) Health(c echo.Context) error {
	bundle := h.provider.Current()
	if bundle == nil {
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "engine not ready"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"status":   "ok",
		"version":  bundle.Version,
		"built_at": bundle.BuiltAt,
		"users":    bundle.Catalog.NumUsers(),
		"movies":   bundle.Catalog.NumMovies(),
	}))
}
