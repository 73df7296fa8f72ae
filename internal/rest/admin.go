package rest

import (
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"myMovieLab/pkg/logger"
)

type AdminHandler struct {
	provider EngineProvider
}

func NewAdminHandler(provider EngineProvider) *AdminHandler {
	return &AdminHandler{provider: provider}
}

// POST /api/admin/reload
//
// Rebuilds the engine bundle from the dataset repository. The swap is a
// single pointer store; in-flight requests keep the bundle they started
// with, and a failed rebuild leaves the previous bundle serving.
func (h *AdminHandler) Reload(c echo.Context) error {
	bundle, err := h.provider.Rebuild(c.Request().Context())
	if err != nil {
		logger.Error("Engine reload failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"version":  bundle.Version,
		"built_at": bundle.BuiltAt,
	}))
}
