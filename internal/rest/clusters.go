package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"myMovieLab/pkg/metrics"
)

type ClustersHandler struct {
	provider EngineProvider
}

func NewClustersHandler(provider EngineProvider) *ClustersHandler {
	return &ClustersHandler{provider: provider}
}

// GET /api/clusters
func (h *ClustersHandler) ListClusters(c echo.Context) error {
	metrics.RequestsTotal.WithLabelValues("clusters").Inc()

	bundle := h.provider.Current()
	if bundle == nil {
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "engine not ready"})
	}

	return c.JSON(http.StatusOK, bundle.Clusters)
}
