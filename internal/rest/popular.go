package rest

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"myMovieLab/business/popularity"
	"myMovieLab/pkg/logger"
	"myMovieLab/pkg/metrics"
)

type PopularHandler struct {
	provider EngineProvider
	validate *validator.Validate
}

type PopularQuery struct {
	SortBy     string `query:"sort_by" validate:"omitempty,oneof=rating_count avg_rating weighted_score"`
	Limit      int    `query:"limit" validate:"omitempty,gte=1,lte=100"`
	MinRatings int    `query:"min_ratings" validate:"omitempty,gte=1"`
}

func NewPopularHandler(provider EngineProvider) *PopularHandler {
	return &PopularHandler{
		provider: provider,
		validate: validator.New(),
	}
}

// GET /api/popular-movies?sort_by=weighted_score&limit=20&min_ratings=10
func (h *PopularHandler) PopularMovies(c echo.Context) error {
	metrics.RequestsTotal.WithLabelValues("popular").Inc()

	var q PopularQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	bundle := h.provider.Current()
	if bundle == nil {
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "engine not ready"})
	}

	result, err := bundle.Popularity.PopularMovies(c.Request().Context(), popularity.Query{
		SortBy:     q.SortBy,
		Limit:      q.Limit,
		MinRatings: q.MinRatings,
	})
	if err != nil {
		logger.Error("Failed to compute popular movies", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}
