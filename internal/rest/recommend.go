package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"myMovieLab/domain"
	redisrepo "myMovieLab/internal/repository/redis"
	"myMovieLab/pkg/logger"
	"myMovieLab/pkg/metrics"
)

type RecommendHandler struct {
	provider EngineProvider
	cache    *redisrepo.RecommendationCache // nil when caching is disabled
	validate *validator.Validate
}

type RecommendQuery struct {
	N int `query:"n" validate:"omitempty,gte=1,lte=100"`
}

func NewRecommendHandler(provider EngineProvider, cache *redisrepo.RecommendationCache) *RecommendHandler {
	return &RecommendHandler{
		provider: provider,
		cache:    cache,
		validate: validator.New(),
	}
}

// GET /api/recommend/:user_id?n=10
func (h *RecommendHandler) Recommend(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	}()
	metrics.RequestsTotal.WithLabelValues("recommend").Inc()

	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "user_id must be an integer"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.N <= 0 {
		q.N = 10
	}

	bundle := h.provider.Current()
	if bundle == nil {
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "engine not ready"})
	}

	ctx := c.Request().Context()

	if h.cache != nil {
		cached, err := h.cache.Get(ctx, bundle.Version, userID, q.N)
		if err != nil {
			logger.Warn("recommendation cache read failed", "error", err)
		}
		if cached != nil {
			metrics.CacheHitsTotal.Inc()
			return c.JSON(http.StatusOK, cached)
		}
		metrics.CacheMissesTotal.Inc()
	}

	recs, err := bundle.Recommender.Recommend(ctx, userID, q.N)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownUser) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to compute recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, bundle.Version, userID, q.N, recs); err != nil {
			logger.Warn("recommendation cache write failed", "error", err)
		}
	}

	return c.JSON(http.StatusOK, recs)
}
