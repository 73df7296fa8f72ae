package router

import (
	"github.com/labstack/echo/v4"

	"myMovieLab/internal/rest"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UsersHandler) {
	api.GET("/users", handler.ListUsers)
}

func SetupRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	api.GET("/recommend/:user_id", handler.Recommend)
}

func SetupClusterRoutes(api *echo.Group, handler *rest.ClustersHandler) {
	api.GET("/clusters", handler.ListClusters)
}

func SetupPopularRoutes(api *echo.Group, handler *rest.PopularHandler) {
	api.GET("/popular-movies", handler.PopularMovies)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler) {
	admin := api.Group("/admin")
	admin.POST("/reload", handler.Reload)
}

func SetupHealthRoutes(api *echo.Group, handler *rest.HealthHandler) {
	api.GET("/health", handler.Health)
}
