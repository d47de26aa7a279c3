package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"johnsonShop/internal/api/handlers"
	"johnsonShop/internal/api/middleware"
	"johnsonShop/internal/api/response"
	"johnsonShop/internal/config"
	"johnsonShop/internal/planner"
)

// NewRouter builds the engine with middleware and all routes.
func NewRouter(p *planner.Planner, limits config.Limits, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging())
	SetupRoutes(router, p, limits, gatherer)
	return router
}

func SetupRoutes(router *gin.Engine, p *planner.Planner, limits config.Limits, gatherer prometheus.Gatherer) {
	scheduleHandler := handlers.NewScheduleHandler(p, limits)
	healthHandler := handlers.NewHealthHandler()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.CheckHealth)
		v1.GET("/default", scheduleHandler.Default)
		v1.POST("/schedule", scheduleHandler.Schedule)
		v1.POST("/sequence", scheduleHandler.Sequence)
	}

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, response.NOT_FOUND, "")
	})

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}
