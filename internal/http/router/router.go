package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orgcatalog.app/catalog/internal/http/handler"
	"orgcatalog.app/catalog/internal/http/middleware"
	"orgcatalog.app/catalog/internal/service"
)

type RouterConfig struct {
	// APIKey guards /api/v1. Empty disables the check.
	APIKey string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1", middleware.RequireAPIKey(cfg.APIKey))
	{
		activityHandler := handler.NewActivityHandler(services.Activities())
		ActivityRouter(v1.Group("/activities"), activityHandler)

		buildingHandler := handler.NewBuildingHandler(services.Buildings())
		BuildingRouter(v1.Group("/buildings"), buildingHandler)

		orgHandler := handler.NewOrganizationHandler(services.Organizations())
		OrganizationRouter(v1.Group("/organizations"), orgHandler)
	}
}
