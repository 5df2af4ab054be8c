package router

import (
	"github.com/gin-gonic/gin"

	"orgcatalog.app/catalog/internal/http/handler"
)

func BuildingRouter(rg *gin.RouterGroup, h *handler.BuildingHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/by_radius", h.ByRadius)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
