package router

import (
	"github.com/gin-gonic/gin"

	"orgcatalog.app/catalog/internal/http/handler"
)

func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/by_name", h.ByName)
	rg.GET("/by_activity", h.ByActivity)
	rg.GET("/by_activity_tree", h.ByActivityTree)
	rg.GET("/by_radius", h.ByRadius)
	rg.GET("/by_building/:building_id", h.ByBuilding)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
