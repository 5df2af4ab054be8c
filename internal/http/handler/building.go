package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orgcatalog.app/catalog/internal/geo"
	"orgcatalog.app/catalog/internal/http/dto"
	"orgcatalog.app/catalog/internal/service"
)

type BuildingHandler struct {
	buildingService service.BuildingService
}

func NewBuildingHandler(buildingService service.BuildingService) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService}
}

func (h *BuildingHandler) Create(c *gin.Context) {
	var req dto.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	location := geo.Point{Lat: *req.Latitude, Lon: *req.Longitude}
	building, err := h.buildingService.Create(c.Request.Context(), req.Address, location)
	if err != nil {
		respondError(c, err, "failed to create building")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBuildingResponse(building))
}

func (h *BuildingHandler) List(c *gin.Context) {
	buildings, err := h.buildingService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list buildings")
		return
	}

	c.JSON(http.StatusOK, dto.ToBuildingListResponse(buildings))
}

func (h *BuildingHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	building, err := h.buildingService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get building")
		return
	}

	c.JSON(http.StatusOK, dto.ToBuildingResponse(building))
}

func (h *BuildingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	building, err := h.buildingService.Update(c.Request.Context(), id, req.ToModel())
	if err != nil {
		respondError(c, err, "failed to update building")
		return
	}

	c.JSON(http.StatusOK, dto.ToBuildingResponse(building))
}

func (h *BuildingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.buildingService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete building")
		return
	}

	c.Status(http.StatusNoContent)
}

// ByRadius lists buildings within radius_km of (latitude, longitude).
func (h *BuildingHandler) ByRadius(c *gin.Context) {
	var q dto.RadiusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	center := geo.Point{Lat: *q.Latitude, Lon: *q.Longitude}
	buildings, err := h.buildingService.ByRadius(c.Request.Context(), center, *q.RadiusKm)
	if err != nil {
		respondError(c, err, "failed to find buildings by radius")
		return
	}

	c.JSON(http.StatusOK, dto.ToBuildingListResponse(buildings))
}
