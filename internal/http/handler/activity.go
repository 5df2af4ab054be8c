package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orgcatalog.app/catalog/internal/http/dto"
	"orgcatalog.app/catalog/internal/service"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) Create(c *gin.Context) {
	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	activity, err := h.activityService.Create(c.Request.Context(), req.Name, req.ParentID)
	if err != nil {
		respondError(c, err, "failed to create activity")
		return
	}

	c.JSON(http.StatusCreated, dto.ToActivityResponse(activity))
}

func (h *ActivityHandler) List(c *gin.Context) {
	activities, err := h.activityService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list activities")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityListResponse(activities))
}

func (h *ActivityHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	activity, err := h.activityService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get activity")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityResponse(activity))
}

func (h *ActivityHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	activity, err := h.activityService.Update(c.Request.Context(), id, req.ToModel())
	if err != nil {
		respondError(c, err, "failed to update activity")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityResponse(activity))
}

func (h *ActivityHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.activityService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete activity")
		return
	}

	c.Status(http.StatusNoContent)
}
