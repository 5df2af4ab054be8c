package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orgcatalog.app/catalog/internal/geo"
	"orgcatalog.app/catalog/internal/http/dto"
	"orgcatalog.app/catalog/internal/service"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.orgService.Create(c.Request.Context(), service.CreateOrganizationParams{
		Name:          req.Organization.Name,
		Phones:        req.Organization.Phones,
		BuildingID:    req.Organization.BuildingID,
		ActivityNames: req.Activities,
	})
	if err != nil {
		respondError(c, err, "failed to create organization")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationDetailResponse(detail))
}

func (h *OrganizationHandler) List(c *gin.Context) {
	orgs, err := h.orgService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list organizations")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationListResponse(orgs))
}

// GetByID returns the detailed view: building address and activity names included.
func (h *OrganizationHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.orgService.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDetailResponse(detail))
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.orgService.Update(c.Request.Context(), id, req.ToModel(), req.Activities)
	if err != nil {
		respondError(c, err, "failed to update organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDetailResponse(detail))
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orgService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete organization")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrganizationHandler) ByName(c *gin.Context) {
	orgs, err := h.orgService.SearchByName(c.Request.Context(), c.Query("organization_name"))
	if err != nil {
		respondError(c, err, "failed to search organizations")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationListResponse(orgs))
}

func (h *OrganizationHandler) ByActivity(c *gin.Context) {
	orgs, err := h.orgService.ByActivityName(c.Request.Context(), c.Query("activity_name"))
	if err != nil {
		respondError(c, err, "failed to list organizations by activity")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationListResponse(orgs))
}

// ByActivityTree includes organizations linked to any activity nested under the named one.
func (h *OrganizationHandler) ByActivityTree(c *gin.Context) {
	orgs, err := h.orgService.ByActivityTree(c.Request.Context(), c.Query("activity_name"))
	if err != nil {
		respondError(c, err, "failed to list organizations by activity tree")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationListResponse(orgs))
}

func (h *OrganizationHandler) ByRadius(c *gin.Context) {
	var q dto.RadiusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	center := geo.Point{Lat: *q.Latitude, Lon: *q.Longitude}
	orgs, err := h.orgService.ByRadius(c.Request.Context(), center, *q.RadiusKm)
	if err != nil {
		respondError(c, err, "failed to list organizations by radius")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationListResponse(orgs))
}

func (h *OrganizationHandler) ByBuilding(c *gin.Context) {
	buildingID, ok := pathID(c, "building_id")
	if !ok {
		return
	}

	orgs, err := h.orgService.ByBuilding(c.Request.Context(), buildingID)
	if err != nil {
		respondError(c, err, "failed to list organizations by building")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationListResponse(orgs))
}
