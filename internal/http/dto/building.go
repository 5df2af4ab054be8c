package dto

import "orgcatalog.app/catalog/internal/model"

type CreateBuildingRequest struct {
	Address   string   `json:"address" binding:"required,min=1,max=500"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type UpdateBuildingRequest struct {
	Address   *string  `json:"address,omitempty" binding:"omitempty,min=1,max=500"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r UpdateBuildingRequest) ToModel() model.BuildingUpdate {
	return model.BuildingUpdate{
		Address:   r.Address,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}

// RadiusQuery is the query string of the by_radius endpoints.
type RadiusQuery struct {
	Latitude  *float64 `form:"latitude" binding:"required"`
	Longitude *float64 `form:"longitude" binding:"required"`
	RadiusKm  *float64 `form:"radius_km" binding:"required"`
}

type BuildingResponse struct {
	ID        int64   `json:"id,string"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type BuildingListResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
}

func ToBuildingResponse(b *model.Building) BuildingResponse {
	return BuildingResponse{
		ID:        b.ID,
		Address:   b.Address,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
	}
}

func ToBuildingListResponse(buildings []model.Building) BuildingListResponse {
	resp := BuildingListResponse{Buildings: make([]BuildingResponse, len(buildings))}
	for i := range buildings {
		resp.Buildings[i] = ToBuildingResponse(&buildings[i])
	}
	return resp
}
