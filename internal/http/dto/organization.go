package dto

import "orgcatalog.app/catalog/internal/model"

type OrganizationFields struct {
	Name       string   `json:"name" binding:"required,min=1,max=255"`
	Phones     []string `json:"phones"`
	BuildingID int64    `json:"building_id,string" binding:"required"`
}

// CreateOrganizationRequest carries the organization and the names of its activities.
type CreateOrganizationRequest struct {
	Organization OrganizationFields `json:"organization"`
	Activities   []string           `json:"activities"`
}

// UpdateOrganizationRequest changes only the fields present. Activities, when
// present, replaces the linked activities.
type UpdateOrganizationRequest struct {
	Name       *string   `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Phones     *[]string `json:"phones,omitempty"`
	BuildingID *int64    `json:"building_id,string,omitempty"`
	Activities *[]string `json:"activities,omitempty"`
}

func (r UpdateOrganizationRequest) ToModel() model.OrganizationUpdate {
	return model.OrganizationUpdate{
		Name:       r.Name,
		Phones:     r.Phones,
		BuildingID: r.BuildingID,
	}
}

type OrganizationResponse struct {
	ID         int64    `json:"id,string"`
	Name       string   `json:"name"`
	Phones     []string `json:"phones"`
	BuildingID int64    `json:"building_id,string"`
}

type OrganizationDetailResponse struct {
	ID         int64    `json:"id,string"`
	Name       string   `json:"name"`
	Phones     []string `json:"phones"`
	BuildingID int64    `json:"building_id,string"`
	Address    string   `json:"address"`
	Activities []string `json:"activities"`
}

type OrganizationListResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
}

func ToOrganizationResponse(org *model.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:         org.ID,
		Name:       org.Name,
		Phones:     nonNil(org.Phones),
		BuildingID: org.BuildingID,
	}
}

func ToOrganizationDetailResponse(d *model.OrganizationDetail) OrganizationDetailResponse {
	return OrganizationDetailResponse{
		ID:         d.ID,
		Name:       d.Name,
		Phones:     nonNil(d.Phones),
		BuildingID: d.BuildingID,
		Address:    d.BuildingAddress,
		Activities: nonNil(d.Activities),
	}
}

func ToOrganizationListResponse(orgs []model.Organization) OrganizationListResponse {
	resp := OrganizationListResponse{Organizations: make([]OrganizationResponse, len(orgs))}
	for i := range orgs {
		resp.Organizations[i] = ToOrganizationResponse(&orgs[i])
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
