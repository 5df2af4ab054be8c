package dto

import "orgcatalog.app/catalog/internal/model"

type CreateActivityRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	ParentID *int64 `json:"parent_id,string,omitempty"`
}

// UpdateActivityRequest changes only the fields present. DetachParent makes the activity a root.
type UpdateActivityRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	ParentID     *int64  `json:"parent_id,string,omitempty"`
	DetachParent bool    `json:"detach_parent,omitempty"`
}

func (r UpdateActivityRequest) ToModel() model.ActivityUpdate {
	return model.ActivityUpdate{
		Name:        r.Name,
		ParentID:    r.ParentID,
		ClearParent: r.DetachParent,
	}
}

type ActivityResponse struct {
	ID       int64  `json:"id,string"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,string"`
}

type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

func ToActivityResponse(a *model.Activity) ActivityResponse {
	return ActivityResponse{ID: a.ID, Name: a.Name, ParentID: a.ParentID}
}

func ToActivityListResponse(activities []model.Activity) ActivityListResponse {
	resp := ActivityListResponse{Activities: make([]ActivityResponse, len(activities))}
	for i := range activities {
		resp.Activities[i] = ToActivityResponse(&activities[i])
	}
	return resp
}
