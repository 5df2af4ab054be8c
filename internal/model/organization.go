package model

type Organization struct {
	ID         int64    `json:"id,string" db:"id"`
	Name       string   `json:"name" db:"name"`
	Phones     []string `json:"phones" db:"phones"`
	BuildingID int64    `json:"building_id,string" db:"building_id"`
}

type OrganizationUpdate struct {
	Name       *string
	Phones     *[]string
	BuildingID *int64
}

func (u OrganizationUpdate) Empty() bool {
	return u.Name == nil && u.Phones == nil && u.BuildingID == nil
}

// OrganizationDetail is the denormalized read view: the organization with its
// building address and the names of its activities.
type OrganizationDetail struct {
	ID              int64    `json:"id,string"`
	Name            string   `json:"name"`
	Phones          []string `json:"phones"`
	BuildingID      int64    `json:"building_id,string"`
	BuildingAddress string   `json:"building_address"`
	Activities      []string `json:"activities"`
}

// OrganizationActivity links an organization to one activity.
type OrganizationActivity struct {
	OrganizationID int64 `db:"organization_id"`
	ActivityID     int64 `db:"activity_id"`
}
