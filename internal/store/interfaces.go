package store

import (
	"context"

	"orgcatalog.app/catalog/internal/geo"
	"orgcatalog.app/catalog/internal/model"
)

// ActivityStore defines the contract for activity data access.
// It doubles as the activitytree.Graph the hierarchy checks walk.
type ActivityStore interface {
	GetByID(ctx context.Context, id int64) (*model.Activity, error)
	List(ctx context.Context) ([]model.Activity, error)
	Create(ctx context.Context, activity *model.Activity) error
	Update(ctx context.Context, id int64, update model.ActivityUpdate) (*model.Activity, error)
	Delete(ctx context.Context, id int64) error

	ParentOf(ctx context.Context, id int64) (*int64, error)
	IDsByName(ctx context.Context, name string) ([]int64, error)
	IDsByNames(ctx context.Context, names []string) ([]int64, error)
	ChildrenOf(ctx context.Context, ids []int64) ([]int64, error)
}

// BuildingStore defines the contract for building data access
type BuildingStore interface {
	GetByID(ctx context.Context, id int64) (*model.Building, error)
	List(ctx context.Context) ([]model.Building, error)
	Create(ctx context.Context, building *model.Building) error
	Update(ctx context.Context, id int64, update model.BuildingUpdate) (*model.Building, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	// ListWithinBox returns the buildings inside box. Callers still apply the exact radius filter.
	ListWithinBox(ctx context.Context, box geo.Box) ([]model.Building, error)
}

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	List(ctx context.Context) ([]model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, id int64, update model.OrganizationUpdate) (*model.Organization, error)
	Delete(ctx context.Context, id int64) error

	AttachActivities(ctx context.Context, orgID int64, activityIDs []int64) error
	ReplaceActivities(ctx context.Context, orgID int64, activityIDs []int64) error
	Detail(ctx context.Context, orgID int64) (*model.OrganizationDetail, error)

	ListByActivityName(ctx context.Context, name string) ([]model.Organization, error)
	ListByActivityIDs(ctx context.Context, activityIDs []int64) ([]model.Organization, error)
	ListByBuilding(ctx context.Context, buildingID int64) ([]model.Organization, error)
	ListByBuildingIDs(ctx context.Context, buildingIDs []int64) ([]model.Organization, error)
	SearchByName(ctx context.Context, fragment string) ([]model.Organization, error)
}
