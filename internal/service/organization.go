package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"orgcatalog.app/catalog/common/id"
	"orgcatalog.app/catalog/common/logger"
	"orgcatalog.app/catalog/internal/activitytree"
	"orgcatalog.app/catalog/internal/geo"
	"orgcatalog.app/catalog/internal/model"
	"orgcatalog.app/catalog/internal/observability"
	"orgcatalog.app/catalog/internal/queue"
	"orgcatalog.app/catalog/internal/store"
)

// CreateOrganizationParams describes a new organization and the names of the
// activities it should be linked to.
type CreateOrganizationParams struct {
	Name          string
	Phones        []string
	BuildingID    int64
	ActivityNames []string
}

type OrganizationService interface {
	Create(ctx context.Context, params CreateOrganizationParams) (*model.OrganizationDetail, error)
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	Detail(ctx context.Context, id int64) (*model.OrganizationDetail, error)
	List(ctx context.Context) ([]model.Organization, error)
	// Update changes the given fields. A non-nil activityNames replaces the
	// activity links, resolved the same way as on create.
	Update(ctx context.Context, id int64, update model.OrganizationUpdate, activityNames *[]string) (*model.OrganizationDetail, error)
	Delete(ctx context.Context, id int64) error

	ByActivityName(ctx context.Context, name string) ([]model.Organization, error)
	ByActivityTree(ctx context.Context, name string) ([]model.Organization, error)
	ByRadius(ctx context.Context, center geo.Point, radiusKm float64) ([]model.Organization, error)
	ByBuilding(ctx context.Context, buildingID int64) ([]model.Organization, error)
	SearchByName(ctx context.Context, fragment string) ([]model.Organization, error)
}

type organizationService struct {
	tx       TxRunner
	producer queue.Producer
}

func NewOrganizationService(tx TxRunner, producer queue.Producer) OrganizationService {
	return &organizationService{tx: tx, producer: producer}
}

// Create checks the building, resolves the activity names, inserts the
// organization and its links, and returns the detailed view, all in one
// unit of work. Names that match no activity are skipped.
func (s *organizationService) Create(ctx context.Context, params CreateOrganizationParams) (*model.OrganizationDetail, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("organization name is required: %w", ErrInvalidArgument)
	}

	org := &model.Organization{
		ID:         id.New(),
		Name:       name,
		Phones:     params.Phones,
		BuildingID: params.BuildingID,
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrganizationID: &org.ID,
		BuildingID:     &org.BuildingID,
		Component:      "catalog.service.organizations",
	})

	sc := logger.StartSpan(ctx, "service.organizations.create")
	defer sc.End()
	ctx = sc.Context()

	var detail *model.OrganizationDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		if err := requireBuilding(ctx, stores, org.BuildingID); err != nil {
			return err
		}

		activityIDs, err := resolveActivityNames(ctx, stores, params.ActivityNames)
		if err != nil {
			return err
		}

		if err := stores.Organizations().Create(ctx, org); err != nil {
			return err
		}
		if err := stores.Organizations().AttachActivities(ctx, org.ID, activityIDs); err != nil {
			return err
		}

		detail, err = stores.Organizations().Detail(ctx, org.ID)
		return err
	})
	if err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "failed to create organization", "error", err)
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	slog.InfoContext(ctx, "organization created", "activities", len(detail.Activities))
	publish(ctx, s.producer, queue.CatalogEvent{Type: queue.EventOrganizationCreated, EntityID: org.ID, Name: org.Name})
	return detail, nil
}

func (s *organizationService) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	org, err := lookup(ctx, s.tx, func(ctx context.Context, stores StoreProvider) (*model.Organization, error) {
		return stores.Organizations().GetByID(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("getting organization: %w", err)
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	return org, nil
}

func (s *organizationService) Detail(ctx context.Context, id int64) (*model.OrganizationDetail, error) {
	detail, err := lookup(ctx, s.tx, func(ctx context.Context, stores StoreProvider) (*model.OrganizationDetail, error) {
		return stores.Organizations().Detail(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("getting organization detail: %w", err)
	}
	if detail == nil {
		return nil, ErrOrganizationNotFound
	}
	return detail, nil
}

func (s *organizationService) List(ctx context.Context) ([]model.Organization, error) {
	return s.list(ctx, "listing organizations", func(ctx context.Context, stores StoreProvider) ([]model.Organization, error) {
		return stores.Organizations().List(ctx)
	})
}

func (s *organizationService) Update(ctx context.Context, id int64, update model.OrganizationUpdate, activityNames *[]string) (*model.OrganizationDetail, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("organization name cannot be empty: %w", ErrInvalidArgument)
		}
		update.Name = &name
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &id, Component: "catalog.service.organizations"})

	var detail *model.OrganizationDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		if update.BuildingID != nil {
			if err := requireBuilding(ctx, stores, *update.BuildingID); err != nil {
				return err
			}
		}

		if _, err := stores.Organizations().Update(ctx, id, update); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrOrganizationNotFound
			}
			return err
		}

		if activityNames != nil {
			activityIDs, err := resolveActivityNames(ctx, stores, *activityNames)
			if err != nil {
				return err
			}
			if err := stores.Organizations().ReplaceActivities(ctx, id, activityIDs); err != nil {
				return err
			}
		}

		var err error
		detail, err = stores.Organizations().Detail(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating organization: %w", err)
	}

	slog.InfoContext(ctx, "organization updated")
	publish(ctx, s.producer, queue.CatalogEvent{Type: queue.EventOrganizationUpdated, EntityID: id, Name: detail.Name})
	return detail, nil
}

func (s *organizationService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		return stores.Organizations().Delete(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrOrganizationNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting organization: %w", err)
	}

	slog.InfoContext(ctx, "organization deleted", "organization_id", id)
	publish(ctx, s.producer, queue.CatalogEvent{Type: queue.EventOrganizationDeleted, EntityID: id})
	return nil
}

// ByActivityName lists organizations linked directly to an activity called name.
func (s *organizationService) ByActivityName(ctx context.Context, name string) ([]model.Organization, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("activity name is required: %w", ErrInvalidArgument)
	}
	return s.list(ctx, "listing organizations by activity", func(ctx context.Context, stores StoreProvider) ([]model.Organization, error) {
		return stores.Organizations().ListByActivityName(ctx, name)
	})
}

// ByActivityTree lists organizations linked to an activity called name or to
// any activity nested below it.
func (s *organizationService) ByActivityTree(ctx context.Context, name string) ([]model.Organization, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("activity name is required: %w", ErrInvalidArgument)
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{ActivityName: &name, Component: "catalog.service.organizations"})

	sc := logger.StartSpan(ctx, "service.organizations.by_activity_tree")
	defer sc.End()
	ctx = sc.Context()

	orgs, err := s.list(ctx, "listing organizations by activity tree", func(ctx context.Context, stores StoreProvider) ([]model.Organization, error) {
		ids, err := activitytree.ResolveDescendants(ctx, stores.Activities(), name)
		if err != nil {
			return nil, err
		}
		slog.DebugContext(ctx, "resolved activity tree", "activity_ids", len(ids))
		return stores.Organizations().ListByActivityIDs(ctx, ids)
	})
	if err != nil {
		sc.RecordError(err)
	}
	return orgs, err
}

// ByRadius lists organizations housed in buildings within radiusKm of center.
func (s *organizationService) ByRadius(ctx context.Context, center geo.Point, radiusKm float64) ([]model.Organization, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if err := geo.ValidateRadius(radiusKm); err != nil {
		return nil, err
	}

	sc := logger.StartSpan(ctx, "service.organizations.by_radius")
	defer sc.End()
	ctx = sc.Context()

	orgs, err := s.list(ctx, "listing organizations by radius", func(ctx context.Context, stores StoreProvider) ([]model.Organization, error) {
		buildings, err := buildingsInRadius(ctx, stores, center, radiusKm)
		if err != nil {
			return nil, err
		}
		buildingIDs := make([]int64, len(buildings))
		for i, b := range buildings {
			buildingIDs[i] = b.ID
		}
		return stores.Organizations().ListByBuildingIDs(ctx, buildingIDs)
	})
	if err != nil {
		sc.RecordError(err)
		return nil, err
	}

	observability.RecordRadiusResults("organization", len(orgs))
	return orgs, nil
}

func (s *organizationService) ByBuilding(ctx context.Context, buildingID int64) ([]model.Organization, error) {
	var orgs []model.Organization
	found := true
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		if _, err := stores.Buildings().GetByID(ctx, buildingID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				found = false
				return nil
			}
			return err
		}
		var err error
		orgs, err = stores.Organizations().ListByBuilding(ctx, buildingID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing organizations by building: %w", err)
	}
	if !found {
		return nil, ErrBuildingNotFound
	}
	return orgs, nil
}

// SearchByName matches fragment anywhere in the organization name, ignoring case.
func (s *organizationService) SearchByName(ctx context.Context, fragment string) ([]model.Organization, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, fmt.Errorf("organization name is required: %w", ErrInvalidArgument)
	}
	return s.list(ctx, "searching organizations", func(ctx context.Context, stores StoreProvider) ([]model.Organization, error) {
		return stores.Organizations().SearchByName(ctx, fragment)
	})
}

func (s *organizationService) list(ctx context.Context, op string, read func(ctx context.Context, stores StoreProvider) ([]model.Organization, error)) ([]model.Organization, error) {
	var orgs []model.Organization
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		var err error
		orgs, err = read(ctx, stores)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orgs, nil
}

// requireBuilding rejects writes that point at a building that does not exist.
func requireBuilding(ctx context.Context, stores StoreProvider, buildingID int64) error {
	if _, err := stores.Buildings().GetByID(ctx, buildingID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return missingReference("building", buildingID, ErrBuildingNotFound)
		}
		return err
	}
	return nil
}

// resolveActivityNames maps names to activity ids. Every activity carrying a
// requested name is included once; unknown names resolve to nothing.
func resolveActivityNames(ctx context.Context, stores StoreProvider, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	ids, err := stores.Activities().IDsByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(ids) < len(names) {
		slog.DebugContext(ctx, "some activity names did not resolve", "requested", len(names), "resolved", len(ids))
	}
	return ids, nil
}
