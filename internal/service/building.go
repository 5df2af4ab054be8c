package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"orgcatalog.app/catalog/common/id"
	"orgcatalog.app/catalog/common/logger"
	"orgcatalog.app/catalog/internal/geo"
	"orgcatalog.app/catalog/internal/model"
	"orgcatalog.app/catalog/internal/observability"
	"orgcatalog.app/catalog/internal/store"
)

type BuildingService interface {
	Create(ctx context.Context, address string, location geo.Point) (*model.Building, error)
	GetByID(ctx context.Context, id int64) (*model.Building, error)
	List(ctx context.Context) ([]model.Building, error)
	Update(ctx context.Context, id int64, update model.BuildingUpdate) (*model.Building, error)
	Delete(ctx context.Context, id int64) error
	ByRadius(ctx context.Context, center geo.Point, radiusKm float64) ([]model.Building, error)
}

type buildingService struct {
	tx TxRunner
}

func NewBuildingService(tx TxRunner) BuildingService {
	return &buildingService{tx: tx}
}

func (s *buildingService) Create(ctx context.Context, address string, location geo.Point) (*model.Building, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("building address is required: %w", ErrInvalidArgument)
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}

	building := &model.Building{
		ID:        id.New(),
		Address:   address,
		Latitude:  location.Lat,
		Longitude: location.Lon,
	}
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		return stores.Buildings().Create(ctx, building)
	})
	if err != nil {
		return nil, fmt.Errorf("creating building: %w", err)
	}

	slog.InfoContext(ctx, "building created", "building_id", building.ID)
	return building, nil
}

func (s *buildingService) GetByID(ctx context.Context, id int64) (*model.Building, error) {
	building, err := lookup(ctx, s.tx, func(ctx context.Context, stores StoreProvider) (*model.Building, error) {
		return stores.Buildings().GetByID(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("getting building: %w", err)
	}
	if building == nil {
		return nil, ErrBuildingNotFound
	}
	return building, nil
}

func (s *buildingService) List(ctx context.Context) ([]model.Building, error) {
	var buildings []model.Building
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		var err error
		buildings, err = stores.Buildings().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing buildings: %w", err)
	}
	return buildings, nil
}

func (s *buildingService) Update(ctx context.Context, id int64, update model.BuildingUpdate) (*model.Building, error) {
	if update.Address != nil {
		address := strings.TrimSpace(*update.Address)
		if address == "" {
			return nil, fmt.Errorf("building address cannot be empty: %w", ErrInvalidArgument)
		}
		update.Address = &address
	}
	// Validate the coordinates that are being changed; the untouched ones are already valid.
	probe := geo.Point{}
	if update.Latitude != nil {
		probe.Lat = *update.Latitude
	}
	if update.Longitude != nil {
		probe.Lon = *update.Longitude
	}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	var updated *model.Building
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		var err error
		updated, err = stores.Buildings().Update(ctx, id, update)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrBuildingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating building: %w", err)
	}

	slog.InfoContext(ctx, "building updated", "building_id", id)
	return updated, nil
}

// Delete removes a building. Buildings that still house organizations are
// rejected by the schema with a constraint violation.
func (s *buildingService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		return stores.Buildings().Delete(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrBuildingNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting building: %w", err)
	}

	slog.InfoContext(ctx, "building deleted", "building_id", id)
	return nil
}

// ByRadius returns the buildings within radiusKm of center, boundary included.
func (s *buildingService) ByRadius(ctx context.Context, center geo.Point, radiusKm float64) ([]model.Building, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if err := geo.ValidateRadius(radiusKm); err != nil {
		return nil, err
	}

	sc := logger.StartSpan(ctx, "service.buildings.by_radius")
	defer sc.End()
	ctx = sc.Context()

	var buildings []model.Building
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		var err error
		buildings, err = buildingsInRadius(ctx, stores, center, radiusKm)
		return err
	})
	if err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("finding buildings by radius: %w", err)
	}

	observability.RecordRadiusResults("building", len(buildings))
	return buildings, nil
}

// buildingsInRadius narrows candidates with a bounding box in SQL, then applies
// the exact haversine test.
func buildingsInRadius(ctx context.Context, stores StoreProvider, center geo.Point, radiusKm float64) ([]model.Building, error) {
	candidates, err := stores.Buildings().ListWithinBox(ctx, geo.BoundingBoxFor(center, radiusKm))
	if err != nil {
		return nil, err
	}
	return geo.FilterByRadius(center, radiusKm, candidates), nil
}
