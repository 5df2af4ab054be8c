package store

import (
	"context"
	"fmt"
	"strings"

	"orgcatalog.app/catalog/core/db"
	"orgcatalog.app/catalog/internal/geo"
	"orgcatalog.app/catalog/internal/model"
)

type buildingStore struct {
	q    db.DBTX
	repo *Repository[model.Building]
}

func newBuildingStore(q db.DBTX) BuildingStore {
	return &buildingStore{
		q:    q,
		repo: NewRepository[model.Building](q, "buildings", "id", "address", "latitude", "longitude"),
	}
}

func (s *buildingStore) GetByID(ctx context.Context, id int64) (*model.Building, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *buildingStore) List(ctx context.Context) ([]model.Building, error) {
	return s.repo.GetAll(ctx)
}

func (s *buildingStore) Create(ctx context.Context, building *model.Building) error {
	row, err := s.repo.Insert(ctx, Values{
		Eq("id", building.ID),
		Eq("address", building.Address),
		Eq("latitude", building.Latitude),
		Eq("longitude", building.Longitude),
	})
	if err != nil {
		return err
	}
	*building = *row
	return nil
}

func (s *buildingStore) Update(ctx context.Context, id int64, update model.BuildingUpdate) (*model.Building, error) {
	var values Values
	if update.Address != nil {
		values = append(values, Eq("address", *update.Address))
	}
	if update.Latitude != nil {
		values = append(values, Eq("latitude", *update.Latitude))
	}
	if update.Longitude != nil {
		values = append(values, Eq("longitude", *update.Longitude))
	}
	return s.repo.UpdateByID(ctx, id, values)
}

func (s *buildingStore) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.DeleteByFilter(ctx, Filter{Eq("id", id)})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *buildingStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.q.QueryRow(ctx, `SELECT count(*) FROM buildings`).Scan(&n); err != nil {
		return 0, Classify(err)
	}
	return n, nil
}

func (s *buildingStore) ListWithinBox(ctx context.Context, box geo.Box) ([]model.Building, error) {
	args := []any{box.MinLat, box.MaxLat}
	lons := make([]string, 0, len(box.Lons))
	for _, r := range box.Lons {
		args = append(args, r.Min, r.Max)
		lons = append(lons, fmt.Sprintf("longitude BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}
	if len(lons) == 0 {
		return []model.Building{}, nil
	}

	cond := "latitude BETWEEN $1 AND $2 AND (" + strings.Join(lons, " OR ") + ")"
	return s.repo.ListWhere(ctx, cond, args...)
}
