package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"orgcatalog.app/catalog/core/db"
	"orgcatalog.app/catalog/internal/model"
)

type activityStore struct {
	q    db.DBTX
	repo *Repository[model.Activity]
}

func newActivityStore(q db.DBTX) ActivityStore {
	return &activityStore{
		q:    q,
		repo: NewRepository[model.Activity](q, "activities", "id", "name", "parent_id"),
	}
}

func (s *activityStore) GetByID(ctx context.Context, id int64) (*model.Activity, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *activityStore) List(ctx context.Context) ([]model.Activity, error) {
	return s.repo.GetAll(ctx)
}

func (s *activityStore) Create(ctx context.Context, activity *model.Activity) error {
	row, err := s.repo.Insert(ctx, Values{
		Eq("id", activity.ID),
		Eq("name", activity.Name),
		Eq("parent_id", activity.ParentID),
	})
	if err != nil {
		return err
	}
	*activity = *row
	return nil
}

func (s *activityStore) Update(ctx context.Context, id int64, update model.ActivityUpdate) (*model.Activity, error) {
	var values Values
	if update.Name != nil {
		values = append(values, Eq("name", *update.Name))
	}
	switch {
	case update.ClearParent:
		values = append(values, Eq("parent_id", nil))
	case update.ParentID != nil:
		values = append(values, Eq("parent_id", *update.ParentID))
	}
	return s.repo.UpdateByID(ctx, id, values)
}

func (s *activityStore) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.DeleteByFilter(ctx, Filter{Eq("id", id)})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *activityStore) ParentOf(ctx context.Context, id int64) (*int64, error) {
	var parent *int64
	err := s.q.QueryRow(ctx, `SELECT parent_id FROM activities WHERE id = $1`, id).Scan(&parent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, Classify(err)
	}
	return parent, nil
}

func (s *activityStore) IDsByName(ctx context.Context, name string) ([]int64, error) {
	return s.ids(ctx, `SELECT id FROM activities WHERE name = $1 ORDER BY id`, name)
}

func (s *activityStore) IDsByNames(ctx context.Context, names []string) ([]int64, error) {
	if len(names) == 0 {
		return []int64{}, nil
	}
	return s.ids(ctx, `SELECT id FROM activities WHERE name = ANY($1) ORDER BY id`, names)
}

func (s *activityStore) ChildrenOf(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	return s.ids(ctx, `SELECT id FROM activities WHERE parent_id = ANY($1) ORDER BY id`, ids)
}

func (s *activityStore) ids(ctx context.Context, sql string, args ...any) ([]int64, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, Classify(err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, Classify(err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
