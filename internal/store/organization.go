package store

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"orgcatalog.app/catalog/core/db"
	"orgcatalog.app/catalog/internal/model"
)

type organizationStore struct {
	q    db.DBTX
	repo *Repository[model.Organization]
}

func newOrganizationStore(q db.DBTX) OrganizationStore {
	return &organizationStore{
		q:    q,
		repo: NewRepository[model.Organization](q, "organizations", "id", "name", "phones", "building_id"),
	}
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *organizationStore) List(ctx context.Context) ([]model.Organization, error) {
	return s.repo.GetAll(ctx)
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row, err := s.repo.Insert(ctx, Values{
		Eq("id", org.ID),
		Eq("name", org.Name),
		Eq("phones", phonesOrEmpty(org.Phones)),
		Eq("building_id", org.BuildingID),
	})
	if err != nil {
		return err
	}
	*org = *row
	return nil
}

func (s *organizationStore) Update(ctx context.Context, id int64, update model.OrganizationUpdate) (*model.Organization, error) {
	var values Values
	if update.Name != nil {
		values = append(values, Eq("name", *update.Name))
	}
	if update.Phones != nil {
		values = append(values, Eq("phones", phonesOrEmpty(*update.Phones)))
	}
	if update.BuildingID != nil {
		values = append(values, Eq("building_id", *update.BuildingID))
	}
	return s.repo.UpdateByID(ctx, id, values)
}

func (s *organizationStore) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.DeleteByFilter(ctx, Filter{Eq("id", id)})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachActivities inserts one association per id. Ids are not deduplicated:
// a pair that already exists, or appears twice, is a constraint violation.
func (s *organizationStore) AttachActivities(ctx context.Context, orgID int64, activityIDs []int64) error {
	if len(activityIDs) == 0 {
		return nil
	}
	_, err := s.q.Exec(ctx, `
		INSERT INTO organization_activity (organization_id, activity_id)
		SELECT $1, unnest($2::bigint[])`,
		orgID, activityIDs,
	)
	return Classify(err)
}

func (s *organizationStore) ReplaceActivities(ctx context.Context, orgID int64, activityIDs []int64) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM organization_activity WHERE organization_id = $1`, orgID); err != nil {
		return Classify(err)
	}
	return s.AttachActivities(ctx, orgID, activityIDs)
}

func (s *organizationStore) Detail(ctx context.Context, orgID int64) (*model.OrganizationDetail, error) {
	var d model.OrganizationDetail
	err := s.q.QueryRow(ctx, `
		SELECT o.id, o.name, o.phones, o.building_id, b.address,
		       COALESCE(array_agg(DISTINCT a.name ORDER BY a.name) FILTER (WHERE a.id IS NOT NULL), '{}') AS activities
		FROM organizations o
		JOIN buildings b ON b.id = o.building_id
		LEFT JOIN organization_activity oa ON oa.organization_id = o.id
		LEFT JOIN activities a ON a.id = oa.activity_id
		WHERE o.id = $1
		GROUP BY o.id, b.address`,
		orgID,
	).Scan(&d.ID, &d.Name, &d.Phones, &d.BuildingID, &d.BuildingAddress, &d.Activities)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, Classify(err)
	}
	return &d, nil
}

func (s *organizationStore) ListByActivityName(ctx context.Context, name string) ([]model.Organization, error) {
	return s.repo.ListWhere(ctx, `id IN (
		SELECT oa.organization_id
		FROM organization_activity oa
		JOIN activities a ON a.id = oa.activity_id
		WHERE a.name = $1)`, name)
}

func (s *organizationStore) ListByActivityIDs(ctx context.Context, activityIDs []int64) ([]model.Organization, error) {
	if len(activityIDs) == 0 {
		return []model.Organization{}, nil
	}
	return s.repo.ListWhere(ctx, `id IN (
		SELECT organization_id FROM organization_activity WHERE activity_id = ANY($1))`, activityIDs)
}

func (s *organizationStore) ListByBuilding(ctx context.Context, buildingID int64) ([]model.Organization, error) {
	return s.repo.ListByFilter(ctx, Filter{Eq("building_id", buildingID)})
}

func (s *organizationStore) ListByBuildingIDs(ctx context.Context, buildingIDs []int64) ([]model.Organization, error) {
	if len(buildingIDs) == 0 {
		return []model.Organization{}, nil
	}
	return s.repo.ListWhere(ctx, `building_id = ANY($1)`, buildingIDs)
}

// SearchByName matches fragment anywhere in the name, ignoring case.
func (s *organizationStore) SearchByName(ctx context.Context, fragment string) ([]model.Organization, error) {
	return s.repo.ListWhere(ctx, `name ILIKE $1 ESCAPE '\'`, "%"+escapeLike(fragment)+"%")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func phonesOrEmpty(phones []string) []string {
	if phones == nil {
		return []string{}
	}
	return phones
}
