package service_test

import (
	"context"

	"orgcatalog.app/catalog/internal/geo"
	"orgcatalog.app/catalog/internal/model"
	"orgcatalog.app/catalog/internal/queue"
	"orgcatalog.app/catalog/internal/service"
	"orgcatalog.app/catalog/internal/store"
)

type mockActivityStore struct {
	getByIDFn    func(ctx context.Context, id int64) (*model.Activity, error)
	listFn       func(ctx context.Context) ([]model.Activity, error)
	createFn     func(ctx context.Context, activity *model.Activity) error
	updateFn     func(ctx context.Context, id int64, update model.ActivityUpdate) (*model.Activity, error)
	deleteFn     func(ctx context.Context, id int64) error
	idsByNamesFn func(ctx context.Context, names []string) ([]int64, error)

	// parents and names back the graph methods when set
	parents map[int64]*int64
	names   map[int64]string

	createCalls int
	updateCalls int
}

func (m *mockActivityStore) GetByID(ctx context.Context, id int64) (*model.Activity, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	if parent, ok := m.parents[id]; ok {
		return &model.Activity{ID: id, Name: m.names[id], ParentID: parent}, nil
	}
	return nil, store.ErrNotFound
}

func (m *mockActivityStore) List(ctx context.Context) ([]model.Activity, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Activity{}, nil
}

func (m *mockActivityStore) Create(ctx context.Context, activity *model.Activity) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, activity)
	}
	return nil
}

func (m *mockActivityStore) Update(ctx context.Context, id int64, update model.ActivityUpdate) (*model.Activity, error) {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return &model.Activity{ID: id}, nil
}

func (m *mockActivityStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockActivityStore) ParentOf(_ context.Context, id int64) (*int64, error) {
	parent, ok := m.parents[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return parent, nil
}

func (m *mockActivityStore) IDsByName(_ context.Context, name string) ([]int64, error) {
	ids := []int64{}
	for id, n := range m.names {
		if n == name {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *mockActivityStore) IDsByNames(ctx context.Context, names []string) ([]int64, error) {
	if m.idsByNamesFn != nil {
		return m.idsByNamesFn(ctx, names)
	}
	ids := []int64{}
	for _, name := range names {
		found, _ := m.IDsByName(ctx, name)
		ids = append(ids, found...)
	}
	return ids, nil
}

func (m *mockActivityStore) ChildrenOf(_ context.Context, ids []int64) ([]int64, error) {
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	children := []int64{}
	for id, parent := range m.parents {
		if parent != nil && want[*parent] {
			children = append(children, id)
		}
	}
	return children, nil
}

type mockBuildingStore struct {
	getByIDFn       func(ctx context.Context, id int64) (*model.Building, error)
	createFn        func(ctx context.Context, building *model.Building) error
	updateFn        func(ctx context.Context, id int64, update model.BuildingUpdate) (*model.Building, error)
	deleteFn        func(ctx context.Context, id int64) error
	listWithinBoxFn func(ctx context.Context, box geo.Box) ([]model.Building, error)
	createCalls     int
}

func (m *mockBuildingStore) GetByID(ctx context.Context, id int64) (*model.Building, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockBuildingStore) List(ctx context.Context) ([]model.Building, error) {
	return []model.Building{}, nil
}

func (m *mockBuildingStore) Create(ctx context.Context, building *model.Building) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, building)
	}
	return nil
}

func (m *mockBuildingStore) Update(ctx context.Context, id int64, update model.BuildingUpdate) (*model.Building, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return &model.Building{ID: id}, nil
}

func (m *mockBuildingStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockBuildingStore) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockBuildingStore) ListWithinBox(ctx context.Context, box geo.Box) ([]model.Building, error) {
	if m.listWithinBoxFn != nil {
		return m.listWithinBoxFn(ctx, box)
	}
	return []model.Building{}, nil
}

type mockOrganizationStore struct {
	getByIDFn           func(ctx context.Context, id int64) (*model.Organization, error)
	createFn            func(ctx context.Context, org *model.Organization) error
	updateFn            func(ctx context.Context, id int64, update model.OrganizationUpdate) (*model.Organization, error)
	deleteFn            func(ctx context.Context, id int64) error
	attachFn            func(ctx context.Context, orgID int64, activityIDs []int64) error
	replaceFn           func(ctx context.Context, orgID int64, activityIDs []int64) error
	detailFn            func(ctx context.Context, orgID int64) (*model.OrganizationDetail, error)
	listByActivityIDsFn func(ctx context.Context, activityIDs []int64) ([]model.Organization, error)
	listByBuildingIDsFn func(ctx context.Context, buildingIDs []int64) ([]model.Organization, error)
	listByBuildingFn    func(ctx context.Context, buildingID int64) ([]model.Organization, error)
	searchByNameFn      func(ctx context.Context, fragment string) ([]model.Organization, error)

	createCalls  int
	attachCalls  int
	replaceCalls int
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) List(ctx context.Context) ([]model.Organization, error) {
	return []model.Organization{}, nil
}

func (m *mockOrganizationStore) Create(ctx context.Context, org *model.Organization) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Update(ctx context.Context, id int64, update model.OrganizationUpdate) (*model.Organization, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return &model.Organization{ID: id}, nil
}

func (m *mockOrganizationStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockOrganizationStore) AttachActivities(ctx context.Context, orgID int64, activityIDs []int64) error {
	m.attachCalls++
	if m.attachFn != nil {
		return m.attachFn(ctx, orgID, activityIDs)
	}
	return nil
}

func (m *mockOrganizationStore) ReplaceActivities(ctx context.Context, orgID int64, activityIDs []int64) error {
	m.replaceCalls++
	if m.replaceFn != nil {
		return m.replaceFn(ctx, orgID, activityIDs)
	}
	return nil
}

func (m *mockOrganizationStore) Detail(ctx context.Context, orgID int64) (*model.OrganizationDetail, error) {
	if m.detailFn != nil {
		return m.detailFn(ctx, orgID)
	}
	return &model.OrganizationDetail{ID: orgID, Activities: []string{}}, nil
}

func (m *mockOrganizationStore) ListByActivityName(ctx context.Context, name string) ([]model.Organization, error) {
	return []model.Organization{}, nil
}

func (m *mockOrganizationStore) ListByActivityIDs(ctx context.Context, activityIDs []int64) ([]model.Organization, error) {
	if m.listByActivityIDsFn != nil {
		return m.listByActivityIDsFn(ctx, activityIDs)
	}
	return []model.Organization{}, nil
}

func (m *mockOrganizationStore) ListByBuilding(ctx context.Context, buildingID int64) ([]model.Organization, error) {
	if m.listByBuildingFn != nil {
		return m.listByBuildingFn(ctx, buildingID)
	}
	return []model.Organization{}, nil
}

func (m *mockOrganizationStore) ListByBuildingIDs(ctx context.Context, buildingIDs []int64) ([]model.Organization, error) {
	if m.listByBuildingIDsFn != nil {
		return m.listByBuildingIDsFn(ctx, buildingIDs)
	}
	return []model.Organization{}, nil
}

func (m *mockOrganizationStore) SearchByName(ctx context.Context, fragment string) ([]model.Organization, error) {
	if m.searchByNameFn != nil {
		return m.searchByNameFn(ctx, fragment)
	}
	return []model.Organization{}, nil
}

type mockStoreProvider struct {
	act *mockActivityStore
	bld *mockBuildingStore
	org *mockOrganizationStore
}

func (m *mockStoreProvider) Activities() store.ActivityStore {
	return m.act
}

func (m *mockStoreProvider) Buildings() store.BuildingStore {
	return m.bld
}

func (m *mockStoreProvider) Organizations() store.OrganizationStore {
	return m.org
}

// mockTxRunner behaves like a real unit of work: fn failing means rollback.
type mockTxRunner struct {
	stores   *mockStoreProvider
	withTxFn func(ctx context.Context, fn func(ctx context.Context, stores service.StoreProvider) error) error

	commits   int
	rollbacks int
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context, stores service.StoreProvider) error) error {
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	if err := fn(ctx, m.stores); err != nil {
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

type mockProducer struct {
	publishFn func(ctx context.Context, event queue.CatalogEvent) error
	events    []queue.CatalogEvent
}

func (m *mockProducer) Publish(ctx context.Context, event queue.CatalogEvent) error {
	m.events = append(m.events, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, event)
	}
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
