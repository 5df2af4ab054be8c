//go:build integration

package store_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"orgcatalog.app/catalog/common/id"
	"orgcatalog.app/catalog/core/db"
	"orgcatalog.app/catalog/internal/geo"
	"orgcatalog.app/catalog/internal/model"
	"orgcatalog.app/catalog/internal/store"
	"orgcatalog.app/catalog/internal/testsupport"
)

var _ = Describe("Postgres stores", Ordered, Label("integration"), func() {
	var (
		ctx    context.Context
		pg     *testsupport.Postgres
		stores *store.Stores
	)

	BeforeAll(func() {
		ctx = context.Background()
		Expect(id.Init(1)).To(Succeed())

		var err error
		pg, err = testsupport.StartPostgres(ctx)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(pg.Stop)
	})

	BeforeEach(func() {
		Expect(pg.Reset(ctx)).To(Succeed())
		stores = store.NewStores(pg.DB.Pool())
	})

	newBuilding := func(address string, lat, lon float64) *model.Building {
		b := &model.Building{ID: id.New(), Address: address, Latitude: lat, Longitude: lon}
		Expect(stores.Buildings().Create(ctx, b)).To(Succeed())
		return b
	}

	newActivity := func(name string, parent *int64) *model.Activity {
		a := &model.Activity{ID: id.New(), Name: name, ParentID: parent}
		Expect(stores.Activities().Create(ctx, a)).To(Succeed())
		return a
	}

	Describe("Repository", func() {
		var repo *store.Repository[model.Building]

		BeforeEach(func() {
			repo = store.NewRepository[model.Building](pg.DB.Pool(), "buildings", "id", "address", "latitude", "longitude")
		})

		It("inserts and reads back by id", func() {
			b, err := repo.Insert(ctx, store.Values{
				store.Eq("id", int64(10)),
				store.Eq("address", "1 Example St"),
				store.Eq("latitude", 55.75),
				store.Eq("longitude", 37.61),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Address).To(Equal("1 Example St"))

			got, err := repo.GetByID(ctx, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(b))
		})

		It("returns not found for a missing id", func() {
			_, err := repo.GetByID(ctx, 404)
			Expect(err).To(MatchError(store.ErrNotFound))

			_, err = repo.UpdateByID(ctx, 404, store.Values{store.Eq("address", "x")})
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("filters on several columns and returns the first match", func() {
			newBuilding("A", 1, 1)
			second := newBuilding("A", 2, 2)

			got, err := repo.GetOneByFilter(ctx, store.Filter{store.Eq("address", "A"), store.Eq("latitude", 2.0)})
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(second.ID))

			all, err := repo.ListByFilter(ctx, store.Filter{store.Eq("address", "A")})
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
		})

		It("rejects unknown columns", func() {
			_, err := repo.ListByFilter(ctx, store.Filter{store.Eq("address; DROP TABLE buildings", "x")})
			Expect(err).To(MatchError(store.ErrUnknownColumn))
		})

		It("returns the current row for an empty update", func() {
			b := newBuilding("B", 3, 3)
			got, err := repo.UpdateByID(ctx, b.ID, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(b))
		})

		It("deletes by filter and reports the count", func() {
			newBuilding("C", 1, 1)
			newBuilding("C", 2, 2)
			n, err := repo.DeleteByFilter(ctx, store.Filter{store.Eq("address", "C")})
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(2)))

			_, err = repo.DeleteByFilter(ctx, nil)
			Expect(err).To(MatchError(store.ErrEmptyFilter))
		})

		It("surfaces check constraints", func() {
			_, err := repo.Insert(ctx, store.Values{
				store.Eq("id", int64(11)),
				store.Eq("address", "bad"),
				store.Eq("latitude", 91.0),
				store.Eq("longitude", 0.0),
			})
			Expect(err).To(MatchError(store.ErrConstraintViolation))
		})
	})

	Describe("ActivityStore", func() {
		It("walks parents and children", func() {
			root := newActivity("Consulting", nil)
			b2c := newActivity("Consulting B2C", &root.ID)
			small := newActivity("Consulting B2C Small", &b2c.ID)

			parent, err := stores.Activities().ParentOf(ctx, small.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*parent).To(Equal(b2c.ID))

			parent, err = stores.Activities().ParentOf(ctx, root.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(parent).To(BeNil())

			_, err = stores.Activities().ParentOf(ctx, 1)
			Expect(err).To(MatchError(store.ErrNotFound))

			children, err := stores.Activities().ChildrenOf(ctx, []int64{root.ID, b2c.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(children).To(ConsistOf(b2c.ID, small.ID))
		})

		It("finds ids by one or many names", func() {
			it := newActivity("IT", nil)
			retail := newActivity("Retail", nil)
			newActivity("Logistics", nil)

			ids, err := stores.Activities().IDsByNames(ctx, []string{"IT", "Retail", "Unknown"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(ConsistOf(it.ID, retail.ID))

			ids, err = stores.Activities().IDsByName(ctx, "Unknown")
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(BeEmpty())
		})

		It("reparents and detaches", func() {
			a := newActivity("A", nil)
			b := newActivity("B", nil)

			moved, err := stores.Activities().Update(ctx, b.ID, model.ActivityUpdate{ParentID: &a.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(*moved.ParentID).To(Equal(a.ID))

			moved, err = stores.Activities().Update(ctx, b.ID, model.ActivityUpdate{ClearParent: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(moved.ParentID).To(BeNil())
		})

		It("refuses to delete an activity that still has children", func() {
			a := newActivity("A", nil)
			newActivity("B", &a.ID)
			Expect(stores.Activities().Delete(ctx, a.ID)).To(MatchError(store.ErrConstraintViolation))
		})
	})

	Describe("OrganizationStore", func() {
		var building *model.Building

		BeforeEach(func() {
			building = newBuilding("1 Example St", 55.75, 37.61)
		})

		newOrg := func(name string) *model.Organization {
			o := &model.Organization{ID: id.New(), Name: name, Phones: []string{"+7-900-000-0001"}, BuildingID: building.ID}
			Expect(stores.Organizations().Create(ctx, o)).To(Succeed())
			return o
		}

		It("stores an empty phone list when none is given", func() {
			o := &model.Organization{ID: id.New(), Name: "Quiet", BuildingID: building.ID}
			Expect(stores.Organizations().Create(ctx, o)).To(Succeed())
			Expect(o.Phones).To(BeEmpty())
		})

		It("builds the detailed view", func() {
			org := newOrg("Acme")
			it := newActivity("IT", nil)
			retail := newActivity("Retail", nil)
			Expect(stores.Organizations().AttachActivities(ctx, org.ID, []int64{retail.ID, it.ID})).To(Succeed())

			d, err := stores.Organizations().Detail(ctx, org.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Name).To(Equal("Acme"))
			Expect(d.BuildingAddress).To(Equal("1 Example St"))
			Expect(d.Phones).To(Equal([]string{"+7-900-000-0001"}))
			Expect(d.Activities).To(Equal([]string{"IT", "Retail"}))
		})

		It("lists each activity name once in the detailed view", func() {
			org := newOrg("Twin Links")
			parent := newActivity("Services", nil)
			first := newActivity("Repair", nil)
			second := newActivity("Repair", &parent.ID)
			Expect(stores.Organizations().AttachActivities(ctx, org.ID, []int64{first.ID, second.ID})).To(Succeed())

			d, err := stores.Organizations().Detail(ctx, org.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Activities).To(Equal([]string{"Repair"}))
		})

		It("returns an empty activity list for an organization without activities", func() {
			org := newOrg("Bare")
			d, err := stores.Organizations().Detail(ctx, org.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Activities).NotTo(BeNil())
			Expect(d.Activities).To(BeEmpty())
		})

		It("returns not found for a missing organization", func() {
			_, err := stores.Organizations().Detail(ctx, 404)
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("rejects a duplicate association", func() {
			org := newOrg("Dup")
			it := newActivity("IT", nil)
			Expect(stores.Organizations().AttachActivities(ctx, org.ID, []int64{it.ID})).To(Succeed())

			err := stores.Organizations().AttachActivities(ctx, org.ID, []int64{it.ID})
			Expect(err).To(MatchError(store.ErrConstraintViolation))
			var ce *store.ConstraintError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(ce.Kind).To(Equal(store.ConstraintUnique))
		})

		It("replaces associations", func() {
			org := newOrg("Swap")
			it := newActivity("IT", nil)
			retail := newActivity("Retail", nil)
			Expect(stores.Organizations().AttachActivities(ctx, org.ID, []int64{it.ID})).To(Succeed())
			Expect(stores.Organizations().ReplaceActivities(ctx, org.ID, []int64{retail.ID})).To(Succeed())

			d, err := stores.Organizations().Detail(ctx, org.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Activities).To(Equal([]string{"Retail"}))
		})

		It("lists organizations by activity name without duplicates", func() {
			org := newOrg("Twice")
			newOrg("Other")
			first := newActivity("IT", nil)
			second := newActivity("IT", nil)
			Expect(stores.Organizations().AttachActivities(ctx, org.ID, []int64{first.ID, second.ID})).To(Succeed())

			orgs, err := stores.Organizations().ListByActivityName(ctx, "IT")
			Expect(err).NotTo(HaveOccurred())
			Expect(orgs).To(HaveLen(1))
			Expect(orgs[0].ID).To(Equal(org.ID))
		})

		It("searches names case-insensitively with literal wildcards", func() {
			newOrg("Organization 1")
			newOrg("Organization 2")
			newOrg("100% Pure")

			orgs, err := stores.Organizations().SearchByName(ctx, "organization")
			Expect(err).NotTo(HaveOccurred())
			Expect(orgs).To(HaveLen(2))

			orgs, err = stores.Organizations().SearchByName(ctx, "0%")
			Expect(err).NotTo(HaveOccurred())
			Expect(orgs).To(HaveLen(1))
			Expect(orgs[0].Name).To(Equal("100% Pure"))
		})

		It("cascades associations when an organization is deleted", func() {
			org := newOrg("Gone")
			it := newActivity("IT", nil)
			Expect(stores.Organizations().AttachActivities(ctx, org.ID, []int64{it.ID})).To(Succeed())
			Expect(stores.Organizations().Delete(ctx, org.ID)).To(Succeed())

			orgs, err := stores.Organizations().ListByActivityIDs(ctx, []int64{it.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(orgs).To(BeEmpty())
			Expect(stores.Organizations().Delete(ctx, org.ID)).To(MatchError(store.ErrNotFound))
		})

		It("rejects an organization in a missing building", func() {
			o := &model.Organization{ID: id.New(), Name: "Nowhere", BuildingID: 404}
			Expect(stores.Organizations().Create(ctx, o)).To(MatchError(store.ErrConstraintViolation))
		})
	})

	Describe("BuildingStore", func() {
		It("prefilters buildings with a bounding box", func() {
			near := newBuilding("near", 55.751, 37.618)
			newBuilding("far", 59.93, 30.31)

			box := geo.BoundingBoxFor(geo.Point{Lat: 55.750, Lon: 37.617}, 1)
			got, err := stores.Buildings().ListWithinBox(ctx, box)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].ID).To(Equal(near.ID))
		})

		It("handles boxes split by the antimeridian", func() {
			east := newBuilding("east", 0, 179.95)
			west := newBuilding("west", 0, -179.95)
			newBuilding("greenwich", 0, 0)

			box := geo.BoundingBoxFor(geo.Point{Lat: 0, Lon: 180}, 20)
			got, err := stores.Buildings().ListWithinBox(ctx, box)
			Expect(err).NotTo(HaveOccurred())
			ids := []int64{}
			for _, b := range got {
				ids = append(ids, b.ID)
			}
			Expect(ids).To(ConsistOf(east.ID, west.ID))
		})
	})

	Describe("DB.WithTx", func() {
		It("commits on success", func() {
			b := &model.Building{ID: id.New(), Address: "tx", Latitude: 1, Longitude: 1}
			err := pg.DB.WithTx(ctx, func(ctx context.Context, q db.DBTX) error {
				return store.NewStores(q).Buildings().Create(ctx, b)
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = stores.Buildings().GetByID(ctx, b.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rolls back every write when the function fails", func() {
			boom := errors.New("boom")
			b := &model.Building{ID: id.New(), Address: "tx", Latitude: 1, Longitude: 1}
			err := pg.DB.WithTx(ctx, func(ctx context.Context, q db.DBTX) error {
				if err := store.NewStores(q).Buildings().Create(ctx, b); err != nil {
					return err
				}
				return boom
			})
			Expect(err).To(MatchError(boom))

			_, err = stores.Buildings().GetByID(ctx, b.ID)
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("rolls back and re-panics on panic", func() {
			b := &model.Building{ID: id.New(), Address: "tx", Latitude: 1, Longitude: 1}
			Expect(func() {
				_ = pg.DB.WithTx(ctx, func(ctx context.Context, q db.DBTX) error {
					Expect(store.NewStores(q).Buildings().Create(ctx, b)).To(Succeed())
					panic("kaboom")
				})
			}).To(PanicWith("kaboom"))

			_, err := stores.Buildings().GetByID(ctx, b.ID)
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("joins an enclosing transaction", func() {
			boom := errors.New("boom")
			inner := &model.Building{ID: id.New(), Address: "inner", Latitude: 1, Longitude: 1}
			err := pg.DB.WithTx(ctx, func(ctx context.Context, outer db.DBTX) error {
				err := pg.DB.WithTx(ctx, func(ctx context.Context, q db.DBTX) error {
					Expect(q).To(BeIdenticalTo(outer))
					return store.NewStores(q).Buildings().Create(ctx, inner)
				})
				Expect(err).NotTo(HaveOccurred())
				return boom
			})
			Expect(err).To(MatchError(boom))

			_, err = stores.Buildings().GetByID(ctx, inner.ID)
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("rolls back when the context is cancelled", func() {
			b := &model.Building{ID: id.New(), Address: "tx", Latitude: 1, Longitude: 1}
			cctx, cancel := context.WithCancel(ctx)
			err := pg.DB.WithTx(cctx, func(ctx context.Context, q db.DBTX) error {
				Expect(store.NewStores(q).Buildings().Create(ctx, b)).To(Succeed())
				cancel()
				return ctx.Err()
			})
			Expect(err).To(MatchError(context.Canceled))

			_, err = stores.Buildings().GetByID(ctx, b.ID)
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("reports outcomes to the observer", func() {
			var outcomes []db.TxOutcome
			pg.DB.SetTxObserver(func(o db.TxOutcome) { outcomes = append(outcomes, o) })
			DeferCleanup(func() { pg.DB.SetTxObserver(nil) })

			_ = pg.DB.WithTx(ctx, func(context.Context, db.DBTX) error { return nil })
			_ = pg.DB.WithTx(ctx, func(context.Context, db.DBTX) error { return errors.New("no") })
			Expect(outcomes).To(Equal([]db.TxOutcome{db.TxCommitted, db.TxRolledBack}))
		})
	})
})
