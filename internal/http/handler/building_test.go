package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"orgcatalog.app/catalog/internal/geo"
	"orgcatalog.app/catalog/internal/http/handler"
	"orgcatalog.app/catalog/internal/model"
	"orgcatalog.app/catalog/internal/store"
)

var _ = Describe("BuildingHandler", func() {
	var (
		router *gin.Engine
		svc    *mockBuildingService
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockBuildingService{}
		h := handler.NewBuildingHandler(svc)
		router.POST("/buildings", h.Create)
		router.GET("/buildings/by_radius", h.ByRadius)
		router.GET("/buildings/:id", h.GetByID)
		router.PUT("/buildings/:id", h.Update)
		router.DELETE("/buildings/:id", h.Delete)
	})

	Describe("Create", func() {
		It("accepts zero coordinates", func() {
			var got geo.Point
			svc.createFn = func(_ context.Context, address string, location geo.Point) (*model.Building, error) {
				got = location
				return &model.Building{ID: 1, Address: address}, nil
			}

			w := doJSON(router, http.MethodPost, "/buildings", `{"address":"Null Island","latitude":0,"longitude":0}`)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(got).To(Equal(geo.Point{Lat: 0, Lon: 0}))
		})

		It("returns 400 when coordinates are missing", func() {
			w := doJSON(router, http.MethodPost, "/buildings", `{"address":"Nowhere"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 for out of range coordinates", func() {
			svc.createFn = func(context.Context, string, geo.Point) (*model.Building, error) {
				return nil, fmt.Errorf("creating building: %w", geo.ErrInvalidPoint)
			}

			w := doJSON(router, http.MethodPost, "/buildings", `{"address":"Nowhere","latitude":91,"longitude":0}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["code"]).To(Equal("invalid_argument"))
		})
	})

	Describe("ByRadius", func() {
		It("parses the query and wraps the result", func() {
			var gotCenter geo.Point
			var gotRadius float64
			svc.byRadiusFn = func(_ context.Context, center geo.Point, radiusKm float64) ([]model.Building, error) {
				gotCenter, gotRadius = center, radiusKm
				return []model.Building{{ID: 1}, {ID: 2}}, nil
			}

			w := doJSON(router, http.MethodGet, "/buildings/by_radius?latitude=55.75&longitude=37.61&radius_km=2.5", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotCenter).To(Equal(geo.Point{Lat: 55.75, Lon: 37.61}))
			Expect(gotRadius).To(Equal(2.5))
			Expect(decode(w)["buildings"]).To(HaveLen(2))
		})

		It("returns 400 when radius_km is missing", func() {
			w := doJSON(router, http.MethodGet, "/buildings/by_radius?latitude=1&longitude=1", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 for a negative radius", func() {
			svc.byRadiusFn = func(context.Context, geo.Point, float64) ([]model.Building, error) {
				return nil, geo.ErrInvalidRadius
			}

			w := doJSON(router, http.MethodGet, "/buildings/by_radius?latitude=1&longitude=1&radius_km=-1", "")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Delete", func() {
		It("returns 409 while organizations still reference the building", func() {
			svc.deleteFn = func(context.Context, int64) error {
				return fmt.Errorf("deleting building: %w", &store.ConstraintError{
					Kind:  store.ConstraintForeignKey,
					Table: "organizations",
					Err:   errors.New("update or delete violates foreign key"),
				})
			}

			w := doJSON(router, http.MethodDelete, "/buildings/1", "")

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	It("passes partial updates through", func() {
		var got model.BuildingUpdate
		svc.updateFn = func(_ context.Context, id int64, update model.BuildingUpdate) (*model.Building, error) {
			got = update
			return &model.Building{ID: id}, nil
		}

		w := doJSON(router, http.MethodPut, "/buildings/4", `{"address":"Moved"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(*got.Address).To(Equal("Moved"))
		Expect(got.Latitude).To(BeNil())
	})
})
