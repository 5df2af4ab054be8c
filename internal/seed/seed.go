// Package seed fills an empty catalog with demo buildings, activities and organizations.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"orgcatalog.app/catalog/common/id"
	"orgcatalog.app/catalog/internal/activitytree"
	"orgcatalog.app/catalog/internal/model"
	"orgcatalog.app/catalog/internal/service"
)

const (
	buildingCount     = 10
	organizationCount = 20
)

// ActivityNode is one activity of the demo tree.
type ActivityNode struct {
	Name     string
	Children []ActivityNode
}

// Activities is the demo activity forest, three levels at most.
var Activities = []ActivityNode{
	{Name: "Retail"},
	{Name: "Logistics"},
	{Name: "IT", Children: []ActivityNode{
		{Name: "IT Support"},
		{Name: "IT Infrastructure"},
	}},
	{Name: "Consulting", Children: []ActivityNode{
		{Name: "Consulting B2B"},
		{Name: "Consulting B2C", Children: []ActivityNode{
			{Name: "Consulting B2C Small"},
		}},
	}},
	{Name: "Education"},
}

// Profiles are assigned to organizations round robin.
var Profiles = [][]string{
	{"Retail"},
	{"Logistics"},
	{"IT", "IT Support"},
	{"IT", "IT Infrastructure"},
	{"Education"},
	{"Consulting", "Consulting B2B"},
	{"Consulting", "Consulting B2C"},
	{"Consulting", "Consulting B2C", "Consulting B2C Small"},
	{"Retail", "Logistics"},
	{"IT", "Consulting"},
}

// Run seeds the catalog in a single unit of work. It does nothing when any
// building already exists and reports whether data was written.
func Run(ctx context.Context, tx service.TxRunner) (bool, error) {
	seeded := false
	err := tx.WithTx(ctx, func(ctx context.Context, stores service.StoreProvider) error {
		n, err := stores.Buildings().Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		buildings, err := seedBuildings(ctx, stores)
		if err != nil {
			return err
		}

		activityIDs := make(map[string]int64)
		for _, node := range Activities {
			if err := seedActivity(ctx, stores, node, nil, activityIDs); err != nil {
				return err
			}
		}

		if err := seedOrganizations(ctx, stores, buildings, activityIDs); err != nil {
			return err
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seeding catalog: %w", err)
	}

	if seeded {
		slog.InfoContext(ctx, "catalog seeded",
			"buildings", buildingCount,
			"organizations", organizationCount,
		)
	}
	return seeded, nil
}

func seedBuildings(ctx context.Context, stores service.StoreProvider) ([]model.Building, error) {
	buildings := make([]model.Building, 0, buildingCount)
	for i := 1; i <= buildingCount; i++ {
		b := &model.Building{
			ID:        id.New(),
			Address:   fmt.Sprintf("%d Example St", i),
			Latitude:  55.75 + float64(i)*0.001,
			Longitude: 37.61 + float64(i)*0.001,
		}
		if err := stores.Buildings().Create(ctx, b); err != nil {
			return nil, fmt.Errorf("building %q: %w", b.Address, err)
		}
		buildings = append(buildings, *b)
	}
	return buildings, nil
}

// seedActivity inserts node and its children through the same hierarchy check as the API.
func seedActivity(ctx context.Context, stores service.StoreProvider, node ActivityNode, parentID *int64, ids map[string]int64) error {
	if parentID != nil {
		if err := activitytree.CheckParent(ctx, stores.Activities(), *parentID); err != nil {
			return fmt.Errorf("activity %q: %w", node.Name, err)
		}
	}

	a := &model.Activity{ID: id.New(), Name: node.Name, ParentID: parentID}
	if err := stores.Activities().Create(ctx, a); err != nil {
		return fmt.Errorf("activity %q: %w", node.Name, err)
	}
	ids[node.Name] = a.ID

	for _, child := range node.Children {
		if err := seedActivity(ctx, stores, child, &a.ID, ids); err != nil {
			return err
		}
	}
	return nil
}

func seedOrganizations(ctx context.Context, stores service.StoreProvider, buildings []model.Building, activityIDs map[string]int64) error {
	for i := 1; i <= organizationCount; i++ {
		org := &model.Organization{
			ID:         id.New(),
			Name:       fmt.Sprintf("Organization %d", i),
			Phones:     []string{fmt.Sprintf("+7-900-000-00%02d", i)},
			BuildingID: buildings[(i-1)%len(buildings)].ID,
		}
		if err := stores.Organizations().Create(ctx, org); err != nil {
			return fmt.Errorf("organization %q: %w", org.Name, err)
		}

		profile := Profiles[(i-1)%len(Profiles)]
		links := make([]int64, 0, len(profile))
		for _, name := range profile {
			links = append(links, activityIDs[name])
		}
		if err := stores.Organizations().AttachActivities(ctx, org.ID, links); err != nil {
			return fmt.Errorf("organization %q activities: %w", org.Name, err)
		}
	}
	return nil
}
