package store

import (
	"orgcatalog.app/catalog/core/db"
)

// Stores hands out entity stores that all run on the same connection or transaction.
type Stores struct {
	q db.DBTX
}

func NewStores(q db.DBTX) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Activities() ActivityStore {
	return newActivityStore(s.q)
}

func (s *Stores) Buildings() BuildingStore {
	return newBuildingStore(s.q)
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.q)
}
