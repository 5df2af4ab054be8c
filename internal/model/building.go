package model

type Building struct {
	ID        int64   `json:"id,string" db:"id"`
	Address   string  `json:"address" db:"address"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Coordinates lets buildings go through the radius filter directly.
func (b Building) Coordinates() (lat, lon float64) {
	return b.Latitude, b.Longitude
}

type BuildingUpdate struct {
	Address   *string
	Latitude  *float64
	Longitude *float64
}

func (u BuildingUpdate) Empty() bool {
	return u.Address == nil && u.Latitude == nil && u.Longitude == nil
}
