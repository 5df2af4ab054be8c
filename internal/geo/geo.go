// Package geo implements great-circle distance on a spherical Earth and the
// radius queries built on it.
package geo

import (
	"errors"
	"fmt"
	"math"
)

const EarthRadiusKm = 6371.0

var (
	ErrInvalidPoint  = errors.New("invalid coordinates")
	ErrInvalidRadius = errors.New("invalid radius")
)

// Point is a position in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v: %w", p.Lat, ErrInvalidPoint)
	}
	if math.IsNaN(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude %v: %w", p.Lon, ErrInvalidPoint)
	}
	return nil
}

// ValidateRadius accepts any finite, non-negative distance in kilometres.
func ValidateRadius(radiusKm float64) error {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		return fmt.Errorf("radius %v km: %w", radiusKm, ErrInvalidRadius)
	}
	return nil
}

// Locatable is anything with a position, e.g. a building.
type Locatable interface {
	Coordinates() (lat, lon float64)
}

func PointOf(l Locatable) Point {
	lat, lon := l.Coordinates()
	return Point{Lat: lat, Lon: lon}
}

// Distance returns the haversine distance between a and b in kilometres.
func Distance(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := lat2 - lat1
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h just outside [0, 1] for antipodal points
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// Within reports whether p lies within radiusKm of center, boundary included.
func Within(center, p Point, radiusKm float64) bool {
	return Distance(center, p) <= radiusKm
}

// FilterByRadius keeps the candidates within radiusKm of center, in input order.
func FilterByRadius[T Locatable](center Point, radiusKm float64, candidates []T) []T {
	out := make([]T, 0, len(candidates))
	for _, c := range candidates {
		if Within(center, PointOf(c), radiusKm) {
			out = append(out, c)
		}
	}
	return out
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
