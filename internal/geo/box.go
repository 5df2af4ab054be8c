package geo

import "math"

// boxSlack widens every box edge so float rounding never drops a boundary point.
const boxSlack = 1e-9

// LonRange is an inclusive longitude interval with Min <= Max.
type LonRange struct {
	Min float64
	Max float64
}

// Box is a latitude band intersected with one or two longitude ranges.
// It contains every point within the radius it was built for, and usually a
// few more, so results must still go through FilterByRadius.
type Box struct {
	MinLat float64
	MaxLat float64
	Lons   []LonRange
}

func (b Box) Contains(p Point) bool {
	if p.Lat < b.MinLat || p.Lat > b.MaxLat {
		return false
	}
	for _, r := range b.Lons {
		if p.Lon >= r.Min && p.Lon <= r.Max {
			return true
		}
	}
	return false
}

// BoundingBoxFor returns a box around the circle of radiusKm centred on center.
// Near a pole the longitude is left open. Across the antimeridian the box is
// split into two longitude ranges.
func BoundingBoxFor(center Point, radiusKm float64) Box {
	whole := []LonRange{{Min: -180, Max: 180}}

	angular := radiusKm / EarthRadiusKm
	if angular >= math.Pi {
		return Box{MinLat: -90, MaxLat: 90, Lons: whole}
	}

	dLat := degrees(angular) + boxSlack
	minLat := center.Lat - dLat
	maxLat := center.Lat + dLat
	if minLat <= -90 || maxLat >= 90 {
		return Box{MinLat: math.Max(minLat, -90), MaxLat: math.Min(maxLat, 90), Lons: whole}
	}

	ratio := math.Sin(angular) / math.Cos(radians(center.Lat))
	if ratio >= 1 {
		return Box{MinLat: minLat, MaxLat: maxLat, Lons: whole}
	}
	dLon := degrees(math.Asin(ratio)) + boxSlack

	minLon := center.Lon - dLon
	maxLon := center.Lon + dLon
	var lons []LonRange
	switch {
	case dLon >= 180:
		lons = whole
	case minLon < -180:
		lons = []LonRange{{Min: minLon + 360, Max: 180}, {Min: -180, Max: maxLon}}
	case maxLon > 180:
		lons = []LonRange{{Min: minLon, Max: 180}, {Min: -180, Max: maxLon - 360}}
	default:
		lons = []LonRange{{Min: minLon, Max: maxLon}}
	}

	return Box{MinLat: minLat, MaxLat: maxLat, Lons: lons}
}
