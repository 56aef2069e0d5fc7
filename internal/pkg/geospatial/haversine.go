package geospatial

import (
	"math"

	"github.com/geloraapp/gelora/internal/core/domain"
)

const earthRadiusKm = 6371.0

// Haversine calculates the great-circle distance in kilometers between two
// points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Distance is Haversine over GeoPoints.
func Distance(a, b domain.GeoPoint) float64 {
	return Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// IndonesiaBounds is a coarse rectangle approximating Indonesia. It is a
// cheap membership filter, not a polygon test.
var IndonesiaBounds = domain.Bounds{
	MinLat: -11, MaxLat: 6,
	MinLon: 95, MaxLon: 141,
}

// InIndonesia reports whether the coordinate falls inside the Indonesia
// bounding box, edges included.
func InIndonesia(lat, lon float64) bool {
	return IndonesiaBounds.Contains(domain.GeoPoint{Lat: lat, Lon: lon})
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
