// Package geo holds the named point records served by the suggestion engine
// and the great-circle distance used to rank them by proximity.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

var (
	ErrEmptyName          = errors.New("empty name")
	ErrLatitudeRange      = errors.New("latitude out of range [-90, 90]")
	ErrLongitudeRange     = errors.New("longitude out of range [-180, 180]")
	ErrNegativePopulation = errors.New("negative population")
)

// Record is a named point with its population.
// Name is the unique key, e.g. "Toronto, Ontario, Canada".
type Record struct {
	Name       string
	Latitude   float64
	Longitude  float64
	Population int64
}

// Validate checks coordinate ranges and population.
// The engine assumes records passed to it already validated.
func (r Record) Validate() error {
	if r.Name == "" {
		return ErrEmptyName
	}
	if math.IsNaN(r.Latitude) || r.Latitude < -90 || r.Latitude > 90 {
		return fmt.Errorf("%w: %v", ErrLatitudeRange, r.Latitude)
	}
	if math.IsNaN(r.Longitude) || r.Longitude < -180 || r.Longitude > 180 {
		return fmt.Errorf("%w: %v", ErrLongitudeRange, r.Longitude)
	}
	if r.Population < 0 {
		return fmt.Errorf("%w: %d", ErrNegativePopulation, r.Population)
	}
	return nil
}

// DistanceTo returns the haversine distance in km from r to (lat, lon).
func (r Record) DistanceTo(lat, lon float64) float64 {
	return Distance(lat, lon, r.Latitude, r.Longitude)
}

// Distance calculates the great-circle distance in kilometers between two
// lat/lon points with the haversine formula on a spherical Earth.
// Error grows for antipodal-scale distances, fine between cities.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lon1Rad := toRadians(lon1)
	lat2Rad := toRadians(lat2)
	lon2Rad := toRadians(lon2)

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Asin(math.Sqrt(a))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
