// Package geo holds the small amount of spherical geometry the service
// needs: a bounding box over the station network and haversine distance,
// used to seed the initial viewport.
package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"

	"github.com/lmalottucsd/bikewatching/internal/models"
)

// BoundingBox defines the corners of a lat/lon box.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains checks whether the given latitude and longitude are within the bounding box.
func (b *BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Center returns the midpoint of the box as (lat, lon).
func (b *BoundingBox) Center() (float64, float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// RadiusMeters returns the haversine distance from the box center to its
// north-east corner, a cheap measure of how much ground the station
// network covers. The viewport uses it to pick an initial zoom.
func (b *BoundingBox) RadiusMeters() float64 {
	lat, lon := b.Center()
	return HaversineDistance(lat, lon, b.MaxLat, b.MaxLon)
}

// ComputeBoundingBox computes the bounding box of all stations with valid
// coordinates. Stations with out-of-range or placeholder (0,0) coordinates
// are skipped.
func ComputeBoundingBox(stations []models.Station) (BoundingBox, error) {
	if len(stations) == 0 {
		return BoundingBox{}, fmt.Errorf("no stations to compute bounding box")
	}

	minLat := math.MaxFloat64
	maxLat := -math.MaxFloat64
	minLon := math.MaxFloat64
	maxLon := -math.MaxFloat64

	for _, station := range stations {
		lat := station.Lat.Float64()
		lon := station.Lon.Float64()
		if !IsValidLatLon(lat, lon) {
			continue
		}
		if lat < minLat {
			minLat = lat
		}
		if lat > maxLat {
			maxLat = lat
		}
		if lon < minLon {
			minLon = lon
		}
		if lon > maxLon {
			maxLon = lon
		}
	}

	if minLat == math.MaxFloat64 || maxLat == -math.MaxFloat64 ||
		minLon == math.MaxFloat64 || maxLon == -math.MaxFloat64 {
		return BoundingBox{}, fmt.Errorf("no valid latitude/longitude found in stations")
	}

	return BoundingBox{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLon: minLon,
		MaxLon: maxLon,
	}, nil
}

// IsValidLatLon returns true if the given latitude and longitude values
// fall within the valid geographic coordinate bounds.
//
// Latitude must be between -90 and 90 degrees, and longitude must be
// between -180 and 180 degrees.
//
// Note: the coordinate (0,0) is treated as invalid even though it is a real
// location in the Gulf of Guinea. Station feeds use (0,0) as an
// uninitialized placeholder, and no bike dock floats there.
func IsValidLatLon(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	return true
}

// earthRadiusInMeters is the Earth's volumetric mean radius, the usual
// constant for spherical distance approximations.
const earthRadiusInMeters = 6371000

// HaversineDistance returns the great-circle distance in meters between
// two lat/lon points.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * earthRadiusInMeters
}
