package view

import (
	"math"

	"github.com/lmalottucsd/bikewatching/internal/geo"
)

// Map camera limits. These match the slippy-map client configuration: the
// tile pyramid is 256px at zoom 0 and doubles per level.
const (
	MinZoom  = 5.0
	MaxZoom  = 18.0
	tileSize = 256.0
)

// Default camera over the Boston bike network, used when the station
// bounding box cannot be computed.
const (
	DefaultCenterLon = -71.09415
	DefaultCenterLat = 42.36027
	DefaultZoom      = 12.0
)

// Point is a screen position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the camera state of the map: center, zoom, and canvas size
// in pixels. It stands in for the map engine's current view; projecting
// the same station through different viewports yields different screen
// positions.
type Viewport struct {
	CenterLon float64 `json:"center_lon"`
	CenterLat float64 `json:"center_lat"`
	Zoom      float64 `json:"zoom"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// NewViewport returns a viewport with the zoom clamped into
// [MinZoom, MaxZoom] and a sane canvas size.
func NewViewport(centerLon, centerLat, zoom, width, height float64) Viewport {
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 768
	}
	return Viewport{
		CenterLon: centerLon,
		CenterLat: centerLat,
		Zoom:      zoom,
		Width:     width,
		Height:    height,
	}
}

// FitViewport centers the camera on the station bounding box and picks a
// zoom at which the whole network fits the canvas, using the box's
// haversine radius and the Web Mercator ground resolution at that
// latitude.
func FitViewport(bbox geo.BoundingBox, width, height float64) Viewport {
	lat, lon := bbox.Center()

	radius := bbox.RadiusMeters()
	if radius <= 0 {
		return NewViewport(lon, lat, DefaultZoom, width, height)
	}

	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 768
	}

	// Ground resolution at the equator for zoom 0 is one Earth
	// circumference across one tile; it halves with each zoom level and
	// shrinks with cos(lat).
	const equatorCircumference = 40075016.686
	fit := math.Min(width, height)
	metersPerPixelNeeded := 2 * radius / fit
	zoom := math.Log2(equatorCircumference * math.Cos(lat*math.Pi/180) / (tileSize * metersPerPixelNeeded))

	return NewViewport(lon, lat, math.Floor(zoom), width, height)
}

// Project converts a lon/lat to current screen pixel coordinates using the
// spherical Web Mercator projection. It is a read-only query against the
// camera state.
func (v Viewport) Project(lon, lat float64) Point {
	worldSize := tileSize * math.Pow(2, v.Zoom)

	wx, wy := mercator(lon, lat, worldSize)
	cx, cy := mercator(v.CenterLon, v.CenterLat, worldSize)

	return Point{
		X: wx - cx + v.Width/2,
		Y: wy - cy + v.Height/2,
	}
}

// mercator maps lon/lat to world pixel coordinates at the given world size.
// Latitude is clamped to the Web Mercator limit of ±85.05113°.
func mercator(lon, lat float64, worldSize float64) (float64, float64) {
	const maxLat = 85.05112878
	if lat > maxLat {
		lat = maxLat
	}
	if lat < -maxLat {
		lat = -maxLat
	}

	x := (lon + 180) / 360 * worldSize

	phi := lat * math.Pi / 180
	y := (1 - math.Log(math.Tan(phi)+1/math.Cos(phi))/math.Pi) / 2 * worldSize

	return x, y
}
