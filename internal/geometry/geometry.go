package geometry

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// ErrCentroidUnavailable is returned when a polygon has fewer than three
// unique vertices. Callers display it as a "not available" placeholder
// instead of failing.
var ErrCentroidUnavailable = errors.New("centroid not available")

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"long"`
}

type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_long"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_long"`
}

// Area returns the geodesic area of the polygon in hectares, rounded to
// two decimals. Fewer than three vertices yield zero.
func Area(vertices []Point) float64 {
	if len(vertices) < 3 {
		return 0
	}
	ring := closedRing(vertices)
	m2 := math.Abs(geo.Area(ring))
	return round2(m2 / 10000)
}

// Perimeter sums the great-circle distances between consecutive vertices,
// including the closing edge, rounded to two decimals (meters).
func Perimeter(vertices []Point) float64 {
	if len(vertices) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(vertices); i++ {
		total += geo.DistanceHaversine(toOrb(vertices[i-1]), toOrb(vertices[i]))
	}
	total += geo.DistanceHaversine(toOrb(vertices[len(vertices)-1]), toOrb(vertices[0]))
	return round2(total)
}

// Centroid computes the centroid of the closed ring. The ring is closed by
// appending the first vertex when the polygon is stored open, matching the
// convention of the underlying library.
func Centroid(vertices []Point) (Point, error) {
	if uniqueCount(vertices) < 3 {
		return Point{}, ErrCentroidUnavailable
	}
	ring := closedRing(vertices)
	center, _ := planar.CentroidArea(ring)
	return Point{Lat: center.Lat(), Lon: center.Lon()}, nil
}

// PolygonBounds returns the bounding box of the vertex list, used to
// recenter the map on selection.
func PolygonBounds(vertices []Point) (Bounds, bool) {
	if len(vertices) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinLat: vertices[0].Lat, MaxLat: vertices[0].Lat,
		MinLon: vertices[0].Lon, MaxLon: vertices[0].Lon,
	}
	for _, v := range vertices[1:] {
		b.MinLat = math.Min(b.MinLat, v.Lat)
		b.MaxLat = math.Max(b.MaxLat, v.Lat)
		b.MinLon = math.Min(b.MinLon, v.Lon)
		b.MaxLon = math.Max(b.MaxLon, v.Lon)
	}
	return b, true
}

func closedRing(vertices []Point) orb.Ring {
	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, toOrb(v))
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

func uniqueCount(vertices []Point) int {
	seen := make(map[Point]struct{}, len(vertices))
	for _, v := range vertices {
		seen[v] = struct{}{}
	}
	return len(seen)
}

func toOrb(p Point) orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
