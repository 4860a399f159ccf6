package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ToWKT serializes the polygon for storage. Fewer than three vertices
// yield an empty string, which FromWKT maps back to no polygon.
func ToWKT(vertices []Point) string {
	if len(vertices) < 3 {
		return ""
	}
	return wkt.MarshalString(orb.Polygon{closedRing(vertices)})
}

// FromWKT restores the vertex list from a stored polygon, dropping the
// closing vertex so the in-memory form is always an open ring.
func FromWKT(s string) ([]Point, error) {
	if s == "" {
		return nil, nil
	}
	polygon, err := wkt.UnmarshalPolygon(s)
	if err != nil {
		return nil, err
	}
	if len(polygon) == 0 {
		return nil, nil
	}
	ring := polygon[0]
	out := make([]Point, 0, len(ring))
	for i, p := range ring {
		if i == len(ring)-1 && len(ring) > 1 && p == ring[0] {
			break
		}
		out = append(out, Point{Lat: p.Lat(), Lon: p.Lon()})
	}
	return out, nil
}
