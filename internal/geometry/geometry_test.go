package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A square of roughly 100 m per side near Rome. 0.0009 degrees of
// latitude is ~100 m; the longitude step is widened by 1/cos(42.5°).
func squareVertices() []Point {
	return []Point{
		{Lat: 42.5000, Lon: 12.5000},
		{Lat: 42.5009, Lon: 12.5000},
		{Lat: 42.5009, Lon: 12.50122},
		{Lat: 42.5000, Lon: 12.50122},
	}
}

func TestAreaSquareAboutOneHectare(t *testing.T) {
	area := Area(squareVertices())
	assert.InDelta(t, 1.0, area, 0.05)
}

func TestPerimeterSquareAbout400Meters(t *testing.T) {
	perimeter := Perimeter(squareVertices())
	assert.InDelta(t, 400.0, perimeter, 5.0)
}

func TestPerimeterAtLeastLongestEdge(t *testing.T) {
	vertices := []Point{
		{Lat: 42.0, Lon: 12.0},
		{Lat: 42.1, Lon: 12.0},
		{Lat: 42.05, Lon: 12.2},
	}
	longest := 0.0
	for i := range vertices {
		next := vertices[(i+1)%len(vertices)]
		d := Perimeter([]Point{vertices[i], next}) / 2
		if d > longest {
			longest = d
		}
	}
	assert.GreaterOrEqual(t, Perimeter(vertices), longest)
	assert.Greater(t, Area(vertices), 0.0)
}

func TestAreaDegenerate(t *testing.T) {
	assert.Zero(t, Area(nil))
	assert.Zero(t, Area([]Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}))
}

func TestCentroidInsideSquare(t *testing.T) {
	c, err := Centroid(squareVertices())
	require.NoError(t, err)
	assert.InDelta(t, 42.50045, c.Lat, 0.0005)
	assert.InDelta(t, 12.50061, c.Lon, 0.0005)
}

func TestCentroidUnavailable(t *testing.T) {
	_, err := Centroid([]Point{{Lat: 1, Lon: 1}})
	assert.ErrorIs(t, err, ErrCentroidUnavailable)

	// Duplicated vertices do not count towards the minimum of three.
	_, err = Centroid([]Point{
		{Lat: 1, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 2, Lon: 2},
	})
	assert.ErrorIs(t, err, ErrCentroidUnavailable)
}

func TestCentroidOpenAndClosedRingAgree(t *testing.T) {
	open := squareVertices()
	closed := append(append([]Point{}, open...), open[0])

	c1, err := Centroid(open)
	require.NoError(t, err)
	c2, err := Centroid(closed)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
}

func TestAreaIdempotent(t *testing.T) {
	v := squareVertices()
	assert.Equal(t, Area(v), Area(v))
	assert.Equal(t, Perimeter(v), Perimeter(v))
}
