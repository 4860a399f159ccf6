package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWKTRoundTrip(t *testing.T) {
	original := squareVertices()

	s := ToWKT(original)
	require.NotEmpty(t, s)

	restored, err := FromWKT(s)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestWKTEmptyAndDegenerate(t *testing.T) {
	assert.Empty(t, ToWKT(nil))
	assert.Empty(t, ToWKT([]Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}))

	restored, err := FromWKT("")
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestFromWKTInvalid(t *testing.T) {
	_, err := FromWKT("POLYGON((not numbers))")
	assert.Error(t, err)
}
