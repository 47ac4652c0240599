package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name      string
		p1        Point
		p2        Point
		expected  float64
		tolerance float64
	}{
		{
			name:      "Same point",
			p1:        Point{Lat: 36.5697, Lon: -121.9486},
			p2:        Point{Lat: 36.5697, Lon: -121.9486},
			expected:  0,
			tolerance: 0,
		},
		{
			name:      "One degree of latitude",
			p1:        Point{Lat: 0, Lon: 0},
			p2:        Point{Lat: 1, Lon: 0},
			expected:  111195, // 2*pi*R/360
			tolerance: 100,
		},
		{
			name:      "Short hop across a fairway",
			p1:        Point{Lat: 36.5697, Lon: -121.9486},
			p2:        Point{Lat: 36.5706, Lon: -121.9486},
			expected:  100,
			tolerance: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Distance(tt.p1, tt.p2)
			assert.InDelta(t, tt.expected, d, tt.tolerance)
		})
	}
}

func TestCumulativeDistances(t *testing.T) {
	path := []Point{
		{Lat: 36.5600, Lon: -121.9486},
		{Lat: 36.5610, Lon: -121.9486},
		{Lat: 36.5620, Lon: -121.9486},
		{Lat: 36.5620, Lon: -121.9486}, // duplicate node, zero-length segment
		{Lat: 36.5635, Lon: -121.9486},
	}

	cum, err := CumulativeDistances(path)
	require.NoError(t, err)
	require.Len(t, cum, len(path))

	assert.Equal(t, 0.0, cum[0])
	for i := 1; i < len(cum); i++ {
		assert.GreaterOrEqual(t, cum[i], cum[i-1], "cumulative distances must be non-decreasing")
	}

	total := 0.0
	for i := 1; i < len(path); i++ {
		total += Distance(path[i-1], path[i])
	}
	assert.InDelta(t, total, cum[len(cum)-1], 1e-9)
}

func TestCumulativeDistancesTooShort(t *testing.T) {
	_, err := CumulativeDistances([]Point{{Lat: 1, Lon: 1}})
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = CumulativeDistances(nil)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestNearestNodeIndex(t *testing.T) {
	cum := []float64{0, 100, 250, 250, 400, 1000}

	// Exhaustive check against brute force over a sweep of offsets
	for s := -50.0; s <= 1100.0; s += 7.3 {
		best := 0
		for i := range cum {
			if math.Abs(cum[i]-s) < math.Abs(cum[best]-s) {
				best = i
			}
		}
		got := NearestNodeIndex(cum, s)
		assert.InDelta(t, math.Abs(cum[best]-s), math.Abs(cum[got]-s), 1e-9,
			"offset %.1f: got index %d, brute force %d", s, got, best)
	}

	// Clamping
	assert.Equal(t, 0, NearestNodeIndex(cum, -1e9))
	assert.Equal(t, len(cum)-1, NearestNodeIndex(cum, 1e9))
}

func TestPolygonContains(t *testing.T) {
	square := PolygonWithHoles{
		Outer: []Point{
			{Lat: 0, Lon: 0},
			{Lat: 0, Lon: 10},
			{Lat: 10, Lon: 10},
			{Lat: 10, Lon: 0},
		},
	}

	assert.True(t, square.Contains(Point{Lat: 5, Lon: 5}))
	assert.False(t, square.Contains(Point{Lat: 15, Lon: 5}))
	assert.False(t, square.Contains(Point{Lat: -1, Lon: -1}))
}

func TestPolygonWithHoleExcludesInterior(t *testing.T) {
	pg := PolygonWithHoles{
		Outer: []Point{
			{Lat: 0, Lon: 0},
			{Lat: 0, Lon: 10},
			{Lat: 10, Lon: 10},
			{Lat: 10, Lon: 0},
		},
		Holes: [][]Point{{
			{Lat: 4, Lon: 4},
			{Lat: 4, Lon: 6},
			{Lat: 6, Lon: 6},
			{Lat: 6, Lon: 4},
		}},
	}

	assert.True(t, pg.Contains(Point{Lat: 2, Lon: 2}))
	assert.False(t, pg.Contains(Point{Lat: 5, Lon: 5}), "point inside interior ring is excluded")
}

func TestHoleForPoint(t *testing.T) {
	holes := []HolePolygon{
		{
			Number: 1,
			Polygon: PolygonWithHoles{Outer: []Point{
				{Lat: 0, Lon: 0}, {Lat: 0, Lon: 5}, {Lat: 5, Lon: 5}, {Lat: 5, Lon: 0},
			}},
		},
		{
			Number: 2,
			Polygon: PolygonWithHoles{Outer: []Point{
				{Lat: 0, Lon: 5}, {Lat: 0, Lon: 10}, {Lat: 5, Lon: 10}, {Lat: 5, Lon: 5},
			}},
		},
	}

	n, ok := HoleForPoint(holes, Point{Lat: 2, Lon: 2})
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = HoleForPoint(holes, Point{Lat: 2, Lon: 7})
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	// Outside all polygons is a miss, not an error
	n, ok = HoleForPoint(holes, Point{Lat: 50, Lon: 50})
	assert.False(t, ok)
	assert.Equal(t, 0, n)
}
