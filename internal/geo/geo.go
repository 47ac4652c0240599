package geo

import (
	"errors"
	"math"
	"sort"
)

// Earth's radius in meters
const earthRadiusMeters = 6371000.0

var ErrInvalidPath = errors.New("path must contain at least 2 points")

// Point represents a geographic coordinate
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance calculates great-circle distance between two points in meters
// using the Haversine formula
func Distance(p1, p2 Point) float64 {
	if p1.Lat == p2.Lat && p1.Lon == p2.Lon {
		return 0
	}

	lat1 := p1.Lat * math.Pi / 180
	lon1 := p1.Lon * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	lon2 := p2.Lon * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// CumulativeDistances returns the along-path distance of every node.
// cum[0] is 0 and cum[len-1] is the total path length.
func CumulativeDistances(path []Point) ([]float64, error) {
	if len(path) < 2 {
		return nil, ErrInvalidPath
	}

	cum := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		cum[i] = cum[i-1] + Distance(path[i-1], path[i])
	}
	return cum, nil
}

// NearestNodeIndex returns the index whose cumulative distance is closest
// to s, clamped to the valid index range.
func NearestNodeIndex(cum []float64, s float64) int {
	if len(cum) == 0 {
		return 0
	}

	i := sort.SearchFloat64s(cum, s)
	if i == 0 {
		return 0
	}
	if i >= len(cum) {
		return len(cum) - 1
	}
	if s-cum[i-1] <= cum[i]-s {
		return i - 1
	}
	return i
}

// PolygonWithHoles is an outer ring with optional interior exclusion rings
type PolygonWithHoles struct {
	Outer []Point   `json:"outer"`
	Holes [][]Point `json:"holes,omitempty"`
}

// Contains reports whether p lies inside the outer ring and outside
// every interior ring
func (pg PolygonWithHoles) Contains(p Point) bool {
	if !ringContains(pg.Outer, p) {
		return false
	}
	for _, hole := range pg.Holes {
		if ringContains(hole, p) {
			return false
		}
	}
	return true
}

// ringContains runs a ray-casting test of p against a closed ring
func ringContains(ring []Point, p Point) bool {
	if len(ring) < 3 {
		return false
	}

	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		pi, pj := ring[i], ring[j]
		if (pi.Lat > p.Lat) != (pj.Lat > p.Lat) &&
			p.Lon < (pj.Lon-pi.Lon)*(p.Lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lon {
			inside = !inside
		}
		j = i
	}
	return inside
}

// HolePolygon is a geofenced hole: a labeled polygon used to attribute
// a coordinate to a numbered hole
type HolePolygon struct {
	Number  int              `json:"hole_number"`
	Polygon PolygonWithHoles `json:"polygon"`
}

// HoleForPoint returns the hole number whose polygon contains p.
// A point outside every polygon is not an error; it returns (0, false).
func HoleForPoint(holes []HolePolygon, p Point) (int, bool) {
	for _, h := range holes {
		if h.Polygon.Contains(p) {
			return h.Number, true
		}
	}
	return 0, false
}
