package course

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/stitts-dev/bevcart-sim/internal/geo"
)

var (
	ErrInvalidGeoJSON     = errors.New("geojson path must contain at least 2 usable point features")
	ErrInvalidHolePolygon = errors.New("geojson contains no valid hole polygons")
)

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string                 `json:"type"`
	Geometry   geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// PathNode is one point of the cart path, optionally labeled with the
// hole it belongs to
type PathNode struct {
	Point geo.Point
	Hole  *int
}

// orderingKeys are tried strongest-first; the first key present on
// every point feature wins. With no common key, input order stands.
var orderingKeys = []string{"sequence", "seq", "index", "id"}

// LoadPath parses a GeoJSON feature collection of points into an
// ordered cart path
func LoadPath(data []byte) ([]PathNode, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing path geojson: %w", err)
	}

	type keyedNode struct {
		node PathNode
		keys map[string]float64
	}

	var nodes []keyedNode
	for _, f := range fc.Features {
		if f.Geometry.Type != "Point" {
			continue
		}
		var coords []float64
		if err := json.Unmarshal(f.Geometry.Coordinates, &coords); err != nil || len(coords) < 2 {
			continue
		}

		n := keyedNode{
			node: PathNode{Point: geo.Point{Lat: coords[1], Lon: coords[0]}},
			keys: map[string]float64{},
		}
		for _, k := range orderingKeys {
			if v, ok := numericProperty(f.Properties, k); ok {
				n.keys[k] = v
			}
		}
		if h, ok := numericProperty(f.Properties, "hole"); ok {
			hole := int(h)
			n.node.Hole = &hole
		} else if h, ok := numericProperty(f.Properties, "hole_number"); ok {
			hole := int(h)
			n.node.Hole = &hole
		}
		nodes = append(nodes, n)
	}

	if len(nodes) < 2 {
		return nil, ErrInvalidGeoJSON
	}

	// Sort by the strongest ordering key carried by every point
	for _, k := range orderingKeys {
		shared := true
		for _, n := range nodes {
			if _, ok := n.keys[k]; !ok {
				shared = false
				break
			}
		}
		if shared {
			key := k
			sort.SliceStable(nodes, func(i, j int) bool {
				return nodes[i].keys[key] < nodes[j].keys[key]
			})
			break
		}
	}

	path := make([]PathNode, len(nodes))
	for i, n := range nodes {
		path[i] = n.node
	}
	return path, nil
}

// LoadHolePolygons parses Polygon and MultiPolygon features carrying an
// integer hole-number property into geofenced holes
func LoadHolePolygons(data []byte) ([]geo.HolePolygon, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing hole polygon geojson: %w", err)
	}

	var holes []geo.HolePolygon
	for _, f := range fc.Features {
		num, ok := holeNumberProperty(f.Properties)
		if !ok {
			continue
		}

		switch f.Geometry.Type {
		case "Polygon":
			var rings [][][]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &rings); err != nil {
				continue
			}
			if pg, ok := polygonFromRings(rings); ok {
				holes = append(holes, geo.HolePolygon{Number: num, Polygon: pg})
			}
		case "MultiPolygon":
			var polys [][][][]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &polys); err != nil {
				continue
			}
			for _, rings := range polys {
				if pg, ok := polygonFromRings(rings); ok {
					holes = append(holes, geo.HolePolygon{Number: num, Polygon: pg})
				}
			}
		}
	}

	if len(holes) == 0 {
		return nil, ErrInvalidHolePolygon
	}
	return holes, nil
}

func polygonFromRings(rings [][][]float64) (geo.PolygonWithHoles, bool) {
	if len(rings) == 0 || len(rings[0]) < 3 {
		return geo.PolygonWithHoles{}, false
	}

	pg := geo.PolygonWithHoles{Outer: ringToPoints(rings[0])}
	for _, ring := range rings[1:] {
		if len(ring) >= 3 {
			pg.Holes = append(pg.Holes, ringToPoints(ring))
		}
	}
	return pg, true
}

func ringToPoints(ring [][]float64) []geo.Point {
	pts := make([]geo.Point, 0, len(ring))
	for _, c := range ring {
		if len(c) >= 2 {
			pts = append(pts, geo.Point{Lat: c[1], Lon: c[0]})
		}
	}
	return pts
}

func holeNumberProperty(props map[string]interface{}) (int, bool) {
	for _, key := range []string{"hole", "hole_number", "ref"} {
		if v, ok := numericProperty(props, key); ok {
			return int(v), true
		}
	}
	return 0, false
}

func numericProperty(props map[string]interface{}, key string) (float64, bool) {
	raw, ok := props[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
