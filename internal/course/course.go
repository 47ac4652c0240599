package course

import (
	"fmt"

	"github.com/stitts-dev/bevcart-sim/internal/geo"
)

// Course is an ordered cart path plus its derived along-path distances
// and hole attribution data. Immutable once built.
type Course struct {
	Name   string
	Nodes  []PathNode
	Points []geo.Point
	Cum    []float64
	Length float64
	Holes  []geo.HolePolygon
}

// New builds a Course from an ordered path and an optional hole map
func New(name string, nodes []PathNode, holes []geo.HolePolygon) (*Course, error) {
	points := make([]geo.Point, len(nodes))
	for i, n := range nodes {
		points[i] = n.Point
	}

	cum, err := geo.CumulativeDistances(points)
	if err != nil {
		return nil, fmt.Errorf("building course %q: %w", name, err)
	}

	return &Course{
		Name:   name,
		Nodes:  nodes,
		Points: points,
		Cum:    cum,
		Length: cum[len(cum)-1],
		Holes:  holes,
	}, nil
}

// HoleAtNode resolves the hole number for a path node. Per-node labels
// win; the polygon map is the fallback. A miss returns (0, false).
func (c *Course) HoleAtNode(i int) (int, bool) {
	if i < 0 || i >= len(c.Nodes) {
		return 0, false
	}
	if c.Nodes[i].Hole != nil {
		return *c.Nodes[i].Hole, true
	}
	return geo.HoleForPoint(c.Holes, c.Nodes[i].Point)
}

// NodeCount returns the number of path nodes
func (c *Course) NodeCount() int {
	return len(c.Nodes)
}
