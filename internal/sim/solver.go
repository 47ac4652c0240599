package sim

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/bevcart-sim/internal/course"
	"github.com/stitts-dev/bevcart-sim/internal/geo"
	"github.com/stitts-dev/bevcart-sim/internal/models"
)

// timeTolerance absorbs floating point noise at the interval edges when
// accepting crossing times
const timeTolerance = 1e-6

// CrossingSolver derives every meeting between a one-way golfer group
// and the continuously lapping beverage cart in closed form. The cart's
// repeated lapping is an integer wrap multiplier, not mutable loop
// state.
type CrossingSolver struct {
	course      *course.Course
	golferSpeed float64 // m/s, one-way traverse
	cartSpeed   float64 // m/s, cyclic, opposite direction
	cartStart   time.Time
	logger      *logrus.Logger
}

// NewCrossingSolver creates a closed-form crossing solver
func NewCrossingSolver(c *course.Course, golferSpeed, cartSpeed float64, cartStart time.Time, logger *logrus.Logger) *CrossingSolver {
	return &CrossingSolver{
		course:      c,
		golferSpeed: golferSpeed,
		cartSpeed:   cartSpeed,
		cartStart:   cartStart,
		logger:      logger,
	}
}

// Solve computes crossings for every tee group. Results are sorted and
// renumbered by ascending tee time; groups that never meet the cart are
// returned with Crossed false.
func (s *CrossingSolver) Solve(groups []models.TeeGroup) ([]models.GroupCrossings, error) {
	if s.golferSpeed <= 0 || s.cartSpeed <= 0 {
		return nil, ErrInvalidSpeed
	}

	results := make([]models.GroupCrossings, 0, len(groups))
	for _, g := range groups {
		results = append(results, s.solveGroup(g))
	}
	renumberByTeeTime(results)

	if s.logger != nil {
		crossed := 0
		for _, r := range results {
			if r.Crossed {
				crossed++
			}
		}
		s.logger.WithFields(logrus.Fields{
			"groups":         len(results),
			"groups_crossed": crossed,
			"path_length_m":  s.course.Length,
		}).Info("Closed-form crossing solve completed")
	}

	return results, nil
}

// solveGroup evaluates t_k = (L*(k+1) + v_g*t_g0) / (v_g + v_b) over
// the analytically bounded wrap range.
func (s *CrossingSolver) solveGroup(g models.TeeGroup) models.GroupCrossings {
	L := s.course.Length
	vg := s.golferSpeed
	vb := s.cartSpeed

	teeSeconds := g.TeeTime.Sub(s.cartStart).Seconds()
	finishSeconds := teeSeconds + L/vg

	result := models.GroupCrossings{
		GroupID: g.GroupID,
		TeeTime: g.TeeTime,
	}

	kMax := int(math.Floor(((vg+vb)*finishSeconds-vg*teeSeconds)/L - 1))
	for k := 0; k <= kMax; k++ {
		tk := (L*float64(k+1) + vg*teeSeconds) / (vg + vb)

		// A meeting at the exact finish instant is not a crossing; the
		// golfer has already left the path.
		if tk < teeSeconds-timeTolerance || tk > finishSeconds-timeTolerance {
			continue
		}

		sMeet := vg * (tk - teeSeconds)
		if sMeet < 0 {
			sMeet = 0
		} else if sMeet > L {
			sMeet = L
		}

		node := geo.NearestNodeIndex(s.course.Cum, sMeet)
		event := models.CrossingEvent{
			Timestamp:   s.cartStart.Add(time.Duration(tk * float64(time.Second))),
			TimeSeconds: tk,
			NodeIndex:   node,
			WrapCount:   k,
		}
		if hole, ok := s.course.HoleAtNode(node); ok {
			h := hole
			event.Hole = &h
		}
		result.Crossings = append(result.Crossings, event)
	}

	result.Crossed = len(result.Crossings) > 0
	return result
}
