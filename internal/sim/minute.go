package sim

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/bevcart-sim/internal/course"
	"github.com/stitts-dev/bevcart-sim/internal/models"
)

// MinuteIndexedSolver handles the alternate course representation with
// exactly one path node per minute of travel for both agents. The walk
// is bounded to N steps, so termination is structural.
type MinuteIndexedSolver struct {
	course    *course.Course
	cartStart time.Time
	logger    *logrus.Logger
}

// NewMinuteIndexedSolver creates a discrete minute-indexed solver
func NewMinuteIndexedSolver(c *course.Course, cartStart time.Time, logger *logrus.Logger) *MinuteIndexedSolver {
	return &MinuteIndexedSolver{
		course:    c,
		cartStart: cartStart,
		logger:    logger,
	}
}

// Solve finds at most one crossing per group: the walk stops at the
// first index match. Index adjacency of one node tolerates
// discretization rounding between the two agents' minute grids.
func (s *MinuteIndexedSolver) Solve(groups []models.TeeGroup) ([]models.GroupCrossings, error) {
	n := s.course.NodeCount()

	results := make([]models.GroupCrossings, 0, len(groups))
	for _, g := range groups {
		result := models.GroupCrossings{
			GroupID: g.GroupID,
			TeeTime: g.TeeTime,
		}

		teeSeconds := g.TeeTime.Sub(s.cartStart).Seconds()
		for m := 0; m < n; m++ {
			t := teeSeconds + float64(m)*60

			golferIdx := m % n
			cartSteps := int(math.Floor(t / 60))
			cartIdx := n - 1 - floorMod(cartSteps, n)

			if absInt(golferIdx-cartIdx) <= 1 {
				event := models.CrossingEvent{
					Timestamp:   s.cartStart.Add(time.Duration(t * float64(time.Second))),
					TimeSeconds: t,
					NodeIndex:   golferIdx,
					WrapCount:   cartSteps / n,
				}
				if hole, ok := s.course.HoleAtNode(golferIdx); ok {
					h := hole
					event.Hole = &h
				}
				result.Crossings = append(result.Crossings, event)
				break
			}
		}

		result.Crossed = len(result.Crossings) > 0
		results = append(results, result)
	}
	renumberByTeeTime(results)

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"groups":     len(results),
			"node_count": n,
		}).Debug("Minute-indexed crossing solve completed")
	}

	return results, nil
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
