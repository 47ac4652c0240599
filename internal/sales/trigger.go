package sales

import (
	"math/rand"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/bevcart-sim/internal/models"
)

// Trigger converts crossing events into probabilistic purchases. The
// RNG is injected so a given seed reproduces identical output; no
// global random state is used.
type Trigger struct {
	Probability float64
	Price       float64

	rng    *rand.Rand
	logger *logrus.Logger
}

// NewTrigger creates a transaction trigger around an injected RNG
func NewTrigger(probability, price float64, rng *rand.Rand, logger *logrus.Logger) *Trigger {
	return &Trigger{
		Probability: probability,
		Price:       price,
		rng:         rng,
		logger:      logger,
	}
}

// Result is the uniform output of both trigger paths
type Result struct {
	Sales               []models.SaleEvent `json:"sales"`
	TotalRevenue        float64            `json:"total_revenue"`
	IntervalsByGroup    map[int][]float64  `json:"intervals_by_group"`
	MeanIntervalSeconds float64            `json:"mean_interval_seconds"`
}

// FromCrossings runs one independent Bernoulli trial per crossing and
// emits a sale event on success. Inter-crossing intervals are recorded
// per group for observability.
func (t *Trigger) FromCrossings(groups []models.GroupCrossings) Result {
	result := Result{IntervalsByGroup: make(map[int][]float64)}

	var allIntervals []float64
	for _, g := range groups {
		prev := 0.0
		for i, cr := range g.Crossings {
			if i > 0 {
				interval := cr.TimeSeconds - prev
				result.IntervalsByGroup[g.GroupID] = append(result.IntervalsByGroup[g.GroupID], interval)
				allIntervals = append(allIntervals, interval)
			}
			prev = cr.TimeSeconds

			if t.rng.Float64() >= t.Probability {
				continue
			}

			hole := 0
			if cr.Hole != nil {
				hole = *cr.Hole
			}
			result.Sales = append(result.Sales, models.SaleEvent{
				GroupID:          g.GroupID,
				HoleNumber:       hole,
				TimestampSeconds: cr.TimeSeconds,
				Price:            t.Price,
			})
		}
	}

	return t.finalize(result, allIntervals)
}

// Legacy synthesizes 2-3 evenly spaced pseudo-crossings per group at
// randomly chosen holes. Used only when crossing data is unavailable.
func (t *Trigger) Legacy(groups []models.TeeGroup, cartStart time.Time, holeCount int, roundSeconds float64) Result {
	result := Result{IntervalsByGroup: make(map[int][]float64)}
	if holeCount < 1 {
		holeCount = 18
	}

	var allIntervals []float64
	for _, g := range groups {
		count := 2 + t.rng.Intn(2)
		spacing := roundSeconds / float64(count+1)
		teeSeconds := g.TeeTime.Sub(cartStart).Seconds()

		for i := 1; i <= count; i++ {
			ts := teeSeconds + spacing*float64(i)
			if i > 1 {
				result.IntervalsByGroup[g.GroupID] = append(result.IntervalsByGroup[g.GroupID], spacing)
				allIntervals = append(allIntervals, spacing)
			}

			if t.rng.Float64() >= t.Probability {
				continue
			}
			result.Sales = append(result.Sales, models.SaleEvent{
				GroupID:          g.GroupID,
				HoleNumber:       1 + t.rng.Intn(holeCount),
				TimestampSeconds: ts,
				Price:            t.Price,
			})
		}
	}

	return t.finalize(result, allIntervals)
}

// finalize sorts sales by time, sums revenue, and derives interval
// statistics
func (t *Trigger) finalize(result Result, allIntervals []float64) Result {
	sort.SliceStable(result.Sales, func(i, j int) bool {
		return result.Sales[i].TimestampSeconds < result.Sales[j].TimestampSeconds
	})

	for _, s := range result.Sales {
		result.TotalRevenue += s.Price
	}
	if len(allIntervals) > 0 {
		result.MeanIntervalSeconds = stat.Mean(allIntervals, nil)
	}

	if t.logger != nil {
		t.logger.WithFields(logrus.Fields{
			"sales":         len(result.Sales),
			"total_revenue": result.TotalRevenue,
			"mean_interval": result.MeanIntervalSeconds,
		}).Info("Transaction trigger completed")
	}

	return result
}
