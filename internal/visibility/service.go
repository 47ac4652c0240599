package visibility

import (
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/bevcart-sim/internal/geo"
	"github.com/stitts-dev/bevcart-sim/internal/models"
)

// Status is a visibility tier denoting elapsed time since a golfer last
// saw the beverage cart within the proximity threshold
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusOrange Status = "orange"
	StatusRed    Status = "red"
)

// sightingWindowSeconds bounds how far apart a golfer record and the
// nearest cart record may be to count as simultaneous
const sightingWindowSeconds = 300

// Config holds visibility tracking settings. Thresholds are ascending
// elapsed minutes.
type Config struct {
	ProximityThresholdMeters float64
	GreenMinutes             float64
	YellowMinutes            float64
	OrangeMinutes            float64
	PulsingEnabled           bool
}

// DefaultConfig returns the standard 50 m / 20-40-60 minute setup
func DefaultConfig() Config {
	return Config{
		ProximityThresholdMeters: 50,
		GreenMinutes:             20,
		YellowMinutes:            40,
		OrangeMinutes:            60,
		PulsingEnabled:           true,
	}
}

// Tracker is the per-golfer decaying "last seen" state. Owned
// exclusively by one Service instance.
type Tracker struct {
	GolferID       string
	FirstTimestamp int64 // earliest valid record for this golfer
	LastSeen       int64 // unix seconds of last sighting, 0 = never
	LastCartID     string
	Sightings      []models.VisibilityEvent
}

// Service consumes golfer and cart position streams, detects proximity
// events, and derives visibility status. Not safe for concurrent
// mutation; instantiate one Service per run.
type Service struct {
	cfg      Config
	logger   *logrus.Logger
	trackers map[string]*Tracker

	cartTimes []int64
	cartsAt   map[int64][]models.GPSPoint
}

// NewService creates a visibility tracking service
func NewService(cfg Config, logger *logrus.Logger) *Service {
	return &Service{
		cfg:      cfg,
		logger:   logger,
		trackers: make(map[string]*Tracker),
		cartsAt:  make(map[int64][]models.GPSPoint),
	}
}

// DetectSightings runs the mutation pass: every golfer record is
// matched against the nearest cart record in time, and close passes are
// recorded as sightings. Malformed records are skipped, not errors.
func (s *Service) DetectSightings(golferStream, cartStream []models.GPSPoint) []models.VisibilityEvent {
	s.indexCartStream(cartStream)

	var events []models.VisibilityEvent
	for _, rec := range golferStream {
		if !usableRecord(rec) {
			continue
		}

		tracker := s.trackerFor(rec.EntityID)
		if tracker.FirstTimestamp == 0 || rec.Timestamp < tracker.FirstTimestamp {
			tracker.FirstTimestamp = rec.Timestamp
		}

		ts, ok := s.nearestCartTime(rec.Timestamp)
		if !ok {
			continue
		}
		// A sighting cannot logically precede the golfer's own start
		if ts < tracker.FirstTimestamp {
			continue
		}

		for _, cart := range s.cartsAt[ts] {
			dist := geo.Distance(rec.Point(), cart.Point())
			if dist > s.cfg.ProximityThresholdMeters {
				continue
			}

			event := models.VisibilityEvent{
				ID:             uuid.New(),
				Timestamp:      ts,
				GolferID:       rec.EntityID,
				CartID:         cart.EntityID,
				DistanceMeters: dist,
				GolferPosition: rec.Point(),
				CartPosition:   cart.Point(),
				Hole:           rec.Hole,
			}
			tracker.Sightings = append(tracker.Sightings, event)
			events = append(events, event)

			// Status never improves without a later-or-equal sighting
			if ts >= tracker.LastSeen {
				tracker.LastSeen = ts
				tracker.LastCartID = cart.EntityID
			}

			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{
					"golfer_id":  rec.EntityID,
					"cart_id":    cart.EntityID,
					"distance_m": dist,
					"timestamp":  ts,
				}).Debug("Sighting recorded")
			}
		}
	}

	return events
}

// Annotate derives the visibility annotation for a golfer at the given
// instant. Pure read; tracker state is never mutated here.
func (s *Service) Annotate(golferID string, at int64) models.VisibilityAnnotation {
	tracker, ok := s.trackers[golferID]
	if !ok || tracker.LastSeen == 0 {
		// Never sighted: red with an undefined elapsed value
		return models.VisibilityAnnotation{
			Status:  string(StatusRed),
			Pulsing: s.cfg.PulsingEnabled,
		}
	}

	elapsedMinutes := float64(at-tracker.LastSeen) / 60
	if elapsedMinutes < 0 {
		elapsedMinutes = 0
	}

	status := s.statusFor(elapsedMinutes)
	return models.VisibilityAnnotation{
		Status:                       string(status),
		TimeSinceLastSightingMinutes: &elapsedMinutes,
		Pulsing:                      status == StatusRed && s.cfg.PulsingEnabled,
	}
}

// Tracker exposes per-golfer state for reporting
func (s *Service) Tracker(golferID string) (*Tracker, bool) {
	t, ok := s.trackers[golferID]
	return t, ok
}

// statusFor maps elapsed minutes to a tier against the ascending
// thresholds
func (s *Service) statusFor(elapsedMinutes float64) Status {
	switch {
	case elapsedMinutes < s.cfg.GreenMinutes:
		return StatusGreen
	case elapsedMinutes < s.cfg.YellowMinutes:
		return StatusYellow
	case elapsedMinutes < s.cfg.OrangeMinutes:
		return StatusOrange
	default:
		return StatusRed
	}
}

func (s *Service) trackerFor(golferID string) *Tracker {
	if t, ok := s.trackers[golferID]; ok {
		return t
	}
	t := &Tracker{GolferID: golferID}
	s.trackers[golferID] = t
	return t
}

// indexCartStream builds the sorted, de-duplicated timestamp index used
// for nearest-timestamp lookups
func (s *Service) indexCartStream(cartStream []models.GPSPoint) {
	s.cartsAt = make(map[int64][]models.GPSPoint)
	for _, rec := range cartStream {
		if !usableRecord(rec) {
			continue
		}
		s.cartsAt[rec.Timestamp] = append(s.cartsAt[rec.Timestamp], rec)
	}

	s.cartTimes = make([]int64, 0, len(s.cartsAt))
	for ts := range s.cartsAt {
		s.cartTimes = append(s.cartTimes, ts)
	}
	sort.Slice(s.cartTimes, func(i, j int) bool { return s.cartTimes[i] < s.cartTimes[j] })
}

// nearestCartTime binary-searches the sorted index for the cart
// timestamp closest to ts within the bounded window
func (s *Service) nearestCartTime(ts int64) (int64, bool) {
	if len(s.cartTimes) == 0 {
		return 0, false
	}

	i := sort.Search(len(s.cartTimes), func(i int) bool { return s.cartTimes[i] >= ts })

	best := int64(0)
	found := false
	if i < len(s.cartTimes) {
		best = s.cartTimes[i]
		found = true
	}
	if i > 0 {
		prev := s.cartTimes[i-1]
		if !found || ts-prev < best-ts {
			best = prev
			found = true
		}
	}

	if !found || absInt64(best-ts) > sightingWindowSeconds {
		return 0, false
	}
	return best, true
}

// usableRecord filters malformed or partial GPS records; live-style
// data is expected to be incomplete at the edges
func usableRecord(rec models.GPSPoint) bool {
	if rec.Timestamp <= 0 {
		return false
	}
	if rec.Lat == 0 && rec.Lon == 0 {
		return false
	}
	return true
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
