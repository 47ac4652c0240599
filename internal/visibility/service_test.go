package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/bevcart-sim/internal/models"
)

func golferAt(ts int64, lat, lon float64) models.GPSPoint {
	return models.GPSPoint{EntityID: "golfer-1", Lat: lat, Lon: lon, Timestamp: ts}
}

func cartAt(ts int64, lat, lon float64) models.GPSPoint {
	return models.GPSPoint{EntityID: "cart-1", Lat: lat, Lon: lon, Timestamp: ts}
}

func TestSightingAtIdenticalCoordinates(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)

	events := svc.DetectSightings(
		[]models.GPSPoint{golferAt(100, 36.56, -121.94)},
		[]models.GPSPoint{cartAt(100, 36.56, -121.94)},
	)

	require.Len(t, events, 1)
	assert.Equal(t, "golfer-1", events[0].GolferID)
	assert.Equal(t, "cart-1", events[0].CartID)
	assert.Equal(t, 0.0, events[0].DistanceMeters)

	// Freshly sighted: green with zero elapsed
	ann := svc.Annotate("golfer-1", 100)
	assert.Equal(t, string(StatusGreen), ann.Status)
	require.NotNil(t, ann.TimeSinceLastSightingMinutes)
	assert.Equal(t, 0.0, *ann.TimeSinceLastSightingMinutes)
	assert.False(t, ann.Pulsing)
}

func TestStatusDecaysThroughTiers(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)
	svc.DetectSightings(
		[]models.GPSPoint{golferAt(100, 36.56, -121.94)},
		[]models.GPSPoint{cartAt(100, 36.56, -121.94)},
	)

	tests := []struct {
		elapsedMinutes int64
		want           Status
	}{
		{0, StatusGreen},
		{19, StatusGreen},
		{20, StatusYellow},
		{25, StatusYellow}, // 25 minutes after the t=100 sighting
		{39, StatusYellow},
		{40, StatusOrange},
		{59, StatusOrange},
		{60, StatusRed},
		{600, StatusRed},
	}

	prevRank := -1
	rank := map[Status]int{StatusGreen: 0, StatusYellow: 1, StatusOrange: 2, StatusRed: 3}
	for _, tt := range tests {
		ann := svc.Annotate("golfer-1", 100+tt.elapsedMinutes*60)
		assert.Equal(t, string(tt.want), ann.Status, "at %d minutes", tt.elapsedMinutes)
		// Monotonic non-improving: tiers never skip backwards
		assert.GreaterOrEqual(t, rank[Status(ann.Status)], prevRank)
		prevRank = rank[Status(ann.Status)]
	}
}

func TestNeverSightedIsRedWithUndefinedElapsed(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)

	ann := svc.Annotate("unknown-golfer", 5000)
	assert.Equal(t, string(StatusRed), ann.Status)
	assert.Nil(t, ann.TimeSinceLastSightingMinutes)
	assert.True(t, ann.Pulsing)
}

func TestPulsingDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PulsingEnabled = false
	svc := NewService(cfg, nil)

	ann := svc.Annotate("unknown-golfer", 5000)
	assert.Equal(t, string(StatusRed), ann.Status)
	assert.False(t, ann.Pulsing)
}

func TestSightingBeforeGolferStartIsRejected(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)

	// The cart passed the first tee box before this golfer's stream
	// begins; the near-in-time cart fix at t=900 precedes the golfer's
	// first record at t=1000.
	events := svc.DetectSightings(
		[]models.GPSPoint{golferAt(1000, 36.56, -121.94)},
		[]models.GPSPoint{cartAt(900, 36.56, -121.94)},
	)

	assert.Empty(t, events)
	ann := svc.Annotate("golfer-1", 1000)
	assert.Equal(t, string(StatusRed), ann.Status)
}

func TestCartOutsideWindowIgnored(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)

	events := svc.DetectSightings(
		[]models.GPSPoint{golferAt(1000, 36.56, -121.94)},
		[]models.GPSPoint{cartAt(1000+sightingWindowSeconds+1, 36.56, -121.94)},
	)
	assert.Empty(t, events)
}

func TestCartBeyondProximityThresholdIgnored(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)

	// Roughly 220 m north of the golfer, past the 50 m threshold
	events := svc.DetectSightings(
		[]models.GPSPoint{golferAt(1000, 36.5600, -121.94)},
		[]models.GPSPoint{cartAt(1000, 36.5620, -121.94)},
	)
	assert.Empty(t, events)
}

func TestMalformedRecordsSkipped(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)

	events := svc.DetectSightings(
		[]models.GPSPoint{
			{EntityID: "golfer-1", Timestamp: 0, Lat: 36.56, Lon: -121.94}, // no timestamp
			{EntityID: "golfer-1", Timestamp: 100},                         // zero coordinates
			golferAt(200, 36.56, -121.94),
		},
		[]models.GPSPoint{cartAt(200, 36.56, -121.94)},
	)

	require.Len(t, events, 1)
	assert.Equal(t, int64(200), events[0].Timestamp)
}

func TestEarlierSightingDoesNotRegressState(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)

	// Golfer stream arrives out of order; the later sighting must win.
	events := svc.DetectSightings(
		[]models.GPSPoint{
			golferAt(2000, 36.56, -121.94),
			golferAt(500, 36.56, -121.94),
		},
		[]models.GPSPoint{
			cartAt(2000, 36.56, -121.94),
			cartAt(500, 36.56, -121.94),
		},
	)
	require.Len(t, events, 2)

	tracker, ok := svc.Tracker("golfer-1")
	require.True(t, ok)
	assert.Equal(t, int64(2000), tracker.LastSeen)
}

func TestEndToEndYellowAfter25Minutes(t *testing.T) {
	svc := NewService(DefaultConfig(), nil)

	svc.DetectSightings(
		[]models.GPSPoint{golferAt(100, 36.56, -121.94)},
		[]models.GPSPoint{cartAt(100, 36.56, -121.94)},
	)

	ann := svc.Annotate("golfer-1", 1600)
	assert.Equal(t, string(StatusYellow), ann.Status)
	require.NotNil(t, ann.TimeSinceLastSightingMinutes)
	assert.InDelta(t, 25.0, *ann.TimeSinceLastSightingMinutes, 1e-9)
}
