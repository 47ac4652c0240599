package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/stitts-dev/bevcart-sim/internal/geo"
)

// TeeGroup is a group of golfers teeing off together. Produced by an
// external scheduler; consumed read-only.
type TeeGroup struct {
	GroupID     int       `json:"group_id"`
	TeeTime     time.Time `json:"tee_time"`
	GolferCount int       `json:"golfer_count"`
}

// CrossingEvent is a time and place where the cart and a golfer group
// occupy the same position on the cart path
type CrossingEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	TimeSeconds float64   `json:"time_seconds"` // seconds since cart service start
	NodeIndex   int       `json:"node_index"`
	Hole        *int      `json:"hole,omitempty"`
	WrapCount   int       `json:"wrap_count"`
}

// GroupCrossings holds the time-ordered crossings for one tee group.
// Groups that never meet the cart are still present with Crossed false.
type GroupCrossings struct {
	GroupID   int             `json:"group_id"`
	TeeTime   time.Time       `json:"tee_time"`
	Crossed   bool            `json:"crossed"`
	Crossings []CrossingEvent `json:"crossings"`
}

// GPSPoint is one record in a timestamped position stream
type GPSPoint struct {
	EntityID  string  `json:"entity_id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timestamp int64   `json:"timestamp"` // unix seconds
	Hole      *int    `json:"hole,omitempty"`
}

// Point returns the record's coordinate
func (p GPSPoint) Point() geo.Point {
	return geo.Point{Lat: p.Lat, Lon: p.Lon}
}

// VisibilityEvent records one sighting of the cart by a tracked golfer.
// Append-only.
type VisibilityEvent struct {
	ID             uuid.UUID `json:"id"`
	Timestamp      int64     `json:"timestamp"`
	GolferID       string    `json:"golfer_id"`
	CartID         string    `json:"cart_id"`
	DistanceMeters float64   `json:"distance_meters"`
	GolferPosition geo.Point `json:"golfer_position"`
	CartPosition   geo.Point `json:"cart_position"`
	Hole           *int      `json:"hole,omitempty"`
}

// VisibilityAnnotation is merged into exported GPS records
type VisibilityAnnotation struct {
	Status                       string   `json:"visibility_status"`
	TimeSinceLastSightingMinutes *float64 `json:"time_since_last_sighting_minutes,omitempty"`
	Pulsing                      bool     `json:"pulsing"`
}

// SaleEvent is a probabilistic purchase triggered by a crossing.
// Immutable once created.
type SaleEvent struct {
	GroupID          int     `json:"group_id"`
	HoleNumber       int     `json:"hole_number"`
	TimestampSeconds float64 `json:"timestamp_seconds"`
	Price            float64 `json:"price"`
}
