package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/bevcart-sim/internal/models"
	"github.com/stitts-dev/bevcart-sim/internal/visibility"
	"github.com/stitts-dev/bevcart-sim/pkg/utils"
)

type VisibilityHandler struct {
	logger *logrus.Logger
}

func NewVisibilityHandler(logger *logrus.Logger) *VisibilityHandler {
	return &VisibilityHandler{logger: logger}
}

type visibilityRequest struct {
	GolferStream []models.GPSPoint `json:"golfer_stream" binding:"required"`
	CartStream   []models.GPSPoint `json:"cart_stream" binding:"required"`

	ProximityThresholdMeters float64 `json:"proximity_threshold_meters"`
	GreenMinutes             float64 `json:"green_minutes"`
	YellowMinutes            float64 `json:"yellow_minutes"`
	OrangeMinutes            float64 `json:"orange_minutes"`
	PulsingEnabled           *bool   `json:"pulsing_enabled"`

	// AnnotateAt defaults to each golfer's last record timestamp
	AnnotateAt int64 `json:"annotate_at"`
}

type visibilityResponse struct {
	Events      []models.VisibilityEvent               `json:"events"`
	Annotations map[string]models.VisibilityAnnotation `json:"annotations"`
}

// AnnotateVisibility runs one sighting-detection pass over the two
// streams and returns per-golfer annotations
func (h *VisibilityHandler) AnnotateVisibility(c *gin.Context) {
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	cfg := visibility.DefaultConfig()
	if req.ProximityThresholdMeters > 0 {
		cfg.ProximityThresholdMeters = req.ProximityThresholdMeters
	}
	if req.GreenMinutes > 0 {
		cfg.GreenMinutes = req.GreenMinutes
	}
	if req.YellowMinutes > 0 {
		cfg.YellowMinutes = req.YellowMinutes
	}
	if req.OrangeMinutes > 0 {
		cfg.OrangeMinutes = req.OrangeMinutes
	}
	if req.PulsingEnabled != nil {
		cfg.PulsingEnabled = *req.PulsingEnabled
	}

	// One service instance per request; trackers are never shared
	// across runs
	svc := visibility.NewService(cfg, h.logger)
	events := svc.DetectSightings(req.GolferStream, req.CartStream)

	lastByGolfer := make(map[string]int64)
	for _, rec := range req.GolferStream {
		if rec.Timestamp > lastByGolfer[rec.EntityID] {
			lastByGolfer[rec.EntityID] = rec.Timestamp
		}
	}

	annotations := make(map[string]models.VisibilityAnnotation, len(lastByGolfer))
	for golferID, last := range lastByGolfer {
		at := req.AnnotateAt
		if at == 0 {
			at = last
		}
		annotations[golferID] = svc.Annotate(golferID, at)
	}

	utils.SendSuccess(c, visibilityResponse{
		Events:      events,
		Annotations: annotations,
	})
}
