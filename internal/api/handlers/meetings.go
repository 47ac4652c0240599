package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/bevcart-sim/internal/sim"
	"github.com/stitts-dev/bevcart-sim/pkg/config"
	"github.com/stitts-dev/bevcart-sim/pkg/utils"
)

type MeetingsHandler struct {
	cfg    *config.Config
	logger *logrus.Logger
}

func NewMeetingsHandler(cfg *config.Config, logger *logrus.Logger) *MeetingsHandler {
	return &MeetingsHandler{cfg: cfg, logger: logger}
}

type meetingRequest struct {
	LengthMeters float64 `json:"length_meters" binding:"required,gt=0"`
	SpeedAMPS    float64 `json:"speed_a_mps" binding:"gte=0"`
	SpeedBMPS    float64 `json:"speed_b_mps" binding:"gte=0"`

	StepSeconds float64 `json:"step_seconds"`
	SnapMeters  float64 `json:"snap_meters"`
	MaxSteps    int     `json:"max_steps"`
}

// SimulateMeeting runs the time-stepped simulator for two agents closing
// from opposite path ends
func (h *MeetingsHandler) SimulateMeeting(c *gin.Context) {
	var req meetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	ms := sim.NewMeetingSimulator(req.LengthMeters, req.SpeedAMPS, req.SpeedBMPS, h.logger)
	if h.cfg != nil {
		if h.cfg.SimStepSeconds > 0 {
			ms.StepSeconds = h.cfg.SimStepSeconds
		}
		if h.cfg.SimSnapMeters > 0 {
			ms.SnapMeters = h.cfg.SimSnapMeters
		}
		if h.cfg.SimMaxSteps > 0 {
			ms.MaxSteps = h.cfg.SimMaxSteps
		}
	}
	if req.StepSeconds > 0 {
		ms.StepSeconds = req.StepSeconds
	}
	if req.SnapMeters > 0 {
		ms.SnapMeters = req.SnapMeters
	}
	if req.MaxSteps > 0 {
		ms.MaxSteps = req.MaxSteps
	}

	meeting, err := ms.Meet()
	if err != nil {
		if errors.Is(err, sim.ErrNoMeetingFound) {
			// Step budget exhaustion means the inputs cannot close, a
			// caller configuration problem
			utils.SendValidationError(c, "Agents never meet within the step budget", err.Error())
			return
		}
		utils.SendInternalError(c, err.Error())
		return
	}

	utils.SendSuccess(c, meeting)
}
