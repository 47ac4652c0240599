package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/bevcart-sim/internal/course"
	"github.com/stitts-dev/bevcart-sim/internal/models"
	"github.com/stitts-dev/bevcart-sim/internal/sim"
	"github.com/stitts-dev/bevcart-sim/pkg/utils"
)

type CrossingsHandler struct {
	logger *logrus.Logger
}

func NewCrossingsHandler(logger *logrus.Logger) *CrossingsHandler {
	return &CrossingsHandler{logger: logger}
}

type teeGroupRequest struct {
	GroupID     int    `json:"group_id"`
	TeeTime     string `json:"tee_time" binding:"required"`
	GolferCount int    `json:"golfer_count"`
}

type crossingsRequest struct {
	CourseName       string          `json:"course_name"`
	Path             json.RawMessage `json:"path" binding:"required"`
	HolePolygons     json.RawMessage `json:"hole_polygons"`
	Model            string          `json:"model"`
	RoundMinutes     float64         `json:"round_minutes"`
	LapMinutes       float64         `json:"lap_minutes"`
	GolferSpeedMPS   float64         `json:"golfer_speed_mps"`
	CartSpeedMPS     float64         `json:"cart_speed_mps"`
	CartServiceStart string          `json:"cart_service_start" binding:"required"`
	Groups           []teeGroupRequest `json:"groups" binding:"required,min=1"`
}

type crossingsResponse struct {
	Course     string                  `json:"course"`
	Model      string                  `json:"model"`
	PathLength float64                 `json:"path_length_meters"`
	Groups     []models.GroupCrossings `json:"groups"`
}

// SolveCrossings loads the submitted course, derives speeds, and runs
// the requested crossing model
func (h *CrossingsHandler) SolveCrossings(c *gin.Context) {
	var req crossingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	model, err := sim.ParsePathModel(req.Model)
	if err != nil {
		utils.SendValidationError(c, "Invalid path model", err.Error())
		return
	}

	crs, err := buildCourse(req.CourseName, req.Path, req.HolePolygons)
	if err != nil {
		utils.SendValidationError(c, "Invalid course input", err.Error())
		return
	}

	cartStart, err := course.ParseClock(req.CartServiceStart)
	if err != nil {
		utils.SendValidationError(c, "Invalid cart service start", err.Error())
		return
	}

	groups := make([]models.TeeGroup, 0, len(req.Groups))
	for _, g := range req.Groups {
		teeTime, err := course.ParseClock(g.TeeTime)
		if err != nil {
			utils.SendValidationError(c, "Invalid tee time", err.Error())
			return
		}
		groups = append(groups, models.TeeGroup{
			GroupID:     g.GroupID,
			TeeTime:     teeTime,
			GolferCount: g.GolferCount,
		})
	}

	var results []models.GroupCrossings
	switch model {
	case sim.PathModelMinuteIndexed:
		solver := sim.NewMinuteIndexedSolver(crs, cartStart, h.logger)
		results, err = solver.Solve(groups)
	default:
		vg, vb := req.GolferSpeedMPS, req.CartSpeedMPS
		if vg == 0 || vb == 0 {
			vg, vb, err = course.SpeedsFromTiming(crs.Length, req.RoundMinutes, req.LapMinutes)
			if err != nil {
				utils.SendValidationError(c, "Invalid timing configuration", err.Error())
				return
			}
		}
		solver := sim.NewCrossingSolver(crs, vg, vb, cartStart, h.logger)
		results, err = solver.Solve(groups)
	}
	if err != nil {
		if errors.Is(err, sim.ErrInvalidSpeed) {
			utils.SendValidationError(c, "Invalid solver speeds", err.Error())
			return
		}
		utils.SendInternalError(c, err.Error())
		return
	}

	utils.SendSuccess(c, crossingsResponse{
		Course:     crs.Name,
		Model:      model.String(),
		PathLength: crs.Length,
		Groups:     results,
	})
}

// buildCourse assembles a Course from raw GeoJSON payloads
func buildCourse(name string, pathData, holeData json.RawMessage) (*course.Course, error) {
	nodes, err := course.LoadPath(pathData)
	if err != nil {
		return nil, err
	}

	if len(holeData) > 0 {
		holes, err := course.LoadHolePolygons(holeData)
		if err != nil {
			return nil, err
		}
		return course.New(name, nodes, holes)
	}
	return course.New(name, nodes, nil)
}
