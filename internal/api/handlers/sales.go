package handlers

import (
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/bevcart-sim/internal/course"
	"github.com/stitts-dev/bevcart-sim/internal/models"
	"github.com/stitts-dev/bevcart-sim/internal/sales"
	"github.com/stitts-dev/bevcart-sim/pkg/utils"
)

type SalesHandler struct {
	logger *logrus.Logger
}

func NewSalesHandler(logger *logrus.Logger) *SalesHandler {
	return &SalesHandler{logger: logger}
}

type salesRequest struct {
	Crossings   []models.GroupCrossings `json:"crossings"`
	Probability float64                 `json:"probability" binding:"required,min=0,max=1"`
	Price       float64                 `json:"price" binding:"required,min=0"`
	Seed        int64                   `json:"seed"`

	// Legacy fallback inputs, used only when no crossing data is given
	Groups           []teeGroupRequest `json:"groups"`
	CartServiceStart string            `json:"cart_service_start"`
	HoleCount        int               `json:"hole_count"`
	RoundSeconds     float64           `json:"round_seconds"`
}

// TriggerSales runs Bernoulli purchase trials over crossing events, or
// over the legacy synthesized pseudo-crossings when none are supplied
func (h *SalesHandler) TriggerSales(c *gin.Context) {
	var req salesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	trigger := sales.NewTrigger(req.Probability, req.Price, rand.New(rand.NewSource(seed)), h.logger)

	if len(req.Crossings) > 0 {
		utils.SendSuccess(c, trigger.FromCrossings(req.Crossings))
		return
	}

	if len(req.Groups) == 0 {
		utils.SendValidationError(c, "Either crossings or groups must be supplied", "")
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
		groups = append(groups, models.TeeGroup{GroupID: g.GroupID, TeeTime: teeTime, GolferCount: g.GolferCount})
	}

	utils.SendSuccess(c, trigger.Legacy(groups, cartStart, req.HoleCount, req.RoundSeconds))
}
