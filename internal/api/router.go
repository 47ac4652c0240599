package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/bevcart-sim/internal/api/handlers"
	"github.com/stitts-dev/bevcart-sim/pkg/config"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, cfg *config.Config, logger *logrus.Logger) {
	crossingsHandler := handlers.NewCrossingsHandler(logger)
	salesHandler := handlers.NewSalesHandler(logger)
	visibilityHandler := handlers.NewVisibilityHandler(logger)
	meetingsHandler := handlers.NewMeetingsHandler(cfg, logger)

	group.POST("/crossings", crossingsHandler.SolveCrossings)
	group.POST("/sales", salesHandler.TriggerSales)
	group.POST("/visibility/annotate", visibilityHandler.AnnotateVisibility)
	group.POST("/meetings", meetingsHandler.SimulateMeeting)
}
