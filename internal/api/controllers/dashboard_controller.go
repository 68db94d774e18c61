package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/utils"
)

// DashboardController handles dashboard endpoints
type DashboardController struct {
	dashboardService *services.DashboardService
	logger           *utils.Logger
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(dashboardService *services.DashboardService, logger *utils.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger.Named("dashboard_controller"),
	}
}

// RegisterRoutes registers the controller's routes with the router group
func (dc *DashboardController) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/stats", dc.Stats)
	}
}

// Stats returns the fleet-wide dashboard snapshot
// @Summary Dashboard statistics
// @Description Fleet-wide plant, panel and alert statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.DashboardStats "Statistics"
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (dc *DashboardController) Stats(c *gin.Context) {
	stats, err := dc.dashboardService.Stats()
	if err != nil {
		utils.HandleError(c, err, dc.logger)
		return
	}

	c.JSON(http.StatusOK, stats)
}
