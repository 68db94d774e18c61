package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/utils"
)

const dateLayout = "2006-01-02"

// AnalyticsController handles analytics endpoints
type AnalyticsController struct {
	analyticsService *services.AnalyticsService
	logger           *utils.Logger
}

// NewAnalyticsController creates a new analytics controller
func NewAnalyticsController(analyticsService *services.AnalyticsService, logger *utils.Logger) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
		logger:           logger.Named("analytics_controller"),
	}
}

// RegisterRoutes registers the controller's routes with the router group
func (ac *AnalyticsController) RegisterRoutes(router *gin.RouterGroup) {
	analytics := router.Group("/analytics")
	{
		analytics.GET("/summary", ac.Summary)
		analytics.GET("/trends", ac.Trends)
	}
}

// Summary returns aggregate statistics over all predictions
// @Summary Analytics summary
// @Description Aggregate counts, percentages and derived metrics over all predictions
// @Tags analytics
// @Produce json
// @Success 200 {object} services.AnalyticsSummary "Summary"
// @Security BearerAuth
// @Router /analytics/summary [get]
func (ac *AnalyticsController) Summary(c *gin.Context) {
	summary, err := ac.analyticsService.Summary()
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Trends returns per-day prediction aggregates. The range comes either from
// start_date and end_date (YYYY-MM-DD) or from days counting back from
// today; days defaults to 7 when neither is given.
// @Summary Analytics trends
// @Description Per-day prediction aggregates over a date range
// @Tags analytics
// @Produce json
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Param days query int false "Last N days, used when no explicit range is given"
// @Success 200 {object} services.AnalyticsTrends "Trends"
// @Failure 400 {object} utils.ErrorResponse "Invalid range"
// @Security BearerAuth
// @Router /analytics/trends [get]
func (ac *AnalyticsController) Trends(c *gin.Context) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")

	if startStr != "" || endStr != "" {
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
			return
		}
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
			return
		}

		trends, err := ac.analyticsService.Trends(start, end)
		if err != nil {
			utils.HandleError(c, err, ac.logger)
			return
		}
		c.JSON(http.StatusOK, trends)
		return
	}

	days := 7
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days parameter"})
			return
		}
		days = parsed
	}

	trends, err := ac.analyticsService.TrendsLastDays(days)
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, trends)
}
