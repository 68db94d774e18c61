package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// SensorDataRequest is one telemetry submission. Measurements outside the
// plausible physical ranges are rejected before any processing happens.
type SensorDataRequest struct {
	PanelID     string     `json:"panel_id" binding:"required"`
	Voltage     *float64   `json:"voltage" binding:"required,gte=0,lte=100"`
	Current     *float64   `json:"current" binding:"required,gte=0,lte=50"`
	Temperature *float64   `json:"temperature" binding:"required,gte=-50,lte=100"`
	Irradiance  *float64   `json:"irradiance" binding:"required,gte=0,lte=2000"`
	Power       *float64   `json:"power" binding:"required,gte=0,lte=5000"`
	Timestamp   *time.Time `json:"timestamp"`
}

// SensorController handles telemetry ingestion endpoints
type SensorController struct {
	sensorDataService *services.SensorDataService
	logger            *utils.Logger
}

// NewSensorController creates a new sensor controller
func NewSensorController(sensorDataService *services.SensorDataService, logger *utils.Logger) *SensorController {
	return &SensorController{
		sensorDataService: sensorDataService,
		logger:            logger.Named("sensor_controller"),
	}
}

// RegisterRoutes registers the controller's routes with the router group
func (sc *SensorController) RegisterRoutes(router *gin.RouterGroup) {
	sensor := router.Group("/sensor-data")
	{
		sensor.POST("", sc.Ingest)
		sensor.GET("", sc.List)
		sensor.GET("/panel/:panelId", sc.ListByPanel)
		sensor.GET("/panel/:panelId/latest", sc.LatestByPanel)
	}
}

// Ingest processes one telemetry submission: the reading is stored, the
// fault classifier is consulted and an alert is raised if a fault is found
// @Summary Ingest sensor data
// @Description Store a telemetry reading, classify it and raise an alert on fault
// @Tags sensor-data
// @Accept json
// @Produce json
// @Param sensor_data body SensorDataRequest true "Sensor reading"
// @Success 200 {object} services.AnalysisResult "Analysis outcome"
// @Failure 400 {object} utils.ErrorResponse "Invalid measurements"
// @Failure 503 {object} utils.ErrorResponse "Classifier unavailable"
// @Security BearerAuth
// @Router /sensor-data [post]
func (sc *SensorController) Ingest(c *gin.Context) {
	var req SensorDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationErrors(c, err)
		return
	}

	result, err := sc.sensorDataService.Process(c.Request.Context(), &services.SensorDataInput{
		PanelID:     req.PanelID,
		Voltage:     *req.Voltage,
		Current:     *req.Current,
		Temperature: *req.Temperature,
		Irradiance:  *req.Irradiance,
		Power:       *req.Power,
		Timestamp:   req.Timestamp,
	})
	if err != nil {
		sc.logger.Warn("Sensor data processing failed",
			zap.String("panel_id", req.PanelID),
			zap.Error(err),
		)
		utils.HandleError(c, err, sc.logger)
		return
	}

	c.JSON(http.StatusOK, result)
}

// List returns a page of stored readings, newest first
// @Summary List sensor readings
// @Tags sensor-data
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Readings"
// @Security BearerAuth
// @Router /sensor-data [get]
func (sc *SensorController) List(c *gin.Context) {
	pagination := utils.GetPaginationFromContext(c)

	readings, total, err := sc.sensorDataService.List(pagination.Offset(), pagination.Limit)
	if err != nil {
		utils.HandleError(c, err, sc.logger)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(readings, pagination, int(total)))
}

// ListByPanel returns readings for one panel, newest first
// @Summary List sensor readings for a panel
// @Tags sensor-data
// @Produce json
// @Param panelId path string true "Panel identifier"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Readings"
// @Security BearerAuth
// @Router /sensor-data/panel/{panelId} [get]
func (sc *SensorController) ListByPanel(c *gin.Context) {
	panelID := c.Param("panelId")
	pagination := utils.GetPaginationFromContext(c)

	readings, total, err := sc.sensorDataService.ListByPanel(panelID, pagination.Offset(), pagination.Limit)
	if err != nil {
		utils.HandleError(c, err, sc.logger)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(readings, pagination, int(total)))
}

// LatestByPanel returns the most recent reading for one panel
// @Summary Latest sensor reading for a panel
// @Tags sensor-data
// @Produce json
// @Param panelId path string true "Panel identifier"
// @Success 200 {object} models.SensorReading "Reading"
// @Failure 404 {object} utils.ErrorResponse "No readings for panel"
// @Security BearerAuth
// @Router /sensor-data/panel/{panelId}/latest [get]
func (sc *SensorController) LatestByPanel(c *gin.Context) {
	panelID := c.Param("panelId")

	reading, err := sc.sensorDataService.LatestByPanel(panelID)
	if err != nil {
		utils.HandleError(c, err, sc.logger)
		return
	}

	c.JSON(http.StatusOK, reading)
}
