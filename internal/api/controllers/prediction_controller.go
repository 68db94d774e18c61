package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/solarwatch/backend/internal/ml"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/utils"
)

// PredictRequest carries sensor measurements for a standalone analysis,
// without storing a telemetry reading
type PredictRequest struct {
	Voltage     *float64 `json:"voltage" binding:"required,gte=0,lte=100"`
	Current     *float64 `json:"current" binding:"required,gte=0,lte=50"`
	Temperature *float64 `json:"temperature" binding:"required,gte=-50,lte=100"`
	Irradiance  *float64 `json:"irradiance" binding:"required,gte=0,lte=2000"`
	Power       *float64 `json:"power" binding:"required,gte=0,lte=5000"`
}

// PredictionController handles fault prediction endpoints
type PredictionController struct {
	predictionService *services.PredictionService
	severityService   *services.SeverityService
	logger            *utils.Logger
}

// NewPredictionController creates a new prediction controller
func NewPredictionController(predictionService *services.PredictionService, severityService *services.SeverityService, logger *utils.Logger) *PredictionController {
	return &PredictionController{
		predictionService: predictionService,
		severityService:   severityService,
		logger:            logger.Named("prediction_controller"),
	}
}

// RegisterRoutes registers the controller's routes with the router group
func (pc *PredictionController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/predict", pc.Predict)

	predictions := router.Group("/predictions")
	{
		predictions.GET("", pc.List)
		predictions.GET("/recent", pc.ListRecent)
		predictions.GET("/statistics", pc.Statistics)
		predictions.GET("/severity-levels", pc.SeverityLevels)
		predictions.GET("/fault/:faultType", pc.ListByFaultType)
		predictions.GET("/severity/:severity", pc.ListBySeverity)
		predictions.GET("/:id", pc.GetByID)
	}
}

// Predict runs the analysis pipeline on a raw sample
// @Summary Predict fault from sensor values
// @Description Classify a sensor sample and store the prediction
// @Tags predictions
// @Accept json
// @Produce json
// @Param sample body PredictRequest true "Sensor sample"
// @Success 200 {object} services.AnalysisResult "Analysis outcome"
// @Failure 400 {object} utils.ErrorResponse "Invalid measurements"
// @Failure 503 {object} utils.ErrorResponse "Classifier unavailable"
// @Security BearerAuth
// @Router /predict [post]
func (pc *PredictionController) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationErrors(c, err)
		return
	}

	result, err := pc.predictionService.Analyze(c.Request.Context(), &ml.Sample{
		Voltage:     *req.Voltage,
		Current:     *req.Current,
		Temperature: *req.Temperature,
		Irradiance:  *req.Irradiance,
		Power:       *req.Power,
	})
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, result)
}

// List returns a page of prediction history, newest first
// @Summary List predictions
// @Tags predictions
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Predictions"
// @Security BearerAuth
// @Router /predictions [get]
func (pc *PredictionController) List(c *gin.Context) {
	pagination := utils.GetPaginationFromContext(c)

	predictions, total, err := pc.predictionService.List(pagination.Offset(), pagination.Limit)
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(predictions, pagination, int(total)))
}

// GetByID returns one prediction
// @Summary Get prediction by ID
// @Tags predictions
// @Produce json
// @Param id path int true "Prediction ID"
// @Success 200 {object} models.Prediction "Prediction"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /predictions/{id} [get]
func (pc *PredictionController) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prediction ID"})
		return
	}

	prediction, err := pc.predictionService.GetByID(uint(id))
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, prediction)
}

// ListByFaultType returns predictions with the given fault label
// @Summary List predictions by fault type
// @Tags predictions
// @Produce json
// @Param faultType path string true "Fault type"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Predictions"
// @Security BearerAuth
// @Router /predictions/fault/{faultType} [get]
func (pc *PredictionController) ListByFaultType(c *gin.Context) {
	pagination := utils.GetPaginationFromContext(c)

	predictions, total, err := pc.predictionService.ListByFaultType(c.Param("faultType"), pagination.Offset(), pagination.Limit)
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(predictions, pagination, int(total)))
}

// ListBySeverity returns predictions with the given severity
// @Summary List predictions by severity
// @Tags predictions
// @Produce json
// @Param severity path string true "Severity level"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Predictions"
// @Security BearerAuth
// @Router /predictions/severity/{severity} [get]
func (pc *PredictionController) ListBySeverity(c *gin.Context) {
	pagination := utils.GetPaginationFromContext(c)

	predictions, total, err := pc.predictionService.ListBySeverity(c.Param("severity"), pagination.Offset(), pagination.Limit)
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(predictions, pagination, int(total)))
}

// ListRecent returns predictions from the last 24 hours
// @Summary List recent predictions
// @Tags predictions
// @Produce json
// @Success 200 {array} models.Prediction "Predictions"
// @Security BearerAuth
// @Router /predictions/recent [get]
func (pc *PredictionController) ListRecent(c *gin.Context) {
	predictions, err := pc.predictionService.ListRecent()
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, predictions)
}

// Statistics returns prediction counts grouped by fault label
// @Summary Fault type statistics
// @Tags predictions
// @Produce json
// @Success 200 {array} repository.FaultCount "Counts per fault type"
// @Security BearerAuth
// @Router /predictions/statistics [get]
func (pc *PredictionController) Statistics(c *gin.Context) {
	stats, err := pc.predictionService.FaultTypeStatistics()
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// SeverityLevels returns the severity scale in escalation order
// @Summary List severity levels
// @Tags predictions
// @Produce json
// @Success 200 {object} map[string][]string "Severity levels"
// @Security BearerAuth
// @Router /predictions/severity-levels [get]
func (pc *PredictionController) SeverityLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"severity_levels": pc.severityService.SeverityLevels()})
}
