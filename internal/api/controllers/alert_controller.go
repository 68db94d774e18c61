package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/utils"
)

// UpdateAlertStatusRequest carries a lifecycle transition for an alert
type UpdateAlertStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=OPEN IN_PROGRESS RESOLVED"`
}

// AssignTechnicianRequest carries a technician assignment
type AssignTechnicianRequest struct {
	TechnicianID uint `json:"technician_id" binding:"required"`
}

// TechnicianNotesRequest carries technician notes for an alert
type TechnicianNotesRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// AlertController handles maintenance alert endpoints
type AlertController struct {
	alertService *services.AlertService
	logger       *utils.Logger
}

// NewAlertController creates a new alert controller
func NewAlertController(alertService *services.AlertService, logger *utils.Logger) *AlertController {
	return &AlertController{
		alertService: alertService,
		logger:       logger.Named("alert_controller"),
	}
}

// RegisterRoutes registers the controller's routes with the router group
func (ac *AlertController) RegisterRoutes(router *gin.RouterGroup) {
	alerts := router.Group("/alerts")
	{
		alerts.GET("", ac.ListRecent)
		alerts.GET("/unacknowledged", ac.ListUnacknowledged)
		alerts.GET("/counts", ac.Counts)
		alerts.GET("/status/:status", ac.ListByStatus)
		alerts.GET("/panel/:panelId", ac.ListByPanel)
		alerts.GET("/severity/:severity", ac.ListBySeverity)
		alerts.GET("/:id", ac.GetByID)
		alerts.PUT("/:id/acknowledge", ac.Acknowledge)
		alerts.PUT("/:id/assign", ac.AssignTechnician)
		alerts.PUT("/:id/status", ac.UpdateStatus)
		alerts.PUT("/:id/notes", ac.AddNotes)
	}
}

// ListRecent returns the 50 most recent alerts
// @Summary List recent alerts
// @Tags alerts
// @Produce json
// @Success 200 {array} models.Alert "Alerts"
// @Security BearerAuth
// @Router /alerts [get]
func (ac *AlertController) ListRecent(c *gin.Context) {
	alerts, err := ac.alertService.ListRecent()
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// GetByID returns one alert
// @Summary Get alert by ID
// @Tags alerts
// @Produce json
// @Param id path int true "Alert ID"
// @Success 200 {object} models.Alert "Alert"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /alerts/{id} [get]
func (ac *AlertController) GetByID(c *gin.Context) {
	id, ok := ac.parseID(c)
	if !ok {
		return
	}

	alert, err := ac.alertService.GetByID(id)
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, alert)
}

// ListByStatus returns alerts in the given lifecycle state
// @Summary List alerts by status
// @Tags alerts
// @Produce json
// @Param status path string true "Alert status" Enums(OPEN, IN_PROGRESS, RESOLVED)
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Alerts"
// @Failure 400 {object} utils.ErrorResponse "Invalid status"
// @Security BearerAuth
// @Router /alerts/status/{status} [get]
func (ac *AlertController) ListByStatus(c *gin.Context) {
	pagination := utils.GetPaginationFromContext(c)

	alerts, total, err := ac.alertService.ListByStatus(c.Param("status"), pagination.Offset(), pagination.Limit)
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(alerts, pagination, int(total)))
}

// ListByPanel returns alerts raised for one panel
// @Summary List alerts for a panel
// @Tags alerts
// @Produce json
// @Param panelId path string true "Panel identifier"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Alerts"
// @Security BearerAuth
// @Router /alerts/panel/{panelId} [get]
func (ac *AlertController) ListByPanel(c *gin.Context) {
	pagination := utils.GetPaginationFromContext(c)

	alerts, total, err := ac.alertService.ListByPanel(c.Param("panelId"), pagination.Offset(), pagination.Limit)
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(alerts, pagination, int(total)))
}

// ListBySeverity returns alerts with the given severity
// @Summary List alerts by severity
// @Tags alerts
// @Produce json
// @Param severity path string true "Severity level"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Alerts"
// @Security BearerAuth
// @Router /alerts/severity/{severity} [get]
func (ac *AlertController) ListBySeverity(c *gin.Context) {
	pagination := utils.GetPaginationFromContext(c)

	alerts, total, err := ac.alertService.ListBySeverity(c.Param("severity"), pagination.Offset(), pagination.Limit)
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(alerts, pagination, int(total)))
}

// ListUnacknowledged returns all alerts awaiting acknowledgement
// @Summary List unacknowledged alerts
// @Tags alerts
// @Produce json
// @Success 200 {array} models.Alert "Alerts"
// @Security BearerAuth
// @Router /alerts/unacknowledged [get]
func (ac *AlertController) ListUnacknowledged(c *gin.Context) {
	alerts, err := ac.alertService.ListUnacknowledged()
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// Counts returns unacknowledged and critical alert counts
// @Summary Alert counts
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]int64 "Counts"
// @Security BearerAuth
// @Router /alerts/counts [get]
func (ac *AlertController) Counts(c *gin.Context) {
	unacknowledged, err := ac.alertService.UnacknowledgedCount()
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	critical, err := ac.alertService.CriticalCount()
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unacknowledged": unacknowledged,
		"critical":       critical,
	})
}

// Acknowledge marks an alert as seen by the authenticated user
// @Summary Acknowledge alert
// @Tags alerts
// @Produce json
// @Param id path int true "Alert ID"
// @Success 200 {object} models.Alert "Updated alert"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /alerts/{id}/acknowledge [put]
func (ac *AlertController) Acknowledge(c *gin.Context) {
	id, ok := ac.parseID(c)
	if !ok {
		return
	}

	userID := c.GetUint("user_id")
	alert, err := ac.alertService.Acknowledge(id, userID)
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, alert)
}

// AssignTechnician assigns a technician to an alert
// @Summary Assign technician to alert
// @Tags alerts
// @Accept json
// @Produce json
// @Param id path int true "Alert ID"
// @Param assignment body AssignTechnicianRequest true "Technician assignment"
// @Success 200 {object} models.Alert "Updated alert"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /alerts/{id}/assign [put]
func (ac *AlertController) AssignTechnician(c *gin.Context) {
	id, ok := ac.parseID(c)
	if !ok {
		return
	}

	var req AssignTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationErrors(c, err)
		return
	}

	alert, err := ac.alertService.AssignTechnician(id, req.TechnicianID)
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, alert)
}

// UpdateStatus transitions an alert to a new lifecycle state
// @Summary Update alert status
// @Tags alerts
// @Accept json
// @Produce json
// @Param id path int true "Alert ID"
// @Param status body UpdateAlertStatusRequest true "New status"
// @Success 200 {object} models.Alert "Updated alert"
// @Failure 400 {object} utils.ErrorResponse "Invalid status"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /alerts/{id}/status [put]
func (ac *AlertController) UpdateStatus(c *gin.Context) {
	id, ok := ac.parseID(c)
	if !ok {
		return
	}

	var req UpdateAlertStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationErrors(c, err)
		return
	}

	alert, err := ac.alertService.UpdateStatus(id, req.Status)
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, alert)
}

// AddNotes replaces the technician notes on an alert
// @Summary Add technician notes
// @Tags alerts
// @Accept json
// @Produce json
// @Param id path int true "Alert ID"
// @Param notes body TechnicianNotesRequest true "Notes"
// @Success 200 {object} models.Alert "Updated alert"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /alerts/{id}/notes [put]
func (ac *AlertController) AddNotes(c *gin.Context) {
	id, ok := ac.parseID(c)
	if !ok {
		return
	}

	var req TechnicianNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationErrors(c, err)
		return
	}

	alert, err := ac.alertService.AddNotes(id, req.Notes)
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, alert)
}

func (ac *AlertController) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert ID"})
		return 0, false
	}
	return uint(id), true
}
