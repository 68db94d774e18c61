package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/utils"
)

// PanelRequest represents the create/update panel request body
type PanelRequest struct {
	PanelID          string     `json:"panel_id" binding:"required"`
	PlantID          uint       `json:"plant_id" binding:"required"`
	InstallationDate *time.Time `json:"installation_date"`
	CapacityW        float64    `json:"capacity_w" binding:"gte=0"`
	Status           string     `json:"status" binding:"omitempty,oneof=ACTIVE MAINTENANCE OFFLINE"`
}

// UpdatePanelStatusRequest carries a status change for a panel
type UpdatePanelStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE MAINTENANCE OFFLINE"`
}

// PanelController handles solar panel endpoints
type PanelController struct {
	panelService *services.PanelService
	logger       *utils.Logger
}

// NewPanelController creates a new panel controller
func NewPanelController(panelService *services.PanelService, logger *utils.Logger) *PanelController {
	return &PanelController{
		panelService: panelService,
		logger:       logger.Named("panel_controller"),
	}
}

// RegisterRoutes registers the controller's routes with the router group
func (pc *PanelController) RegisterRoutes(router *gin.RouterGroup, auth *gin.RouterGroup) {
	panels := router.Group("/panels")
	{
		panels.GET("", pc.List)
		panels.GET("/plant/:plantId", pc.ListByPlant)
		panels.GET("/external/:panelId", pc.GetByPanelID)
		panels.GET("/:id", pc.GetByID)
	}

	adminPanels := auth.Group("/panels")
	{
		adminPanels.POST("", pc.Create)
		adminPanels.PUT("/:id", pc.Update)
		adminPanels.PUT("/:id/status", pc.UpdateStatus)
		adminPanels.PUT("/:id/assign", pc.AssignTechnician)
		adminPanels.DELETE("/:id", pc.Delete)
	}
}

// Create registers a new panel
// @Summary Create panel
// @Tags panels
// @Accept json
// @Produce json
// @Param panel body PanelRequest true "Panel details"
// @Success 201 {object} models.SolarPanel "Created panel"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or unknown plant"
// @Failure 409 {object} utils.ErrorResponse "Panel identifier already in use"
// @Security BearerAuth
// @Router /panels [post]
func (pc *PanelController) Create(c *gin.Context) {
	var req PanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationErrors(c, err)
		return
	}

	panel := &models.SolarPanel{
		PanelID:   req.PanelID,
		PlantID:   req.PlantID,
		CapacityW: req.CapacityW,
		Status:    models.PanelStatus(req.Status),
	}
	if req.InstallationDate != nil {
		panel.InstallationDate = *req.InstallationDate
	}

	if err := pc.panelService.Create(panel); err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusCreated, panel)
}

// GetByID returns one panel by database ID
// @Summary Get panel by ID
// @Tags panels
// @Produce json
// @Param id path int true "Panel ID"
// @Success 200 {object} models.SolarPanel "Panel"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /panels/{id} [get]
func (pc *PanelController) GetByID(c *gin.Context) {
	id, ok := pc.parseID(c)
	if !ok {
		return
	}

	panel, err := pc.panelService.GetByID(id)
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, panel)
}

// GetByPanelID returns one panel by its external identifier
// @Summary Get panel by external identifier
// @Tags panels
// @Produce json
// @Param panelId path string true "External panel identifier"
// @Success 200 {object} models.SolarPanel "Panel"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /panels/external/{panelId} [get]
func (pc *PanelController) GetByPanelID(c *gin.Context) {
	panel, err := pc.panelService.GetByPanelID(c.Param("panelId"))
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, panel)
}

// List returns a page of panels
// @Summary List panels
// @Tags panels
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Panels"
// @Security BearerAuth
// @Router /panels [get]
func (pc *PanelController) List(c *gin.Context) {
	pagination := utils.GetPaginationFromContext(c)

	panels, total, err := pc.panelService.List(pagination.Offset(), pagination.Limit)
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(panels, pagination, int(total)))
}

// ListByPlant returns panels belonging to one plant
// @Summary List panels for a plant
// @Tags panels
// @Produce json
// @Param plantId path int true "Plant ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Panels"
// @Security BearerAuth
// @Router /panels/plant/{plantId} [get]
func (pc *PanelController) ListByPlant(c *gin.Context) {
	plantID, err := strconv.ParseUint(c.Param("plantId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plant ID"})
		return
	}

	pagination := utils.GetPaginationFromContext(c)

	panels, total, err := pc.panelService.ListByPlant(uint(plantID), pagination.Offset(), pagination.Limit)
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(panels, pagination, int(total)))
}

// Update updates a panel's details
// @Summary Update panel
// @Tags panels
// @Accept json
// @Produce json
// @Param id path int true "Panel ID"
// @Param panel body PanelRequest true "Panel details"
// @Success 200 {object} models.SolarPanel "Updated panel"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /panels/{id} [put]
func (pc *PanelController) Update(c *gin.Context) {
	id, ok := pc.parseID(c)
	if !ok {
		return
	}

	var req PanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationErrors(c, err)
		return
	}

	panel := &models.SolarPanel{
		ID:        id,
		PanelID:   req.PanelID,
		PlantID:   req.PlantID,
		CapacityW: req.CapacityW,
		Status:    models.PanelStatus(req.Status),
	}
	if req.InstallationDate != nil {
		panel.InstallationDate = *req.InstallationDate
	}

	if err := pc.panelService.Update(panel); err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	updated, err := pc.panelService.GetByID(id)
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// UpdateStatus changes a panel's operational status
// @Summary Update panel status
// @Tags panels
// @Accept json
// @Produce json
// @Param id path int true "Panel ID"
// @Param status body UpdatePanelStatusRequest true "New status"
// @Success 200 {object} map[string]string "Status updated"
// @Failure 400 {object} utils.ErrorResponse "Invalid status"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /panels/{id}/status [put]
func (pc *PanelController) UpdateStatus(c *gin.Context) {
	id, ok := pc.parseID(c)
	if !ok {
		return
	}

	var req UpdatePanelStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationErrors(c, err)
		return
	}

	if err := pc.panelService.UpdateStatus(id, req.Status); err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panel status updated"})
}

// AssignTechnician assigns a technician to a panel
// @Summary Assign technician to panel
// @Tags panels
// @Accept json
// @Produce json
// @Param id path int true "Panel ID"
// @Param assignment body AssignTechnicianRequest true "Technician assignment"
// @Success 200 {object} map[string]string "Technician assigned"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /panels/{id}/assign [put]
func (pc *PanelController) AssignTechnician(c *gin.Context) {
	id, ok := pc.parseID(c)
	if !ok {
		return
	}

	var req AssignTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationErrors(c, err)
		return
	}

	if err := pc.panelService.AssignTechnician(id, req.TechnicianID); err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Technician assigned"})
}

// Delete removes a panel
// @Summary Delete panel
// @Tags panels
// @Param id path int true "Panel ID"
// @Success 204 "Deleted"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /panels/{id} [delete]
func (pc *PanelController) Delete(c *gin.Context) {
	id, ok := pc.parseID(c)
	if !ok {
		return
	}

	if err := pc.panelService.Delete(id); err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (pc *PanelController) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid panel ID"})
		return 0, false
	}
	return uint(id), true
}
