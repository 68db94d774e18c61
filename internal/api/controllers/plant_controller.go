package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/utils"
)

// PlantRequest represents the create/update plant request body
type PlantRequest struct {
	Name       string  `json:"name" binding:"required"`
	Location   string  `json:"location"`
	CapacityKW float64 `json:"capacity_kw" binding:"gte=0"`
}

// PlantController handles solar plant endpoints
type PlantController struct {
	plantService *services.PlantService
	logger       *utils.Logger
}

// NewPlantController creates a new plant controller
func NewPlantController(plantService *services.PlantService, logger *utils.Logger) *PlantController {
	return &PlantController{
		plantService: plantService,
		logger:       logger.Named("plant_controller"),
	}
}

// RegisterRoutes registers the controller's routes with the router group
func (pc *PlantController) RegisterRoutes(router *gin.RouterGroup, auth *gin.RouterGroup) {
	plants := router.Group("/plants")
	{
		plants.GET("", pc.List)
		plants.GET("/:id", pc.GetByID)
	}

	adminPlants := auth.Group("/plants")
	{
		adminPlants.POST("", pc.Create)
		adminPlants.PUT("/:id", pc.Update)
		adminPlants.DELETE("/:id", pc.Delete)
	}
}

// Create registers a new plant
// @Summary Create plant
// @Tags plants
// @Accept json
// @Produce json
// @Param plant body PlantRequest true "Plant details"
// @Success 201 {object} models.SolarPlant "Created plant"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 409 {object} utils.ErrorResponse "Name already in use"
// @Security BearerAuth
// @Router /plants [post]
func (pc *PlantController) Create(c *gin.Context) {
	var req PlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationErrors(c, err)
		return
	}

	plant := &models.SolarPlant{
		Name:       req.Name,
		Location:   req.Location,
		CapacityKW: req.CapacityKW,
	}

	if err := pc.plantService.Create(plant); err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusCreated, plant)
}

// GetByID returns one plant with its panels
// @Summary Get plant by ID
// @Tags plants
// @Produce json
// @Param id path int true "Plant ID"
// @Success 200 {object} models.SolarPlant "Plant"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /plants/{id} [get]
func (pc *PlantController) GetByID(c *gin.Context) {
	id, ok := pc.parseID(c)
	if !ok {
		return
	}

	plant, err := pc.plantService.GetWithPanels(id)
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, plant)
}

// List returns a page of plants
// @Summary List plants
// @Tags plants
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Plants"
// @Security BearerAuth
// @Router /plants [get]
func (pc *PlantController) List(c *gin.Context) {
	pagination := utils.GetPaginationFromContext(c)

	plants, total, err := pc.plantService.List(pagination.Offset(), pagination.Limit)
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(plants, pagination, int(total)))
}

// Update updates a plant's details
// @Summary Update plant
// @Tags plants
// @Accept json
// @Produce json
// @Param id path int true "Plant ID"
// @Param plant body PlantRequest true "Plant details"
// @Success 200 {object} models.SolarPlant "Updated plant"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Failure 409 {object} utils.ErrorResponse "Name already in use"
// @Security BearerAuth
// @Router /plants/{id} [put]
func (pc *PlantController) Update(c *gin.Context) {
	id, ok := pc.parseID(c)
	if !ok {
		return
	}

	var req PlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationErrors(c, err)
		return
	}

	plant := &models.SolarPlant{
		ID:         id,
		Name:       req.Name,
		Location:   req.Location,
		CapacityKW: req.CapacityKW,
	}

	if err := pc.plantService.Update(plant); err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	updated, err := pc.plantService.GetByID(id)
	if err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete removes a plant
// @Summary Delete plant
// @Tags plants
// @Param id path int true "Plant ID"
// @Success 204 "Deleted"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /plants/{id} [delete]
func (pc *PlantController) Delete(c *gin.Context) {
	id, ok := pc.parseID(c)
	if !ok {
		return
	}

	if err := pc.plantService.Delete(id); err != nil {
		utils.HandleError(c, err, pc.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (pc *PlantController) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plant ID"})
		return 0, false
	}
	return uint(id), true
}
