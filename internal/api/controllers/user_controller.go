package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/utils"
)

// UpdateUserRequest represents the admin user update request body
type UpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" binding:"omitempty,oneof=admin technician user"`
	Active    *bool  `json:"active"`
}

// UserController handles admin user management endpoints
type UserController struct {
	userService *services.UserService
	logger      *utils.Logger
}

// NewUserController creates a new user controller
func NewUserController(userService *services.UserService, logger *utils.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger.Named("user_controller"),
	}
}

// RegisterRoutes registers the controller's routes with the router group
func (uc *UserController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", uc.List)
		users.GET("/:id", uc.GetByID)
		users.PUT("/:id", uc.Update)
		users.DELETE("/:id", uc.Delete)
	}
}

// List returns a page of user accounts
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse "Users"
// @Security BearerAuth
// @Router /users [get]
func (uc *UserController) List(c *gin.Context) {
	pagination := utils.GetPaginationFromContext(c)

	users, total, err := uc.userService.List(pagination.Offset(), pagination.Limit)
	if err != nil {
		utils.HandleError(c, err, uc.logger)
		return
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(users, pagination, int(total)))
}

// GetByID returns one user account
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User "User"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (uc *UserController) GetByID(c *gin.Context) {
	id, ok := uc.parseID(c)
	if !ok {
		return
	}

	user, err := uc.userService.GetByID(id)
	if err != nil {
		utils.HandleError(c, err, uc.logger)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Update updates a user's profile and role
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body UpdateUserRequest true "User details"
// @Success 200 {object} models.User "Updated user"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /users/{id} [put]
func (uc *UserController) Update(c *gin.Context) {
	id, ok := uc.parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleValidationErrors(c, err)
		return
	}

	user, err := uc.userService.GetByID(id)
	if err != nil {
		utils.HandleError(c, err, uc.logger)
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Role != "" {
		user.Role = models.Role(req.Role)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := uc.userService.Update(user); err != nil {
		utils.HandleError(c, err, uc.logger)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete removes a user account
// @Summary Delete user
// @Tags users
// @Param id path int true "User ID"
// @Success 204 "Deleted"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (uc *UserController) Delete(c *gin.Context) {
	id, ok := uc.parseID(c)
	if !ok {
		return
	}

	if err := uc.userService.Delete(id); err != nil {
		utils.HandleError(c, err, uc.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UserController) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(id), true
}
