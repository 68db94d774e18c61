package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// RefreshRequest represents the token refresh request body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CheckPasswordRequest carries a candidate password for strength analysis
type CheckPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// TokenResponse represents the login/register/token refresh response body
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// AuthController handles authentication-related endpoints
type AuthController struct {
	userService     *services.UserService
	passwordService *services.PasswordStrengthService
	logger          *utils.Logger
}

// NewAuthController creates a new authentication controller
func NewAuthController(userService *services.UserService, passwordService *services.PasswordStrengthService, logger *utils.Logger) *AuthController {
	return &AuthController{
		userService:     userService,
		passwordService: passwordService,
		logger:          logger.Named("auth_controller"),
	}
}

// RegisterRoutes registers the controller's public routes with the router group
func (ac *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", ac.Login)
		auth.POST("/register", ac.Register)
		auth.POST("/refresh", ac.RefreshToken)
		auth.POST("/check-password", ac.CheckPassword)
		auth.GET("/password-requirements", ac.PasswordRequirements)
	}
}

// RegisterProtectedRoutes registers routes that require authentication
func (ac *AuthController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.GET("/profile", ac.Profile)
		auth.PUT("/change-password", ac.ChangePassword)
	}
}

// Login handles user authentication and returns a JWT token pair
// @Summary Login user
// @Description Authenticate user and return JWT tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param login_request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse "Login successful"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, tokens, err := ac.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		ac.logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		UserID:       user.ID,
		Email:        user.Email,
		Role:         string(user.Role),
	})
}

// Register handles user registration
// @Summary Register new user
// @Description Register a new user and return JWT tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param register_request body RegisterRequest true "Registration information"
// @Success 201 {object} TokenResponse "Registration successful"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or weak password"
// @Failure 409 {object} utils.ErrorResponse "Email already exists"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleUser,
		Active:    true,
	}

	if err := ac.userService.Register(user, req.Password); err != nil {
		ac.logger.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		utils.HandleError(c, err, ac.logger)
		return
	}

	user, tokens, err := ac.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		ac.logger.Error("Post-registration authentication failed", zap.Error(err))
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		UserID:       user.ID,
		Email:        user.Email,
		Role:         string(user.Role),
	})
}

// RefreshToken handles token refresh
// @Summary Refresh JWT token
// @Description Exchange a valid refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh_request body RefreshRequest true "Refresh token"
// @Success 200 {object} TokenResponse "Token refresh successful"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := ac.userService.Refresh(req.RefreshToken)
	if err != nil {
		ac.logger.Warn("Token refresh failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	})
}

// CheckPassword analyzes a candidate password's strength
// @Summary Check password strength
// @Description Score a candidate password against the strength policy
// @Tags auth
// @Accept json
// @Produce json
// @Param check_request body CheckPasswordRequest true "Candidate password"
// @Success 200 {object} services.PasswordStrength "Analysis result"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Router /auth/check-password [post]
func (ac *AuthController) CheckPassword(c *gin.Context) {
	var req CheckPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ac.passwordService.Analyze(req.Password))
}

// PasswordRequirements lists the password policy
// @Summary Get password requirements
// @Description List the rules a password must satisfy
// @Tags auth
// @Produce json
// @Success 200 {object} map[string][]string "Password requirements"
// @Router /auth/password-requirements [get]
func (ac *AuthController) PasswordRequirements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"requirements": ac.passwordService.Requirements()})
}

// Profile returns the authenticated user's profile
// @Summary Get current user profile
// @Description Return the profile of the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User "User profile"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /auth/profile [get]
func (ac *AuthController) Profile(c *gin.Context) {
	userID := c.GetUint("user_id")
	user, err := ac.userService.GetByID(userID)
	if err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ChangePassword changes the authenticated user's password
// @Summary Change password
// @Description Verify the current password and set a new one
// @Tags auth
// @Accept json
// @Produce json
// @Param change_request body ChangePasswordRequest true "Password change"
// @Success 200 {object} map[string]string "Password changed"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or weak password"
// @Failure 401 {object} utils.ErrorResponse "Wrong current password"
// @Security BearerAuth
// @Router /auth/change-password [put]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("user_id")
	if err := ac.userService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		utils.HandleError(c, err, ac.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
