package controllers_test

import (
	"net/http"
	"testing"

	"github.com/solarwatch/backend/internal/api/controllers"
	"github.com/solarwatch/backend/internal/api/middleware"
	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/testutil"
	"github.com/solarwatch/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthSetup(t *testing.T) *testutil.TestSetup {
	ts := testutil.NewTestSetup(t)
	t.Cleanup(ts.Cleanup)
	ts.SetupTestDatabase()

	logger := &utils.Logger{Logger: zap.NewNop()}
	userService := services.NewUserService(
		ts.Repos.User(),
		services.NewPasswordStrengthService(),
		&ts.Config.JWT,
		logger,
	)

	controller := controllers.NewAuthController(userService, services.NewPasswordStrengthService(), logger)
	controller.RegisterRoutes(ts.Router.Group("/api"))

	authMiddleware := middleware.NewAuthMiddleware(&ts.Config.JWT)
	protected := ts.Router.Group("/api/v1")
	protected.Use(authMiddleware.RequireAuth())
	controller.RegisterProtectedRoutes(protected)

	return ts
}

func TestRegisterReturnsTokens(t *testing.T) {
	ts := newAuthSetup(t)

	resp := ts.ExecuteRequest(http.MethodPost, "/api/auth/register", controllers.RegisterRequest{
		Email:     "jordan@example.com",
		Password:  "Tr7$kWm2xQ",
		FirstName: "Jordan",
		LastName:  "Lee",
	}, nil)

	require.Equal(t, http.StatusCreated, resp.Code)

	var body controllers.TokenResponse
	ts.ParseResponse(resp, &body)
	assert.NotEmpty(t, body.Token)
	assert.NotEmpty(t, body.RefreshToken)
	assert.Equal(t, "jordan@example.com", body.Email)
	assert.Equal(t, string(models.RoleUser), body.Role)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	ts := newAuthSetup(t)

	resp := ts.ExecuteRequest(http.MethodPost, "/api/auth/register", controllers.RegisterRequest{
		Email:     "jordan@example.com",
		Password:  "password123",
		FirstName: "Jordan",
		LastName:  "Lee",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLoginSuccessAndFailure(t *testing.T) {
	ts := newAuthSetup(t)

	resp := ts.ExecuteRequest(http.MethodPost, "/api/auth/register", controllers.RegisterRequest{
		Email:     "jordan@example.com",
		Password:  "Tr7$kWm2xQ",
		FirstName: "Jordan",
		LastName:  "Lee",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.ExecuteRequest(http.MethodPost, "/api/auth/login", controllers.LoginRequest{
		Email:    "jordan@example.com",
		Password: "Tr7$kWm2xQ",
	}, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.ExecuteRequest(http.MethodPost, "/api/auth/login", controllers.LoginRequest{
		Email:    "jordan@example.com",
		Password: "WrongPass9$",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	ts := newAuthSetup(t)

	resp := ts.ExecuteRequest(http.MethodGet, "/api/v1/auth/profile", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestProfileWithToken(t *testing.T) {
	ts := newAuthSetup(t)

	userID := ts.SeedTestUser("jordan@example.com", "Tr7$kWm2xQ", models.RoleUser)
	token := ts.CreateTestAuthToken(userID, "jordan@example.com", models.RoleUser)

	resp := ts.ExecuteRequest(http.MethodGet, "/api/v1/auth/profile", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var user models.User
	ts.ParseResponse(resp, &user)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "jordan@example.com", user.Email)
}

func TestPasswordRequirementsIsPublic(t *testing.T) {
	ts := newAuthSetup(t)

	resp := ts.ExecuteRequest(http.MethodGet, "/api/auth/password-requirements", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string][]string
	ts.ParseResponse(resp, &body)
	assert.NotEmpty(t, body["requirements"])
}

func TestCheckPasswordEndpoint(t *testing.T) {
	ts := newAuthSetup(t)

	resp := ts.ExecuteRequest(http.MethodPost, "/api/auth/check-password", controllers.CheckPasswordRequest{
		Password: "password",
	}, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var analysis services.PasswordStrength
	ts.ParseResponse(resp, &analysis)
	assert.False(t, analysis.Acceptable)
}
