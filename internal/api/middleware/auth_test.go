package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/solarwatch/backend/internal/api/middleware"
	"github.com/solarwatch/backend/internal/config"
	"github.com/solarwatch/backend/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing-only"

func signToken(t *testing.T, secret string, role models.Role, expiresAt time.Time) string {
	claims := &models.Claims{
		UserID: 1,
		Email:  "jordan@example.com",
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedRouter(requireAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	am := middleware.NewAuthMiddleware(&config.JWTConfig{Secret: testSecret})

	router := gin.New()
	group := router.Group("/protected")
	group.Use(am.RequireAuth())
	if requireAdmin {
		group.Use(am.RequireAdmin())
	}
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint("user_id"),
			"role":    c.GetString("user_role"),
		})
	})
	return router
}

func execute(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router := newProtectedRouter(false)
	resp := execute(router, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	router := newProtectedRouter(false)
	resp := execute(router, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	router := newProtectedRouter(false)
	token := signToken(t, testSecret, models.RoleUser, time.Now().Add(time.Hour))
	resp := execute(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	router := newProtectedRouter(false)
	token := signToken(t, testSecret, models.RoleUser, time.Now().Add(-time.Hour))
	resp := execute(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	router := newProtectedRouter(false)
	token := signToken(t, "some-other-secret", models.RoleUser, time.Now().Add(time.Hour))
	resp := execute(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRequireAdminRejectsRegularUser(t *testing.T) {
	router := newProtectedRouter(true)
	token := signToken(t, testSecret, models.RoleUser, time.Now().Add(time.Hour))
	resp := execute(router, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	router := newProtectedRouter(true)
	token := signToken(t, testSecret, models.RoleAdmin, time.Now().Add(time.Hour))
	resp := execute(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	am := middleware.NewAuthMiddleware(&config.JWTConfig{Secret: testSecret})

	router := gin.New()
	group := router.Group("/protected")
	group.Use(am.RequireAuth(), am.RequireRole(models.RoleTechnician))
	group.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signToken(t, testSecret, models.RoleTechnician, time.Now().Add(time.Hour))
	resp := execute(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)
}
