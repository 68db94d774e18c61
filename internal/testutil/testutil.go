package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/solarwatch/backend/internal/config"
	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/db/repository"
	"github.com/solarwatch/backend/internal/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestSetup contains utilities for testing
type TestSetup struct {
	Router   *gin.Engine
	DB       *gorm.DB
	Repos    *repository.RepositoryFactory
	Logger   *utils.Logger
	Config   *config.Config
	Cleanup  func()
	Requires *require.Assertions
}

// NewTestSetup creates a new test setup with an in-memory SQLite database.
// Each setup gets its own named database so parallel tests do not share state.
func NewTestSetup(t require.TestingT) *TestSetup {
	gin.SetMode(gin.TestMode)

	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapLogger, err := zapConfig.Build()
	if err != nil {
		require.FailNow(t, "Failed to create zap logger", err)
	}

	logger := &utils.Logger{
		Logger: zapLogger,
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:                 "test-secret-key-for-testing-only",
			ExpirationHours:        1,
			RefreshSecret:          "test-refresh-secret-key-for-testing-only",
			RefreshExpirationHours: 168, // 7 days
		},
		Classifier: config.ClassifierConfig{
			BaseURL:     "http://localhost:5000",
			PredictPath: "/predict",
			TimeoutMS:   2000,
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "json",
		},
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		require.FailNow(t, "Failed to create in-memory database", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	cleanup := func() {
		zapLogger.Sync()
		sqlDB, _ := gormDB.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}

	return &TestSetup{
		Router:   router,
		DB:       gormDB,
		Repos:    repository.NewRepositoryFactory(gormDB),
		Logger:   logger,
		Config:   cfg,
		Cleanup:  cleanup,
		Requires: require.New(t),
	}
}

// SetupTestDatabase migrates all application tables
func (ts *TestSetup) SetupTestDatabase() {
	err := ts.DB.AutoMigrate(
		&models.User{},
		&models.SolarPlant{},
		&models.SolarPanel{},
		&models.SensorReading{},
		&models.Prediction{},
		&models.Alert{},
	)
	ts.Requires.NoError(err, "Failed to migrate database")
}

// ExecuteRequest executes a test request and returns the response
func (ts *TestSetup) ExecuteRequest(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		ts.Requires.NoError(err, "Failed to marshal request body")
	}

	req, err := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	ts.Requires.NoError(err, "Failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp := httptest.NewRecorder()
	ts.Router.ServeHTTP(resp, req)

	return resp
}

// ParseResponse parses the JSON response into the provided struct
func (ts *TestSetup) ParseResponse(response *httptest.ResponseRecorder, target interface{}) {
	err := json.Unmarshal(response.Body.Bytes(), target)
	ts.Requires.NoError(err, "Failed to parse response body: %s", response.Body.String())
}

// CreateTestAuthToken creates a JWT token for testing authenticated endpoints
func (ts *TestSetup) CreateTestAuthToken(userID uint, email string, role models.Role) string {
	claims := &models.Claims{
		UserID: userID,
		Email:  email,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "solarwatch-test",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ts.Config.JWT.Secret))
	ts.Requires.NoError(err, "Failed to sign JWT token")

	return tokenString
}

// SeedTestUser creates a user record for testing and returns its ID
func (ts *TestSetup) SeedTestUser(email, password string, role models.Role) uint {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	ts.Requires.NoError(err, "Failed to hash password")

	user := &models.User{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		Active:    true,
	}

	result := ts.DB.Session(&gorm.Session{SkipHooks: true}).Create(user)
	ts.Requires.NoError(result.Error, "Failed to create test user")

	return user.ID
}

// SeedPrediction inserts a prediction with the given fault type, severity and
// creation time
func (ts *TestSetup) SeedPrediction(faultType, severity string, createdAt time.Time) *models.Prediction {
	prediction := &models.Prediction{
		Voltage:         30,
		Current:         8,
		Temperature:     25,
		Irradiance:      800,
		Power:           240,
		PredictedFault:  faultType,
		Confidence:      "High",
		ConfidenceScore: 0.9,
		Severity:        severity,
		CreatedAt:       createdAt,
	}
	ts.Requires.NoError(ts.DB.Create(prediction).Error, "Failed to seed prediction")
	return prediction
}
