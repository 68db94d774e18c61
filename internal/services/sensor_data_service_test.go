package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/solarwatch/backend/internal/config"
	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/ml"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/testutil"
	"github.com/solarwatch/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIngestionPipeline(t *testing.T, handler http.HandlerFunc) (*testutil.TestSetup, *services.SensorDataService, *recordingNotifier) {
	ts := testutil.NewTestSetup(t)
	t.Cleanup(ts.Cleanup)
	ts.SetupTestDatabase()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := testLogger()
	classifier := ml.NewClient(&config.ClassifierConfig{
		BaseURL:     server.URL,
		PredictPath: "/predict",
		TimeoutMS:   2000,
	}, logger)

	severity := services.NewSeverityService(logger)
	predictionService := services.NewPredictionService(ts.Repos.Prediction(), classifier, severity, logger)
	notifier := &recordingNotifier{}

	sensorService := services.NewSensorDataService(
		ts.Repos.SensorReading(),
		ts.Repos.Alert(),
		predictionService,
		notifier,
		logger,
	)

	return ts, sensorService, notifier
}

func classifierResponse(faultType string, score float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"predicted_fault":  faultType,
			"confidence":       "High",
			"confidence_score": score,
		})
	}
}

func nominalInput() *services.SensorDataInput {
	return &services.SensorDataInput{
		PanelID:     "PANEL-001",
		Voltage:     30,
		Current:     8,
		Temperature: 25,
		Irradiance:  800,
		Power:       240,
	}
}

func TestProcessNormalReadingCreatesNoAlert(t *testing.T) {
	ts, svc, notifier := newIngestionPipeline(t, classifierResponse("NORMAL", 0.95))

	result, err := svc.Process(context.Background(), nominalInput())
	require.NoError(t, err)

	assert.Equal(t, "NORMAL", result.Prediction.PredictedFault)
	assert.Equal(t, "None", result.Prediction.Severity)

	readings, err := ts.Repos.SensorReading().Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, readings)

	alerts, err := ts.Repos.Alert().Count()
	require.NoError(t, err)
	assert.Zero(t, alerts)
	assert.Empty(t, notifier.Alerts())
}

func TestProcessFaultCreatesOpenAlert(t *testing.T) {
	ts, svc, notifier := newIngestionPipeline(t, classifierResponse("INVERTER_FAULT", 0.92))

	result, err := svc.Process(context.Background(), nominalInput())
	require.NoError(t, err)

	assert.Equal(t, "INVERTER_FAULT", result.Prediction.PredictedFault)
	assert.Equal(t, "Critical", result.Prediction.Severity)

	alerts, err := ts.Repos.Alert().ListRecent(10)
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	alert := alerts[0]
	assert.Equal(t, "PANEL-001", alert.PanelID)
	assert.Equal(t, models.AlertStatusOpen, alert.Status)
	assert.False(t, alert.Acknowledged)
	require.NotNil(t, alert.PredictionID)
	assert.Equal(t, result.Prediction.ID, *alert.PredictionID)
	assert.Equal(t, "Critical severity inverter fault detected. Immediate inspection recommended.", alert.Message)

	require.Len(t, notifier.Alerts(), 1)
	assert.Equal(t, alert.ID, notifier.Alerts()[0].ID)
}

func TestProcessClassifierFailureKeepsReading(t *testing.T) {
	ts, svc, notifier := newIngestionPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := svc.Process(context.Background(), nominalInput())
	assert.ErrorIs(t, err, utils.ErrServiceUnavailable)

	// The raw reading survives a failed classification
	readings, err := ts.Repos.SensorReading().Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, readings)

	predictions, err := ts.Repos.Prediction().Count()
	require.NoError(t, err)
	assert.Zero(t, predictions)

	alerts, err := ts.Repos.Alert().Count()
	require.NoError(t, err)
	assert.Zero(t, alerts)
	assert.Empty(t, notifier.Alerts())
}

func TestProcessDustAccumulationAlertMessage(t *testing.T) {
	ts, svc, _ := newIngestionPipeline(t, classifierResponse("DUST_ACCUMULATION", 0.85))

	_, err := svc.Process(context.Background(), nominalInput())
	require.NoError(t, err)

	alerts, err := ts.Repos.Alert().ListRecent(10)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Low severity dust accumulation detected. Cleaning recommended.", alerts[0].Message)
}

func TestLatestByPanel(t *testing.T) {
	_, svc, _ := newIngestionPipeline(t, classifierResponse("NORMAL", 0.95))

	first := nominalInput()
	_, err := svc.Process(context.Background(), first)
	require.NoError(t, err)

	second := nominalInput()
	second.Voltage = 31
	_, err = svc.Process(context.Background(), second)
	require.NoError(t, err)

	latest, err := svc.LatestByPanel("PANEL-001")
	require.NoError(t, err)
	assert.Equal(t, 31.0, latest.Voltage)

	_, err = svc.LatestByPanel("PANEL-UNKNOWN")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
