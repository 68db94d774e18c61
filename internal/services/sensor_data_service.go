package services

import (
	"context"
	"strings"
	"time"

	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/db/repository"
	"github.com/solarwatch/backend/internal/metrics"
	"github.com/solarwatch/backend/internal/ml"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// SensorDataInput is one telemetry submission from a panel
type SensorDataInput struct {
	PanelID     string
	Voltage     float64
	Current     float64
	Temperature float64
	Irradiance  float64
	Power       float64
	Timestamp   *time.Time
}

// SensorDataService ingests telemetry: it persists the raw reading, runs the
// analysis pipeline and raises an alert when a fault is detected.
type SensorDataService struct {
	sensorRepo        repository.SensorReadingRepository
	alertRepo         repository.AlertRepository
	predictionService *PredictionService
	notifier          Notifier
	logger            *utils.Logger
}

// NewSensorDataService creates a new sensor data service
func NewSensorDataService(
	sensorRepo repository.SensorReadingRepository,
	alertRepo repository.AlertRepository,
	predictionService *PredictionService,
	notifier Notifier,
	logger *utils.Logger,
) *SensorDataService {
	return &SensorDataService{
		sensorRepo:        sensorRepo,
		alertRepo:         alertRepo,
		predictionService: predictionService,
		notifier:          notifier,
		logger:            logger.Named("sensor_data_service"),
	}
}

// Process handles one telemetry submission. The reading is persisted before
// the classifier is consulted, so a failed classification still leaves the
// raw telemetry on record; in that case no prediction or alert is created
// and the error is returned.
func (s *SensorDataService) Process(ctx context.Context, input *SensorDataInput) (*AnalysisResult, error) {
	reading := &models.SensorReading{
		PanelID:     input.PanelID,
		Voltage:     input.Voltage,
		Current:     input.Current,
		Temperature: input.Temperature,
		Irradiance:  input.Irradiance,
		Power:       input.Power,
	}
	if input.Timestamp != nil {
		reading.Timestamp = *input.Timestamp
	}

	if err := s.sensorRepo.Create(reading); err != nil {
		s.logger.Error("Failed to store sensor reading",
			zap.String("panel_id", input.PanelID),
			zap.Error(err),
		)
		return nil, err
	}
	s.logger.Info("Sensor reading stored",
		zap.Uint("id", reading.ID),
		zap.String("panel_id", input.PanelID),
	)

	result, err := s.predictionService.Analyze(ctx, &ml.Sample{
		Voltage:     input.Voltage,
		Current:     input.Current,
		Temperature: input.Temperature,
		Irradiance:  input.Irradiance,
		Power:       input.Power,
	})
	if err != nil {
		return nil, err
	}

	if result.Prediction.PredictedFault != models.FaultNormal {
		if err := s.generateAlert(input.PanelID, result.Prediction); err != nil {
			s.logger.Error("Failed to create alert",
				zap.String("panel_id", input.PanelID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	return result, nil
}

// generateAlert raises an OPEN, unacknowledged alert for the detected fault
func (s *SensorDataService) generateAlert(panelID string, prediction *models.Prediction) error {
	alert := &models.Alert{
		PanelID:         panelID,
		PredictionID:    &prediction.ID,
		FaultType:       prediction.PredictedFault,
		Severity:        prediction.Severity,
		Message:         alertMessage(prediction.PredictedFault, prediction.Severity),
		Confidence:      prediction.Confidence,
		ConfidenceScore: prediction.ConfidenceScore,
		Status:          models.AlertStatusOpen,
		Acknowledged:    false,
	}

	if err := s.alertRepo.Create(alert); err != nil {
		return err
	}
	metrics.RecordAlert(alert.FaultType, alert.Severity)
	metrics.OpenAlerts.Inc()

	s.logger.Info("Alert created",
		zap.Uint("id", alert.ID),
		zap.String("panel_id", panelID),
		zap.String("fault_type", alert.FaultType),
		zap.String("severity", alert.Severity),
	)

	s.notifier.NotifyAlert(alert)
	return nil
}

// alertMessage builds the human-readable alert text for a fault at the given
// severity. Severity matching ignores case.
func alertMessage(faultType, severity string) string {
	var severityText string
	switch strings.ToUpper(severity) {
	case "CRITICAL":
		severityText = "Critical"
	case "HIGH":
		severityText = "High"
	case "MEDIUM":
		severityText = "Medium"
	default:
		severityText = "Low"
	}

	switch faultType {
	case models.FaultInverter:
		return severityText + " severity inverter fault detected. Immediate inspection recommended."
	case models.FaultPartialShading:
		return severityText + " severity partial shading detected. Check for obstructions."
	case models.FaultPanelDegradation:
		return severityText + " severity panel degradation detected. Performance monitoring required."
	case models.FaultDustAccumulation:
		return severityText + " severity dust accumulation detected. Cleaning recommended."
	default:
		return severityText + " severity fault detected in solar panel."
	}
}

// ListByPanel retrieves stored readings for one panel, newest first
func (s *SensorDataService) ListByPanel(panelID string, offset, limit int) ([]models.SensorReading, int64, error) {
	return s.sensorRepo.ListByPanel(panelID, offset, limit)
}

// List retrieves a page of stored readings, newest first
func (s *SensorDataService) List(offset, limit int) ([]models.SensorReading, int64, error) {
	return s.sensorRepo.List(offset, limit)
}

// LatestByPanel retrieves the most recent reading for a panel
func (s *SensorDataService) LatestByPanel(panelID string) (*models.SensorReading, error) {
	reading, err := s.sensorRepo.LatestByPanel(panelID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return reading, nil
}
