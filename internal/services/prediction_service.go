package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/db/repository"
	"github.com/solarwatch/backend/internal/metrics"
	"github.com/solarwatch/backend/internal/ml"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// AnalysisResult is the outcome of analyzing one sensor sample. InputValues
// and AllProbabilities come straight from the classifier and are not
// persisted.
type AnalysisResult struct {
	Prediction       *models.Prediction `json:"prediction"`
	InputValues      map[string]float64 `json:"input_values,omitempty"`
	AllProbabilities map[string]float64 `json:"all_probabilities,omitempty"`
}

// PredictionService runs the fault analysis pipeline and serves prediction
// history queries.
type PredictionService struct {
	predictionRepo repository.PredictionRepository
	classifier     *ml.Client
	severity       *SeverityService
	logger         *utils.Logger
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	predictionRepo repository.PredictionRepository,
	classifier *ml.Client,
	severity *SeverityService,
	logger *utils.Logger,
) *PredictionService {
	return &PredictionService{
		predictionRepo: predictionRepo,
		classifier:     classifier,
		severity:       severity,
		logger:         logger.Named("prediction_service"),
	}
}

// Analyze submits a sensor sample to the classifier, reassesses severity
// locally, persists the prediction and returns it. The classifier's own
// severity and recommendation hints are discarded.
func (s *PredictionService) Analyze(ctx context.Context, sample *ml.Sample) (*AnalysisResult, error) {
	start := time.Now()
	classification, err := s.classifier.PredictFault(ctx, sample)
	if err != nil {
		switch {
		case errors.Is(err, ml.ErrBadResponse):
			metrics.RecordClassifierCall("bad_response", time.Since(start))
		default:
			metrics.RecordClassifierCall("unavailable", time.Since(start))
		}
		s.logger.Error("Fault classification failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrServiceUnavailable, err)
	}
	metrics.RecordClassifierCall("success", time.Since(start))

	confidenceScore := *classification.ConfidenceScore
	severity := s.severity.AssessSeverity(classification.PredictedFault, sample, confidenceScore)
	recommendation := s.severity.MaintenanceRecommendation(classification.PredictedFault, severity)

	prediction := &models.Prediction{
		Voltage:                   sample.Voltage,
		Current:                   sample.Current,
		Temperature:               sample.Temperature,
		Irradiance:                sample.Irradiance,
		Power:                     sample.Power,
		PredictedFault:            classification.PredictedFault,
		Confidence:                confidenceLabel(classification.Confidence, confidenceScore),
		ConfidenceScore:           confidenceScore,
		Severity:                  severity,
		MaintenanceRecommendation: recommendation,
		Description:               classification.Description,
	}

	if err := s.predictionRepo.Create(prediction); err != nil {
		s.logger.Error("Failed to store prediction", zap.Error(err))
		return nil, err
	}
	metrics.RecordPrediction(prediction.PredictedFault, prediction.Severity)

	s.logger.Info("Prediction stored",
		zap.Uint("id", prediction.ID),
		zap.String("fault_type", prediction.PredictedFault),
		zap.String("severity", prediction.Severity),
		zap.Float64("confidence_score", confidenceScore),
	)

	return &AnalysisResult{
		Prediction:       prediction,
		InputValues:      classification.InputValues,
		AllProbabilities: classification.AllProbabilities,
	}, nil
}

// confidenceLabel keeps the classifier's label when present and derives one
// from the score otherwise.
func confidenceLabel(label string, score float64) string {
	if label != "" {
		return label
	}
	switch {
	case score >= 0.8:
		return "High"
	case score >= 0.6:
		return "Medium"
	default:
		return "Low"
	}
}

// GetByID retrieves one prediction
func (s *PredictionService) GetByID(id uint) (*models.Prediction, error) {
	prediction, err := s.predictionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return prediction, nil
}

// List retrieves a page of prediction history, newest first
func (s *PredictionService) List(offset, limit int) ([]models.Prediction, int64, error) {
	return s.predictionRepo.List(offset, limit)
}

// ListByFaultType retrieves predictions with the given fault label
func (s *PredictionService) ListByFaultType(faultType string, offset, limit int) ([]models.Prediction, int64, error) {
	return s.predictionRepo.ListByFaultType(faultType, offset, limit)
}

// ListBySeverity retrieves predictions with the given severity
func (s *PredictionService) ListBySeverity(severity string, offset, limit int) ([]models.Prediction, int64, error) {
	return s.predictionRepo.ListBySeverity(severity, offset, limit)
}

// ListRecent retrieves predictions from the last 24 hours
func (s *PredictionService) ListRecent() ([]models.Prediction, error) {
	since := time.Now().UTC().Add(-24 * time.Hour)
	return s.predictionRepo.ListSince(since)
}

// FaultTypeStatistics returns prediction counts grouped by fault label
func (s *PredictionService) FaultTypeStatistics() ([]repository.FaultCount, error) {
	return s.predictionRepo.CountsByFaultType()
}
