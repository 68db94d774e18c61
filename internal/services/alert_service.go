package services

import (
	"errors"
	"fmt"

	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/db/repository"
	"github.com/solarwatch/backend/internal/metrics"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// recentAlertLimit caps the default alert listing
const recentAlertLimit = 50

// AlertService manages the lifecycle of maintenance alerts
type AlertService struct {
	alertRepo repository.AlertRepository
	logger    *utils.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(alertRepo repository.AlertRepository, logger *utils.Logger) *AlertService {
	return &AlertService{
		alertRepo: alertRepo,
		logger:    logger.Named("alert_service"),
	}
}

// GetByID retrieves one alert
func (s *AlertService) GetByID(id uint) (*models.Alert, error) {
	alert, err := s.alertRepo.GetByID(id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return alert, nil
}

// ListRecent retrieves the 50 most recent alerts
func (s *AlertService) ListRecent() ([]models.Alert, error) {
	return s.alertRepo.ListRecent(recentAlertLimit)
}

// ListByStatus retrieves alerts in the given lifecycle state
func (s *AlertService) ListByStatus(status string, offset, limit int) ([]models.Alert, int64, error) {
	parsed, err := parseAlertStatus(status)
	if err != nil {
		return nil, 0, err
	}
	return s.alertRepo.ListByStatus(parsed, offset, limit)
}

// ListByPanel retrieves alerts raised for one panel
func (s *AlertService) ListByPanel(panelID string, offset, limit int) ([]models.Alert, int64, error) {
	return s.alertRepo.ListByPanel(panelID, offset, limit)
}

// ListBySeverity retrieves alerts with the given severity
func (s *AlertService) ListBySeverity(severity string, offset, limit int) ([]models.Alert, int64, error) {
	return s.alertRepo.ListBySeverity(severity, offset, limit)
}

// ListUnacknowledged retrieves all alerts awaiting acknowledgement
func (s *AlertService) ListUnacknowledged() ([]models.Alert, error) {
	return s.alertRepo.ListUnacknowledged()
}

// Acknowledge marks an alert as seen by the given user. Acknowledgement does
// not change the alert's lifecycle status.
func (s *AlertService) Acknowledge(id uint, userID uint) (*models.Alert, error) {
	alert, err := s.alertRepo.Acknowledge(id, userID)
	if err != nil {
		return nil, s.mapError(err)
	}

	s.logger.Info("Alert acknowledged",
		zap.Uint("alert_id", id),
		zap.Uint("user_id", userID),
	)
	return alert, nil
}

// AssignTechnician assigns a technician to work the alert. An OPEN alert
// moves to IN_PROGRESS.
func (s *AlertService) AssignTechnician(id uint, technicianID uint) (*models.Alert, error) {
	alert, err := s.alertRepo.AssignTechnician(id, technicianID)
	if err != nil {
		return nil, s.mapError(err)
	}

	s.logger.Info("Technician assigned to alert",
		zap.Uint("alert_id", id),
		zap.Uint("technician_id", technicianID),
	)
	return alert, nil
}

// UpdateStatus transitions an alert to the given status
func (s *AlertService) UpdateStatus(id uint, status string) (*models.Alert, error) {
	parsed, err := parseAlertStatus(status)
	if err != nil {
		return nil, err
	}

	previous, err := s.alertRepo.GetByID(id)
	if err != nil {
		return nil, s.mapError(err)
	}

	alert, err := s.alertRepo.UpdateStatus(id, parsed)
	if err != nil {
		return nil, s.mapError(err)
	}

	if previous.Status == models.AlertStatusOpen && parsed != models.AlertStatusOpen {
		metrics.OpenAlerts.Dec()
	} else if previous.Status != models.AlertStatusOpen && parsed == models.AlertStatusOpen {
		metrics.OpenAlerts.Inc()
	}

	s.logger.Info("Alert status updated",
		zap.Uint("alert_id", id),
		zap.String("status", status),
	)
	return alert, nil
}

// AddNotes replaces the technician notes on an alert
func (s *AlertService) AddNotes(id uint, notes string) (*models.Alert, error) {
	alert, err := s.alertRepo.SetNotes(id, notes)
	if err != nil {
		return nil, s.mapError(err)
	}
	return alert, nil
}

// UnacknowledgedCount returns the number of unacknowledged alerts
func (s *AlertService) UnacknowledgedCount() (int64, error) {
	return s.alertRepo.CountUnacknowledged()
}

// CriticalCount returns the number of alerts with Critical severity
func (s *AlertService) CriticalCount() (int64, error) {
	counts, err := s.alertRepo.CountBySeverity()
	if err != nil {
		return 0, err
	}
	for _, c := range counts {
		if c.Severity == "Critical" {
			return c.Count, nil
		}
	}
	return 0, nil
}

func (s *AlertService) mapError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	return err
}

// parseAlertStatus validates a status string against the known lifecycle
// states
func parseAlertStatus(status string) (models.AlertStatus, error) {
	switch models.AlertStatus(status) {
	case models.AlertStatusOpen, models.AlertStatusInProgress, models.AlertStatusResolved:
		return models.AlertStatus(status), nil
	default:
		return "", fmt.Errorf("%w: invalid alert status %q", utils.ErrValidation, status)
	}
}
