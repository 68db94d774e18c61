package services

import (
	"errors"
	"fmt"

	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/db/repository"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// PanelService manages solar panel records
type PanelService struct {
	panelRepo repository.PanelRepository
	plantRepo repository.PlantRepository
	logger    *utils.Logger
}

// NewPanelService creates a new panel service
func NewPanelService(panelRepo repository.PanelRepository, plantRepo repository.PlantRepository, logger *utils.Logger) *PanelService {
	return &PanelService{
		panelRepo: panelRepo,
		plantRepo: plantRepo,
		logger:    logger.Named("panel_service"),
	}
}

// Create registers a new panel under an existing plant
func (s *PanelService) Create(panel *models.SolarPanel) error {
	if _, err := s.plantRepo.GetByID(panel.PlantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: plant %d does not exist", utils.ErrValidation, panel.PlantID)
		}
		return err
	}

	if panel.Status == "" {
		panel.Status = models.PanelStatusActive
	}

	if err := s.panelRepo.Create(panel); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return utils.ErrAlreadyExists
		}
		return err
	}

	s.logger.Info("Panel created",
		zap.Uint("id", panel.ID),
		zap.String("panel_id", panel.PanelID),
		zap.Uint("plant_id", panel.PlantID),
	)
	return nil
}

// GetByID retrieves one panel by database ID
func (s *PanelService) GetByID(id uint) (*models.SolarPanel, error) {
	panel, err := s.panelRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return panel, nil
}

// GetByPanelID retrieves one panel by its external identifier
func (s *PanelService) GetByPanelID(panelID string) (*models.SolarPanel, error) {
	panel, err := s.panelRepo.GetByPanelID(panelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return panel, nil
}

// List retrieves a page of panels
func (s *PanelService) List(offset, limit int) ([]models.SolarPanel, int64, error) {
	return s.panelRepo.List(offset, limit)
}

// ListByPlant retrieves panels belonging to one plant
func (s *PanelService) ListByPlant(plantID uint, offset, limit int) ([]models.SolarPanel, int64, error) {
	return s.panelRepo.ListByPlant(plantID, offset, limit)
}

// Update updates a panel's details
func (s *PanelService) Update(panel *models.SolarPanel) error {
	err := s.panelRepo.Update(panel)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	return err
}

// UpdateStatus changes a panel's operational status
func (s *PanelService) UpdateStatus(id uint, status string) error {
	switch models.PanelStatus(status) {
	case models.PanelStatusActive, models.PanelStatusMaintenance, models.PanelStatusOffline:
	default:
		return fmt.Errorf("%w: invalid panel status %q", utils.ErrValidation, status)
	}

	err := s.panelRepo.UpdateStatus(id, models.PanelStatus(status))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	return err
}

// AssignTechnician assigns a technician to a panel
func (s *PanelService) AssignTechnician(id uint, technicianID uint) error {
	err := s.panelRepo.AssignTechnician(id, technicianID)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	return err
}

// Delete removes a panel
func (s *PanelService) Delete(id uint) error {
	err := s.panelRepo.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	return err
}
