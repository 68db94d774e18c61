package services

import (
	"errors"

	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/db/repository"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// PlantService manages solar plant records
type PlantService struct {
	plantRepo repository.PlantRepository
	logger    *utils.Logger
}

// NewPlantService creates a new plant service
func NewPlantService(plantRepo repository.PlantRepository, logger *utils.Logger) *PlantService {
	return &PlantService{
		plantRepo: plantRepo,
		logger:    logger.Named("plant_service"),
	}
}

// Create registers a new plant
func (s *PlantService) Create(plant *models.SolarPlant) error {
	if err := s.plantRepo.Create(plant); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return utils.ErrAlreadyExists
		}
		return err
	}

	s.logger.Info("Plant created", zap.Uint("plant_id", plant.ID), zap.String("name", plant.Name))
	return nil
}

// GetByID retrieves one plant
func (s *PlantService) GetByID(id uint) (*models.SolarPlant, error) {
	plant, err := s.plantRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return plant, nil
}

// GetWithPanels retrieves one plant with its panels
func (s *PlantService) GetWithPanels(id uint) (*models.SolarPlant, error) {
	plant, err := s.plantRepo.GetByIDWithPanels(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return plant, nil
}

// List retrieves a page of plants
func (s *PlantService) List(offset, limit int) ([]models.SolarPlant, int64, error) {
	return s.plantRepo.List(offset, limit)
}

// Update updates a plant's details
func (s *PlantService) Update(plant *models.SolarPlant) error {
	err := s.plantRepo.Update(plant)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	if errors.Is(err, repository.ErrConflict) {
		return utils.ErrAlreadyExists
	}
	return err
}

// Delete removes a plant
func (s *PlantService) Delete(id uint) error {
	err := s.plantRepo.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	return err
}
