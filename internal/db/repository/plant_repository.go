package repository

import (
	"github.com/solarwatch/backend/internal/db/models"
	"gorm.io/gorm"
)

// PlantRepository defines operations for managing solar plants
type PlantRepository interface {
	Repository
	Create(plant *models.SolarPlant) error
	GetByID(id uint) (*models.SolarPlant, error)
	GetByIDWithPanels(id uint) (*models.SolarPlant, error)
	List(offset, limit int) ([]models.SolarPlant, int64, error)
	Update(plant *models.SolarPlant) error
	Delete(id uint) error
	Count() (int64, error)
}

// plantRepository implements PlantRepository
type plantRepository struct {
	BaseRepository
}

// NewPlantRepository creates a new plant repository
func NewPlantRepository(db *gorm.DB) PlantRepository {
	return &plantRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create adds a new plant
func (r *plantRepository) Create(plant *models.SolarPlant) error {
	var count int64
	if err := r.GetDB().Model(&models.SolarPlant{}).Where("name = ?", plant.Name).Count(&count).Error; err != nil {
		return r.handleError(err)
	}

	if count > 0 {
		return ErrConflict
	}

	err := r.GetDB().Create(plant).Error
	return r.handleError(err)
}

// GetByID retrieves a plant by ID
func (r *plantRepository) GetByID(id uint) (*models.SolarPlant, error) {
	var plant models.SolarPlant
	err := r.GetDB().Where("id = ?", id).First(&plant).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return &plant, nil
}

// GetByIDWithPanels retrieves a plant with its panels preloaded
func (r *plantRepository) GetByIDWithPanels(id uint) (*models.SolarPlant, error) {
	var plant models.SolarPlant
	err := r.GetDB().Preload("Panels").Where("id = ?", id).First(&plant).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return &plant, nil
}

// List retrieves a paginated list of plants
func (r *plantRepository) List(offset, limit int) ([]models.SolarPlant, int64, error) {
	var plants []models.SolarPlant
	var total int64

	if err := r.GetDB().Model(&models.SolarPlant{}).Count(&total).Error; err != nil {
		return nil, 0, r.handleError(err)
	}

	err := r.GetDB().Offset(offset).Limit(limit).Order("id asc").Find(&plants).Error
	if err != nil {
		return nil, 0, r.handleError(err)
	}

	return plants, total, nil
}

// Update updates a plant's details
func (r *plantRepository) Update(plant *models.SolarPlant) error {
	var existing models.SolarPlant
	if err := r.GetDB().Where("id = ?", plant.ID).First(&existing).Error; err != nil {
		return r.handleError(err)
	}

	if existing.Name != plant.Name {
		var count int64
		if err := r.GetDB().Model(&models.SolarPlant{}).Where("name = ? AND id != ?", plant.Name, plant.ID).Count(&count).Error; err != nil {
			return r.handleError(err)
		}

		if count > 0 {
			return ErrConflict
		}
	}

	err := r.GetDB().Model(plant).Updates(map[string]interface{}{
		"name":        plant.Name,
		"location":    plant.Location,
		"capacity_kw": plant.CapacityKW,
	}).Error

	return r.handleError(err)
}

// Delete soft-deletes a plant
func (r *plantRepository) Delete(id uint) error {
	result := r.GetDB().Delete(&models.SolarPlant{}, id)
	if result.Error != nil {
		return r.handleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of plants
func (r *plantRepository) Count() (int64, error) {
	var total int64
	err := r.GetDB().Model(&models.SolarPlant{}).Count(&total).Error
	if err != nil {
		return 0, r.handleError(err)
	}
	return total, nil
}
