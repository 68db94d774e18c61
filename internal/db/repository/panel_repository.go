package repository

import (
	"github.com/solarwatch/backend/internal/db/models"
	"gorm.io/gorm"
)

// PanelRepository defines operations for managing solar panels
type PanelRepository interface {
	Repository
	Create(panel *models.SolarPanel) error
	GetByID(id uint) (*models.SolarPanel, error)
	GetByPanelID(panelID string) (*models.SolarPanel, error)
	List(offset, limit int) ([]models.SolarPanel, int64, error)
	ListByPlant(plantID uint, offset, limit int) ([]models.SolarPanel, int64, error)
	Update(panel *models.SolarPanel) error
	UpdateStatus(id uint, status models.PanelStatus) error
	AssignTechnician(id uint, technicianID uint) error
	Delete(id uint) error
	Count() (int64, error)
	CountByStatus(status models.PanelStatus) (int64, error)
}

// panelRepository implements PanelRepository
type panelRepository struct {
	BaseRepository
}

// NewPanelRepository creates a new panel repository
func NewPanelRepository(db *gorm.DB) PanelRepository {
	return &panelRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create adds a new panel
func (r *panelRepository) Create(panel *models.SolarPanel) error {
	var count int64
	if err := r.GetDB().Model(&models.SolarPanel{}).Where("panel_id = ?", panel.PanelID).Count(&count).Error; err != nil {
		return r.handleError(err)
	}

	if count > 0 {
		return ErrConflict
	}

	err := r.GetDB().Create(panel).Error
	return r.handleError(err)
}

// GetByID retrieves a panel by its database ID
func (r *panelRepository) GetByID(id uint) (*models.SolarPanel, error) {
	var panel models.SolarPanel
	err := r.GetDB().Where("id = ?", id).First(&panel).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return &panel, nil
}

// GetByPanelID retrieves a panel by its external identifier
func (r *panelRepository) GetByPanelID(panelID string) (*models.SolarPanel, error) {
	var panel models.SolarPanel
	err := r.GetDB().Where("panel_id = ?", panelID).First(&panel).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return &panel, nil
}

// List retrieves a paginated list of panels
func (r *panelRepository) List(offset, limit int) ([]models.SolarPanel, int64, error) {
	var panels []models.SolarPanel
	var total int64

	if err := r.GetDB().Model(&models.SolarPanel{}).Count(&total).Error; err != nil {
		return nil, 0, r.handleError(err)
	}

	err := r.GetDB().Offset(offset).Limit(limit).Order("id asc").Find(&panels).Error
	if err != nil {
		return nil, 0, r.handleError(err)
	}

	return panels, total, nil
}

// ListByPlant retrieves panels belonging to one plant
func (r *panelRepository) ListByPlant(plantID uint, offset, limit int) ([]models.SolarPanel, int64, error) {
	var panels []models.SolarPanel
	var total int64

	if err := r.GetDB().Model(&models.SolarPanel{}).Where("plant_id = ?", plantID).Count(&total).Error; err != nil {
		return nil, 0, r.handleError(err)
	}

	err := r.GetDB().Where("plant_id = ?", plantID).
		Offset(offset).Limit(limit).Order("id asc").Find(&panels).Error
	if err != nil {
		return nil, 0, r.handleError(err)
	}

	return panels, total, nil
}

// Update updates a panel's details
func (r *panelRepository) Update(panel *models.SolarPanel) error {
	var existing models.SolarPanel
	if err := r.GetDB().Where("id = ?", panel.ID).First(&existing).Error; err != nil {
		return r.handleError(err)
	}

	err := r.GetDB().Model(panel).Updates(map[string]interface{}{
		"plant_id":          panel.PlantID,
		"installation_date": panel.InstallationDate,
		"capacity_w":        panel.CapacityW,
		"status":            panel.Status,
	}).Error

	return r.handleError(err)
}

// UpdateStatus changes a panel's operational status
func (r *panelRepository) UpdateStatus(id uint, status models.PanelStatus) error {
	result := r.GetDB().Model(&models.SolarPanel{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return r.handleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignTechnician assigns a technician to a panel
func (r *panelRepository) AssignTechnician(id uint, technicianID uint) error {
	result := r.GetDB().Model(&models.SolarPanel{}).Where("id = ?", id).
		Update("assigned_technician_id", technicianID)
	if result.Error != nil {
		return r.handleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete soft-deletes a panel
func (r *panelRepository) Delete(id uint) error {
	result := r.GetDB().Delete(&models.SolarPanel{}, id)
	if result.Error != nil {
		return r.handleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of panels
func (r *panelRepository) Count() (int64, error) {
	var total int64
	err := r.GetDB().Model(&models.SolarPanel{}).Count(&total).Error
	if err != nil {
		return 0, r.handleError(err)
	}
	return total, nil
}

// CountByStatus returns the number of panels in the given status
func (r *panelRepository) CountByStatus(status models.PanelStatus) (int64, error) {
	var total int64
	err := r.GetDB().Model(&models.SolarPanel{}).Where("status = ?", status).Count(&total).Error
	if err != nil {
		return 0, r.handleError(err)
	}
	return total, nil
}
