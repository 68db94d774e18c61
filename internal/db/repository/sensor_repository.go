package repository

import (
	"time"

	"github.com/solarwatch/backend/internal/db/models"
	"gorm.io/gorm"
)

// SensorReadingRepository defines operations for storing and querying telemetry
type SensorReadingRepository interface {
	Repository
	Create(reading *models.SensorReading) error
	GetByID(id uint) (*models.SensorReading, error)
	List(offset, limit int) ([]models.SensorReading, int64, error)
	ListByPanel(panelID string, offset, limit int) ([]models.SensorReading, int64, error)
	ListSince(since time.Time) ([]models.SensorReading, error)
	LatestByPanel(panelID string) (*models.SensorReading, error)
	Count() (int64, error)
}

// sensorReadingRepository implements SensorReadingRepository
type sensorReadingRepository struct {
	BaseRepository
}

// NewSensorReadingRepository creates a new sensor reading repository
func NewSensorReadingRepository(db *gorm.DB) SensorReadingRepository {
	return &sensorReadingRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create stores a new sensor reading
func (r *sensorReadingRepository) Create(reading *models.SensorReading) error {
	if reading.Timestamp.IsZero() {
		reading.Timestamp = time.Now().UTC()
	}
	err := r.GetDB().Create(reading).Error
	return r.handleError(err)
}

// GetByID retrieves a reading by ID
func (r *sensorReadingRepository) GetByID(id uint) (*models.SensorReading, error) {
	var reading models.SensorReading
	err := r.GetDB().Where("id = ?", id).First(&reading).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return &reading, nil
}

// List retrieves a paginated list of readings, newest first
func (r *sensorReadingRepository) List(offset, limit int) ([]models.SensorReading, int64, error) {
	var readings []models.SensorReading
	var total int64

	if err := r.GetDB().Model(&models.SensorReading{}).Count(&total).Error; err != nil {
		return nil, 0, r.handleError(err)
	}

	err := r.GetDB().Offset(offset).Limit(limit).Order("timestamp desc").Find(&readings).Error
	if err != nil {
		return nil, 0, r.handleError(err)
	}

	return readings, total, nil
}

// ListByPanel retrieves readings for one panel, newest first
func (r *sensorReadingRepository) ListByPanel(panelID string, offset, limit int) ([]models.SensorReading, int64, error) {
	var readings []models.SensorReading
	var total int64

	query := r.GetDB().Model(&models.SensorReading{}).Where("panel_id = ?", panelID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.handleError(err)
	}

	err := r.GetDB().Where("panel_id = ?", panelID).
		Offset(offset).Limit(limit).Order("timestamp desc").Find(&readings).Error
	if err != nil {
		return nil, 0, r.handleError(err)
	}

	return readings, total, nil
}

// ListSince retrieves all readings taken at or after the given time
func (r *sensorReadingRepository) ListSince(since time.Time) ([]models.SensorReading, error) {
	var readings []models.SensorReading
	err := r.GetDB().Where("timestamp >= ?", since).Order("timestamp asc").Find(&readings).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return readings, nil
}

// LatestByPanel retrieves the most recent reading for a panel
func (r *sensorReadingRepository) LatestByPanel(panelID string) (*models.SensorReading, error) {
	var reading models.SensorReading
	err := r.GetDB().Where("panel_id = ?", panelID).Order("timestamp desc").First(&reading).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return &reading, nil
}

// Count returns the total number of stored readings
func (r *sensorReadingRepository) Count() (int64, error) {
	var total int64
	err := r.GetDB().Model(&models.SensorReading{}).Count(&total).Error
	if err != nil {
		return 0, r.handleError(err)
	}
	return total, nil
}
