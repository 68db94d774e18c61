package repository

import (
	"time"

	"github.com/solarwatch/backend/internal/db/models"
	"gorm.io/gorm"
)

// FaultCount is one row of a fault-type aggregation
type FaultCount struct {
	PredictedFault string
	Count          int64
}

// SeverityCount is one row of a severity aggregation
type SeverityCount struct {
	Severity string
	Count    int64
}

// PredictionRepository defines operations for storing and querying predictions
type PredictionRepository interface {
	Repository
	Create(prediction *models.Prediction) error
	GetByID(id uint) (*models.Prediction, error)
	List(offset, limit int) ([]models.Prediction, int64, error)
	ListByFaultType(faultType string, offset, limit int) ([]models.Prediction, int64, error)
	ListBySeverity(severity string, offset, limit int) ([]models.Prediction, int64, error)
	ListSince(since time.Time) ([]models.Prediction, error)
	ListBetween(start, end time.Time) ([]models.Prediction, error)
	CountsByFaultType() ([]FaultCount, error)
	CountsBySeverity() ([]SeverityCount, error)
	Count() (int64, error)
}

// predictionRepository implements PredictionRepository
type predictionRepository struct {
	BaseRepository
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create stores a new prediction record
func (r *predictionRepository) Create(prediction *models.Prediction) error {
	err := r.GetDB().Create(prediction).Error
	return r.handleError(err)
}

// GetByID retrieves a prediction by ID
func (r *predictionRepository) GetByID(id uint) (*models.Prediction, error) {
	var prediction models.Prediction
	err := r.GetDB().Where("id = ?", id).First(&prediction).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return &prediction, nil
}

// List retrieves a paginated list of predictions, newest first
func (r *predictionRepository) List(offset, limit int) ([]models.Prediction, int64, error) {
	var predictions []models.Prediction
	var total int64

	if err := r.GetDB().Model(&models.Prediction{}).Count(&total).Error; err != nil {
		return nil, 0, r.handleError(err)
	}

	err := r.GetDB().Offset(offset).Limit(limit).Order("created_at desc").Find(&predictions).Error
	if err != nil {
		return nil, 0, r.handleError(err)
	}

	return predictions, total, nil
}

// ListByFaultType retrieves predictions with the given fault label, newest first
func (r *predictionRepository) ListByFaultType(faultType string, offset, limit int) ([]models.Prediction, int64, error) {
	return r.listFiltered("predicted_fault = ?", faultType, offset, limit)
}

// ListBySeverity retrieves predictions with the given severity, newest first
func (r *predictionRepository) ListBySeverity(severity string, offset, limit int) ([]models.Prediction, int64, error) {
	return r.listFiltered("severity = ?", severity, offset, limit)
}

func (r *predictionRepository) listFiltered(cond string, value string, offset, limit int) ([]models.Prediction, int64, error) {
	var predictions []models.Prediction
	var total int64

	if err := r.GetDB().Model(&models.Prediction{}).Where(cond, value).Count(&total).Error; err != nil {
		return nil, 0, r.handleError(err)
	}

	err := r.GetDB().Where(cond, value).
		Offset(offset).Limit(limit).Order("created_at desc").Find(&predictions).Error
	if err != nil {
		return nil, 0, r.handleError(err)
	}

	return predictions, total, nil
}

// ListSince retrieves all predictions created at or after the given time
func (r *predictionRepository) ListSince(since time.Time) ([]models.Prediction, error) {
	var predictions []models.Prediction
	err := r.GetDB().Where("created_at >= ?", since).Order("created_at asc").Find(&predictions).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return predictions, nil
}

// ListBetween retrieves predictions created within [start, end]
func (r *predictionRepository) ListBetween(start, end time.Time) ([]models.Prediction, error) {
	var predictions []models.Prediction
	err := r.GetDB().Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at asc").Find(&predictions).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return predictions, nil
}

// CountsByFaultType returns the number of predictions per fault label
func (r *predictionRepository) CountsByFaultType() ([]FaultCount, error) {
	var counts []FaultCount
	err := r.GetDB().Model(&models.Prediction{}).
		Select("predicted_fault, count(*) as count").
		Group("predicted_fault").
		Scan(&counts).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return counts, nil
}

// CountsBySeverity returns the number of predictions per severity level
func (r *predictionRepository) CountsBySeverity() ([]SeverityCount, error) {
	var counts []SeverityCount
	err := r.GetDB().Model(&models.Prediction{}).
		Select("severity, count(*) as count").
		Group("severity").
		Scan(&counts).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return counts, nil
}

// Count returns the total number of predictions
func (r *predictionRepository) Count() (int64, error) {
	var total int64
	err := r.GetDB().Model(&models.Prediction{}).Count(&total).Error
	if err != nil {
		return 0, r.handleError(err)
	}
	return total, nil
}
