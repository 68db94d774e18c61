package repository

import (
	"time"

	"github.com/solarwatch/backend/internal/db/models"
	"gorm.io/gorm"
)

// StatusCount is one row of an alert status aggregation
type StatusCount struct {
	Status string
	Count  int64
}

// AlertRepository defines operations for managing maintenance alerts
type AlertRepository interface {
	Repository
	Create(alert *models.Alert) error
	GetByID(id uint) (*models.Alert, error)
	ListRecent(limit int) ([]models.Alert, error)
	List(offset, limit int) ([]models.Alert, int64, error)
	ListByStatus(status models.AlertStatus, offset, limit int) ([]models.Alert, int64, error)
	ListByPanel(panelID string, offset, limit int) ([]models.Alert, int64, error)
	ListBySeverity(severity string, offset, limit int) ([]models.Alert, int64, error)
	ListUnacknowledged() ([]models.Alert, error)
	Acknowledge(id uint, userID uint) (*models.Alert, error)
	AssignTechnician(id uint, technicianID uint) (*models.Alert, error)
	UpdateStatus(id uint, status models.AlertStatus) (*models.Alert, error)
	SetNotes(id uint, notes string) (*models.Alert, error)
	Count() (int64, error)
	CountByStatus() ([]StatusCount, error)
	CountBySeverity() ([]SeverityCount, error)
	CountByFaultType() ([]FaultCount, error)
	CountUnacknowledged() (int64, error)
}

// alertRepository implements AlertRepository
type alertRepository struct {
	BaseRepository
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create stores a new alert
func (r *alertRepository) Create(alert *models.Alert) error {
	err := r.GetDB().Create(alert).Error
	return r.handleError(err)
}

// GetByID retrieves an alert by ID
func (r *alertRepository) GetByID(id uint) (*models.Alert, error) {
	var alert models.Alert
	err := r.GetDB().Where("id = ?", id).First(&alert).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return &alert, nil
}

// ListRecent retrieves the most recent alerts, newest first
func (r *alertRepository) ListRecent(limit int) ([]models.Alert, error) {
	var alerts []models.Alert
	err := r.GetDB().Order("created_at desc").Limit(limit).Find(&alerts).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return alerts, nil
}

// List retrieves a paginated list of alerts, newest first
func (r *alertRepository) List(offset, limit int) ([]models.Alert, int64, error) {
	return r.listFiltered(nil, offset, limit)
}

// ListByStatus retrieves alerts in the given lifecycle state
func (r *alertRepository) ListByStatus(status models.AlertStatus, offset, limit int) ([]models.Alert, int64, error) {
	return r.listFiltered(map[string]interface{}{"status": status}, offset, limit)
}

// ListByPanel retrieves alerts raised for one panel
func (r *alertRepository) ListByPanel(panelID string, offset, limit int) ([]models.Alert, int64, error) {
	return r.listFiltered(map[string]interface{}{"panel_id": panelID}, offset, limit)
}

// ListBySeverity retrieves alerts with the given severity
func (r *alertRepository) ListBySeverity(severity string, offset, limit int) ([]models.Alert, int64, error) {
	return r.listFiltered(map[string]interface{}{"severity": severity}, offset, limit)
}

func (r *alertRepository) listFiltered(filter map[string]interface{}, offset, limit int) ([]models.Alert, int64, error) {
	var alerts []models.Alert
	var total int64

	countQuery := r.GetDB().Model(&models.Alert{})
	listQuery := r.GetDB()
	if filter != nil {
		countQuery = countQuery.Where(filter)
		listQuery = listQuery.Where(filter)
	}

	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, r.handleError(err)
	}

	err := listQuery.Offset(offset).Limit(limit).Order("created_at desc").Find(&alerts).Error
	if err != nil {
		return nil, 0, r.handleError(err)
	}

	return alerts, total, nil
}

// ListUnacknowledged retrieves all alerts not yet acknowledged, newest first
func (r *alertRepository) ListUnacknowledged() ([]models.Alert, error) {
	var alerts []models.Alert
	err := r.GetDB().Where("acknowledged = ?", false).Order("created_at desc").Find(&alerts).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return alerts, nil
}

// Acknowledge marks an alert as acknowledged by the given user. The three
// acknowledgement fields are written in a single update so they can never
// disagree.
func (r *alertRepository) Acknowledge(id uint, userID uint) (*models.Alert, error) {
	now := time.Now().UTC()
	result := r.GetDB().Model(&models.Alert{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"acknowledged":    true,
			"acknowledged_at": now,
			"acknowledged_by": userID,
		})
	if result.Error != nil {
		return nil, r.handleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

// AssignTechnician assigns a technician to an alert. An OPEN alert moves to
// IN_PROGRESS; alerts already in progress or resolved keep their status.
func (r *alertRepository) AssignTechnician(id uint, technicianID uint) (*models.Alert, error) {
	result := r.GetDB().Model(&models.Alert{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"assigned_technician_id": technicianID,
			"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
				string(models.AlertStatusOpen), string(models.AlertStatusInProgress)),
		})
	if result.Error != nil {
		return nil, r.handleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

// UpdateStatus transitions an alert to the given status. Moving to RESOLVED
// records the resolution time.
func (r *alertRepository) UpdateStatus(id uint, status models.AlertStatus) (*models.Alert, error) {
	updates := map[string]interface{}{"status": status}
	if status == models.AlertStatusResolved {
		now := time.Now().UTC()
		updates["resolved_at"] = now
	}

	result := r.GetDB().Model(&models.Alert{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, r.handleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

// SetNotes replaces the technician notes on an alert
func (r *alertRepository) SetNotes(id uint, notes string) (*models.Alert, error) {
	result := r.GetDB().Model(&models.Alert{}).Where("id = ?", id).
		Update("technician_notes", notes)
	if result.Error != nil {
		return nil, r.handleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

// Count returns the total number of alerts
func (r *alertRepository) Count() (int64, error) {
	var total int64
	err := r.GetDB().Model(&models.Alert{}).Count(&total).Error
	if err != nil {
		return 0, r.handleError(err)
	}
	return total, nil
}

// CountByFaultType returns the number of alerts per fault label
func (r *alertRepository) CountByFaultType() ([]FaultCount, error) {
	var counts []FaultCount
	err := r.GetDB().Model(&models.Alert{}).
		Select("fault_type as predicted_fault, count(*) as count").
		Group("fault_type").
		Scan(&counts).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return counts, nil
}

// CountByStatus returns the number of alerts per lifecycle state
func (r *alertRepository) CountByStatus() ([]StatusCount, error) {
	var counts []StatusCount
	err := r.GetDB().Model(&models.Alert{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return counts, nil
}

// CountBySeverity returns the number of alerts per severity level
func (r *alertRepository) CountBySeverity() ([]SeverityCount, error) {
	var counts []SeverityCount
	err := r.GetDB().Model(&models.Alert{}).
		Select("severity, count(*) as count").
		Group("severity").
		Scan(&counts).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return counts, nil
}

// CountUnacknowledged returns the number of unacknowledged alerts
func (r *alertRepository) CountUnacknowledged() (int64, error) {
	var total int64
	err := r.GetDB().Model(&models.Alert{}).Where("acknowledged = ?", false).Count(&total).Error
	if err != nil {
		return 0, r.handleError(err)
	}
	return total, nil
}
