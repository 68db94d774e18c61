package models

import "time"

// AlertStatus tracks an alert through its lifecycle
type AlertStatus string

const (
	// AlertStatusOpen alert is newly raised and unassigned
	AlertStatusOpen AlertStatus = "OPEN"
	// AlertStatusInProgress a technician is working the alert
	AlertStatusInProgress AlertStatus = "IN_PROGRESS"
	// AlertStatusResolved the alert has been closed out
	AlertStatusResolved AlertStatus = "RESOLVED"
)

// Alert is a maintenance alert raised when a prediction detects a fault.
// Acknowledgement is orthogonal to status: acknowledged, acknowledged_at
// and acknowledged_by are always set together.
type Alert struct {
	ID                   uint        `gorm:"primarykey" json:"id"`
	PanelID              string      `gorm:"not null;index" json:"panel_id"`
	PredictionID         *uint       `json:"prediction_id"`
	FaultType            string      `gorm:"not null;index" json:"fault_type"`
	Severity             string      `gorm:"not null;index" json:"severity"`
	Message              string      `gorm:"type:text;not null" json:"message"`
	Confidence           string      `gorm:"not null" json:"confidence"`
	ConfidenceScore      float64     `json:"confidence_score"`
	Status               AlertStatus `gorm:"type:varchar(20);not null;default:'OPEN';index" json:"status"`
	Acknowledged         bool        `gorm:"not null;default:false" json:"acknowledged"`
	AcknowledgedAt       *time.Time  `json:"acknowledged_at"`
	AcknowledgedBy       *uint       `json:"acknowledged_by"`
	AssignedTechnicianID *uint       `json:"assigned_technician_id"`
	TechnicianNotes      string      `gorm:"type:text" json:"technician_notes"`
	CreatedAt            time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
	ResolvedAt           *time.Time  `json:"resolved_at"`
}
