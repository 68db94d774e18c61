package models

import (
	"time"

	"gorm.io/gorm"
)

// PanelStatus represents the operational state of a panel
type PanelStatus string

const (
	// PanelStatusActive panel is producing normally
	PanelStatusActive PanelStatus = "ACTIVE"
	// PanelStatusMaintenance panel is undergoing maintenance
	PanelStatusMaintenance PanelStatus = "MAINTENANCE"
	// PanelStatusOffline panel is not reporting
	PanelStatusOffline PanelStatus = "OFFLINE"
)

// SolarPanel represents an individual panel within a plant
type SolarPanel struct {
	ID                   uint           `gorm:"primarykey" json:"id"`
	PanelID              string         `gorm:"uniqueIndex;not null" json:"panel_id"`
	PlantID              uint           `gorm:"not null;index" json:"plant_id"`
	InstallationDate     time.Time      `json:"installation_date"`
	CapacityW            float64        `json:"capacity_w"`
	Status               PanelStatus    `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	AssignedTechnicianID *uint          `json:"assigned_technician_id"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Plant SolarPlant `gorm:"foreignKey:PlantID" json:"plant,omitempty"`
}
