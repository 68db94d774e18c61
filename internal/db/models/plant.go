package models

import (
	"time"

	"gorm.io/gorm"
)

// SolarPlant represents a solar installation site
type SolarPlant struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"uniqueIndex;not null" json:"name"`
	Location   string         `json:"location"`
	CapacityKW float64        `json:"capacity_kw"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Panels []SolarPanel `gorm:"foreignKey:PlantID" json:"panels,omitempty"`
}
