package models

import "time"

// SensorReading represents one telemetry sample from a panel.
// Readings are immutable once received; they are never updated.
type SensorReading struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	PanelID     string    `gorm:"not null;index" json:"panel_id"`
	Voltage     float64   `gorm:"not null" json:"voltage"`
	Current     float64   `gorm:"not null" json:"current"`
	Temperature float64   `gorm:"not null" json:"temperature"`
	Irradiance  float64   `gorm:"not null" json:"irradiance"`
	Power       float64   `gorm:"not null" json:"power"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}
