package models

import "time"

// Known fault type labels returned by the classifier
const (
	FaultNormal           = "NORMAL"
	FaultDustAccumulation = "DUST_ACCUMULATION"
	FaultPartialShading   = "PARTIAL_SHADING"
	FaultPanelDegradation = "PANEL_DEGRADATION"
	FaultInverter         = "INVERTER_FAULT"
)

// Prediction is the persisted outcome of one analysis call: the sensor
// inputs, the classifier's label and confidence, and the severity and
// recommendation recomputed by the rule engine. Records are immutable.
type Prediction struct {
	ID              uint    `gorm:"primarykey" json:"id"`
	Voltage         float64 `gorm:"not null" json:"voltage"`
	Current         float64 `gorm:"not null" json:"current"`
	Temperature     float64 `gorm:"not null" json:"temperature"`
	Irradiance      float64 `gorm:"not null" json:"irradiance"`
	Power           float64 `gorm:"not null" json:"power"`
	PredictedFault  string  `gorm:"not null;index" json:"predicted_fault"`
	Confidence      string  `gorm:"not null" json:"confidence"`
	ConfidenceScore float64 `json:"confidence_score"`
	// Severity is the level assessed by the rule engine, not the
	// classifier's advisory hint.
	Severity                  string    `gorm:"not null;index" json:"severity"`
	MaintenanceRecommendation string    `gorm:"type:text" json:"maintenance_recommendation"`
	Description               string    `gorm:"type:text" json:"description"`
	CreatedAt                 time.Time `gorm:"index" json:"created_at"`
}
