package services_test

import (
	"testing"

	"github.com/solarwatch/backend/internal/ml"
	"github.com/solarwatch/backend/internal/services"
	"github.com/stretchr/testify/assert"
)

// nominalSample has every measurement inside normal operating range
func nominalSample() *ml.Sample {
	return &ml.Sample{
		Voltage:     30,
		Current:     8,
		Temperature: 25,
		Irradiance:  800,
		Power:       240,
	}
}

func TestAssessSeverityBaseMapping(t *testing.T) {
	svc := services.NewSeverityService(testLogger())

	tests := []struct {
		faultType string
		expected  string
	}{
		{"NORMAL", "None"},
		{"DUST_ACCUMULATION", "Low"},
		{"PARTIAL_SHADING", "Medium"},
		{"PANEL_DEGRADATION", "High"},
		{"INVERTER_FAULT", "Critical"},
		{"SOMETHING_UNKNOWN", "Medium"},
	}

	for _, tt := range tests {
		t.Run(tt.faultType, func(t *testing.T) {
			got := svc.AssessSeverity(tt.faultType, nominalSample(), 0.9)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAssessSeverityLowConfidenceDeescalates(t *testing.T) {
	svc := services.NewSeverityService(testLogger())

	tests := []struct {
		faultType string
		expected  string
	}{
		{"NORMAL", "None"},
		{"DUST_ACCUMULATION", "Low"},
		{"PARTIAL_SHADING", "Low"},
		{"PANEL_DEGRADATION", "Medium"},
	}

	for _, tt := range tests {
		t.Run(tt.faultType, func(t *testing.T) {
			got := svc.AssessSeverity(tt.faultType, nominalSample(), 0.5)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAssessSeverityManyCriticalConditions(t *testing.T) {
	svc := services.NewSeverityService(testLogger())

	// Undervoltage, undercurrent, overheating and low power all at once
	sample := &ml.Sample{
		Voltage:     10,
		Current:     0.5,
		Temperature: 70,
		Irradiance:  800,
		Power:       30,
	}

	got := svc.AssessSeverity("DUST_ACCUMULATION", sample, 0.8)
	assert.Equal(t, "Critical", got)
}

func TestAssessSeverityTwoCriticalConditionsEscalateOneLevel(t *testing.T) {
	svc := services.NewSeverityService(testLogger())

	sample := nominalSample()
	sample.Voltage = 10
	sample.Power = 30

	got := svc.AssessSeverity("PARTIAL_SHADING", sample, 0.9)
	assert.Equal(t, "High", got)
}

func TestAssessSeveritySingleCriticalCondition(t *testing.T) {
	svc := services.NewSeverityService(testLogger())

	tests := []struct {
		faultType string
		expected  string
	}{
		{"NORMAL", "None"},
		{"DUST_ACCUMULATION", "Medium"},
		{"PARTIAL_SHADING", "High"},
		{"PANEL_DEGRADATION", "High"},
	}

	for _, tt := range tests {
		t.Run(tt.faultType, func(t *testing.T) {
			sample := nominalSample()
			sample.Voltage = 10
			got := svc.AssessSeverity(tt.faultType, sample, 0.9)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAssessSeverityInverterFaultVoltageOverride(t *testing.T) {
	svc := services.NewSeverityService(testLogger())

	// Low confidence would otherwise de-escalate to High
	sample := nominalSample()
	sample.Voltage = 10

	got := svc.AssessSeverity("INVERTER_FAULT", sample, 0.5)
	assert.Equal(t, "Critical", got)
}

func TestAssessSeverityDegradationPowerOverride(t *testing.T) {
	svc := services.NewSeverityService(testLogger())

	sample := nominalSample()
	sample.Power = 30

	got := svc.AssessSeverity("PANEL_DEGRADATION", sample, 0.9)
	assert.Equal(t, "Critical", got)
}

func TestMaintenanceRecommendation(t *testing.T) {
	svc := services.NewSeverityService(testLogger())

	critical := svc.MaintenanceRecommendation("INVERTER_FAULT", "Critical")
	assert.Contains(t, critical, "URGENT:")
	assert.Contains(t, critical, "Shut down system immediately")

	criticalOther := svc.MaintenanceRecommendation("PANEL_DEGRADATION", "Critical")
	assert.Contains(t, criticalOther, "URGENT:")
	assert.Contains(t, criticalOther, "Immediate professional attention required")

	high := svc.MaintenanceRecommendation("PANEL_DEGRADATION", "High")
	assert.Contains(t, high, "HIGH PRIORITY:")
	assert.Contains(t, high, "24-48 hours")

	medium := svc.MaintenanceRecommendation("PARTIAL_SHADING", "Medium")
	assert.Contains(t, medium, "MODERATE PRIORITY:")
	assert.Contains(t, medium, "1-2 weeks")

	low := svc.MaintenanceRecommendation("DUST_ACCUMULATION", "Low")
	assert.Contains(t, low, "LOW PRIORITY:")
	assert.Contains(t, low, "next scheduled maintenance")

	none := svc.MaintenanceRecommendation("NORMAL", "None")
	assert.Equal(t, "Continue regular monitoring. No immediate action required.", none)

	unknown := svc.MaintenanceRecommendation("SOMETHING_UNKNOWN", "High")
	assert.Contains(t, unknown, "Consult with solar panel technician")
}

func TestMaintenanceRecommendationSeverityCaseInsensitive(t *testing.T) {
	svc := services.NewSeverityService(testLogger())

	upper := svc.MaintenanceRecommendation("DUST_ACCUMULATION", "LOW")
	lower := svc.MaintenanceRecommendation("DUST_ACCUMULATION", "low")
	assert.Equal(t, upper, lower)
	assert.Contains(t, upper, "LOW PRIORITY:")
}

func TestSeverityLevels(t *testing.T) {
	svc := services.NewSeverityService(testLogger())

	assert.Equal(t, []string{"None", "Low", "Medium", "High", "Critical"}, svc.SeverityLevels())
	assert.True(t, svc.IsCritical("critical"))
	assert.False(t, svc.IsCritical("High"))
	assert.True(t, svc.IsNormal("NONE"))
}
