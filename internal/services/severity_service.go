package services

import (
	"strings"

	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/ml"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// severityLevel orders severities from no action needed to critical
type severityLevel int

const (
	severityNone severityLevel = iota
	severityLow
	severityMedium
	severityHigh
	severityCritical
)

var severityNames = [...]string{"None", "Low", "Medium", "High", "Critical"}

func (s severityLevel) String() string {
	if s < severityNone || s > severityCritical {
		return severityNames[severityMedium]
	}
	return severityNames[s]
}

// baseFaultSeverity maps each fault label to its starting severity.
// Unknown labels assess as Medium.
var baseFaultSeverity = map[string]severityLevel{
	models.FaultNormal:           severityNone,
	models.FaultDustAccumulation: severityLow,
	models.FaultPartialShading:   severityMedium,
	models.FaultPanelDegradation: severityHigh,
	models.FaultInverter:         severityCritical,
}

var baseRecommendations = map[string]string{
	models.FaultNormal:           "Continue regular monitoring. No immediate action required.",
	models.FaultDustAccumulation: "Clean panel surface with appropriate cleaning equipment. Schedule regular cleaning maintenance.",
	models.FaultPartialShading:   "Check for obstructions (trees, buildings, debris) and remove if possible. Consider panel repositioning if permanent shading exists.",
	models.FaultPanelDegradation: "Schedule professional inspection for panel degradation assessment. Consider panel replacement if degradation is severe.",
	models.FaultInverter:         "Contact qualified technician immediately for inverter inspection and repair. System may need to be shut down for safety.",
}

const defaultRecommendation = "Consult with solar panel technician for detailed system assessment."

// SeverityService assesses the severity of a predicted fault from the fault
// label, the classifier's confidence and the raw sensor measurements. It is
// deterministic and holds no state beyond its logger.
type SeverityService struct {
	logger *utils.Logger
}

// NewSeverityService creates a new severity assessment service
func NewSeverityService(logger *utils.Logger) *SeverityService {
	return &SeverityService{
		logger: logger.Named("severity_service"),
	}
}

// AssessSeverity runs the full assessment pipeline: base severity from the
// fault label, confidence de-escalation, sensor threshold escalation, then
// fault-specific overrides. Returns one of None, Low, Medium, High, Critical.
func (s *SeverityService) AssessSeverity(faultType string, sample *ml.Sample, confidenceScore float64) string {
	base, ok := baseFaultSeverity[faultType]
	if !ok {
		base = severityMedium
	}

	adjusted := adjustByConfidence(base, confidenceScore)
	final := adjustBySensorData(adjusted, faultType, sample)

	s.logger.Debug("Severity assessed",
		zap.String("fault_type", faultType),
		zap.Float64("confidence_score", confidenceScore),
		zap.String("severity", final.String()),
	)

	return final.String()
}

// adjustByConfidence de-escalates one level when the classifier is not
// confident in its label. None and Low are kept as is.
func adjustByConfidence(base severityLevel, confidenceScore float64) severityLevel {
	if confidenceScore >= 0.6 {
		return base
	}
	if base > severityLow {
		return base - 1
	}
	return base
}

// adjustBySensorData escalates severity when sensor values breach critical
// operating thresholds, then applies fault-specific overrides.
func adjustBySensorData(base severityLevel, faultType string, sample *ml.Sample) severityLevel {
	criticalVoltage := sample.Voltage < 15.0 || sample.Voltage > 45.0
	criticalCurrent := sample.Current < 1.0 || sample.Current > 15.0
	criticalTemperature := sample.Temperature > 60.0 || sample.Temperature < -10.0
	criticalPower := sample.Power < 50.0

	criticalConditions := 0
	if criticalVoltage {
		criticalConditions++
	}
	if criticalCurrent {
		criticalConditions++
	}
	if criticalTemperature {
		criticalConditions++
	}
	if criticalPower {
		criticalConditions++
	}

	level := base
	switch {
	case criticalConditions >= 3:
		level = severityCritical
	case criticalConditions == 2:
		// Escalate one level; None and Critical are left unchanged
		if level >= severityLow && level <= severityHigh {
			level++
		}
	case criticalConditions == 1:
		// Minor escalation for a single breached threshold
		if level == severityMedium || level == severityLow {
			level++
		}
	}

	// Fault-specific overrides take precedence over the threshold result
	if faultType == models.FaultInverter && criticalVoltage {
		return severityCritical
	}
	if faultType == models.FaultPanelDegradation && criticalPower {
		return severityCritical
	}

	return level
}

// MaintenanceRecommendation builds the actionable recommendation text for a
// fault at the given severity.
func (s *SeverityService) MaintenanceRecommendation(faultType, severity string) string {
	base, ok := baseRecommendations[faultType]
	if !ok {
		base = defaultRecommendation
	}

	switch strings.ToUpper(severity) {
	case "CRITICAL":
		if faultType == models.FaultInverter {
			return "URGENT: " + base + " Shut down system immediately to prevent damage or safety hazards."
		}
		return "URGENT: " + base + " Immediate professional attention required to prevent system damage."
	case "HIGH":
		return "HIGH PRIORITY: " + base + " Address within 24-48 hours to prevent further deterioration."
	case "MEDIUM":
		return "MODERATE PRIORITY: " + base + " Schedule maintenance within 1-2 weeks."
	case "LOW":
		return "LOW PRIORITY: " + base + " Can be addressed during next scheduled maintenance."
	default:
		return base
	}
}

// SeverityLevels returns all severity names in escalation order
func (s *SeverityService) SeverityLevels() []string {
	return append([]string(nil), severityNames[:]...)
}

// IsCritical reports whether the severity denotes a critical condition
func (s *SeverityService) IsCritical(severity string) bool {
	return strings.EqualFold(severity, severityNames[severityCritical])
}

// IsNormal reports whether the severity denotes normal operation
func (s *SeverityService) IsNormal(severity string) bool {
	return strings.EqualFold(severity, severityNames[severityNone])
}
