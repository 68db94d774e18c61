package services

import (
	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/db/repository"
	"github.com/solarwatch/backend/internal/utils"
)

// DashboardStats is the fleet-wide snapshot shown on the dashboard
type DashboardStats struct {
	TotalPlants       int64            `json:"total_plants"`
	TotalPanels       int64            `json:"total_panels"`
	ActivePanels      int64            `json:"active_panels"`
	MaintenancePanels int64            `json:"maintenance_panels"`
	OfflinePanels     int64            `json:"offline_panels"`
	TotalAlerts       int64            `json:"total_alerts"`
	OpenAlerts        int64            `json:"open_alerts"`
	CriticalAlerts    int64            `json:"critical_alerts"`
	HighAlerts        int64            `json:"high_alerts"`
	MediumAlerts      int64            `json:"medium_alerts"`
	LowAlerts         int64            `json:"low_alerts"`
	FaultDistribution map[string]int64 `json:"fault_distribution"`
	AlertsByStatus    map[string]int64 `json:"alerts_by_status"`
}

// DashboardService assembles fleet statistics from the plant, panel and
// alert stores. Everything is computed per request.
type DashboardService struct {
	plantRepo repository.PlantRepository
	panelRepo repository.PanelRepository
	alertRepo repository.AlertRepository
	logger    *utils.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	plantRepo repository.PlantRepository,
	panelRepo repository.PanelRepository,
	alertRepo repository.AlertRepository,
	logger *utils.Logger,
) *DashboardService {
	return &DashboardService{
		plantRepo: plantRepo,
		panelRepo: panelRepo,
		alertRepo: alertRepo,
		logger:    logger.Named("dashboard_service"),
	}
}

// Stats assembles the dashboard snapshot
func (s *DashboardService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalPlants, err = s.plantRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalPanels, err = s.panelRepo.Count(); err != nil {
		return nil, err
	}
	if stats.ActivePanels, err = s.panelRepo.CountByStatus(models.PanelStatusActive); err != nil {
		return nil, err
	}
	if stats.MaintenancePanels, err = s.panelRepo.CountByStatus(models.PanelStatusMaintenance); err != nil {
		return nil, err
	}
	if stats.OfflinePanels, err = s.panelRepo.CountByStatus(models.PanelStatusOffline); err != nil {
		return nil, err
	}

	if stats.TotalAlerts, err = s.alertRepo.Count(); err != nil {
		return nil, err
	}

	statusCounts, err := s.alertRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	stats.AlertsByStatus = map[string]int64{
		string(models.AlertStatusOpen):       0,
		string(models.AlertStatusInProgress): 0,
		string(models.AlertStatusResolved):   0,
	}
	for _, c := range statusCounts {
		stats.AlertsByStatus[c.Status] = c.Count
	}
	stats.OpenAlerts = stats.AlertsByStatus[string(models.AlertStatusOpen)]

	severityCounts, err := s.alertRepo.CountBySeverity()
	if err != nil {
		return nil, err
	}
	for _, c := range severityCounts {
		switch c.Severity {
		case "Critical":
			stats.CriticalAlerts = c.Count
		case "High":
			stats.HighAlerts = c.Count
		case "Medium":
			stats.MediumAlerts = c.Count
		case "Low":
			stats.LowAlerts = c.Count
		}
	}

	faultCounts, err := s.alertRepo.CountByFaultType()
	if err != nil {
		return nil, err
	}
	stats.FaultDistribution = make(map[string]int64, len(faultCounts))
	for _, c := range faultCounts {
		stats.FaultDistribution[c.PredictedFault] = c.Count
	}

	s.logger.Debug("Dashboard statistics assembled")
	return stats, nil
}
