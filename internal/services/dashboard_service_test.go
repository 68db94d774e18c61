package services_test

import (
	"testing"

	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	ts, alertService := newAlertSetup(t)

	svc := services.NewDashboardService(
		ts.Repos.Plant(),
		ts.Repos.Panel(),
		ts.Repos.Alert(),
		testLogger(),
	)

	plant := &models.SolarPlant{Name: "North Field", Location: "Almaty", CapacityKW: 500}
	require.NoError(t, ts.Repos.Plant().Create(plant))

	require.NoError(t, ts.Repos.Panel().Create(&models.SolarPanel{
		PanelID: "PANEL-001", PlantID: plant.ID, Status: models.PanelStatusActive,
	}))
	require.NoError(t, ts.Repos.Panel().Create(&models.SolarPanel{
		PanelID: "PANEL-002", PlantID: plant.ID, Status: models.PanelStatusMaintenance,
	}))

	seedAlert(t, ts, "Critical")
	seedAlert(t, ts, "Medium")
	resolved := seedAlert(t, ts, "Low")
	_, err := alertService.UpdateStatus(resolved.ID, "RESOLVED")
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.TotalPlants)
	assert.EqualValues(t, 2, stats.TotalPanels)
	assert.EqualValues(t, 1, stats.ActivePanels)
	assert.EqualValues(t, 1, stats.MaintenancePanels)
	assert.EqualValues(t, 0, stats.OfflinePanels)

	assert.EqualValues(t, 3, stats.TotalAlerts)
	assert.EqualValues(t, 2, stats.OpenAlerts)
	assert.EqualValues(t, 1, stats.CriticalAlerts)
	assert.EqualValues(t, 1, stats.MediumAlerts)
	assert.EqualValues(t, 1, stats.LowAlerts)

	assert.EqualValues(t, 2, stats.AlertsByStatus["OPEN"])
	assert.EqualValues(t, 0, stats.AlertsByStatus["IN_PROGRESS"])
	assert.EqualValues(t, 1, stats.AlertsByStatus["RESOLVED"])
	assert.EqualValues(t, 3, stats.FaultDistribution["PARTIAL_SHADING"])
}
