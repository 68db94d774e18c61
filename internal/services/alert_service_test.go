package services_test

import (
	"testing"

	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/testutil"
	"github.com/solarwatch/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAlertSetup(t *testing.T) (*testutil.TestSetup, *services.AlertService) {
	ts := testutil.NewTestSetup(t)
	t.Cleanup(ts.Cleanup)
	ts.SetupTestDatabase()

	return ts, services.NewAlertService(ts.Repos.Alert(), testLogger())
}

func seedAlert(t *testing.T, ts *testutil.TestSetup, severity string) *models.Alert {
	alert := &models.Alert{
		PanelID:         "PANEL-001",
		FaultType:       "PARTIAL_SHADING",
		Severity:        severity,
		Message:         severity + " severity partial shading detected. Check for obstructions.",
		Confidence:      "High",
		ConfidenceScore: 0.9,
		Status:          models.AlertStatusOpen,
	}
	require.NoError(t, ts.Repos.Alert().Create(alert))
	return alert
}

func TestAcknowledgeSetsAuditFields(t *testing.T) {
	ts, svc := newAlertSetup(t)
	alert := seedAlert(t, ts, "Medium")

	updated, err := svc.Acknowledge(alert.ID, 42)
	require.NoError(t, err)

	assert.True(t, updated.Acknowledged)
	require.NotNil(t, updated.AcknowledgedBy)
	assert.EqualValues(t, 42, *updated.AcknowledgedBy)
	assert.NotNil(t, updated.AcknowledgedAt)
	// Acknowledgement does not advance the lifecycle
	assert.Equal(t, models.AlertStatusOpen, updated.Status)
}

func TestAssignTechnicianMovesOpenToInProgress(t *testing.T) {
	ts, svc := newAlertSetup(t)
	alert := seedAlert(t, ts, "High")

	updated, err := svc.AssignTechnician(alert.ID, 7)
	require.NoError(t, err)

	require.NotNil(t, updated.AssignedTechnicianID)
	assert.EqualValues(t, 7, *updated.AssignedTechnicianID)
	assert.Equal(t, models.AlertStatusInProgress, updated.Status)
}

func TestAssignTechnicianKeepsResolvedStatus(t *testing.T) {
	ts, svc := newAlertSetup(t)
	alert := seedAlert(t, ts, "High")

	_, err := svc.UpdateStatus(alert.ID, "RESOLVED")
	require.NoError(t, err)

	updated, err := svc.AssignTechnician(alert.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, models.AlertStatusResolved, updated.Status)
}

func TestUpdateStatusResolvedSetsResolvedAt(t *testing.T) {
	ts, svc := newAlertSetup(t)
	alert := seedAlert(t, ts, "Low")

	updated, err := svc.UpdateStatus(alert.ID, "RESOLVED")
	require.NoError(t, err)

	assert.Equal(t, models.AlertStatusResolved, updated.Status)
	assert.NotNil(t, updated.ResolvedAt)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	ts, svc := newAlertSetup(t)
	alert := seedAlert(t, ts, "Low")

	_, err := svc.UpdateStatus(alert.ID, "CLOSED")
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestAddNotes(t *testing.T) {
	ts, svc := newAlertSetup(t)
	alert := seedAlert(t, ts, "Medium")

	updated, err := svc.AddNotes(alert.ID, "Cleaned debris from panel surface")
	require.NoError(t, err)
	assert.Equal(t, "Cleaned debris from panel surface", updated.TechnicianNotes)
}

func TestGetByIDNotFound(t *testing.T) {
	_, svc := newAlertSetup(t)

	_, err := svc.GetByID(9999)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestListByStatusValidatesInput(t *testing.T) {
	_, svc := newAlertSetup(t)

	_, _, err := svc.ListByStatus("BOGUS", 0, 20)
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestUnacknowledgedAndCriticalCounts(t *testing.T) {
	ts, svc := newAlertSetup(t)

	seedAlert(t, ts, "Critical")
	seedAlert(t, ts, "Medium")
	acked := seedAlert(t, ts, "Low")

	_, err := svc.Acknowledge(acked.ID, 1)
	require.NoError(t, err)

	unacknowledged, err := svc.UnacknowledgedCount()
	require.NoError(t, err)
	assert.EqualValues(t, 2, unacknowledged)

	critical, err := svc.CriticalCount()
	require.NoError(t, err)
	assert.EqualValues(t, 1, critical)
}
