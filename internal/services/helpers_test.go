package services_test

import (
	"sync"

	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

func testLogger() *utils.Logger {
	return &utils.Logger{Logger: zap.NewNop()}
}

// recordingNotifier captures alert notifications for assertions
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []*models.Alert
}

func (n *recordingNotifier) NotifyAlert(alert *models.Alert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
}

func (n *recordingNotifier) Alerts() []*models.Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*models.Alert(nil), n.alerts...)
}
