package services

import (
	"time"

	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/kafka"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// Notifier publishes alert events to interested consumers. Publishing is
// fire-and-forget; a failed publish never fails the request that raised the
// alert.
type Notifier interface {
	NotifyAlert(alert *models.Alert)
}

// AlertEvent is the payload published for each generated alert
type AlertEvent struct {
	AlertID         uint      `json:"alert_id"`
	PanelID         string    `json:"panel_id"`
	FaultType       string    `json:"fault_type"`
	Severity        string    `json:"severity"`
	Message         string    `json:"message"`
	ConfidenceScore float64   `json:"confidence_score"`
	CreatedAt       time.Time `json:"created_at"`
}

// KafkaNotifier publishes alert events to a Kafka topic
type KafkaNotifier struct {
	producer *kafka.Producer
	topic    string
	logger   *utils.Logger
}

// NewKafkaNotifier creates a notifier backed by a Kafka producer
func NewKafkaNotifier(producer *kafka.Producer, topic string, logger *utils.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		topic:    topic,
		logger:   logger.Named("alert_notifier"),
	}
}

// NotifyAlert publishes one alert event, keyed by panel so events for the
// same panel stay ordered
func (n *KafkaNotifier) NotifyAlert(alert *models.Alert) {
	event := &AlertEvent{
		AlertID:         alert.ID,
		PanelID:         alert.PanelID,
		FaultType:       alert.FaultType,
		Severity:        alert.Severity,
		Message:         alert.Message,
		ConfidenceScore: alert.ConfidenceScore,
		CreatedAt:       alert.CreatedAt,
	}

	err := n.producer.Produce(n.topic, &kafka.Message{
		Key:       alert.PanelID,
		Value:     event,
		Timestamp: alert.CreatedAt,
	})
	if err != nil {
		n.logger.Warn("Failed to publish alert event",
			zap.Uint("alert_id", alert.ID),
			zap.Error(err),
		)
	}
}

// NoopNotifier discards alert events; used when Kafka is disabled
type NoopNotifier struct{}

// NotifyAlert does nothing
func (NoopNotifier) NotifyAlert(*models.Alert) {}
