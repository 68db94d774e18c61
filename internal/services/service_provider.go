package services

import (
	"fmt"

	"github.com/solarwatch/backend/internal/config"
	"github.com/solarwatch/backend/internal/db"
	"github.com/solarwatch/backend/internal/db/repository"
	"github.com/solarwatch/backend/internal/kafka"
	"github.com/solarwatch/backend/internal/ml"
	"github.com/solarwatch/backend/internal/utils"
)

// ServiceProvider creates and wires all application services
type ServiceProvider struct {
	config   *config.Config
	logger   *utils.Logger
	repos    *repository.RepositoryFactory
	producer *kafka.Producer

	severityService    *SeverityService
	predictionService  *PredictionService
	sensorDataService  *SensorDataService
	alertService       *AlertService
	analyticsService   *AnalyticsService
	dashboardService   *DashboardService
	plantService       *PlantService
	panelService       *PanelService
	userService        *UserService
	passwordService    *PasswordStrengthService
	notifier           Notifier
}

// NewServiceProvider creates a provider with all services wired
func NewServiceProvider(database *db.Database, cfg *config.Config, logger *utils.Logger) (*ServiceProvider, error) {
	provider := &ServiceProvider{
		config: cfg,
		logger: logger,
		repos:  repository.NewRepositoryFactory(database.DB),
	}

	// Alert events go to Kafka when configured, otherwise they are dropped
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(&cfg.Kafka, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
		}
		provider.producer = producer
		provider.notifier = NewKafkaNotifier(producer, cfg.Kafka.AlertTopic, logger)
	} else {
		provider.notifier = NoopNotifier{}
	}

	classifier := ml.NewClient(&cfg.Classifier, logger)

	provider.severityService = NewSeverityService(logger)
	provider.passwordService = NewPasswordStrengthService()
	provider.predictionService = NewPredictionService(
		provider.repos.Prediction(), classifier, provider.severityService, logger)
	provider.sensorDataService = NewSensorDataService(
		provider.repos.SensorReading(), provider.repos.Alert(),
		provider.predictionService, provider.notifier, logger)
	provider.alertService = NewAlertService(provider.repos.Alert(), logger)
	provider.analyticsService = NewAnalyticsService(provider.repos.Prediction(), logger)
	provider.dashboardService = NewDashboardService(
		provider.repos.Plant(), provider.repos.Panel(), provider.repos.Alert(), logger)
	provider.plantService = NewPlantService(provider.repos.Plant(), logger)
	provider.panelService = NewPanelService(provider.repos.Panel(), provider.repos.Plant(), logger)
	provider.userService = NewUserService(
		provider.repos.User(), provider.passwordService, &cfg.JWT, logger)

	return provider, nil
}

// Severity returns the severity assessment service
func (p *ServiceProvider) Severity() *SeverityService {
	return p.severityService
}

// Prediction returns the prediction service
func (p *ServiceProvider) Prediction() *PredictionService {
	return p.predictionService
}

// SensorData returns the sensor data service
func (p *ServiceProvider) SensorData() *SensorDataService {
	return p.sensorDataService
}

// Alert returns the alert service
func (p *ServiceProvider) Alert() *AlertService {
	return p.alertService
}

// Analytics returns the analytics service
func (p *ServiceProvider) Analytics() *AnalyticsService {
	return p.analyticsService
}

// Dashboard returns the dashboard service
func (p *ServiceProvider) Dashboard() *DashboardService {
	return p.dashboardService
}

// Plant returns the plant service
func (p *ServiceProvider) Plant() *PlantService {
	return p.plantService
}

// Panel returns the panel service
func (p *ServiceProvider) Panel() *PanelService {
	return p.panelService
}

// User returns the user service
func (p *ServiceProvider) User() *UserService {
	return p.userService
}

// PasswordStrength returns the password strength service
func (p *ServiceProvider) PasswordStrength() *PasswordStrengthService {
	return p.passwordService
}

// Close releases resources held by the provider
func (p *ServiceProvider) Close() {
	if p.producer != nil {
		p.producer.Close()
	}
}
