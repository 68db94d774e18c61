package repository

import "gorm.io/gorm"

// RepositoryFactory creates and manages all repositories
type RepositoryFactory struct {
	db             *gorm.DB
	userRepo       UserRepository
	plantRepo      PlantRepository
	panelRepo      PanelRepository
	sensorRepo     SensorReadingRepository
	predictionRepo PredictionRepository
	alertRepo      AlertRepository
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(db *gorm.DB) *RepositoryFactory {
	return &RepositoryFactory{
		db: db,
	}
}

// User returns the user repository
func (f *RepositoryFactory) User() UserRepository {
	if f.userRepo == nil {
		f.userRepo = NewUserRepository(f.db)
	}
	return f.userRepo
}

// Plant returns the solar plant repository
func (f *RepositoryFactory) Plant() PlantRepository {
	if f.plantRepo == nil {
		f.plantRepo = NewPlantRepository(f.db)
	}
	return f.plantRepo
}

// Panel returns the solar panel repository
func (f *RepositoryFactory) Panel() PanelRepository {
	if f.panelRepo == nil {
		f.panelRepo = NewPanelRepository(f.db)
	}
	return f.panelRepo
}

// SensorReading returns the sensor reading repository
func (f *RepositoryFactory) SensorReading() SensorReadingRepository {
	if f.sensorRepo == nil {
		f.sensorRepo = NewSensorReadingRepository(f.db)
	}
	return f.sensorRepo
}

// Prediction returns the prediction repository
func (f *RepositoryFactory) Prediction() PredictionRepository {
	if f.predictionRepo == nil {
		f.predictionRepo = NewPredictionRepository(f.db)
	}
	return f.predictionRepo
}

// Alert returns the alert repository
func (f *RepositoryFactory) Alert() AlertRepository {
	if f.alertRepo == nil {
		f.alertRepo = NewAlertRepository(f.db)
	}
	return f.alertRepo
}
