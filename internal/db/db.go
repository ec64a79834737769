package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func NewDB(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		logger.Fatal("failed to migrate", zap.Error(err))
	}

	if err := EnsureBookingConstraint(db); err != nil {
		if cfg.IsProduction() {
			logger.Fatal("booking overlap constraint not installed", zap.Error(err))
		}
		logger.Error("booking overlap constraint not installed", zap.Error(err))
	}

	if err := SeedStaff(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Error("failed to seed staff account", zap.Error(err))
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Availability{},
		&models.Appointment{},
		&models.AuditLog{},
		&models.Assessment{},
		&models.AssessmentResponse{},
		&models.JournalEntry{},
		&models.MeditationSession{},
		&models.MeditationCompletion{},
		&models.ContactMessage{},
	)
}
