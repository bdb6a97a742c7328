package db

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rmadesk/rma-portal/internal/config"
	"github.com/rmadesk/rma-portal/internal/models"
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

	if err := SeedSuperAdmin(db, cfg); err != nil {
		logger.Fatal("failed to seed super admin", zap.Error(err))
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Admin{},
		&models.Product{},
		&models.RmaRequest{},
	)
}

// SeedSuperAdmin creates the back-office account on first boot. Existing
// rows are left untouched.
func SeedSuperAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.Admin{}).
		Where("email = ?", cfg.SuperAdminEmail).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{
		FirstName:    "Super",
		LastName:     "Admin",
		Email:        cfg.SuperAdminEmail,
		PasswordHash: string(hashed),
		Role:         "super_admin",
	}
	return db.Create(&admin).Error
}
