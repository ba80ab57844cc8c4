package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/camden-git/personsbackend/models"
)

// InitGormDB opens the sqlite file behind the gorm person store. SQL is
// logged only at warning level and above.
func InitGormDB(dataSourceName string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(withBusyTimeout(dataSourceName)), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to open person store %s: %w", dataSourceName, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	sqlDB.SetMaxIdleConns(4)
	sqlDB.SetMaxOpenConns(8)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Printf("Person store opened with GORM at %s", dataSourceName)
	return db, nil
}

// AutoMigrateModels creates or updates the persons table.
func AutoMigrateModels(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Person{}); err != nil {
		return fmt.Errorf("failed to migrate persons table: %w", err)
	}
	return nil
}
