package database

import (
	"fmt"
	"log"

	"github.com/storefront/models"
	"gorm.io/gorm"
)

// AutoMigrate runs auto migration for all models.
// Categories migrate first so the products FK (ON DELETE CASCADE) can be created.
func AutoMigrate(db *gorm.DB) error {
	log.Println("Starting GORM AutoMigrate...")

	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	log.Println("GORM AutoMigrate completed successfully")
	return nil
}

// DropTables drops all application tables, children first
func DropTables(db *gorm.DB) error {
	migrator := db.Migrator()
	for _, model := range []interface{}{&models.Product{}, &models.Category{}} {
		if migrator.HasTable(model) {
			if err := migrator.DropTable(model); err != nil {
				return fmt.Errorf("failed to drop table: %w", err)
			}
		}
	}
	return nil
}

// CheckConnection verifies the database connection
func CheckConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}
