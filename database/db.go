package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shipment-tracking/logger"
	"shipment-tracking/models/category"
	"shipment-tracking/models/courier"
	"shipment-tracking/models/customer"
	"shipment-tracking/models/item"
	"shipment-tracking/models/log"
	"shipment-tracking/models/shipment"
	"shipment-tracking/models/user"
)

var DB *gorm.DB

// InitDB initializes the database connection, runs the staged migrations and
// creates the supporting indexes.
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	dbUser := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, dbUser, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(DB); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate migrates all models in dependency stages so foreign keys always
// find their referenced tables.
func autoMigrate(db *gorm.DB) error {
	// Stage 1: master tables without references
	stage1Models := []interface{}{
		&user.User{},
		&category.Category{},
		&customer.Customer{},
		&courier.Courier{},
	}
	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: tables referencing stage 1
	stage2Models := []interface{}{
		&item.Item{},
		&shipment.Shipment{},
	}
	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: remaining tables
	remainingModels := []interface{}{
		&shipment.Detail{},
		&shipment.ShipmentStatusEvent{},
		&log.Log{},
	}
	for _, model := range remainingModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes adds the indexes the hot read paths rely on.
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_shipments_status ON shipments (status)",
		"CREATE INDEX IF NOT EXISTS idx_shipments_date ON shipments (date)",
		"CREATE INDEX IF NOT EXISTS idx_shipment_details_item ON shipment_details (item_code)",
		"CREATE INDEX IF NOT EXISTS idx_status_events_shipment ON shipment_status_events (shipment_code)",
	}

	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
