package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/logger"
	"github.com/jackiechen20262026/marketing/models/campaign"
	"github.com/jackiechen20262026/marketing/models/courier"
	"github.com/jackiechen20262026/marketing/models/lead"
	"github.com/jackiechen20262026/marketing/models/log"
	"github.com/jackiechen20262026/marketing/models/shipment"
	"github.com/jackiechen20262026/marketing/models/user"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, username, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := AutoMigrate(DB); err != nil {
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

// AutoMigrate runs auto migration for all models in dependency order.
func AutoMigrate(db *gorm.DB) error {
	// Stage 1: foundation models
	stage1Models := []interface{}{
		&user.User{},
		&courier.Config{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: lead pool
	stage2Models := []interface{}{
		&lead.Lead{},
		&lead.StageHistory{},
		&lead.Activity{},
		&lead.Followup{},
		&lead.File{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: campaigns and fulfillment
	stage3Models := []interface{}{
		&campaign.Batch{},
		&campaign.BatchItem{},
		&shipment.Shipment{},
		&shipment.Event{},
		&courier.APILog{},
		&log.Log{},
	}

	for _, model := range stage3Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_leads_owner_stage ON leads(owner_id, stage)",
		"CREATE INDEX IF NOT EXISTS idx_leads_updated_at ON leads(updated_at)",
		"CREATE INDEX IF NOT EXISTS idx_stage_history_lead_created ON lead_stage_history(lead_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_activity_lead_type ON lead_activity_logs(lead_id, type)",
		"CREATE INDEX IF NOT EXISTS idx_shipments_waybill ON shipments(waybill_no)",
		"CREATE INDEX IF NOT EXISTS idx_shipment_events_shipment ON shipment_events(shipment_id, event_time)",
		"CREATE INDEX IF NOT EXISTS idx_courier_logs_code_created ON courier_api_logs(courier_code, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
