package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/models/courier"
)

// SeedCourierConfig creates a disabled placeholder row for the YTO
// integration so the settings page always has something to edit.
func SeedCourierConfig(db *gorm.DB) {
	var count int64
	db.Model(&courier.Config{}).Where("courier_code = ?", courier.CodeYTO).Count(&count)
	if count > 0 {
		return
	}

	cfg := courier.Config{
		CourierCode: courier.CodeYTO,
		Name:        "YTO Express",
		BaseURL:     "",
		AppKey:      "",
		AppSecret:   "",
		Enabled:     false,
	}
	if err := db.Create(&cfg).Error; err != nil {
		log.Printf("❌ Failed to seed courier config: %v", err)
	} else {
		log.Printf("✅ Seeded disabled YTO courier config")
	}
}
