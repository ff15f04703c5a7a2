package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/models/user"
)

// SeedPortalUsers ensures the three stand-in portal users exist, one per
// role. The role-selector middleware resolves requests onto these rows.
func SeedPortalUsers(db *gorm.DB) {
	log.Printf("🔍 Checking portal users data integrity...")

	users := []user.User{
		{ID: "u_admin_001", Username: "admin", Role: user.RoleAdmin, Status: "active"},
		{ID: "u_super_001", Username: "supervisor", Role: user.RoleSupervisor, Status: "active"},
		{ID: "u_emp_001", Username: "employee", Role: user.RoleSalesperson, Status: "active"},
	}

	for _, u := range users {
		var count int64
		db.Model(&user.User{}).Where("id = ?", u.ID).Count(&count)
		if count == 0 {
			if err := db.Create(&u).Error; err != nil {
				log.Printf("❌ Failed to seed portal user %s: %v", u.Username, err)
			} else {
				log.Printf("✅ Seeded portal user %s (%s)", u.Username, u.Role)
			}
		}
	}
}
