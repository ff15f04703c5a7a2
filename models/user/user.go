package user

import (
	"time"
)

// Role is the portal role assigned to a user. Admin and Supervisor see the
// whole lead pool; a Salesperson only sees leads they own.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleSupervisor  Role = "Supervisor"
	RoleSalesperson Role = "Salesperson"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleSalesperson:
		return true
	default:
		return false
	}
}

// Unrestricted reports whether the role may bypass workflow guards
// (forced stage moves, brochure limit override).
func (r Role) Unrestricted() bool {
	return r == RoleAdmin
}

// User represents a portal user that operates on leads and campaigns.
type User struct {
	ID           string  `gorm:"type:varchar(64);primaryKey" json:"id"`
	Username     string  `gorm:"type:varchar(255);not null;unique" json:"username"`
	PasswordHash *string `gorm:"type:varchar(255)" json:"-"`
	Role         Role    `gorm:"type:varchar(20);not null" json:"role"`
	Status       string  `gorm:"type:varchar(20);not null;default:active" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the User model
func (User) TableName() string {
	return "users"
}
