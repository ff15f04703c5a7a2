package courier

import (
	"time"
)

// CodeYTO is the carrier code of the only courier currently integrated.
const CodeYTO = "yto"

// Config holds the per-carrier integration settings. One row per carrier
// code. The secret never leaves the store unmasked except when building a
// request signature.
type Config struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CourierCode  string  `gorm:"type:varchar(20);not null;unique" json:"courier_code"`
	Name         string  `gorm:"type:varchar(120);not null" json:"name"`
	BaseURL      string  `gorm:"type:varchar(255);not null" json:"base_url"`
	AppKey       string  `gorm:"type:varchar(255);not null" json:"-"`
	AppSecret    string  `gorm:"type:varchar(255);not null" json:"-"`
	CustomerCode *string `gorm:"type:varchar(120)" json:"customer_code,omitempty"`
	Enabled      bool    `gorm:"not null;default:false" json:"enabled"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Config model
func (Config) TableName() string {
	return "courier_integrations"
}
