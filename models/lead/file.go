package lead

import (
	"time"
)

// File is a URL-referenced attachment on a lead (business cards, site
// photos). The file itself lives in external storage, only the link is kept.
type File struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	LeadID string `gorm:"type:varchar(64);not null;index" json:"lead_id"`
	Lead   Lead   `gorm:"foreignKey:LeadID" json:"-"`

	FileName   string `gorm:"type:varchar(255);not null" json:"file_name"`
	FileURL    string `gorm:"type:text;not null" json:"file_url"`
	FileType   string `gorm:"type:varchar(50);not null" json:"file_type"`
	OperatorID string `gorm:"type:varchar(64);not null" json:"operator_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the File model
func (File) TableName() string {
	return "lead_files"
}
