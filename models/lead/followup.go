package lead

import (
	"time"
)

// Followup records a follow-up touch point with a lead (call, email, visit)
// and its outcome.
type Followup struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	LeadID string `gorm:"type:varchar(64);not null;index" json:"lead_id"`
	Lead   Lead   `gorm:"foreignKey:LeadID" json:"-"`

	Channel    string  `gorm:"type:varchar(50);not null" json:"channel"`
	Content    string  `gorm:"type:text;not null" json:"content"`
	Result     *string `gorm:"type:varchar(255)" json:"result,omitempty"`
	OperatorID string  `gorm:"type:varchar(64);not null" json:"operator_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the Followup model
func (Followup) TableName() string {
	return "lead_followups"
}
