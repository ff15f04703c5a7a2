package lead

import (
	"time"
)

// Activity types recorded against a lead.
const (
	ActivityLeadCreated  = "lead_created"
	ActivityLeadUpdated  = "lead_updated"
	ActivityVisit        = "visit"
	ActivityReminderSet  = "reminder_set"
	ActivityFileUpload   = "file_upload"
	ActivityBrochureSent = "brochure_sent"
)

// Activity is an append-only log of non-stage actions taken on a lead
// (edits, visits, reminders, uploads, brochure sends).
type Activity struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	LeadID string `gorm:"type:varchar(64);not null;index" json:"lead_id"`
	Lead   Lead   `gorm:"foreignKey:LeadID" json:"-"`

	Type         string  `gorm:"type:varchar(50);not null" json:"type"`
	Note         *string `gorm:"type:text" json:"note,omitempty"`
	OperatorID   string  `gorm:"type:varchar(64);not null" json:"operator_id"`
	MetadataJSON *string `gorm:"type:text;column:metadata_json" json:"metadata_json,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the Activity model
func (Activity) TableName() string {
	return "lead_activity_logs"
}
