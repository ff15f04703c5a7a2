package lead

import (
	"time"
)

// StageHistory is the append-only audit trail of stage transitions. The
// lead's current stage always equals the ToStage of its newest entry, or
// the creation stage when no entries exist. Rows are never updated.
type StageHistory struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	LeadID string `gorm:"type:varchar(64);not null;index" json:"lead_id"`
	Lead   Lead   `gorm:"foreignKey:LeadID" json:"-"`

	FromStage  Stage   `gorm:"type:varchar(20);not null" json:"from_stage"`
	ToStage    Stage   `gorm:"type:varchar(20);not null" json:"to_stage"`
	OperatorID string  `gorm:"type:varchar(64);not null" json:"operator_id"`
	Note       *string `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the StageHistory model
func (StageHistory) TableName() string {
	return "lead_stage_history"
}
