package campaign

import (
	"time"

	"github.com/jackiechen20262026/marketing/models/user"
)

// BatchStatus is the lifecycle of a campaign batch. A batch moves from
// Draft to Sent exactly once and never reverts.
type BatchStatus string

const (
	BatchStatusDraft BatchStatus = "Draft"
	BatchStatusSent  BatchStatus = "Sent"
)

func (bs BatchStatus) String() string {
	return string(bs)
}

// Batch groups selected leads for one outbound brochure campaign.
type Batch struct {
	ID           string  `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	TemplateName string  `gorm:"type:varchar(255);not null" json:"template_name"`
	Note         *string `gorm:"type:text" json:"note,omitempty"`

	Status BatchStatus `gorm:"type:varchar(20);not null" json:"status"`

	OperatorID string    `gorm:"type:varchar(64);not null" json:"operator_id"`
	Operator   user.User `gorm:"foreignKey:OperatorID" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Batch model
func (Batch) TableName() string {
	return "campaign_batches"
}
