package campaign

import (
	"time"

	"github.com/jackiechen20262026/marketing/models/lead"
)

// ItemPushStatus tracks whether a batch item's shipment has been generated.
type ItemPushStatus string

const (
	ItemNotPushed ItemPushStatus = "NotPushed"
	ItemPushed    ItemPushStatus = "Pushed"
	ItemFailed    ItemPushStatus = "Failed"
)

// BatchItem links one lead into a campaign batch. One item exists per
// (batch, lead) pair; the shipment reference is filled in when the batch
// is pushed.
type BatchItem struct {
	ID string `gorm:"type:varchar(64);primaryKey" json:"id"`

	BatchID string `gorm:"type:varchar(64);not null;index:idx_batch_lead,unique" json:"batch_id"`
	Batch   Batch  `gorm:"foreignKey:BatchID" json:"-"`

	LeadID string    `gorm:"type:varchar(64);not null;index:idx_batch_lead,unique" json:"lead_id"`
	Lead   lead.Lead `gorm:"foreignKey:LeadID" json:"-"`

	ShipmentID *string        `gorm:"type:varchar(64)" json:"shipment_id,omitempty"`
	PushStatus ItemPushStatus `gorm:"type:varchar(20);not null" json:"push_status"`
	PushError  *string        `gorm:"type:text" json:"push_error,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the BatchItem model
func (BatchItem) TableName() string {
	return "campaign_batch_items"
}
