package shipment

import (
	"time"
)

// Event status tags written by the tracking refresh and the return flow.
const (
	EventTrackRefresh     = "TrackRefresh"
	EventReturnPushed     = "ReturnPushed"
	EventReturnPushFailed = "ReturnPushFailed"
	EventReturnRetryOK    = "ReturnRetryPushed"
	EventReturnRetryFail  = "ReturnRetryFailed"
)

// Event is an append-only tracking event on a shipment. EventTime is the
// courier-reported time; system-generated events may leave it unset, in
// which case CreatedAt is the ordering key.
type Event struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ShipmentID string   `gorm:"type:varchar(64);not null;index" json:"shipment_id"`
	Shipment   Shipment `gorm:"foreignKey:ShipmentID" json:"-"`

	EventTime   *time.Time `json:"event_time,omitempty"`
	Status      string     `gorm:"type:varchar(50);not null" json:"status"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Location    string     `gorm:"type:varchar(120)" json:"location"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the Event model
func (Event) TableName() string {
	return "shipment_events"
}
