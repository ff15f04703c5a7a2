package shipment

import (
	"time"

	"github.com/jackiechen20262026/marketing/models/lead"
)

// LogisticsStatus is the courier-side state of a shipment.
type LogisticsStatus string

const (
	LogisticsPending   LogisticsStatus = "Pending"
	LogisticsInTransit LogisticsStatus = "InTransit"
	LogisticsDelivered LogisticsStatus = "Delivered"
	LogisticsException LogisticsStatus = "Exception"
	LogisticsReturned  LogisticsStatus = "Returned"
)

func (ls LogisticsStatus) String() string {
	return string(ls)
}

func (ls LogisticsStatus) IsValid() bool {
	switch ls {
	case LogisticsPending, LogisticsInTransit, LogisticsDelivered, LogisticsException, LogisticsReturned:
		return true
	default:
		return false
	}
}

// Shipment is one physical brochure parcel handed to the courier. The
// receiver fields are a snapshot taken at push time: the lead's address may
// change afterwards, the parcel's destination does not.
type Shipment struct {
	ID string `gorm:"type:varchar(64);primaryKey" json:"id"`

	LeadID string    `gorm:"type:varchar(64);not null;index" json:"lead_id"`
	Lead   lead.Lead `gorm:"foreignKey:LeadID" json:"-"`

	Carrier   string `gorm:"type:varchar(20);not null" json:"carrier"`
	WaybillNo string `gorm:"type:varchar(50);not null" json:"waybill_no"`

	PushStatus      string          `gorm:"type:varchar(20);not null" json:"push_status"`
	LogisticsStatus LogisticsStatus `gorm:"type:varchar(20);not null;index" json:"logistics_status"`

	ReceiverName    *string `gorm:"type:varchar(255)" json:"receiver_name,omitempty"`
	ReceiverPhone   *string `gorm:"type:varchar(50)" json:"receiver_phone,omitempty"`
	ReceiverCountry *string `gorm:"type:varchar(120)" json:"receiver_country,omitempty"`
	ReceiverAddress *string `gorm:"type:text" json:"receiver_address,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Shipment model
func (Shipment) TableName() string {
	return "shipments"
}
