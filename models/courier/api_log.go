package courier

import (
	"time"
)

// APILog is the append-only audit record of every call issued to the
// courier provider, success or failure. Credentials in the stored request
// body are masked before the row is written.
type APILog struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CourierCode string `gorm:"type:varchar(20);not null;index" json:"courier_code"`
	BizType     string `gorm:"type:varchar(50);not null" json:"biz_type"`
	BizID       string `gorm:"type:varchar(64);not null;index" json:"biz_id"`

	RequestURL   string  `gorm:"type:text;not null" json:"request_url"`
	RequestBody  string  `gorm:"type:text" json:"request_body"`
	ResponseBody *string `gorm:"type:text" json:"response_body,omitempty"`

	HTTPStatus   *int    `json:"http_status,omitempty"`
	Success      int     `gorm:"not null;default:0" json:"success"`
	ErrorMessage *string `gorm:"type:text" json:"error_message,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the APILog model
func (APILog) TableName() string {
	return "courier_api_logs"
}
