package lead

import (
	"time"
)

// Lead represents a commercial lead moving through the marketing funnel.
// Leads are never hard-deleted and the owner is fixed at creation.
type Lead struct {
	ID          string  `gorm:"type:varchar(64);primaryKey" json:"id"`
	CompanyName string  `gorm:"type:varchar(255);not null" json:"company_name"`
	ContactName *string `gorm:"type:varchar(255)" json:"contact_name,omitempty"`
	Email       *string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone       *string `gorm:"type:varchar(50)" json:"phone,omitempty"`

	Street      *string `gorm:"type:varchar(255)" json:"street,omitempty"`
	HouseNumber *string `gorm:"type:varchar(50)" json:"house_number,omitempty"`
	PostalCode  *string `gorm:"type:varchar(20)" json:"postal_code,omitempty"`
	City        *string `gorm:"type:varchar(120)" json:"city,omitempty"`
	Country     string  `gorm:"type:varchar(120);not null;default:China" json:"country"`
	Address     *string `gorm:"type:text" json:"address,omitempty"`

	SocialCreditCode *string `gorm:"type:varchar(64)" json:"social_credit_code,omitempty"`
	Website          *string `gorm:"type:varchar(255)" json:"website,omitempty"`
	CompanyProfile   *string `gorm:"type:text" json:"company_profile,omitempty"`
	BrandJSON        *string `gorm:"type:text;column:brand_json" json:"brand_json,omitempty"`

	Source   string `gorm:"type:varchar(50);not null;default:Amazon" json:"source"`
	Priority string `gorm:"type:varchar(10);not null;default:M" json:"priority"`

	OwnerID string `gorm:"type:varchar(64);not null;index" json:"owner_id"`

	Stage              Stage `gorm:"type:varchar(20);not null;index" json:"stage"`
	BrochureSentCount  int   `gorm:"not null;default:0" json:"brochure_sent_count"`
	BrochureLimitCount int   `gorm:"not null;default:3" json:"brochure_limit_count"`
	VisitCount         int   `gorm:"not null;default:0" json:"visit_count"`

	LastVisitAt       *time.Time `json:"last_visit_at,omitempty"`
	NextVisitReminder *time.Time `gorm:"index" json:"next_visit_reminder,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Lead model
func (Lead) TableName() string {
	return "leads"
}

// BrochureLimitReached reports whether the lead has used up its brochure
// allowance. Only an unrestricted role may include such a lead in a batch.
func (l *Lead) BrochureLimitReached() bool {
	return l.BrochureSentCount >= l.BrochureLimitCount
}
