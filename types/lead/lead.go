package lead

import (
	"errors"
	"strings"
)

// LeadCreateRequest is the payload for creating a single lead.
type LeadCreateRequest struct {
	CompanyName      string `json:"company_name"`
	ContactName      string `json:"contact_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Street           string `json:"street"`
	HouseNumber      string `json:"house_number"`
	PostalCode       string `json:"postal_code"`
	City             string `json:"city"`
	Country          string `json:"country"`
	SocialCreditCode string `json:"social_credit_code"`
	Website          string `json:"website"`
	CompanyProfile   string `json:"company_profile"`
	Brand            string `json:"brand"`
}

func (r *LeadCreateRequest) Validate() error {
	if strings.TrimSpace(r.CompanyName) == "" {
		return errors.New("company_name is required")
	}
	return nil
}

// LeadUpdateRequest mirrors the create payload; owner and stage are not
// editable through it.
type LeadUpdateRequest = LeadCreateRequest

// MoveStageRequest asks the stage engine to transition a lead.
type MoveStageRequest struct {
	ToStage string `json:"to_stage"`
	Note    string `json:"note"`
}

func (r *MoveStageRequest) Validate() error {
	if strings.TrimSpace(r.ToStage) == "" {
		return errors.New("to_stage is required")
	}
	return nil
}

// ImportRequest carries raw CSV-style lines:
// company,contact,phone,city,country,brand
type ImportRequest struct {
	RawData string `json:"raw_data"`
}

func (r *ImportRequest) Validate() error {
	if strings.TrimSpace(r.RawData) == "" {
		return errors.New("raw_data is required")
	}
	return nil
}

// ReminderRequest sets or clears the next visit reminder (RFC 3339, empty
// clears).
type ReminderRequest struct {
	NextVisitReminder string `json:"next_visit_reminder"`
}

// VisitRequest records a visit against a lead.
type VisitRequest struct {
	Note string `json:"note"`
}

// FollowupRequest records a follow-up touch point.
type FollowupRequest struct {
	Channel string `json:"channel"`
	Content string `json:"content"`
	Result  string `json:"result"`
}

func (r *FollowupRequest) Validate() error {
	if strings.TrimSpace(r.Channel) == "" {
		return errors.New("channel is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("content is required")
	}
	return nil
}

// FileUploadRequest attaches an externally stored file by URL.
type FileUploadRequest struct {
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
}

func (r *FileUploadRequest) Validate() error {
	if strings.TrimSpace(r.FileURL) == "" {
		return errors.New("file_url is required")
	}
	return nil
}
